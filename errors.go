package fnplot

import "strconv"

// ErrorKind classifies a ParseError.
type ErrorKind int8

const (
	// NoFunctionDefined means the input does not look like a function
	// definition at all. Callers showing errors while the user types usually
	// want to suppress it.
	NoFunctionDefined ErrorKind = iota + 1
	// UnableToParse means the input looks like a definition but does not
	// follow the grammar, or an expression evaluated to nothing.
	UnableToParse
	// VariableDefinitionAndUseMismatch means a declared variable does not
	// appear in the expression.
	VariableDefinitionAndUseMismatch
	// UnknownVariable means a name is neither declared nor bound.
	UnknownVariable
	// UnableToFind means a required part of the input is missing.
	UnableToFind
	// InvalidTokenPosition means an operator has no operand on one side.
	InvalidTokenPosition
	// DoubleDecimal means a number has two decimal points.
	DoubleDecimal
	// UnclosedParenthesis means an open parenthesis is never closed.
	UnclosedParenthesis
)

func (k ErrorKind) String() string {
	switch k {
	case NoFunctionDefined:
		return "NoFunctionDefined"
	case UnableToParse:
		return "UnableToParse"
	case VariableDefinitionAndUseMismatch:
		return "VariableDefinitionAndUseMismatch"
	case UnknownVariable:
		return "UnknownVariable"
	case UnableToFind:
		return "UnableToFind"
	case InvalidTokenPosition:
		return "InvalidTokenPosition"
	case DoubleDecimal:
		return "DoubleDecimal"
	case UnclosedParenthesis:
		return "UnclosedParenthesis"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseError is the error returned by every fallible operation on
// definitions, trees and functions.
type ParseError struct {
	// Kind is the class of the error.
	Kind ErrorKind
	// What names the variable or the missing part of the input, for
	// UnknownVariable and UnableToFind.
	What string
	// Hint is a declared variable close to What, if one was found.
	Hint string
	// Col is the position in the normalized expression of the text that
	// caused the error, as the number of runes up to and including its
	// start. It is zero for errors not tied to a place in the text.
	Col int
}

func (err *ParseError) Error() string {
	var s string
	switch err.Kind {
	case NoFunctionDefined:
		s = "no function defined"
	case UnableToParse:
		s = "unable to parse"
	case VariableDefinitionAndUseMismatch:
		s = "all variables defined in the function are not used"
	case UnknownVariable:
		s = "unknown variable in expression: " + strconv.Quote(err.What)
	case UnableToFind:
		s = "unable to find required argument: " + err.What + " in input"
	case InvalidTokenPosition:
		s = "token in invalid position"
	case DoubleDecimal:
		s = "two decimal points used in the same number"
	case UnclosedParenthesis:
		s = "unclosed parenthesis"
	default:
		s = "invalid error kind " + err.Kind.String()
	}
	if err.Hint != "" {
		s += " (did you mean " + strconv.Quote(err.Hint) + "?)"
	}
	if err.Col > 0 {
		s = strconv.Itoa(err.Col) + ": " + s
	}
	return s
}

// Pos returns the column of the error, or zero if it has none.
func (err *ParseError) Pos() int {
	return err.Col
}

// Is reports whether target is a *ParseError of the same kind. This lets
// errors.Is match against the Err sentinels regardless of What and Hint.
func (err *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == err.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrNoFunctionDefined                = &ParseError{Kind: NoFunctionDefined}
	ErrUnableToParse                    = &ParseError{Kind: UnableToParse}
	ErrVariableDefinitionAndUseMismatch = &ParseError{Kind: VariableDefinitionAndUseMismatch}
	ErrUnknownVariable                  = &ParseError{Kind: UnknownVariable}
	ErrUnableToFind                     = &ParseError{Kind: UnableToFind}
	ErrInvalidTokenPosition             = &ParseError{Kind: InvalidTokenPosition}
	ErrDoubleDecimal                    = &ParseError{Kind: DoubleDecimal}
	ErrUnclosedParenthesis              = &ParseError{Kind: UnclosedParenthesis}
)

func perr(kind ErrorKind) error {
	return &ParseError{Kind: kind}
}

func notFound(what string) error {
	return &ParseError{Kind: UnableToFind, What: what}
}
