package fnplot

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// OpKind is the kind of a binary operator.
type OpKind int8

const (
	OpNone OpKind = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	// OpTest is the built-in test(a, b). It ignores its operands and
	// evaluates to a*b/2.
	OpTest
)

// Op is an operator in a token tree. A and B are the arguments of OpTest and
// are zero for every other kind.
type Op struct {
	Kind OpKind
	A, B float64
}

// Operators contains the single-rune operator glyphs.
const Operators = "+-*/^"

// opkinds maps each rune of Operators to its kind.
var opkinds = [...]OpKind{OpAdd, OpSub, OpMul, OpDiv, OpPow}

func (op Op) String() string {
	switch op.Kind {
	case OpAdd, OpSub, OpMul, OpDiv, OpPow:
		return Operators[op.Kind-OpAdd : op.Kind-OpAdd+1]
	case OpTest:
		return "test(" + ftoa(op.A) + "," + ftoa(op.B) + ")"
	default:
		return "op" + strconv.Itoa(int(op.Kind))
	}
}

// Apply computes lhs op rhs.
func Apply(op Op, lhs, rhs float64) float64 {
	switch op.Kind {
	case OpAdd:
		return lhs + rhs
	case OpSub:
		return lhs - rhs
	case OpMul:
		return lhs * rhs
	case OpDiv:
		return lhs / rhs
	case OpPow:
		return math.Pow(lhs, rhs)
	case OpTest:
		return op.A * op.B / 2
	default:
		panic("fnplot: invalid operator kind " + strconv.Itoa(int(op.Kind)))
	}
}

// applyBig computes l op r into l for every kind but OpTest, which needs its
// argument text and goes through testBig instead. Panics with big.ErrNaN for
// results that would be NaN; evalBig recovers those.
func applyBig(op Op, l, r *big.Float) error {
	switch op.Kind {
	case OpAdd:
		l.Add(l, r)
	case OpSub:
		l.Sub(l, r)
	case OpMul:
		l.Mul(l, r)
	case OpDiv:
		// Guard against invalid divisions, 0/0 or inf/inf.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return &DomainError{X: new(big.Float).Copy(r), Func: "/"}
		}
		l.Quo(l, r)
	case OpPow:
		return powBig(l, r)
	default:
		panic("fnplot: invalid operator kind " + strconv.Itoa(int(op.Kind)))
	}
	return nil
}

// testBig sets l to a*b/2, with a and b read from the literals of a call to
// test(a,b) at the precision of l.
func testBig(l *big.Float, args [2]string) error {
	a, err := parseLit(args[0], l.Prec())
	if err != nil {
		return err
	}
	b, err := parseLit(args[1], l.Prec())
	if err != nil {
		return err
	}
	l.Mul(a, b)
	l.Quo(l, big.NewFloat(2))
	return nil
}

// parseLit reads a number literal with prec bits of precision.
func parseLit(lit string, prec uint) (*big.Float, error) {
	x, _, err := new(big.Float).SetPrec(prec).Parse(lit, 10)
	if err != nil {
		return nil, &ParseError{Kind: UnableToParse, What: lit}
	}
	return x, nil
}

// powBig sets l to l^r.
func powBig(l, r *big.Float) error {
	switch {
	case l.Sign() == 0:
		switch r.Sign() {
		case 0:
			l.SetInt64(1)
		case -1:
			l.SetInf(false)
		}
	case r.Sign() == 0:
		l.SetInt64(1)
	case l.Signbit():
		// A negative base has a real power only for integer exponents.
		if !r.IsInt() {
			return &DomainError{X: new(big.Float).Copy(l), Func: "^"}
		}
		i, _ := r.Int(nil)
		l.Neg(l)
		if err := powBig(l, r); err != nil {
			return err
		}
		if i.Bit(0) == 1 {
			l.Neg(l)
		}
	default:
		// Pow may return a value other than its first argument.
		l.Set(bigfloat.Pow(new(big.Float).SetPrec(l.Prec()), l, r))
	}
	return nil
}

// DomainError is an error returned when an operator is applied to operands
// outside its domain during arbitrary-precision evaluation.
type DomainError struct {
	// X is the out-of-domain operand, if known.
	X *big.Float
	// Func is the operator.
	Func string
}

func (err *DomainError) Error() string {
	r := "outside domain"
	if err.X != nil {
		r = err.X.String() + " " + r
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
