package fnplot

import (
	"errors"
	"math/big"
	"sort"
)

// Eval evaluates the tree with the given variable values. Items are folded
// left to right into one value: an operand following another operand
// multiplies into it, and an operator combines the value so far with the
// single item after it. vars is not modified.
func (t *Tree) Eval(vars map[string]float64) (float64, error) {
	var acc float64
	var set bool
	for i := 0; i < len(t.items); i++ {
		it := t.items[i]
		if it.kind != itemOp {
			v, err := it.value(vars)
			if err != nil {
				return 0, err
			}
			if set {
				acc *= v
			} else {
				acc, set = v, true
			}
			continue
		}
		if !set || i+1 >= len(t.items) || t.items[i+1].kind == itemOp {
			return 0, perr(InvalidTokenPosition)
		}
		i++
		v, err := t.items[i].value(vars)
		if err != nil {
			return 0, err
		}
		acc = Apply(it.op, acc, v)
	}
	if !set {
		return 0, perr(UnableToParse)
	}
	return acc, nil
}

// value resolves an operand.
func (it *item) value(vars map[string]float64) (float64, error) {
	switch it.kind {
	case itemNum:
		return it.num, nil
	case itemVar:
		v, ok := vars[it.name]
		if !ok {
			return 0, &ParseError{Kind: UnknownVariable, What: it.name}
		}
		return v, nil
	case itemNested:
		return it.sub.Eval(vars)
	default:
		panic("fnplot: value of invalid item")
	}
}

// EvalPrec evaluates the tree like Eval, but computes with prec bits of
// precision. Number literals are read again from their text at that
// precision; variable values are converted exactly from float64. Operations
// whose results would be NaN give a *DomainError.
func (t *Tree) EvalPrec(vars map[string]float64, prec uint) (r *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		var nan big.ErrNaN
		if e, ok := p.(error); ok && errors.As(e, &nan) {
			r, err = nil, &DomainError{Func: nan.Error()}
			return
		}
		panic(p)
	}()
	return t.evalBig(vars, prec)
}

func (t *Tree) evalBig(vars map[string]float64, prec uint) (*big.Float, error) {
	var acc *big.Float
	for i := 0; i < len(t.items); i++ {
		it := &t.items[i]
		if it.kind != itemOp {
			v, err := it.bigValue(vars, prec)
			if err != nil {
				return nil, err
			}
			if acc != nil {
				acc.Mul(acc, v)
			} else {
				acc = v
			}
			continue
		}
		if acc == nil || i+1 >= len(t.items) || t.items[i+1].kind == itemOp {
			return nil, perr(InvalidTokenPosition)
		}
		i++
		v, err := t.items[i].bigValue(vars, prec)
		if err != nil {
			return nil, err
		}
		if it.op.Kind == OpTest {
			err = testBig(acc, it.args)
		} else {
			err = applyBig(it.op, acc, v)
		}
		if err != nil {
			return nil, err
		}
	}
	if acc == nil {
		return nil, perr(UnableToParse)
	}
	return acc, nil
}

// bigValue resolves an operand to a new value of the given precision.
func (it *item) bigValue(vars map[string]float64, prec uint) (*big.Float, error) {
	switch it.kind {
	case itemNum:
		if it.lit == "" {
			return new(big.Float).SetPrec(prec).SetFloat64(it.num), nil
		}
		return parseLit(it.lit, prec)
	case itemVar:
		v, ok := vars[it.name]
		if !ok {
			return nil, &ParseError{Kind: UnknownVariable, What: it.name}
		}
		return new(big.Float).SetPrec(prec).SetFloat64(v), nil
	case itemNested:
		return it.sub.evalBig(vars, prec)
	default:
		panic("fnplot: value of invalid item")
	}
}

// EvalString is a shortcut to tokenize and evaluate an expression. The
// declared variables are the keys of vars.
func EvalString(expr string, vars map[string]float64) (float64, error) {
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	t, err := Tokenize(expr, names)
	if err != nil {
		return 0, err
	}
	return t.Eval(vars)
}
