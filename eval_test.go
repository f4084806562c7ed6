package fnplot_test

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/zephyrtronium/fnplot"
)

func TestEval(t *testing.T) {
	type vc struct {
		vars map[string]float64
		r    float64
	}
	cases := []struct {
		name string
		src  string
		decl []string
		r    []vc
	}{
		{"num", "1", nil, []vc{{nil, 1}}},
		{"var", "x", []string{"x"}, []vc{
			{map[string]float64{"x": 4}, 4},
			{map[string]float64{"x": -5}, -5},
		}},
		{"sum", "1+2-54", nil, []vc{{nil, -51}}},
		{"sub-chain", "1-2-3", nil, []vc{{nil, -4}}},
		{"mul", "4*5*6", nil, []vc{{nil, 4 * 5 * 6}}},
		{"div", "8/2/2", nil, []vc{{nil, 2}}},
		{"dec", "1.5*2", nil, []vc{{nil, 3}}},
		{"div-dec", "10/4", nil, []vc{{nil, 2.5}}},
		{"prec-mul", "2*3+4*5", nil, []vc{{nil, 26}}},
		{"prec-div", "1+8/2/2", nil, []vc{{nil, 3}}},
		{"prec-pow", "1-2*3^2", nil, []vc{{nil, -17}}},
		{"pow", "2^3", nil, []vc{{nil, 8}}},
		{"pow-sum", "2^3+1", nil, []vc{{nil, 9}}},
		{"pow-mul", "2*3^2", nil, []vc{{nil, 18}}},
		{"pow-left", "2^3^2+1", nil, []vc{{nil, 65}}},
		{"two-vars", "2t+5b", []string{"t", "b"}, []vc{
			{map[string]float64{"t": 1, "b": 1}, 7},
			{map[string]float64{"t": 2, "b": -1}, -1},
		}},
		{"group", "(5t^3+5)", []string{"t"}, []vc{
			{map[string]float64{"t": 1}, 10},
			{map[string]float64{"t": 2}, 45},
		}},
		{"juxt-num-group", "2(3)+1", nil, []vc{{nil, 7}}},
		{"juxt-group", "3(x+1)", []string{"x"}, []vc{{map[string]float64{"x": 2}, 9}}},
		{"sub-juxt", "1-2t", []string{"t"}, []vc{{map[string]float64{"t": 3}, -5}}},
		{"poly", "2x^2+3x+1", []string{"x"}, []vc{
			{map[string]float64{"x": 0}, 1},
			{map[string]float64{"x": 2}, 15},
			{map[string]float64{"x": -1}, 0},
		}},
		{"pow-group", "(x+1)^2", []string{"x"}, []vc{{map[string]float64{"x": 2}, 9}}},
		{"pow-var", "2^x-1", []string{"x"}, []vc{{map[string]float64{"x": 3}, 7}}},
		{"long-name", "2time", []string{"time"}, []vc{{map[string]float64{"time": 4}, 8}}},
		{"builtin", "4test(3,4)5", nil, []vc{{nil, 6}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, err := fnplot.Tokenize(c.src, c.decl)
			if err != nil {
				t.Fatal(c.src, "failed to tokenize:", err)
			}
			for _, v := range c.r {
				r, err := tr.Eval(v.vars)
				if err != nil {
					t.Errorf("evaluating %q with %v: %v", c.src, v.vars, err)
					continue
				}
				if r != v.r {
					t.Errorf("evaluating %q with %v: want %g, got %g", c.src, v.vars, v.r, r)
				}
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		decl []string
		vars map[string]float64
		err  error
	}{
		{"trailing-op", "2+", nil, nil, fnplot.ErrInvalidTokenPosition},
		{"double-op", "2+*3", nil, nil, fnplot.ErrInvalidTokenPosition},
		{"leading-op", "*2", nil, nil, fnplot.ErrInvalidTokenPosition},
		{"adjacent-ops", "2*/3", nil, nil, fnplot.ErrInvalidTokenPosition},
		{"neg", "-x", []string{"x"}, map[string]float64{"x": 1}, fnplot.ErrInvalidTokenPosition},
		{"empty", "", nil, nil, fnplot.ErrUnableToParse},
		{"empty-group", "1+()", nil, nil, fnplot.ErrUnableToParse},
		{"unbound", "x+1", []string{"x"}, nil, fnplot.ErrUnknownVariable},
		{"unbound-nested", "1+2(y)", []string{"y"}, map[string]float64{"x": 1}, fnplot.ErrUnknownVariable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, err := fnplot.Tokenize(c.src, c.decl)
			if err != nil {
				t.Fatalf("%q failed to tokenize: %v", c.src, err)
			}
			r, err := tr.Eval(c.vars)
			if err == nil {
				t.Fatalf("evaluating %q gave %g with no error", c.src, r)
			}
			if !errors.Is(err, c.err) {
				t.Errorf("evaluating %q: want %v, got %v", c.src, c.err, err)
			}
		})
	}
}

func TestEvalIdempotent(t *testing.T) {
	tr, err := fnplot.Tokenize("2x^2+3(x-1)", []string{"x"})
	if err != nil {
		t.Fatal(err)
	}
	vars := map[string]float64{"x": 1.5}
	a, err := tr.Eval(vars)
	if err != nil {
		t.Fatal(err)
	}
	b, err := tr.Eval(vars)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("evaluating twice gave %g then %g", a, b)
	}
	if len(vars) != 1 || vars["x"] != 1.5 {
		t.Errorf("evaluation modified variables: %v", vars)
	}
}

func TestEvalString(t *testing.T) {
	r, err := fnplot.EvalString("x^2 + 2 x y + y^2", map[string]float64{"x": 1, "y": 2})
	if err != nil {
		t.Fatal(err)
	}
	if r != 9 {
		t.Errorf("want 9, got %g", r)
	}
}

func TestEvalPrec(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars map[string]float64
		r    float64
	}{
		{"sum", "1+2-54", nil, -51},
		{"poly", "2x^2+3x+1", map[string]float64{"x": 2}, 15},
		{"sqrt", "2^0.5", nil, math.Sqrt2},
		{"third", "1/3", nil, 1.0 / 3.0},
		{"neg-int-pow", "(0-2)^3", nil, -8},
		{"neg-even-pow", "(0-2)^2", nil, 4},
		{"zero-pow", "0^0", nil, 1},
		{"builtin", "4test(3,4)5", nil, 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var decl []string
			for k := range c.vars {
				decl = append(decl, k)
			}
			tr, err := fnplot.Tokenize(c.src, decl)
			if err != nil {
				t.Fatalf("%q failed to tokenize: %v", c.src, err)
			}
			r, err := tr.EvalPrec(c.vars, 128)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if r.Prec() != 128 {
				t.Errorf("want precision 128, got %d", r.Prec())
			}
			if f, _ := r.Float64(); math.Abs(f-c.r) > 1e-15 {
				t.Errorf("evaluating %q: want %g, got %g", c.src, c.r, f)
			}
		})
	}
}

func TestEvalPrecLarge(t *testing.T) {
	e400, _, err := big.ParseFloat("1e400", 10, 128, big.ToNearestEven)
	if err != nil {
		t.Fatal(err)
	}
	// The fold is left to right, so this is ((9^9)^9)^9 = 9^729.
	n := new(big.Int).Exp(big.NewInt(9), big.NewInt(729), nil)
	cases := []struct {
		name string
		src  string
		want *big.Float
	}{
		{"pow10", "10^400", e400},
		{"pow-chain", "9^9^9^9", new(big.Float).SetPrec(128).SetInt(n)},
		{"pow-group", "(2(5))^400", e400},
	}
	tol := big.NewFloat(0x1p-100)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, err := fnplot.Tokenize(c.src, nil)
			if err != nil {
				t.Fatalf("%q failed to tokenize: %v", c.src, err)
			}
			r, err := tr.EvalPrec(nil, 128)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if got, want := r.MantExp(nil), c.want.MantExp(nil); got != want {
				t.Errorf("evaluating %q: want exponent %d, got %d (%g)", c.src, want, got, r)
			}
			d := new(big.Float).Sub(r, c.want)
			d.Quo(d, c.want).Abs(d)
			if d.Cmp(tol) > 0 {
				t.Errorf("evaluating %q: want %g, got %g", c.src, c.want, r)
			}
		})
	}
}

func TestEvalPrecLiterals(t *testing.T) {
	lit := func(s string) *big.Float {
		x, _, err := big.ParseFloat(s, 10, 128, big.ToNearestEven)
		if err != nil {
			t.Fatal(err)
		}
		return x
	}
	sum := new(big.Float).SetPrec(128).Add(lit("0.1"), lit("0.2"))
	prod := new(big.Float).SetPrec(128).Mul(lit("0.1"), lit("0.3"))
	prod.Quo(prod, big.NewFloat(2))
	cases := []struct {
		name string
		src  string
		want *big.Float
	}{
		{"tenth", "0.1", lit("0.1")},
		{"nested", "((0.1))", lit("0.1")},
		{"sum", "0.1+0.2", sum},
		{"builtin", "1test(0.1,0.3)1", prod},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, err := fnplot.Tokenize(c.src, nil)
			if err != nil {
				t.Fatalf("%q failed to tokenize: %v", c.src, err)
			}
			r, err := tr.EvalPrec(nil, 128)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if r.Cmp(c.want) != 0 {
				t.Errorf("evaluating %q: want %s, got %s", c.src, c.want.Text('g', 40), r.Text('g', 40))
			}
		})
	}
	r, err := fnplot.EvalString("0.1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if lit("0.1").Cmp(new(big.Float).SetPrec(128).SetFloat64(r)) == 0 {
		t.Error("0.1 is exact in float64")
	}
}

func TestEvalPrecErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"div-zero", "0/0", nil},
		{"pow-neg", "(0-1)^0.5", nil},
		{"trailing-op", "2+", fnplot.ErrInvalidTokenPosition},
		{"empty", "", fnplot.ErrUnableToParse},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, err := fnplot.Tokenize(c.src, nil)
			if err != nil {
				t.Fatalf("%q failed to tokenize: %v", c.src, err)
			}
			r, err := tr.EvalPrec(nil, 64)
			if r != nil {
				t.Errorf("evaluating %q gave non-nil result %g", c.src, r)
			}
			if err == nil {
				t.Fatalf("evaluating %q gave no error", c.src)
			}
			if c.err == nil {
				if _, ok := err.(*fnplot.DomainError); !ok {
					t.Errorf("%#v is not *fnplot.DomainError", err)
				}
				return
			}
			if !errors.Is(err, c.err) {
				t.Errorf("evaluating %q: want %v, got %v", c.src, c.err, err)
			}
		})
	}
}

func TestApply(t *testing.T) {
	cases := []struct {
		op   fnplot.Op
		l, r float64
		want float64
	}{
		{fnplot.Op{Kind: fnplot.OpAdd}, 2, 3, 5},
		{fnplot.Op{Kind: fnplot.OpSub}, 2, 3, -1},
		{fnplot.Op{Kind: fnplot.OpMul}, 2, 3, 6},
		{fnplot.Op{Kind: fnplot.OpDiv}, 3, 2, 1.5},
		{fnplot.Op{Kind: fnplot.OpPow}, 2, 3, 8},
		{fnplot.Op{Kind: fnplot.OpTest, A: 3, B: 5}, 100, 100, 7.5},
	}
	for _, c := range cases {
		if got := fnplot.Apply(c.op, c.l, c.r); got != c.want {
			t.Errorf("%g %v %g: want %g, got %g", c.l, c.op, c.r, c.want, got)
		}
	}
}

func BenchmarkEval(b *testing.B) {
	vars := map[string]float64{
		"x": 2,
		"y": 3,
		"z": 4,
	}
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		tr, err := fnplot.Tokenize("2+3+4", nil)
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			tr.Eval(nil)
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		tr, err := fnplot.Tokenize("x^2+y*z-(x+y)z", []string{"x", "y", "z"})
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			tr.Eval(vars)
		}
	})
}

func ExampleTree_Eval() {
	tr, _ := fnplot.Tokenize("x^3/2 - x", []string{"x"})
	fmt.Println(tr.Source())
	for i := 0; i < 4; i++ {
		x := float64(i)
		y, _ := tr.Eval(map[string]float64{"x": x})
		fmt.Printf("x = %g   y = %g\n", x, y)
	}

	// Output:
	// ((x^3)/2)-(x)
	// x = 0   y = 0
	// x = 1   y = -0.5
	// x = 2   y = 2
	// x = 3   y = 10.5
}
