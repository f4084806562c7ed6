package fnplot

import (
	"math/big"
	"regexp"
	"strings"
)

// Definition is the text of a function definition split into its parts.
type Definition struct {
	// Name is the name of the function.
	Name string
	// Vars is the declared variables in order. Duplicates are kept.
	Vars []string
	// Expr is the expression text.
	Expr string
}

var (
	// definition is the strict grammar of a definition.
	definition = regexp.MustCompile(`^(?P<name>\w+)\((?P<vars>(?:[a-z]+,?)+)\)=(?P<expr>[a-z0-9^*/()+\-.]+)$`)
	// looksDefined matches anything shaped like a definition, complete or
	// not, with something after the =.
	looksDefined = regexp.MustCompile(`^\w+\(.*\)=.+$`)
)

// ParseDefinition splits a definition of the form name(a,b,...)=expression.
// Whitespace is ignored and the text is lowercased first. If the text does
// not resemble a definition at all, the error is NoFunctionDefined; if it
// resembles one but isn't valid, the error is UnableToParse.
func ParseDefinition(def string) (Definition, error) {
	def = clean(def)
	m := definition.FindStringSubmatch(def)
	if m == nil {
		if !looksDefined.MatchString(def) {
			return Definition{}, perr(NoFunctionDefined)
		}
		return Definition{}, perr(UnableToParse)
	}
	d := Definition{
		Name: m[definition.SubexpIndex("name")],
		Vars: strings.Split(m[definition.SubexpIndex("vars")], ","),
		Expr: m[definition.SubexpIndex("expr")],
	}
	// A trailing comma in the variable list leaves an empty name.
	if d.Vars[len(d.Vars)-1] == "" {
		d.Vars = d.Vars[:len(d.Vars)-1]
	}
	return d, nil
}

// Function is a compiled function definition. Its sampling state makes it
// unsafe for concurrent use; parse a Function per goroutine instead.
type Function struct {
	name string
	vars []string
	tree *Tree

	// x and step are the sampling cursor and increment.
	x, step float64
}

// Parse compiles a function definition. Every declared variable must be used
// in the expression.
func Parse(def string) (*Function, error) {
	d, err := ParseDefinition(def)
	if err != nil {
		return nil, err
	}
	return Compile(d)
}

// Compile tokenizes a split definition.
func Compile(d Definition) (*Function, error) {
	t, err := Tokenize(d.Expr, d.Vars)
	if err != nil {
		return nil, err
	}
	used := make(map[string]bool, len(d.Vars))
	for _, v := range t.Vars() {
		used[v] = true
	}
	for _, v := range d.Vars {
		if !used[v] {
			return nil, perr(VariableDefinitionAndUseMismatch)
		}
	}
	return &Function{
		name: d.Name,
		vars: append([]string(nil), d.Vars...),
		tree: t,
	}, nil
}

// Name returns the name of the function.
func (f *Function) Name() string {
	return f.name
}

// Vars returns the declared variables of the function.
func (f *Function) Vars() []string {
	return append([]string(nil), f.vars...)
}

// Tree returns the compiled expression.
func (f *Function) Tree() *Tree {
	return f.tree
}

// Eval evaluates the function with the given variable values.
func (f *Function) Eval(vars map[string]float64) (float64, error) {
	return f.tree.Eval(vars)
}

// EvalPrec evaluates the function with prec bits of precision.
func (f *Function) EvalPrec(vars map[string]float64, prec uint) (*big.Float, error) {
	return f.tree.EvalPrec(vars, prec)
}

// At evaluates the function with every declared variable set to x.
func (f *Function) At(x float64) (float64, error) {
	return f.tree.Eval(f.bind(x))
}

// bind creates a binding of every declared variable to x.
func (f *Function) bind(x float64) map[string]float64 {
	m := make(map[string]float64, len(f.vars))
	for _, v := range f.vars {
		m[v] = x
	}
	return m
}

// InternalRepresentation formats the function as a definition using its
// normalized expression. Parsing the result gives an equal Function.
func (f *Function) InternalRepresentation() string {
	return f.name + "(" + strings.Join(f.vars, ",") + ")=" + f.tree.src
}

func (f *Function) String() string {
	return f.InternalRepresentation()
}

// Equal reports whether f and g have the same name, declared variables and
// compiled expression. Sampling state is ignored.
func (f *Function) Equal(g *Function) bool {
	if f == nil || g == nil {
		return f == g
	}
	if f.name != g.name || len(f.vars) != len(g.vars) {
		return false
	}
	for i, v := range f.vars {
		if g.vars[i] != v {
			return false
		}
	}
	return f.tree.Equal(g.tree)
}
