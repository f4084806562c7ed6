package fnplot

import (
	"strings"
)

// Tree is a tokenized expression: an ordered sequence of numbers,
// variables, operators and nested trees, one nested tree per parenthesized
// group. A Tree is not modified by evaluation.
type Tree struct {
	items []item
	// src is the normalized text the tree was built from.
	src string
}

// item is one element of a Tree.
type item struct {
	kind itemKind

	name string
	num  float64
	// lit is the text of a number, parsed again at the evaluation
	// precision by EvalPrec.
	lit string
	op  Op
	// args holds the argument literals of an OpTest.
	args [2]string
	sub  *Tree
}

type itemKind int8

const (
	itemNone itemKind = iota

	itemVar    // lookup(name)
	itemNum    // num
	itemOp     // op applied to the accumulator and the next item
	itemNested // sub evaluated to one value
)

func (t *Tree) push(it item) {
	t.items = append(t.items, it)
}

// Len returns the number of top-level items in the tree.
func (t *Tree) Len() int {
	return len(t.items)
}

// Source returns the normalized expression text the tree was built from.
func (t *Tree) Source() string {
	return t.src
}

// Vars returns the distinct variable names used anywhere in the tree, in
// order of first use.
func (t *Tree) Vars() []string {
	var r []string
	seen := make(map[string]bool)
	t.vars(&r, seen)
	return r
}

func (t *Tree) vars(r *[]string, seen map[string]bool) {
	for _, it := range t.items {
		switch it.kind {
		case itemVar:
			if !seen[it.name] {
				seen[it.name] = true
				*r = append(*r, it.name)
			}
		case itemNested:
			it.sub.vars(r, seen)
		}
	}
}

// Equal reports whether t and u hold the same items. The source text is
// not compared.
func (t *Tree) Equal(u *Tree) bool {
	if t == nil || u == nil {
		return t == u
	}
	if len(t.items) != len(u.items) {
		return false
	}
	for i, a := range t.items {
		b := u.items[i]
		if a.kind != b.kind {
			return false
		}
		switch a.kind {
		case itemVar:
			if a.name != b.name {
				return false
			}
		case itemNum:
			if a.num != b.num {
				return false
			}
		case itemOp:
			if a.op != b.op {
				return false
			}
		case itemNested:
			if !a.sub.Equal(b.sub) {
				return false
			}
		}
	}
	return true
}

// String formats the tree with every nested tree bracketed, alternating
// round and square brackets by depth, and items separated by spaces.
func (t *Tree) String() string {
	var b strings.Builder
	t.fmt(&b, false)
	return b.String()
}

func (t *Tree) fmt(b *strings.Builder, square bool) {
	for i, it := range t.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch it.kind {
		case itemVar:
			b.WriteString(it.name)
		case itemNum:
			b.WriteString(ftoa(it.num))
		case itemOp:
			b.WriteString(it.op.String())
		case itemNested:
			var l, r byte = '(', ')'
			if square {
				l, r = '[', ']'
			}
			b.WriteByte(l)
			it.sub.fmt(b, !square)
			b.WriteByte(r)
		default:
			// Invalid items use invalid characters.
			b.WriteString("$#$")
		}
	}
}
