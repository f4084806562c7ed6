// Package fnplot parses single-line function definitions and samples them
// for plotting.
//
// A definition looks like "f(t,b)=2t+5b": a name, the declared variables,
// and an expression over them. Precedence is recovered by rewriting the
// expression text so that every binding level is an explicit parenthesized
// group (see Normalize). The tokenizer then turns the normalized text into a
// tree of numbers, variables, operators and nested groups, and evaluation is
// a strict left-to-right fold over that tree. Terms written next to each
// other multiply, so "2t", "2 t" and "2*t" are the same.
//
// Variable names are only recognized if they are declared on the function.
// Names are case-insensitive.
package fnplot
