package fnplot

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/log"
)

// Normalize rewrites an expression so that every level of precedence is an
// explicit parenthesized group. A left-to-right scan of the result that
// treats each group as one operand and applies each operator to the operands
// on either side of it gives the meaning of the original expression.
//
// The rewrites happen in this order:
//
// 	1.	Each power base^exp becomes (base^(exp)), where base and exp are each
// 		a number, a run of letters, or a group. Skipped if the expression
// 		has no + - * or /.
// 	2.	Each run of terms joined by * or / becomes one group. Skipped if the
// 		expression has no + or -.
// 	3.	Each term following a + or - sign becomes a group.
// 	4.	Parentheses around a lone integer are removed.
//
// Rewrites are not applied where the group they would add already exists, so
// Normalize(Normalize(s)) == Normalize(s). Normalize expects text without
// whitespace. Unbalanced parentheses are left for the tokenizer to report.
func Normalize(s string) string {
	s = groupPowers(s)
	log.LogVf("powers: %q", s)
	s = groupProducts(s)
	log.LogVf("products: %q", s)
	s = groupSums(s)
	log.LogVf("sums: %q", s)
	s = ungroupInts(s)
	log.LogVf("normalized: %q", s)
	return s
}

// groupPowers wraps each exponentiation in a group.
func groupPowers(s string) string {
	if !strings.ContainsAny(s, "+-*/") {
		return s
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '^' {
			continue
		}
		start := baseStart(s, i)
		end := exponentEnd(s, i+1)
		if start < 0 || end < 0 || enclosed(s, start, end) {
			continue
		}
		exp := s[i+1 : end]
		if !isGroup(exp) {
			exp = "(" + exp + ")"
		}
		s = s[:start] + "(" + s[start:i] + "^" + exp + s[end:]
		s = s[:i+2+len(exp)] + ")" + s[i+2+len(exp):]
		// Continue from the new position of the ^ so that powers inside the
		// exponent are grouped too.
		i++
	}
	return s
}

// baseStart returns the index at which the base of the power operator at
// s[i] begins, or -1 if there is no base.
func baseStart(s string, i int) int {
	if i == 0 {
		return -1
	}
	switch c := s[i-1]; {
	case c == ')':
		return openIndex(s, i-1)
	case isDigitByte(c) || c == '.':
		j := i - 1
		for j > 0 && (isDigitByte(s[j-1]) || s[j-1] == '.') {
			j--
		}
		return j
	}
	j := i
	for j > 0 {
		r, sz := utf8.DecodeLastRuneInString(s[:j])
		if !unicode.IsLetter(r) {
			break
		}
		j -= sz
	}
	if j == i {
		return -1
	}
	return j
}

// exponentEnd returns the index just past the exponent beginning at s[k], or
// -1 if there is no exponent. An exponent is a group, or a number followed
// by letters.
func exponentEnd(s string, k int) int {
	if k >= len(s) {
		return -1
	}
	if s[k] == '(' {
		j := closeIndex(s, k)
		if j < 0 {
			return -1
		}
		return j + 1
	}
	j := k
	for j < len(s) && (isDigitByte(s[j]) || s[j] == '.') {
		j++
	}
	for j < len(s) {
		r, sz := utf8.DecodeRuneInString(s[j:])
		if !unicode.IsLetter(r) {
			break
		}
		j += sz
	}
	if j == k {
		return -1
	}
	return j
}

// groupProducts wraps each run of multiplications and divisions in a group.
func groupProducts(s string) string {
	if !strings.ContainsAny(s, "+-") {
		return s
	}
	return products(s)
}

// products groups the runs of s and of every group within it. A run that is
// all of s is not grouped again.
func products(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '+' || s[i] == '-' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := termEnd(s, i)
		run := s[i:j]
		inner := rewriteGroups(run, products)
		if j-i < len(s) && hasTopLevel(run, "*/") {
			inner = "(" + inner + ")"
		}
		b.WriteString(inner)
		i = j
	}
	return b.String()
}

// groupSums wraps each term following a sign in a group.
func groupSums(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		var sign byte
		if s[i] == '+' || s[i] == '-' {
			sign = s[i]
			b.WriteByte(sign)
			i++
		}
		j := termEnd(s, i)
		term := s[i:j]
		inner := rewriteGroups(term, groupSums)
		if sign != 0 && term != "" && !isGroup(term) {
			inner = "(" + inner + ")"
		}
		b.WriteString(inner)
		i = j
	}
	return b.String()
}

var intgroup = regexp.MustCompile(`\((\d+)\)`)

// ungroupInts removes parentheses around integers, unless that would join
// the integer to an adjacent number.
func ungroupInts(s string) string {
	for {
		t := ungroupIntsOnce(s)
		if t == s {
			return s
		}
		s = t
	}
}

// ungroupIntsOnce removes the parentheses of the first integer group that
// can lose them. Only one group goes per call, since removing one can make
// its neighbor adjacent to a number.
func ungroupIntsOnce(s string) string {
	for _, loc := range intgroup.FindAllStringSubmatchIndex(s, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && (isDigitByte(s[start-1]) || s[start-1] == '.') ||
			end < len(s) && (isDigitByte(s[end]) || s[end] == '.') {
			continue
		}
		return s[:start] + s[loc[2]:loc[3]] + s[end:]
	}
	return s
}

// termEnd returns the index of the first + or - at or after s[i] that is not
// inside a group, or len(s). An unclosed group extends to the end.
func termEnd(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case '+', '-':
			return i
		case '(':
			j := closeIndex(s, i)
			if j < 0 {
				return len(s)
			}
			i = j + 1
		default:
			i++
		}
	}
	return i
}

// rewriteGroups applies f to the contents of each top-level group in s.
func rewriteGroups(s string, f func(string) string) string {
	if !strings.Contains(s, "(") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '(' {
			b.WriteByte(s[i])
			continue
		}
		j := closeIndex(s, i)
		if j < 0 {
			b.WriteString(s[i:])
			break
		}
		b.WriteByte('(')
		b.WriteString(f(s[i+1 : j]))
		b.WriteByte(')')
		i = j
	}
	return b.String()
}

// hasTopLevel reports whether s contains any of chars outside of groups.
func hasTopLevel(s, chars string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && strings.IndexByte(chars, c) >= 0:
			return true
		}
	}
	return false
}

// isGroup reports whether s is exactly one parenthesized group.
func isGroup(s string) bool {
	return s != "" && s[0] == '(' && closeIndex(s, 0) == len(s)-1
}

// enclosed reports whether s[start:end] is exactly the contents of a group.
func enclosed(s string, start, end int) bool {
	return start > 0 && end < len(s) && s[start-1] == '(' && closeIndex(s, start-1) == end
}

// closeIndex returns the index of the parenthesis closing the one at s[i], or
// -1 if it is unclosed.
func closeIndex(s string, i int) int {
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// openIndex returns the index of the parenthesis opening the one at s[i], or
// -1 if there is none.
func openIndex(s string, i int) int {
	depth := 0
	for j := i; j >= 0; j-- {
		switch s[j] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

func isDigitByte(c byte) bool {
	return '0' <= c && c <= '9'
}
