package fnplot

import (
	"sort"
	"strings"
	"unicode"

	"fortio.org/log"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tokenize builds the token tree of an expression. Whitespace is removed and
// the text is lowercased and normalized before scanning. vars lists the
// declared variable names, which must be lowercase; any run of letters that
// is not one of them, other than a call to the built-in test(a,b), is an
// error.
func Tokenize(expr string, vars []string) (*Tree, error) {
	return tokenize(Normalize(clean(expr)), vars, 0)
}

// tokenize builds the tree of already normalized text. off is the number of
// runes before src in the full expression, for error columns.
func tokenize(src string, vars []string, off int) (*Tree, error) {
	log.LogVf("tokenize %q", src)
	t := &Tree{src: src}
	s := scanner{src: src, off: off}
	for {
		r, ok := s.next()
		if !ok {
			return t, nil
		}
		switch {
		case r == '(':
			start := s.pos
			g, err := s.scanGroup()
			if err != nil {
				return nil, err
			}
			sub, err := tokenize(g, vars, s.col(start)-1)
			if err != nil {
				return nil, err
			}
			t.push(item{kind: itemNested, sub: sub})
		case isDigit(r):
			s.back()
			x, lit, err := s.scanNum()
			if err != nil {
				return nil, err
			}
			t.push(item{kind: itemNum, num: x, lit: lit})
		case strings.ContainsRune(Operators, r):
			s.back()
			op, _ := s.scanOp()
			t.push(item{kind: itemOp, op: op})
		case unicode.IsLetter(r):
			s.back()
			if op, args, ok := s.scanTest(); ok {
				t.push(item{kind: itemOp, op: op, args: args})
				continue
			}
			name, err := s.scanVar(vars)
			if err != nil {
				return nil, err
			}
			t.push(item{kind: itemVar, name: name})
		default:
			log.LogVf("unexpected %q in %q", r, src)
			s.back()
			return nil, s.errAt(perr(UnableToParse), s.pos)
		}
	}
}

// clean removes whitespace from s and lowercases it.
func clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return cases.Lower(language.Und).String(s)
}

// unknown creates an UnknownVariable error for name, with a hint naming the
// closest declared variable if there is one.
func unknown(name string, vars []string) error {
	err := &ParseError{Kind: UnknownVariable, What: name}
	if name == "" || len(vars) == 0 {
		return err
	}
	ranks := fuzzy.RankFindFold(name, vars)
	if len(ranks) == 0 {
		// Try the other direction, for names with extra letters.
		for _, v := range vars {
			if fuzzy.MatchFold(v, name) {
				ranks = append(ranks, fuzzy.Rank{Source: v, Target: v, Distance: len(name) - len(v)})
			}
		}
	}
	if len(ranks) > 0 {
		sort.Sort(ranks)
		err.Hint = ranks[0].Target
	}
	return err
}
