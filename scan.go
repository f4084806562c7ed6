package fnplot

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// scanner reads runes from normalized expression text.
type scanner struct {
	src string
	pos int
	// off is the number of runes in the full expression before src.
	off int
	// last is the width of the last rune read, for back.
	last int
	buf  strings.Builder
}

// next reads the next rune. ok is false at the end of the input.
func (s *scanner) next() (r rune, ok bool) {
	if s.pos >= len(s.src) {
		s.last = 0
		return 0, false
	}
	r, sz := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += sz
	s.last = sz
	return r, true
}

// back unreads the last rune read. Panics if there is none.
func (s *scanner) back() {
	if s.last == 0 {
		panic("fnplot: back without next")
	}
	s.pos -= s.last
	s.last = 0
}

// rest returns the unread input.
func (s *scanner) rest() string {
	return s.src[s.pos:]
}

// col gives the column of the byte at src[at] in the full expression.
func (s *scanner) col(at int) int {
	return s.off + utf8.RuneCountInString(s.src[:at]) + 1
}

// errAt attaches the column of src[at] to a *ParseError without one.
func (s *scanner) errAt(err error, at int) error {
	if e, ok := err.(*ParseError); ok && e.Col == 0 {
		e.Col = s.col(at)
	}
	return err
}

// scanNum scans a maximal run of digits with at most one decimal point. It
// returns the literal text along with its value.
func (s *scanner) scanNum() (float64, string, error) {
	defer s.buf.Reset()
	start := s.pos
	var dot bool
	for {
		r, ok := s.next()
		if !ok {
			break
		}
		if r == '.' {
			if dot {
				return 0, "", s.errAt(perr(DoubleDecimal), start)
			}
			dot = true
		} else if !isDigit(r) {
			s.back()
			break
		}
		s.buf.WriteRune(r)
	}
	lit := s.buf.String()
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// Only a lone "." can get here.
		return 0, "", s.errAt(perr(UnableToParse), start)
	}
	return f, lit, nil
}

// scanOp scans an operator glyph. ok is false if the next rune is not an
// operator, in which case nothing is consumed.
func (s *scanner) scanOp() (op Op, ok bool) {
	r, ok := s.next()
	if !ok {
		return Op{}, false
	}
	k := strings.IndexRune(Operators, r)
	if k < 0 {
		s.back()
		return Op{}, false
	}
	return Op{Kind: opkinds[k]}, true
}

var testcall = regexp.MustCompile(`^test\((\d+(?:\.\d+)?),(\d+(?:\.\d+)?)\)`)

// scanTest scans a call to the built-in test(a,b) and returns the argument
// literals along with the operator. ok is false if the remaining input
// doesn't start with one, in which case nothing is consumed.
func (s *scanner) scanTest() (op Op, args [2]string, ok bool) {
	m := testcall.FindStringSubmatch(s.rest())
	if m == nil {
		return Op{}, args, false
	}
	// The pattern only admits valid numbers.
	a, _ := strconv.ParseFloat(m[1], 64)
	b, _ := strconv.ParseFloat(m[2], 64)
	s.pos += len(m[0])
	s.last = 0
	return Op{Kind: OpTest, A: a, B: b}, [2]string{m[1], m[2]}, true
}

// scanGroup scans the text up to the parenthesis closing one that has just
// been read, and returns the text between them.
func (s *scanner) scanGroup() (string, error) {
	start := s.pos
	depth := 1
	for {
		r, ok := s.next()
		if !ok {
			return "", s.errAt(perr(UnclosedParenthesis), start-1)
		}
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s.src[start : s.pos-1], nil
			}
		}
	}
}

// scanVar scans a declared variable name. The name grows one letter at a
// time for as long as it is a prefix of some declared variable and stops as
// soon as it equals one.
func (s *scanner) scanVar(vars []string) (string, error) {
	defer s.buf.Reset()
	start := s.pos
	for {
		r, ok := s.next()
		if !ok {
			return "", s.errAt(notFound("variable "+s.buf.String()), start)
		}
		if !unicode.IsLetter(r) {
			s.back()
			return "", s.errAt(unknown(s.buf.String(), vars), start)
		}
		s.buf.WriteRune(r)
		name := s.buf.String()
		if !hasPrefix(vars, name) {
			// Report the whole run of letters.
			for {
				r, ok := s.next()
				if !ok {
					break
				}
				if !unicode.IsLetter(r) {
					s.back()
					break
				}
				s.buf.WriteRune(r)
			}
			return "", s.errAt(unknown(s.buf.String(), vars), start)
		}
		for _, v := range vars {
			if v == name {
				return name, nil
			}
		}
	}
}

func hasPrefix(vars []string, p string) bool {
	for _, v := range vars {
		if strings.HasPrefix(v, p) {
			return true
		}
	}
	return false
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
