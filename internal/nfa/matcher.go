package nfa

import (
	"strings"
	"unicode/utf8"
)

// Matcher consumes input at a single position. Match returns the number of
// bytes consumed starting at pos, 0 when there is no match.
type Matcher interface {
	Match(pos int, input string) int
	String() string
}

// LiteralMatcher matches its text exactly.
type LiteralMatcher struct {
	Text string
}

func (m LiteralMatcher) Match(pos int, input string) int {
	if m.Text == "" || pos > len(input) {
		return 0
	}
	if strings.HasPrefix(input[pos:], m.Text) {
		return len(m.Text)
	}
	return 0
}

func (m LiteralMatcher) String() string { return m.Text }

// RangeMatcher greedily consumes the longest run of code points within
// [Low, High]. Only the first and last character of the declared range text
// are used as bounds, so "a-zA" yields ['a', 'A'].
type RangeMatcher struct {
	Low, High rune
	empty     bool
}

func NewRangeMatcher(text string) RangeMatcher {
	if text == "" {
		return RangeMatcher{empty: true}
	}
	low, _ := utf8.DecodeRuneInString(text)
	high, _ := utf8.DecodeLastRuneInString(text)
	return RangeMatcher{Low: low, High: high}
}

func (m RangeMatcher) Match(pos int, input string) int {
	if m.empty {
		return 0
	}
	offset := pos
	for offset < len(input) {
		r, size := utf8.DecodeRuneInString(input[offset:])
		if r < m.Low || r > m.High {
			break
		}
		offset += size
	}
	return offset - pos
}

func (m RangeMatcher) String() string {
	if m.empty {
		return "[]"
	}
	return "[" + string(m.Low) + "-" + string(m.High) + "]"
}
