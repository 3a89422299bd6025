// Package prefilter extracts literal substrings a pattern's match must
// contain and uses them to reject an input before the Pike VM ever runs
// over it.
//
// The prefilter is strictly an accelerator: it only ever rules out inputs
// that provably cannot match (none of the pattern's required literals are
// present), never rules one in. It is always safe to skip — the VM alone
// is the authority on whether a match exists.
package prefilter

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/glennsl/goregex/ast"
)

// Prefilter answers whether s could possibly contain a match, based on a
// set of literal substrings extracted from the pattern.
type Prefilter interface {
	// IsComplete reports whether this prefilter was built from literals
	// that cover every possible match of the pattern (as opposed to, say,
	// just one branch's literal prefix), meaning a negative result is a
	// sound proof of no match.
	IsComplete() bool

	// Find returns the byte offset of the first occurrence of any
	// extracted literal at or after start, or -1 if none occurs. It never
	// claims a match exists — only that a candidate position worth
	// running the VM from exists at or after it.
	Find(s string, start int) int
}

// Build extracts a prefilter from e, or returns nil if no set of literals
// could be extracted that's worth matching against (e.g. the pattern
// starts with a wildcard or character class rather than any fixed text).
func Build(e ast.Expression) Prefilter {
	literals, complete := extractLiterals(e)
	if len(literals) == 0 {
		return nil
	}
	return &ahoCorasickPrefilter{
		matcher:  ahocorasick.NewStringMatcher(literals),
		literals: literals,
		complete: complete,
	}
}

// ahoCorasickPrefilter wraps cloudflare/ahocorasick, which builds a single
// automaton over the whole literal set so a prefilter with many
// alternatives (e.g. a 50-way literal alternation) costs the same single
// linear pass over the input as a prefilter with one.
type ahoCorasickPrefilter struct {
	matcher  *ahocorasick.Matcher
	literals []string
	complete bool
}

func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

// Find reports the earliest position at or after start where any of the
// extracted literals occurs. cloudflare/ahocorasick's Matcher only reports
// which dictionary entries matched, not where, so Find falls back to a
// plain substring search restricted to the already-matched entries — the
// automaton's job is the expensive part (ruling out the common case of
// "none of these substrings occur anywhere"), this is the cheap part.
func (p *ahoCorasickPrefilter) Find(s string, start int) int {
	if start >= len(s) {
		return -1
	}
	hay := s[start:]
	hits := p.matcher.Match([]byte(hay))
	if len(hits) == 0 {
		return -1
	}

	best := -1
	for _, idx := range hits {
		lit := p.literals[idx]
		if pos := strings.Index(hay, lit); pos >= 0 && (best == -1 || pos < best) {
			best = pos
		}
	}
	if best == -1 {
		return -1
	}
	return start + best
}

// extractLiterals computes the set of literal substrings at least one of
// which must appear verbatim in any string e matches, plus whether that
// set is exhaustive (every possible match is covered, vs. just a
// necessary-but-not-sufficient prefix). Patterns built entirely out of
// literals and alternations between them extract exhaustively; anything
// containing a wildcard, character class, or repetition falls back to
// extracting only a leading required run of literal characters.
func extractLiterals(e ast.Expression) (literals []string, complete bool) {
	if lits, ok := literalAlternatives(e); ok {
		return lits, true
	}
	if prefix := requiredPrefix(e); prefix != "" {
		return []string{prefix}, false
	}
	return nil, false
}

// literalAlternatives reports the finite set of exact strings e matches,
// if e is built only from Literal, Concatenate, and Alternate nodes.
func literalAlternatives(e ast.Expression) ([]string, bool) {
	switch n := e.(type) {
	case ast.Literal:
		return []string{string(n.Char)}, true
	case ast.Concatenate:
		left, ok := literalAlternatives(n.Left)
		if !ok {
			return nil, false
		}
		right, ok := literalAlternatives(n.Right)
		if !ok {
			return nil, false
		}
		out := make([]string, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				out = append(out, l+r)
			}
		}
		return out, true
	case ast.Alternate:
		left, ok := literalAlternatives(n.Left)
		if !ok {
			return nil, false
		}
		right, ok := literalAlternatives(n.Right)
		if !ok {
			return nil, false
		}
		return append(left, right...), true
	default:
		return nil, false
	}
}

// requiredPrefix returns the longest run of literal characters that must
// appear at the start of any match of e (empty if e can match without any
// fixed leading text).
func requiredPrefix(e ast.Expression) string {
	var b strings.Builder
	walkRequiredPrefix(e, &b)
	return b.String()
}

func walkRequiredPrefix(e ast.Expression, b *strings.Builder) {
	switch n := e.(type) {
	case ast.Literal:
		b.WriteRune(n.Char)
	case ast.Concatenate:
		walkRequiredPrefix(n.Left, b)
		// Only keep extending the prefix past the left operand if it
		// matched exactly one fixed string — anything else (an
		// alternation, a repetition) means what comes after n.Left is not
		// guaranteed to start at a fixed offset.
		if isLiteralConcat(n.Left) {
			walkRequiredPrefix(n.Right, b)
		}
	case ast.SubExpression:
		walkRequiredPrefix(n.Child, b)
	}
}

// isLiteralConcat reports whether e is built entirely from Literal and
// Concatenate nodes, i.e. matches exactly one fixed string.
func isLiteralConcat(e ast.Expression) bool {
	switch n := e.(type) {
	case ast.Literal:
		return true
	case ast.Concatenate:
		return isLiteralConcat(n.Left) && isLiteralConcat(n.Right)
	default:
		return false
	}
}
