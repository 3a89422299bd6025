package vm

import (
	"testing"

	"github.com/glennsl/goregex/ast"
	"github.com/glennsl/goregex/prog"
)

func compile(t *testing.T, pattern string) *prog.Program {
	t.Helper()
	e, err := ast.Parse(pattern)
	if err != nil {
		t.Fatalf("parse %q: %v", pattern, err)
	}
	p, err := prog.Compile(pattern, e)
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	return p
}

func TestRunSeedSuite(t *testing.T) {
	cases := []struct {
		name     string
		pattern  string
		input    string
		wantSpan [2]int
		captures []string // expected []string of non-zero capture slots in order, excluding slot 0
	}{
		{"literal with star", "ab*c", "abbbc", [2]int{0, 5}, nil},
		{"two captures", "(a)(b)c", "abc", [2]int{0, 3}, []string{"a", "b"}},
		{"repeated alternation capture", "a(b|c)*d", "abcd", [2]int{0, 4}, []string{"c"}},
		{"bounded repetition", "ab{3,4}bc", "abbbbc", [2]int{0, 6}, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := compile(t, c.pattern)
			m, ok := Run(p, c.input)
			if !ok {
				t.Fatalf("expected match for %q on %q", c.pattern, c.input)
			}
			if m.Captures[0] != (Span{c.wantSpan[0], c.wantSpan[1]}) {
				t.Fatalf("unexpected overall span: %#v", m.Captures[0])
			}
			for i, want := range c.captures {
				span := m.Captures[i+1]
				got := c.input[span.Start:span.End]
				if got != want {
					t.Fatalf("capture %d: got %q, want %q", i+1, got, want)
				}
			}
		})
	}
}

func TestRunNoMatch(t *testing.T) {
	p := compile(t, "a[^-b]c")
	if _, ok := Run(p, "a-c"); ok {
		t.Fatalf("expected no match")
	}
}

func TestRunAnchors(t *testing.T) {
	p := compile(t, "^$")
	m, ok := Run(p, "")
	if !ok || m.Captures[0] != (Span{0, 0}) {
		t.Fatalf("expected empty match at (0,0), got %#v ok=%v", m, ok)
	}
}

func TestRunStarMatchesEmptyInput(t *testing.T) {
	p := compile(t, "a*")
	m, ok := Run(p, "")
	if !ok || m.Captures[0] != (Span{0, 0}) {
		t.Fatalf("expected empty match at (0,0), got %#v ok=%v", m, ok)
	}
}

func TestRunGreedyPrefersLongestMatch(t *testing.T) {
	p := compile(t, "a+")
	m, ok := Run(p, "aaa")
	if !ok || m.Captures[0] != (Span{0, 3}) {
		t.Fatalf("expected greedy match to consume all a's, got %#v ok=%v", m, ok)
	}
}

func TestRunNonGreedyPrefersShortestMatch(t *testing.T) {
	p := compile(t, "a+?")
	m, ok := Run(p, "aaa")
	if !ok || m.Captures[0] != (Span{0, 1}) {
		t.Fatalf("expected non-greedy match to consume one a, got %#v ok=%v", m, ok)
	}
}

func TestRunWordBoundary(t *testing.T) {
	p := compile(t, `\bcat\b`)
	if _, ok := Run(p, "concatenate"); ok {
		t.Fatalf("expected no match inside a larger word")
	}
	if m, ok := Run(p, "a cat sat"); !ok || m.Captures[0] != (Span{2, 5}) {
		t.Fatalf("expected match at (2,5), got %#v ok=%v", m, ok)
	}
}

func TestRunUnanchoredSearchFindsLeftmostMatch(t *testing.T) {
	p := compile(t, "b+")
	m, ok := Run(p, "aabbbaa")
	if !ok || m.Captures[0] != (Span{2, 5}) {
		t.Fatalf("expected leftmost match at (2,5), got %#v ok=%v", m, ok)
	}
}

func TestRunUnmatchedCaptureIsUnset(t *testing.T) {
	p := compile(t, "(a)|(b)")
	m, ok := Run(p, "b")
	if !ok {
		t.Fatalf("expected match")
	}
	if !m.Captures[1].Unset() {
		t.Fatalf("expected capture 1 unset, got %#v", m.Captures[1])
	}
	if m.Captures[2].Unset() {
		t.Fatalf("expected capture 2 set")
	}
}
