package goregex

import "testing"

// TestSeedSuite mirrors the original engine's hand-picked regression
// cases: a small, varied sample covering quantifiers, alternation inside a
// repetition, anchored word-boundary groups, bounded repetition, negated
// character classes, and a couple of deliberately tricky non-matches.
func TestSeedSuite(t *testing.T) {
	cases := []struct {
		name     string
		pattern  string
		input    string
		want     bool
		wantText string
	}{
		{"greedy star", "ab*c", "abbbc", true, "abbbc"},
		{"two capturing groups", "(a)(b)c", "abc", true, "abc"},
		{"alternation under star", "a(b|c)*d", "abcd", true, "abcd"},
		{"ipv4-ish with word boundaries", `\b(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`, "127.0.0.1", true, "127.0.0.1"},
		{"bounded repetition", "ab{3,4}bc", "abbbbc", true, "abbbbc"},
		{"negated class excludes member", "a[^-b]c", "a-c", false, ""},
		{"malformed email-ish, trailing dots collapse", `\b[a-zA-Z0-9._%+-]+@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,4}\b`, "john@aol...com", false, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			re, err := Compile(c.pattern)
			if err != nil {
				t.Fatalf("Compile(%q): %v", c.pattern, err)
			}
			got := re.MatchString(c.input)
			if got != c.want {
				t.Fatalf("MatchString(%q) = %v, want %v", c.input, got, c.want)
			}
			if c.want {
				if text := re.FindString(c.input); text != c.wantText {
					t.Fatalf("FindString(%q) = %q, want %q", c.input, text, c.wantText)
				}
			}
		})
	}
}

// TestClassicCorpus supplements the hand-picked seed suite with the
// engine's original regression corpus (tests.rs): a battery of small
// patterns exercising quantifier interaction, nested and nullable
// capturing groups, negated classes, and boundary assertions. These are
// the classic backtracking-equivalence cases (grabbing HTML tags, near-
// operator emulation, leftmost-greedy tie-breaks) that any Pike VM port
// needs to reproduce exactly, since priority-ordered thread scheduling
// must agree with backtracking on which alternative wins.
func TestClassicCorpus(t *testing.T) {
	cases := []struct {
		pattern  string
		input    string
		want     bool
		wantText string
		captures []string
	}{
		{"[^^]+", "abc", true, "abc", nil},
		{"[^^]+", "^", false, "", nil},
		{"[^al-obc]+", "kpd", true, "kpd", nil},
		{"[^al-obc]+", "abc", false, "", nil},
		{"[al-obc]+", "almocb", true, "almocb", nil},
		{"[al-obc]+", "defzx", false, "", nil},
		{`<TAG\b[^>]*>(.*?)</TAG>`, "one<TAG>two</TAG>three", true, "<TAG>two</TAG>", []string{"two"}},
		{`\bword1\W+(?:\w+\W+){1,6}?word2\b`, "word1 word2", false, "", nil},
		{`\bword1\W+(?:\w+\W+){1,6}?word2\b`, "word1 1 word2", true, "word1 1 word2", nil},
		{`\bword1\W+(?:\w+\W+){1,6}?word2\b`, "word1 1 2 3 4 5 6 word2", true, "word1 1 2 3 4 5 6 word2", nil},
		{`\bword1\W+(?:\w+\W+){1,6}?word2\b`, "word1 1 2 3 4 5 6 7 word", false, "", nil},
		{"abc", "abc", true, "abc", nil},
		{"abc", "xbc", false, "", nil},
		{"abc", "xabcy", true, "abc", nil},
		{"ab*bc", "abc", true, "abc", nil},
		{"ab*bc", "abbbbc", true, "abbbbc", nil},
		{"ab+bc", "abbc", true, "abbc", nil},
		{"ab+bc", "abc", false, "", nil},
		{"ab?bc", "abbbbc", false, "", nil},
		{"^abc$", "abc", true, "abc", nil},
		{"^abc$", "abcc", false, "", nil},
		{"^abc", "abcc", true, "abc", nil},
		{"abc$", "aabc", true, "abc", nil},
		{"^", "abc", true, "", nil},
		{"$", "abc", true, "", nil},
		{"a.c", "axc", true, "axc", nil},
		{"a.*c", "axyzc", true, "axyzc", nil},
		{"a.*c", "axyzd", false, "", nil},
		{"a[bc]d", "abc", false, "", nil},
		{"a[bc]d", "abd", true, "abd", nil},
		{"a[b-d]e", "ace", true, "ace", nil},
		{"a[b-d]", "aac", true, "ac", nil},
		{"a[-b]", "a-", true, "a-", nil},
		{`a[\-b]`, "a-", true, "a-", nil},
		{"a]", "a]", true, "a]", nil},
		{"a[^bc]d", "aed", true, "aed", nil},
		{"a[^bc]d", "abd", false, "", nil},
		{`\ba\b`, "a-", true, "a", nil},
		{`\ba\b`, "-a-", true, "a", nil},
		{`\by\b`, "xyz", false, "", nil},
		{`x\b`, "xyz", false, "", nil},
		{`x\B`, "xyz", true, "x", nil},
		{`\Bz`, "xyz", true, "z", nil},
		{`z\B`, "xyz", false, "", nil},
		{`\By\b`, "xy", true, "y", nil},
		{`\by\B`, "yz", true, "y", nil},
		{`\By\B`, "xyz", true, "y", nil},
		{"ab|cd", "abc", true, "ab", nil},
		{"ab|cd", "abcd", true, "ab", nil},
		{"$b", "b", false, "", nil},
		{`a\(b`, "a(b", true, "a(b", nil},
		{`a\(*b`, "a((b", true, "a((b", nil},
		{`((a))`, "abc", true, "a", []string{"a", "a"}},
		{"(a)b(c)", "abc", true, "abc", []string{"a", "c"}},
		{"a+b+c", "aabbabc", true, "abc", nil},
		{"(a+|b)*", "ab", true, "ab", []string{"b"}},
		{"(a+|b)+", "ab", true, "ab", []string{"b"}},
		{"(a+|b)?", "ab", true, "a", []string{"a"}},
		{"[^ab]*", "cde", true, "cde", nil},
		{"abc", "", false, "", nil},
		{"a*", "", true, "", nil},
		{"a|b|c|d|e", "e", true, "e", nil},
		{"(a|b|c|d|e)f", "ef", true, "ef", []string{"e"}},
		{"abcd*efg", "abcdefg", true, "abcdefg", nil},
		{"ab*", "xabyabbbz", true, "ab", nil},
		{"ab*", "xayabbbz", true, "a", nil},
		{"(ab|cd)e", "abcde", true, "cde", []string{"cd"}},
		{"[abhgefdc]ij", "hij", true, "hij", nil},
		{"^(ab|cd)e", "abcde", false, "", nil},
		{"(a|b)c*d", "abcd", true, "bcd", []string{"b"}},
		{"(ab|ab*)bc", "abc", true, "abc", []string{"a"}},
		{"a([bc]*)c*", "abc", true, "abc", []string{"bc"}},
		{"a([bc]*)(c*d)", "abcd", true, "abcd", []string{"bc", "d"}},
		{"a([bc]+)(c*d)", "abcd", true, "abcd", []string{"bc", "d"}},
		{"a([bc]*)(c+d)", "abcd", true, "abcd", []string{"b", "cd"}},
		{"a[bcd]*dcdcde", "adcdcde", true, "adcdcde", nil},
		{"a[bcd]+dcdcde", "adcdcde", false, "", nil},
		{"(ab|a)b*c", "abc", true, "abc", []string{"ab"}},
		{"((a)(b)c)(d)", "abcd", true, "abcd", []string{"abc", "a", "b", "d"}},
		{"[a-zA-Z_][a-zA-Z0-9_]*", "alpha", true, "alpha", nil},
		{"(bc+d$|ef*g.|h?i(j|k))", "ij", true, "ij", []string{"ij", "j"}},
		{"(bc+d$|ef*g.|h?i(j|k))", "effg", false, "", nil},
		{"(bc+d$|ef*g.|h?i(j|k))", "bcdd", false, "", nil},
		{"(((((((((a)))))))))", "a", true, "a", []string{"a", "a", "a", "a", "a", "a", "a", "a", "a"}},
		{"multiple words of text", "uh-uh", false, "", nil},
		{"multiple words", "multiple words, yeah", true, "multiple words", nil},
		{"(.*)c(.*)", "abcde", true, "abcde", []string{"ab", "de"}},
		{`\((.*), (.*)\)`, "(a, b)", true, "(a, b)", []string{"a", "b"}},
		{"[k]", "ab", false, "", nil},
		{"a[-]?c", "ac", true, "ac", nil},
		{"^(.+)?B", "AB", true, "AB", []string{"A"}},
		{"(a)+x", "aaax", true, "aaax", []string{"a"}},
		{"([ac])+x", "aacx", true, "aacx", []string{"c"}},
		{"([^/]*/)*sub1/", "d:msgs/tdir/sub1/trial/away.cpp", true, "d:msgs/tdir/sub1/", []string{"tdir/"}},
		{`([^.]*)\.([^:]*):[T ]+(.*)`, "track1.title:TBlah blah blah", true, "track1.title:TBlah blah blah", []string{"track1", "title", "Blah blah blah"}},
		{"([^N]*N)+", "abNNxyzN", true, "abNNxyzN", []string{"xyzN"}},
		{"([^N]*N)+", "abNNxyz", true, "abNN", []string{"N"}},
		{"([abc]*)x", "abcx", true, "abcx", []string{"abc"}},
		{"([abc]*)x", "abc", false, "", nil},
		{"([xyz]*)x", "abcx", true, "x", []string{""}},
	}

	for _, c := range cases {
		t.Run(c.pattern+"/"+c.input, func(t *testing.T) {
			re, err := Compile(c.pattern)
			if err != nil {
				t.Fatalf("Compile(%q): %v", c.pattern, err)
			}
			got := re.MatchString(c.input)
			if got != c.want {
				t.Fatalf("MatchString(%q) = %v, want %v", c.input, got, c.want)
			}
			if !c.want {
				return
			}
			if text := re.FindString(c.input); text != c.wantText {
				t.Fatalf("FindString(%q) = %q, want %q", c.input, text, c.wantText)
			}
			if c.captures == nil {
				return
			}
			got2 := re.FindStringSubmatch(c.input)
			if len(got2) != len(c.captures)+1 {
				t.Fatalf("FindStringSubmatch(%q) = %v, want %d groups", c.input, got2, len(c.captures))
			}
			for i, want := range c.captures {
				if got2[i+1] != want {
					t.Fatalf("group %d: got %q, want %q", i+1, got2[i+1], want)
				}
			}
		})
	}
}

func TestUnterminatedGroupIsParseError(t *testing.T) {
	if _, err := Compile("("); err == nil {
		t.Fatalf("expected parse error for unterminated group")
	}
}

func TestFindStringSubmatch(t *testing.T) {
	re := MustCompile(`(\w+)@(\w+)\.(\w+)`)
	got := re.FindStringSubmatch("user@example.com")
	want := []string{"user@example.com", "user", "example", "com"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("group %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFindStringSubmatchIndexUnmatchedGroup(t *testing.T) {
	re := MustCompile(`(a)|(b)`)
	idx := re.FindStringSubmatchIndex("b")
	if idx == nil {
		t.Fatalf("expected a match")
	}
	if idx[2] != -1 || idx[3] != -1 {
		t.Fatalf("expected group 1 to be unmatched, got %v", idx[2:4])
	}
	if idx[4] != 0 || idx[5] != 1 {
		t.Fatalf("expected group 2 to span (0,1), got %v", idx[4:6])
	}
}

func TestFindStringIndexNoMatch(t *testing.T) {
	re := MustCompile(`xyz`)
	if loc := re.FindStringIndex("abc"); loc != nil {
		t.Fatalf("expected nil, got %v", loc)
	}
}

func TestMustCompilePanicsOnInvalidPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustCompile("(")
}

func TestNumSubexp(t *testing.T) {
	re := MustCompile(`(a)(b(c))`)
	if n := re.NumSubexp(); n != 3 {
		t.Fatalf("expected 3 capturing groups, got %d", n)
	}
}

func TestStringReturnsSourcePattern(t *testing.T) {
	re := MustCompile(`\d+`)
	if re.String() != `\d+` {
		t.Fatalf("got %q", re.String())
	}
}
