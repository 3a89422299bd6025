// Package goregex is a non-backtracking regular expression engine: pattern
// text is parsed into an expression tree (package ast), lowered to linear
// bytecode (package prog), and matched with a Pike VM (package vm) that
// runs every candidate path through the pattern in lockstep with the
// input, guaranteeing O(pattern * input) time with no catastrophic
// backtracking.
//
// Syntax: literals, `.`, character classes with `\d \D \s \S \w \W` and
// negation, capturing and non-capturing groups, alternation, the
// `? * +` and `{n} {n,} {n,m}` quantifiers (greedy by default, `?`-suffixed
// for non-greedy), and the `^ $ \b \B` anchors. Not supported:
// backreferences, lookaround, named groups, inline flags, and Unicode case
// folding — see SPEC_FULL.md for the complete list.
//
// Basic usage:
//
//	re, err := goregex.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.MatchString("call 555-1234") {
//	    fmt.Println("matched")
//	}
package goregex

import (
	"fmt"
	"unicode/utf8"

	"github.com/glennsl/goregex/ast"
	"github.com/glennsl/goregex/prefilter"
	"github.com/glennsl/goregex/prog"
	"github.com/glennsl/goregex/vm"
)

// Config tunes both the compiler and the matcher.
type Config struct {
	Compiler prog.CompilerConfig

	// DisablePrefilter forces every search to run the Pike VM directly
	// from position 0, skipping the literal-prefix prefilter that
	// otherwise jumps straight to plausible starting positions. Useful
	// for isolating prefilter bugs from VM bugs.
	DisablePrefilter bool
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return Config{Compiler: prog.DefaultCompilerConfig()}
}

// Regex is a compiled pattern, safe for concurrent use by multiple
// goroutines: matching only reads the Program and Expression, never
// mutates them.
type Regex struct {
	pattern    string
	expr       ast.Expression
	program    *prog.Program
	prefilter  prefilter.Prefilter
	numCapture int
}

// Compile parses and compiles pattern using the default configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if pattern fails to compile. It
// is intended for patterns fixed at init time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("goregex: Compile(%q): %v", pattern, err))
	}
	return re
}

// CompileWithConfig parses and compiles pattern with a custom Config.
func CompileWithConfig(pattern string, cfg Config) (*Regex, error) {
	expr, err := ast.Parse(pattern)
	if err != nil {
		return nil, err
	}

	program, err := prog.CompileWithConfig(pattern, expr, cfg.Compiler)
	if err != nil {
		return nil, err
	}

	var pf prefilter.Prefilter
	if !cfg.DisablePrefilter {
		pf = prefilter.Build(expr)
	}

	return &Regex{
		pattern:    pattern,
		expr:       expr,
		program:    program,
		prefilter:  pf,
		numCapture: program.NumCaptures,
	}, nil
}

// String returns the source pattern used to compile the Regex.
func (r *Regex) String() string {
	return r.pattern
}

// Expression returns the parsed expression tree, chiefly for debug
// printing (see package debugfmt).
func (r *Regex) Expression() ast.Expression {
	return r.expr
}

// Program returns the compiled bytecode, chiefly for debug printing (see
// package debugfmt).
func (r *Regex) Program() *prog.Program {
	return r.program
}

// NumSubexp returns the number of capturing groups whose spans the Regex
// records. Group 0 (the overall match) is not counted, and neither are
// groups beyond the compiler's MaxCaptures ceiling (9 by default).
func (r *Regex) NumSubexp() int {
	return r.numCapture
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	_, ok := r.run(s)
	return ok
}

// FindString returns the leftmost match of the pattern in s, or "" if
// there is none. Use FindStringIndex to distinguish "no match" from a
// genuine zero-length match.
func (r *Regex) FindString(s string) string {
	m, ok := r.run(s)
	if !ok {
		return ""
	}
	return sliceSpan(s, m.Captures[0])
}

// FindStringIndex returns the byte offsets [start, end) of the leftmost
// match of the pattern in s, or nil if there is none.
func (r *Regex) FindStringIndex(s string) []int {
	m, ok := r.run(s)
	if !ok {
		return nil
	}
	start, end := runeSpanToByteOffsets(s, m.Captures[0])
	return []int{start, end}
}

// FindStringSubmatch returns the text of the leftmost match and the text
// of each capturing group. Result[0] is the overall match, result[i] the
// ith group; an unmatched group is "". Returns nil if there is no match.
func (r *Regex) FindStringSubmatch(s string) []string {
	m, ok := r.run(s)
	if !ok {
		return nil
	}
	result := make([]string, r.numCapture+1)
	for i := 0; i <= r.numCapture; i++ {
		if m.Captures[i].Unset() {
			continue
		}
		result[i] = sliceSpan(s, m.Captures[i])
	}
	return result
}

// FindStringSubmatchIndex returns the byte offset pairs for the leftmost
// match and its capturing groups. result[2*i:2*i+2] holds group i's
// [start, end); an unmatched group has [-1, -1]. Returns nil if there is
// no match.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	m, ok := r.run(s)
	if !ok {
		return nil
	}
	result := make([]int, (r.numCapture+1)*2)
	for i := 0; i <= r.numCapture; i++ {
		span := m.Captures[i]
		if span.Unset() {
			result[i*2], result[i*2+1] = -1, -1
			continue
		}
		start, end := runeSpanToByteOffsets(s, span)
		result[i*2], result[i*2+1] = start, end
	}
	return result
}

// run executes the VM over s, consulting the prefilter first when one is
// available. The prefilter never decides a match by itself; it only proves
// where the VM does or doesn't need to look.
//
// A complete prefilter covers every possible match, so one failed Find at
// position 0 rules out the whole string and the VM never runs at all. An
// incomplete (required-prefix) prefilter only proves that every match must
// begin at one of its literal's occurrences, so instead the VM is driven
// anchored at each occurrence in turn — skipping every stretch of s between
// occurrences rather than reseeding a fresh thread at every position the
// way an unfiltered vm.Run does.
func (r *Regex) run(s string) (vm.Match, bool) {
	if r.prefilter == nil {
		return vm.Run(r.program, s)
	}

	if r.prefilter.IsComplete() {
		if r.prefilter.Find(s, 0) < 0 {
			return vm.Match{}, false
		}
		return vm.Run(r.program, s)
	}

	bytePos := 0
	for {
		idx := r.prefilter.Find(s, bytePos)
		if idx < 0 {
			return vm.Match{}, false
		}
		if m, ok := vm.RunAnchored(r.program, s, byteOffsetToRuneIndex(s, idx)); ok {
			return m, true
		}
		bytePos = idx + 1
	}
}

// byteOffsetToRuneIndex converts a byte offset into s to the rune index the
// VM steps by. byteOffset is always the start of a literal the prefilter
// matched against s, so it always lands on a rune boundary.
func byteOffsetToRuneIndex(s string, byteOffset int) int {
	runeIdx, byteIdx := 0, 0
	for byteIdx < byteOffset {
		_, size := utf8.DecodeRuneInString(s[byteIdx:])
		byteIdx += size
		runeIdx++
	}
	return runeIdx
}

func sliceSpan(s string, span vm.Span) string {
	start, end := runeSpanToByteOffsets(s, span)
	if start < 0 {
		return ""
	}
	return s[start:end]
}

// runeSpanToByteOffsets converts a vm.Span expressed in rune indices (the
// unit the Pike VM steps by) to byte offsets into s, the unit Go string
// slicing uses.
func runeSpanToByteOffsets(s string, span vm.Span) (start, end int) {
	start, end = -1, -1
	runeIdx := 0
	byteIdx := 0
	for byteIdx < len(s) {
		if runeIdx == span.Start {
			start = byteIdx
		}
		if runeIdx == span.End {
			end = byteIdx
		}
		_, size := utf8.DecodeRuneInString(s[byteIdx:])
		byteIdx += size
		runeIdx++
	}
	if runeIdx == span.Start {
		start = byteIdx
	}
	if runeIdx == span.End {
		end = byteIdx
	}
	return start, end
}
