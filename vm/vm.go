// Package vm runs a compiled prog.Program against an input string using a
// Pike VM: two thread worklists stepped in lockstep with the input, one
// instruction-pointer advance per thread per input position, so the whole
// match runs in O(len(program) * len(input)) with no backtracking.
package vm

import (
	"github.com/glennsl/goregex/ast"
	"github.com/glennsl/goregex/internal/swar"
	"github.com/glennsl/goregex/prog"
)

// MaxCaptureSlots is the fixed size of a Match's capture table. Slot 0 is
// reserved for the overall match span and is never written by SaveStart/
// SaveEnd; slots 1..9 hold up to nine capturing groups.
const MaxCaptureSlots = 10

// Span is a half-open [Start, End) rune-index range into the input. A zero
// A group that a match never visited (its SubExpression wasn't on the
// winning thread's path, e.g. the untaken side of an alternation) has
// Start < 0; use Unset to test for this rather than comparing against the
// zero value, which is a legitimate zero-length match at position 0.
type Span struct {
	Start, End int
}

// Unset reports whether the span belongs to a capture group the match
// never entered.
func (s Span) Unset() bool {
	return s.Start < 0
}

// Match is the result of a successful run: the overall match span in slot
// 0 and one span per capturing group in the remaining slots, all as rune
// offsets into the input that was matched.
type Match struct {
	Captures [MaxCaptureSlots]Span
}

// thread is one NFA path through the program: a program counter plus the
// registers and capture spans it has accumulated along the way. Forking a
// thread clones registers and captures so the two paths can diverge; the
// capture table is a fixed 10-element array, so cloning it is a plain copy
// rather than the refcounted copy-on-write buffers a variable-length
// capture vector would need.
type thread struct {
	pc         int
	matchStart int
	captures   [MaxCaptureSlots]Span
	registers  []int
}

// unsetSpan marks a capture slot as never having been entered, as distinct
// from a genuine zero-length match at position 0.
var unsetSpan = Span{Start: -1, End: -1}

func newThread(matchStart, numRegisters int) *thread {
	t := &thread{matchStart: matchStart, registers: make([]int, numRegisters)}
	for i := range t.captures {
		t.captures[i] = unsetSpan
	}
	return t
}

func (t *thread) clone() *thread {
	c := &thread{
		pc:         t.pc,
		matchStart: t.matchStart,
		captures:   t.captures,
	}
	c.registers = append([]int(nil), t.registers...)
	return c
}

// terminator is appended to the input so that AssertEnd and a trailing
// Accept can fire at end-of-input without a separate end-of-string check
// in the step loop.
const terminator = rune(0x03)

// Run executes p against input, starting a new candidate thread at every
// position from 0 onward until a match is found (unanchored leftmost
// search). Among threads that reach Accept, the one scheduled with highest
// priority wins, so greedy-vs-non-greedy and leftmost-alternative-first
// fall out of thread scheduling order rather than any explicit comparison.
// It returns the match and true, or false if no match exists anywhere in
// input.
func Run(p *prog.Program, input string) (Match, bool) {
	return run(p, toRunes(input), 0, true)
}

// RunAnchored executes p with a candidate thread seeded only at startPos,
// never reseeding at any later position the way Run does. Used by the
// facade when a required-literal prefilter has already proven that no
// match can begin anywhere except at an occurrence of that literal: trying
// the VM at each occurrence in turn, instead of at every input position,
// is what actually turns the prefilter into a skip-ahead accelerator
// rather than a plain existence check.
func RunAnchored(p *prog.Program, input string, startPos int) (Match, bool) {
	runes := toRunes(input)
	if startPos > len(runes) {
		return Match{}, false
	}
	return run(p, runes, startPos, false)
}

// run is the shared Pike VM step loop. When reseed is true (Run) a fresh
// candidate thread is pushed at every position up to the first match,
// giving unanchored search. When false (RunAnchored) only the seed thread
// placed at startPos is ever added, so the whole run tests a single
// candidate start position.
func run(p *prog.Program, runes []rune, startPos int, reseed bool) (Match, bool) {
	var current, next []*thread
	var matched *thread

	for sp := startPos; sp <= len(runes); sp++ {
		var c rune
		if sp < len(runes) {
			c = runes[sp]
		} else {
			c = terminator
		}

		if matched == nil && (reseed || sp == startPos) {
			next = append(next, newThread(sp, p.NumRegisters))
		}

		current, next = next, current[:0]
		reverseThreads(current)

		r := &runner{p: p, runes: runes, sp: sp, c: c, current: &current, next: &next}
		for len(current) > 0 {
			t := current[len(current)-1]
			current = current[:len(current)-1]

			if m, stop := r.runThread(t); stop {
				if m != nil {
					matched = m
				}
				break
			}
		}
	}

	if matched == nil {
		return Match{}, false
	}
	return Match{Captures: matched.captures}, true
}

// toRunes decodes input into a rune slice, the unit the VM steps input by.
// Real-world inputs to a regex engine are overwhelmingly ASCII, so the
// common case skips full UTF-8 decoding: once swar.IsASCII confirms every
// byte is < 0x80, each byte equals its own code point and the conversion
// is a straight widen-and-copy instead of a decode loop.
func toRunes(input string) []rune {
	if swar.IsASCII(input) {
		runes := make([]rune, len(input))
		for i := 0; i < len(input); i++ {
			runes[i] = rune(input[i])
		}
		return runes
	}
	return []rune(input)
}

func reverseThreads(ts []*thread) {
	for i, j := 0, len(ts)-1; i < j; i, j = i+1, j-1 {
		ts[i], ts[j] = ts[j], ts[i]
	}
}

// runner holds the per-step state runThread needs: the program, the full
// rune slice (for word-boundary lookbehind and end-of-input length), the
// current step position and rune, and the two worklists.
type runner struct {
	p       *prog.Program
	runes   []rune
	sp      int
	c       rune
	current *[]*thread
	next    *[]*thread
}

// scheduleNext advances t past the instruction it just consumed input on
// and pushes it onto next's worklist, to be resumed at the following
// input position.
func (r *runner) scheduleNext(t *thread) {
	t.pc++
	*r.next = append(*r.next, t)
}

// runThread steps thread t through zero-width instructions until it either
// consumes the current input rune (scheduling itself onto next and
// returning stop=false so the outer loop picks up the next thread in
// current), fails outright (stop=false, not rescheduled, thread dies), or
// reaches Accept (stop=true, non-nil thread — and since this was popped in
// priority order, any lower-priority thread still in current this step is
// moot and the caller stops processing it).
func (r *runner) runThread(t *thread) (accepted *thread, stop bool) {
	for {
		instr := r.p.Instructions[t.pc]

		switch instr.Op {
		case prog.OpChar:
			if r.c == instr.Char {
				r.scheduleNext(t)
			}
			return nil, false

		case prog.OpAny:
			if r.c != terminator {
				r.scheduleNext(t)
			}
			return nil, false

		case prog.OpRange:
			if r.c >= instr.Lo && r.c <= instr.Hi {
				r.scheduleNext(t)
			}
			return nil, false

		case prog.OpFork:
			other := t.clone()
			other.pc = instr.B
			*r.current = append(*r.current, other)
			t.pc = instr.A

		case prog.OpJump:
			t.pc = instr.A

		case prog.OpConditionalJumpEq:
			if t.registers[instr.Register] == instr.Value {
				t.pc = instr.A
			} else {
				t.pc++
			}

		case prog.OpConditionalJumpLE:
			// Deliberately strict less-than despite the mnemonic: the
			// bound this guards is the repetition's lower limit, which
			// must be forced below value, not at it.
			if t.registers[instr.Register] < instr.Value {
				t.pc = instr.A
			} else {
				t.pc++
			}

		case prog.OpIncrement:
			t.registers[instr.Register]++
			t.pc++

		case prog.OpSaveStart:
			if instr.Group < MaxCaptureSlots {
				t.captures[instr.Group] = Span{Start: r.sp, End: r.sp}
			}
			t.pc++

		case prog.OpSaveEnd:
			if instr.Group < MaxCaptureSlots {
				t.captures[instr.Group].End = r.sp
			}
			t.pc++

		case prog.OpAssertStart:
			if r.sp != 0 {
				return nil, false
			}
			t.pc++

		case prog.OpAssertEnd:
			if r.sp != len(r.runes) {
				return nil, false
			}
			t.pc++

		case prog.OpAssertWordBoundary:
			if !r.atWordBoundary() {
				return nil, false
			}
			t.pc++

		case prog.OpAssertNonWordBoundary:
			if r.atWordBoundary() {
				return nil, false
			}
			t.pc++

		case prog.OpAccept:
			t.captures[0] = Span{Start: t.matchStart, End: r.sp}
			return t, true

		default:
			return nil, false
		}
	}
}

// atWordBoundary reports whether sp sits at a transition between a word
// character and a non-word character, treating both ends of the input as
// non-word.
func (r *runner) atWordBoundary() bool {
	before := false
	if r.sp > 0 {
		before = ast.IsWordChar(r.runes[r.sp-1])
	}
	after := r.c != terminator && ast.IsWordChar(r.c)
	return before != after
}
