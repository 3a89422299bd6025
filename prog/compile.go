package prog

import (
	"fmt"

	"github.com/glennsl/goregex/ast"
	"github.com/glennsl/goregex/internal/conv"
)

// CompilerConfig tunes the AST-to-bytecode lowering pass. It follows the
// teacher's register-of-knobs convention (one exported field per tunable,
// each doc-commented with its default and purpose) rather than functional
// options, since the knob set here is small and fixed.
type CompilerConfig struct {
	// MaxRecursionDepth bounds the compiler's recursive descent over the
	// expression tree, guarding against a stack overflow on pathologically
	// deep patterns (e.g. thousands of nested groups). Default: 1000.
	MaxRecursionDepth int

	// MaxCaptures bounds how many capturing groups the compiler will wire
	// SaveStart/SaveEnd for. The Pike VM's capture table has a fixed
	// ceiling (vm.MaxCaptureSlots, 10 by §9 "Ten-slot capture table" of the
	// spec this engine implements); groups beyond the ceiling still parse
	// and compile, they simply never have their span recorded. Default: 9
	// (capture indices 1..9 — slot 0 is reserved for the overall match).
	MaxCaptures int
}

// DefaultCompilerConfig returns the configuration used by Compile.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxRecursionDepth: 1000,
		MaxCaptures:       9,
	}
}

// Error reports that an expression tree could not be compiled.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "compile error: " + e.Message
}

// Compile lowers an already-parsed expression tree into a Program using
// the default configuration.
func Compile(source string, e ast.Expression) (*Program, error) {
	return CompileWithConfig(source, e, DefaultCompilerConfig())
}

// CompileWithConfig lowers e into a Program. Compilation rules are a direct
// port of the original register-machine lowering: each AST node emits a
// fixed instruction shape, with Fork/Jump targets patched in after the
// fact once the lengths of the compiled subtrees are known (the
// "record-and-rewrite" idiom: emit a placeholder, compile the body, then
// overwrite the placeholder with resolved program-counter targets).
func CompileWithConfig(source string, e ast.Expression, cfg CompilerConfig) (p *Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			cerr, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			p, err = nil, cerr
		}
	}()

	c := &compiler{cfg: cfg}
	c.compile(e, 0)
	c.code = append(c.code, Instruction{Op: OpAccept})

	return &Program{
		Instructions: c.code,
		NumRegisters: c.registers,
		NumCaptures:  c.maxCapture,
		Source:       source,
	}, nil
}

type compiler struct {
	cfg        CompilerConfig
	code       []Instruction
	registers  int
	maxCapture int
}

func (c *compiler) fail(format string, args ...interface{}) {
	panic(&Error{Message: fmt.Sprintf(format, args...)})
}

// emit appends an instruction and returns its program counter.
func (c *compiler) emit(instr Instruction) int {
	c.code = append(c.code, instr)
	return len(c.code) - 1
}

// pc is the program counter the next emitted instruction will receive.
func (c *compiler) pc() int {
	return len(c.code)
}

// fork builds the Fork instruction for a quantifier, swapping its two
// targets when the quantifier is non-greedy: greedy tries the "keep going"
// branch first, non-greedy tries the "stop here" branch first. This single
// swap is the entire difference between greedy and non-greedy matching
// (§9 "Non-greedy vs greedy is priority, not logic").
func fork(q ast.Quantifier, greedyTarget, nonGreedyTarget int) Instruction {
	if q == ast.Greedy {
		return Instruction{Op: OpFork, A: greedyTarget, B: nonGreedyTarget}
	}
	return Instruction{Op: OpFork, A: nonGreedyTarget, B: greedyTarget}
}

func (c *compiler) compile(e ast.Expression, depth int) {
	if depth > c.cfg.MaxRecursionDepth {
		c.fail("pattern nesting exceeds max recursion depth %d", c.cfg.MaxRecursionDepth)
	}

	switch n := e.(type) {
	case ast.Literal:
		c.emit(Instruction{Op: OpChar, Char: n.Char})

	case ast.AnyLiteral:
		c.emit(Instruction{Op: OpAny})

	case ast.RangeLiteral:
		c.emit(Instruction{Op: OpRange, Lo: n.Lo, Hi: n.Hi})

	case ast.CharacterClass:
		c.compile(classToAlternation(n.Ranges), depth+1)

	case ast.Concatenate:
		c.compile(n.Left, depth+1)
		c.compile(n.Right, depth+1)

	case ast.Alternate:
		pc := c.emit(Instruction{Op: OpFork})
		c.compile(n.Left, depth+1)
		jumpPC := c.emit(Instruction{Op: OpJump})
		c.code[pc] = Instruction{Op: OpFork, A: pc + 1, B: c.pc()}
		c.compile(n.Right, depth+1)
		c.code[jumpPC] = Instruction{Op: OpJump, A: c.pc()}

	case ast.SubExpression:
		group, captures := n.Captures()
		if captures && group <= c.cfg.MaxCaptures {
			c.emit(Instruction{Op: OpSaveStart, Group: group})
			c.compile(n.Child, depth+1)
			c.emit(Instruction{Op: OpSaveEnd, Group: group})
			if group > c.maxCapture {
				c.maxCapture = group
			}
		} else {
			c.compile(n.Child, depth+1)
		}

	case ast.Question:
		pc := c.emit(Instruction{Op: OpFork})
		c.compile(n.Child, depth+1)
		c.code[pc] = fork(n.Quantifier, pc+1, c.pc())

	case ast.Star:
		pc := c.emit(Instruction{Op: OpFork})
		c.compile(n.Child, depth+1)
		c.emit(Instruction{Op: OpJump, A: pc})
		c.code[pc] = fork(n.Quantifier, pc+1, c.pc())

	case ast.Plus:
		pc := c.pc()
		c.compile(n.Child, depth+1)
		c.emit(fork(n.Quantifier, pc, c.pc()+1))

	case ast.ExactRepetition:
		c.compileExact(n, depth)

	case ast.UnboundedRepetition:
		c.compileUnbounded(n, depth)

	case ast.BoundedRepetition:
		c.compileBounded(n, depth)

	case ast.AssertStart:
		c.emit(Instruction{Op: OpAssertStart})
	case ast.AssertEnd:
		c.emit(Instruction{Op: OpAssertEnd})
	case ast.AssertWordBoundary:
		c.emit(Instruction{Op: OpAssertWordBoundary})
	case ast.AssertNonWordBoundary:
		c.emit(Instruction{Op: OpAssertNonWordBoundary})

	default:
		c.fail("unknown expression node %T", e)
	}
}

// classToAlternation folds a CharacterClass's ranges into a right-
// associated Alternate of Literal (single-element ranges) or RangeLiteral
// nodes, so the existing Alternate/Literal/RangeLiteral lowering handles
// character classes without a separate instruction.
func classToAlternation(ranges []ast.RuneRange) ast.Expression {
	exprs := make([]ast.Expression, len(ranges))
	for i, r := range ranges {
		if r.Lo == r.Hi {
			exprs[i] = ast.Literal{Char: r.Lo}
		} else {
			exprs[i] = ast.RangeLiteral{Lo: r.Lo, Hi: r.Hi}
		}
	}
	for len(exprs) > 1 {
		n := len(exprs)
		right, left := exprs[n-1], exprs[n-2]
		exprs = exprs[:n-2]
		exprs = append(exprs, ast.Alternate{Left: left, Right: right})
	}
	return exprs[0]
}

func (c *compiler) allocRegister() int {
	r := c.registers
	c.registers++
	return r
}

// compileExact lowers `{n}`: a counter register is incremented once per
// iteration of the body and compared against n with ConditionalJumpEq to
// know when to stop, instead of unrolling the body n times — this keeps
// program size O(|pattern|) rather than O(|pattern| * n), which matters
// for large n (§9 "Counter registers vs unrolling").
func (c *compiler) compileExact(n ast.ExactRepetition, depth int) {
	reg := conv.IntToUint32(c.allocRegister())
	pc := c.pc()
	eqPC := c.emit(Instruction{Op: OpConditionalJumpEq})
	forkPC := c.emit(Instruction{Op: OpFork})
	c.compile(n.Child, depth+1)
	c.emit(Instruction{Op: OpIncrement, Register: int(reg)})
	c.emit(Instruction{Op: OpJump, A: pc})

	exit := c.pc()
	c.code[eqPC] = Instruction{Op: OpConditionalJumpEq, Register: int(reg), Value: n.Count, A: exit}
	c.code[forkPC] = fork(n.Quantifier, forkPC+1, exit)
}

// compileUnbounded lowers `{n,}`: the body is forced (via
// ConditionalJumpLE) until the register reaches the lower bound n, after
// which a Fork makes continuing optional.
func (c *compiler) compileUnbounded(n ast.UnboundedRepetition, depth int) {
	reg := conv.IntToUint32(c.allocRegister())
	pc := c.pc()
	c.emit(Instruction{Op: OpConditionalJumpLE, Register: int(reg), Value: n.Min, A: pc + 2})
	forkPC := c.emit(Instruction{Op: OpFork})
	c.compile(n.Child, depth+1)
	c.emit(Instruction{Op: OpIncrement, Register: int(reg)})
	c.emit(Instruction{Op: OpJump, A: pc})

	c.code[forkPC] = fork(n.Quantifier, forkPC+1, c.pc())
}

// compileBounded lowers `{n,m}`: combines an equality check against m to
// break out, a less-than check against n to force the body below the
// lower bound, and a Fork for the optional remainder between n and m.
func (c *compiler) compileBounded(n ast.BoundedRepetition, depth int) {
	reg := conv.IntToUint32(c.allocRegister())
	pc := c.pc()
	eqPC := c.emit(Instruction{Op: OpConditionalJumpEq})
	c.emit(Instruction{Op: OpConditionalJumpLE, Register: int(reg), Value: n.Min, A: pc + 3})
	forkPC := c.emit(Instruction{Op: OpFork})
	c.compile(n.Child, depth+1)
	c.emit(Instruction{Op: OpIncrement, Register: int(reg)})
	c.emit(Instruction{Op: OpJump, A: pc})

	exit := c.pc()
	c.code[eqPC] = Instruction{Op: OpConditionalJumpEq, Register: int(reg), Value: n.Max, A: exit}
	c.code[forkPC] = fork(n.Quantifier, forkPC+1, exit)
}
