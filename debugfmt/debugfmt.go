// Package debugfmt renders an expression tree and a compiled program as
// human-readable text, the same two views the original CLI harness printed
// before running a match: the parsed structure, then the bytecode it
// compiled to.
package debugfmt

import (
	"fmt"
	"strings"

	"github.com/glennsl/goregex/ast"
	"github.com/glennsl/goregex/prog"
)

// Tree renders e as an indented recursive structure, one node per line.
func Tree(e ast.Expression) string {
	var b strings.Builder
	writeTree(&b, e, 0)
	return b.String()
}

func writeTree(b *strings.Builder, e ast.Expression, depth int) {
	indent := strings.Repeat("  ", depth)

	switch n := e.(type) {
	case ast.Literal:
		fmt.Fprintf(b, "%sLiteral(%q)\n", indent, n.Char)
	case ast.AnyLiteral:
		fmt.Fprintf(b, "%sAnyLiteral\n", indent)
	case ast.RangeLiteral:
		fmt.Fprintf(b, "%sRangeLiteral(%q-%q)\n", indent, n.Lo, n.Hi)
	case ast.CharacterClass:
		fmt.Fprintf(b, "%sCharacterClass\n", indent)
		for _, r := range n.Ranges {
			fmt.Fprintf(b, "%s  %q-%q\n", indent, r.Lo, r.Hi)
		}
	case ast.Concatenate:
		fmt.Fprintf(b, "%sConcatenate\n", indent)
		writeTree(b, n.Left, depth+1)
		writeTree(b, n.Right, depth+1)
	case ast.Alternate:
		fmt.Fprintf(b, "%sAlternate\n", indent)
		writeTree(b, n.Left, depth+1)
		writeTree(b, n.Right, depth+1)
	case ast.SubExpression:
		group, captures := n.Captures()
		if captures {
			fmt.Fprintf(b, "%sSubExpression(capture %d)\n", indent, group)
		} else {
			fmt.Fprintf(b, "%sSubExpression(non-capturing)\n", indent)
		}
		writeTree(b, n.Child, depth+1)
	case ast.Question:
		fmt.Fprintf(b, "%sQuestion(%s)\n", indent, n.Quantifier)
		writeTree(b, n.Child, depth+1)
	case ast.Star:
		fmt.Fprintf(b, "%sStar(%s)\n", indent, n.Quantifier)
		writeTree(b, n.Child, depth+1)
	case ast.Plus:
		fmt.Fprintf(b, "%sPlus(%s)\n", indent, n.Quantifier)
		writeTree(b, n.Child, depth+1)
	case ast.ExactRepetition:
		fmt.Fprintf(b, "%sExactRepetition(%d, %s)\n", indent, n.Count, n.Quantifier)
		writeTree(b, n.Child, depth+1)
	case ast.UnboundedRepetition:
		fmt.Fprintf(b, "%sUnboundedRepetition(%d+, %s)\n", indent, n.Min, n.Quantifier)
		writeTree(b, n.Child, depth+1)
	case ast.BoundedRepetition:
		fmt.Fprintf(b, "%sBoundedRepetition(%d-%d, %s)\n", indent, n.Min, n.Max, n.Quantifier)
		writeTree(b, n.Child, depth+1)
	case ast.AssertStart:
		fmt.Fprintf(b, "%sAssertStart\n", indent)
	case ast.AssertEnd:
		fmt.Fprintf(b, "%sAssertEnd\n", indent)
	case ast.AssertWordBoundary:
		fmt.Fprintf(b, "%sAssertWordBoundary\n", indent)
	case ast.AssertNonWordBoundary:
		fmt.Fprintf(b, "%sAssertNonWordBoundary\n", indent)
	default:
		fmt.Fprintf(b, "%s<unknown %T>\n", indent, e)
	}
}

// Code renders p the way Program.String does: one "pc MNEMONIC operands"
// line per instruction. It exists alongside Program.String as the
// dedicated pretty-printer a debug harness asks for by name, rather than
// calling the program's own Stringer method.
func Code(p *prog.Program) string {
	return p.String()
}
