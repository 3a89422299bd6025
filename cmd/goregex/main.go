// Command goregex is a small debug harness: it prints the expression tree
// and bytecode a pattern compiles to, then reports whether it matches the
// given input, mirroring the original engine's command-line entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glennsl/goregex/debugfmt"
	goregex "github.com/glennsl/goregex"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goregex <pattern> <input>",
		Short: "Parse, compile, and match a pattern against an input string",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], args[1])
		},
		SilenceUsage: true,
	}
}

func run(cmd *cobra.Command, pattern, input string) error {
	out := cmd.OutOrStdout()

	re, err := goregex.Compile(pattern)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Expression Tree")
	fmt.Fprintln(out, "-----------------")
	fmt.Fprint(out, debugfmt.Tree(re.Expression()))

	fmt.Fprintln(out, "\nCode")
	fmt.Fprintln(out, "------")
	fmt.Fprint(out, debugfmt.Code(re.Program()))

	loc := re.FindStringSubmatchIndex(input)
	if loc == nil {
		fmt.Fprintln(out, "\nAww...")
		return nil
	}

	fmt.Fprintln(out, "\nYay!")
	for i := 0; i*2 < len(loc); i++ {
		start, end := loc[i*2], loc[i*2+1]
		if start < 0 {
			continue
		}
		fmt.Fprintf(out, "  %d: %s (%d, %d)\n", i, input[start:end], start, end)
	}

	return nil
}
