package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/journich/CBASIC/internal/logio"
)

var (
	memLimit uint
	heapCap  int
	timeout  time.Duration
	trace    bool
	dump     bool
)

var rootCmd = &cobra.Command{
	Use:     "cbasic [program]",
	Short:   "an interpreter for a dialect of Microsoft BASIC 1.1",
	Version: "1.1",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runInterp,
}

func init() {
	rootCmd.Flags().UintVar(&memLimit, "mem-limit", defaultMemLimit, "simulated memory size in bytes")
	rootCmd.Flags().IntVar(&heapCap, "heap-limit", defaultHeapCap, "string heap capacity in bytes")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "abort after this long (0 disables)")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "log every executed statement to stderr")
	rootCmd.Flags().BoolVar(&dump, "dump", false, "dump variable and array state on exit")
}

// runInterp builds and runs an Interp over the given program file (if any)
// chained with stdin, grounded on the teacher's main func (main.go): a
// logio.Logger sent to stderr, options built from flags, an optional dump
// hook, an optional trace wrap, and a context carrying the timeout flag.
func runInterp(cmd *cobra.Command, args []string) error {
	var log logio.Logger
	log.SetOutput(discardCloser{os.Stderr})
	defer func() { os.Exit(log.ExitCode()) }()

	var readers []io.Reader
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			log.ErrorIf(err)
			return nil
		}
		defer f.Close()
		readers = append(readers, f)
	}
	readers = append(readers, os.Stdin)

	in := New(
		WithInput(newProgramInput(readers...)),
		WithOutput(os.Stdout),
		WithMemLimit(memLimit),
		WithHeapLimit(heapCap),
		WithTrace(trace),
		WithLog(discardCloser{os.Stderr}),
	)
	defer in.Close()

	if dump {
		defer (&dumper{in: in, out: os.Stderr}).dump()
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.ErrorIf(in.Run(ctx))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
