package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wippyai/stackgen/codebuf"
	"github.com/wippyai/stackgen/wasmlower"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	var (
		file        = flag.String("f", "", "Script file (default stdin)")
		wide        = flag.Bool("wide", false, "Always use ldc_w for single-word constants")
		lower       = flag.Bool("wasm", false, "Lower to WebAssembly and execute")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()
		codebuf.SetLogger(logger)
		wasmlower.SetLogger(logger)
	}

	opts := options{wide: *wide, wasm: *lower}

	if *interactive {
		if err := runInteractive(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*file, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file string, opts options, out io.Writer) error {
	in := io.Reader(os.Stdin)
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	s, err := parseScript(in)
	if err != nil {
		return err
	}

	r := assemble(context.Background(), s, opts)
	st := plainStyles()
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		st = colorStyles()
	}
	fmt.Fprint(out, r.render(st))
	if r.err != nil {
		return r.err
	}
	return r.wasmErr
}
