// Command pathprove explores the feasible execution paths of a target
// function, encodes each as an SSA predicate set, and reports a satisfying
// parameter assignment or an unsat core, per spec.md §6.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/pathprove/pathprove/internal/config"
	"github.com/pathprove/pathprove/internal/diagnostics"
	"github.com/pathprove/pathprove/internal/lexer"
	"github.com/pathprove/pathprove/internal/orchestrator"
	"github.com/pathprove/pathprove/internal/parser"
	"github.com/pathprove/pathprove/internal/pipeline"
	"github.com/pathprove/pathprove/internal/report"
)

const usage = `usage: pathprove -i <file> [-d depth] [-t tries] [-r iter] [-f func] [-c 0|1] [--config file] [--no-color] [--version]`

type options struct {
	input    string
	depth    int
	tries    int
	iter     int
	fn       string
	constant int
	cfgPath  string
	noColor  bool
	version  bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}
	if opts.version {
		fmt.Println("pathprove", config.Version)
		return 0
	}
	if !config.HasSourceExt(opts.input) {
		fmt.Fprintf(os.Stderr, "unrecognized source extension for %q (expected one of %v)\n", opts.input, config.SourceFileExtensions)
		return 2
	}

	limits := config.Default()
	if opts.cfgPath != "" {
		loaded, err := config.Load(opts.cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		limits = loaded
	}
	if opts.depth >= 0 {
		limits.MaxDepth = opts.depth
	}
	if opts.tries >= 0 {
		limits.MaxTries = opts.tries
	}
	if opts.iter >= 0 {
		limits.MaxIter = opts.iter
	}
	if opts.fn != "" {
		limits.Func = opts.fn
	}
	if opts.constant >= 0 {
		limits.Constant = opts.constant != 0
	}

	source, err := os.ReadFile(opts.input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx := &pipeline.PipelineContext{SourceCode: string(source), FilePath: opts.input}
	p := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{})
	ctx = p.Run(ctx)

	for _, e := range ctx.Errors {
		fmt.Fprintln(os.Stderr, e.Error())
		if e.Code == diagnostics.CodeParseError {
			return e.Code.ExitCode()
		}
	}
	if ctx.Program == nil || len(ctx.Errors) > 0 {
		return 3
	}

	rep, err := orchestrator.Run(ctx.Program, limits)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 4
	}

	color := !opts.noColor && isatty.IsTerminal(os.Stdout.Fd())
	fmt.Printf("pathprove %s: %s (run %s)\n", config.Version, config.TrimSourceExt(filepath.Base(opts.input)), rep.RunID)
	report.Write(os.Stdout, rep, color)
	return 0
}

func parseArgs(args []string) (*options, error) {
	opts := &options{depth: -1, tries: -1, iter: -1, constant: -1}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		next := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("flag %s requires a value", arg)
			}
			i++
			return args[i], nil
		}
		var err error
		switch arg {
		case "-i", "--input":
			opts.input, err = next()
		case "-d", "--depth":
			opts.depth, err = nextInt(next)
		case "-t", "--tries":
			opts.tries, err = nextInt(next)
		case "-r", "--iter":
			opts.iter, err = nextInt(next)
		case "-f", "--func":
			opts.fn, err = next()
		case "-c", "--constant":
			opts.constant, err = nextInt(next)
		case "--config":
			opts.cfgPath, err = next()
		case "--no-color":
			opts.noColor = true
		case "--version":
			opts.version = true
		default:
			return nil, fmt.Errorf("unrecognized argument: %s", arg)
		}
		if err != nil {
			return nil, err
		}
	}
	if opts.input == "" && !opts.version {
		return nil, fmt.Errorf("missing required flag -i/--input")
	}
	return opts, nil
}

func nextInt(next func() (string, error)) (int, error) {
	s, err := next()
	if err != nil {
		return 0, err
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("expected an integer, got %q", s)
	}
	return n, nil
}
