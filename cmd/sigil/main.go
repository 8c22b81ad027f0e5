package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/funvibe/sigil/internal/config"
	"github.com/funvibe/sigil/internal/evaluator"
	"github.com/funvibe/sigil/internal/lexer"
	"github.com/funvibe/sigil/internal/parser"
	"github.com/funvibe/sigil/internal/pipeline"
	"github.com/funvibe/sigil/internal/prettyprinter"
	"github.com/funvibe/sigil/internal/repl"
)

type options struct {
	eval       string
	dumpTokens bool
	dumpAST    bool
	trace      bool
	configPath string
}

func parseFlags() *options {
	opts := &options{}
	flag.StringVar(&opts.eval, "e", "", "evaluate `code` and print its results")
	flag.BoolVar(&opts.dumpTokens, "dump-tokens", false, "print the token stream and exit")
	flag.BoolVar(&opts.dumpAST, "dump-ast", false, "print the syntax tree and exit")
	flag.BoolVar(&opts.trace, "trace", false, "log calls and class definitions to stderr")
	flag.StringVar(&opts.configPath, "config", "", "settings `file` (default $"+config.SettingsEnvVar+" or ./"+config.SettingsFileName+")")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file%s]\n", filepath.Base(os.Args[0]), config.SourceFileExt)
		flag.PrintDefaults()
	}
	flag.Parse()
	return opts
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	opts := parseFlags()

	wd, _ := os.Getwd()
	settings, err := config.ResolveSettings(opts.configPath, wd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	eval := evaluator.New()
	if opts.trace || settings.Trace {
		eval.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	env := eval.NewRootEnvironment()

	for _, path := range settings.Preload {
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading preload: %s\n", err)
			os.Exit(1)
		}
		if ctx := runPipeline(eval, env, string(source), path); len(ctx.Errors) > 0 {
			reportErrors(os.Stderr, ctx)
			os.Exit(1)
		}
	}

	var source, filePath string
	switch {
	case opts.eval != "":
		source = opts.eval
	case flag.NArg() > 0:
		filePath = flag.Arg(0)
		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			os.Exit(1)
		}
		source = string(data)
	case repl.IsTerminal(os.Stdin) && !opts.dumpTokens && !opts.dumpAST:
		r := repl.New(os.Stdin, os.Stdout, os.Stderr, settings, eval, env)
		if err := r.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		return
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			os.Exit(1)
		}
		source = string(data)
	}

	switch {
	case opts.dumpTokens:
		if err := dumpTokens(os.Stdout, source); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		return
	case opts.dumpAST:
		if err := dumpAST(os.Stdout, source); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		return
	}

	ctx := runPipeline(eval, env, source, filePath)
	if opts.eval != "" {
		for _, result := range ctx.Results {
			if obj, ok := result.(evaluator.Object); ok && obj.Type() == evaluator.VOID_OBJ {
				continue
			}
			fmt.Println(result.Inspect())
		}
	}
	if len(ctx.Errors) > 0 {
		reportErrors(os.Stderr, ctx)
		os.Exit(1)
	}
}

// runPipeline lexes, parses and evaluates source into env.
func runPipeline(eval *evaluator.Evaluator, env *evaluator.Environment, source, filePath string) *pipeline.PipelineContext {
	initialContext := pipeline.NewPipelineContext(source)
	initialContext.FilePath = filePath

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		evaluator.NewEvaluatorProcessor(eval, env),
	)
	return processingPipeline.Run(initialContext)
}

func reportErrors(w io.Writer, ctx *pipeline.PipelineContext) {
	for _, err := range ctx.Errors {
		fmt.Fprintf(w, "%s\n", err.Error())
	}
}

func dumpTokens(w io.Writer, source string) error {
	tokens, err := lexer.New(source).Tokens()
	for _, tok := range tokens {
		fmt.Fprintf(w, "%d:%d\t%s\t%s\n", tok.Line, tok.Column, tok.Type, tok.Lexeme)
	}
	return err
}

func dumpAST(w io.Writer, source string) error {
	program, err := parser.New(lexer.New(source)).ParseProgram()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, prettyprinter.Print(program))
	return nil
}
