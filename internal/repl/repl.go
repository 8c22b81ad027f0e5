// Package repl implements the interactive read-eval-print loop.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/config"
	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/evaluator"
	"github.com/funvibe/sigil/internal/lexer"
	"github.com/funvibe/sigil/internal/parser"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
)

// REPL evaluates inputs one after another against a long-lived environment.
type REPL struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	Settings  *config.Settings
	Evaluator *evaluator.Evaluator
	Env       *evaluator.Environment

	color bool
}

func New(in io.Reader, out, errOut io.Writer, settings *config.Settings, eval *evaluator.Evaluator, env *evaluator.Environment) *REPL {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &REPL{
		In:        in,
		Out:       out,
		Err:       errOut,
		Settings:  settings,
		Evaluator: eval,
		Env:       env,
		color:     UseColor(settings.Color, out),
	}
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// UseColor decides whether output to w is colored.
func UseColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && IsTerminal(f) && os.Getenv("TERM") != "dumb"
}

// Run reads until the input is exhausted. An input that ends in the middle
// of a construct is continued on the next line.
func (r *REPL) Run() error {
	scanner := bufio.NewScanner(r.In)
	var pending strings.Builder

	prompt := r.Settings.Prompt
	for {
		fmt.Fprint(r.Out, prompt)
		if !scanner.Scan() {
			break
		}
		pending.WriteString(scanner.Text())
		pending.WriteString("\n")

		program, err := parser.New(lexer.New(pending.String())).ParseProgram()
		if err != nil && incomplete(err) {
			prompt = r.Settings.ContinuationPrompt
			continue
		}
		pending.Reset()
		prompt = r.Settings.Prompt
		if err != nil {
			r.printError(err)
			continue
		}
		r.evalProgram(program)
	}
	fmt.Fprintln(r.Out)

	if pending.Len() > 0 {
		// input ended inside a construct
		_, err := parser.New(lexer.New(pending.String())).ParseProgram()
		if err != nil {
			r.printError(err)
		}
	}
	return scanner.Err()
}

// evalProgram evaluates each unit, printing non-void results. An error ends
// the current input only; so does a host panic, reported as an internal error.
func (r *REPL) evalProgram(program *ast.Program) {
	defer func() {
		if rec := recover(); rec != nil {
			r.printError(fmt.Errorf("internal error: %v", rec))
		}
	}()
	for _, exp := range program.Expressions {
		result, err := r.Evaluator.Eval(exp, r.Env)
		if err != nil {
			r.printError(err)
			return
		}
		if result.Type() == evaluator.VOID_OBJ {
			continue
		}
		r.println(r.Out, colorCyan, result.Inspect())
	}
}

func (r *REPL) printError(err error) {
	r.println(r.Err, colorRed, err.Error())
}

func (r *REPL) println(w io.Writer, color, text string) {
	if r.color {
		fmt.Fprintln(w, color+text+colorReset)
		return
	}
	fmt.Fprintln(w, text)
}

// incomplete reports whether err means the input stopped mid-construct.
func incomplete(err error) bool {
	return diagnostics.Is(err, diagnostics.ErrP001) || diagnostics.Is(err, diagnostics.ErrL002)
}
