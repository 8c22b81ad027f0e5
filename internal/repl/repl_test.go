package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/sigil/internal/config"
	"github.com/funvibe/sigil/internal/evaluator"
)

func runREPL(t *testing.T, input, color string) (string, string) {
	t.Helper()
	return runREPLWith(t, input, color, nil)
}

// runREPLWith lets setup add definitions to the root environment first.
func runREPLWith(t *testing.T, input, color string, setup func(*evaluator.Environment)) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	settings := config.DefaultSettings()
	settings.Color = color

	eval := evaluator.New()
	eval.Out = &out
	env := eval.NewRootEnvironment()
	if setup != nil {
		setup(env)
	}
	r := New(strings.NewReader(input), &out, &errOut, settings, eval, env)
	require.NoError(t, r.Run())
	return out.String(), errOut.String()
}

func TestRunPrintsResults(t *testing.T) {
	out, errOut := runREPL(t, "1 + 2\n$a = 5\n$a * 2\nprint \"hi\"\n", config.ColorNever)
	assert.Equal(t, "sigil> 3\nsigil> 5\nsigil> 10\nsigil> hi\nsigil> \n", out)
	assert.Empty(t, errOut)
}

func TestRunContinuesAfterErrors(t *testing.T) {
	out, errOut := runREPL(t, "$nope\n1 +* 2\n3\n", config.ColorNever)
	assert.Equal(t, "sigil> sigil> sigil> 3\nsigil> \n", out)
	assert.Contains(t, errOut, "1:1: [R001] variable $nope not found")
	assert.Contains(t, errOut, "[L003]")
}

func TestRunErrorStopsCurrentInput(t *testing.T) {
	out, errOut := runREPL(t, "$x = 1; $nope; $x = 2\n$x\n", config.ColorNever)
	assert.Contains(t, errOut, "[R001]")
	assert.Equal(t, "sigil> 1\nsigil> 1\nsigil> \n", out)
}

func TestRunRecoversFromPanics(t *testing.T) {
	explode := &evaluator.Builtin{
		Name: "explode",
		Fn: func(*evaluator.CallContext, []evaluator.Object) (evaluator.Object, error) {
			panic("boom")
		},
	}
	out, errOut := runREPLWith(t, "explode()\n1 + 1\n", config.ColorNever, func(env *evaluator.Environment) {
		require.NoError(t, env.TryDefineFunction("explode", explode, true))
	})
	assert.Equal(t, "internal error: boom\n", errOut)
	assert.Equal(t, "sigil> sigil> 2\nsigil> \n", out)
}

func TestRunRepetitionLimit(t *testing.T) {
	out, errOut := runREPL(t, "\"a\" * 100000000000000000000\n1 + 1\n", config.ColorNever)
	assert.Contains(t, errOut, "[R020]")
	assert.Contains(t, out, "sigil> 2\n")
}

func TestRunContinuation(t *testing.T) {
	out, errOut := runREPL(t, "funcdef f() {\n  ret 7\n}\nf()\n", config.ColorNever)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "sigil>    ...    ... #f\n")
	assert.Contains(t, out, "sigil> 7\n")
}

func TestRunMultilineString(t *testing.T) {
	out, errOut := runREPL(t, "\"abc\ndef\"\n", config.ColorNever)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "\"abc\ndef\"\n")
}

func TestRunReportsUnfinishedInput(t *testing.T) {
	_, errOut := runREPL(t, "(1 +\n", config.ColorNever)
	assert.Contains(t, errOut, "[P001]")
}

func TestRunColor(t *testing.T) {
	out, errOut := runREPL(t, "3\n$nope\n", config.ColorAlways)
	assert.Contains(t, out, colorCyan+"3"+colorReset)
	assert.True(t, strings.HasPrefix(errOut, colorRed))
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, UseColor(config.ColorAlways, &buf))
	assert.False(t, UseColor(config.ColorNever, &buf))
	assert.False(t, UseColor(config.ColorAuto, &buf))

	t.Setenv("NO_COLOR", "1")
	assert.True(t, UseColor(config.ColorAlways, &buf))
	assert.False(t, UseColor(config.ColorAuto, &buf))
}
