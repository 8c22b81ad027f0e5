package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/sigil/internal/config"
	"github.com/funvibe/sigil/internal/evaluator"
)

// TestFunctional runs testdata scripts and compares stdout followed by
// stderr with the matching .want file.
func TestFunctional(t *testing.T) {
	var testFiles []string
	for _, ext := range config.SourceFileExtensions {
		matches, err := filepath.Glob(filepath.Join("testdata", "*"+ext))
		require.NoError(t, err)
		testFiles = append(testFiles, matches...)
	}
	if len(testFiles) == 0 {
		t.Skip("No test files found")
	}

	for _, testFile := range testFiles {
		ext := filepath.Ext(testFile)
		wantFile := strings.TrimSuffix(testFile, ext) + ".want"
		if _, err := os.Stat(wantFile); err != nil {
			continue
		}
		testName := strings.TrimSuffix(filepath.Base(testFile), ext)

		t.Run(testName, func(t *testing.T) {
			source, err := os.ReadFile(testFile)
			require.NoError(t, err)
			wantBytes, err := os.ReadFile(wantFile)
			require.NoError(t, err)

			var stdout, stderr bytes.Buffer
			eval := evaluator.New()
			eval.Out = &stdout
			ctx := runPipeline(eval, eval.NewRootEnvironment(), string(source), filepath.Base(testFile))
			reportErrors(&stderr, ctx)

			got := strings.TrimSpace(stdout.String())
			if errs := strings.TrimSpace(stderr.String()); errs != "" {
				got = strings.TrimSpace(got + "\n" + errs)
			}
			want := strings.TrimSpace(strings.ReplaceAll(string(wantBytes), "\r\n", "\n"))
			assert.Equal(t, want, got)
		})
	}
}

func TestRunPipelineSharesEnvironment(t *testing.T) {
	eval := evaluator.New()
	env := eval.NewRootEnvironment()

	ctx := runPipeline(eval, env, "funcdef twice($x) { ret $x * 2 }", "prelude.sg")
	require.Empty(t, ctx.Errors)

	ctx = runPipeline(eval, env, "twice(21)", "")
	require.Empty(t, ctx.Errors)
	require.Len(t, ctx.Results, 1)
	assert.Equal(t, "42", ctx.Results[0].Inspect())
}

func TestRunPipelineStampsFile(t *testing.T) {
	eval := evaluator.New()
	ctx := runPipeline(eval, eval.NewRootEnvironment(), "$missing", "main.sg")
	require.Len(t, ctx.Errors, 1)
	assert.Equal(t, "main.sg:1:1: [R001] variable $missing not found", ctx.Errors[0].Error())
}

func TestDumpTokens(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, dumpTokens(&out, "$a = 1"))
	assert.Equal(t, "1:1\t$\t$\n1:2\tLITERAL\ta\n1:4\t=\t=\n1:6\tNUMBER\t1\n", out.String())

	out.Reset()
	err := dumpTokens(&out, "$a = 1.2.3")
	require.Error(t, err)
	assert.Contains(t, out.String(), "1:2\tLITERAL\ta")
}

func TestDumpAST(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, dumpAST(&out, "$a = 2 + 3 * 4"))
	assert.Equal(t, "(= $a (+ 2 (* 3 4)))\n", out.String())

	assert.Error(t, dumpAST(&out, "1 +"))
}
