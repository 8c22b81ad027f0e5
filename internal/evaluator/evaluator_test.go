package evaluator

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/lexer"
	"github.com/funvibe/sigil/internal/parser"
)

type session struct {
	eval *Evaluator
	env  *Environment
	out  *bytes.Buffer
}

func newSession() *session {
	e := New()
	out := &bytes.Buffer{}
	e.Out = out
	return &session{eval: e, env: e.NewRootEnvironment(), out: out}
}

// run parses and evaluates input, returning the value of the last expression.
func (s *session) run(t *testing.T, input string) (Object, error) {
	t.Helper()
	program, err := parser.New(lexer.New(input)).ParseProgram()
	require.NoError(t, err, "parse %q", input)
	return s.eval.EvalProgram(program, s.env)
}

func testEval(t *testing.T, input string) Object {
	t.Helper()
	result, err := newSession().run(t, input)
	require.NoError(t, err, "eval %q", input)
	return result
}

func testEvalError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	_, err := newSession().run(t, input)
	require.Error(t, err, "eval %q", input)
	var de *diagnostics.DiagnosticError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code, de.Error())
	return de
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2 + 2 + 3 + 4", "11"},
		{"2 + 2 + 3 - 4 + 4 * 8 + 6 / 2", "38"},
		{"(2+2)*(2+2)", "16"},
		{"-3 + +1", "-2"},
		{"7 / 2", "3.5"},
		{"250b + 10b", "4b"},
		{"3b - 5b", "254b"},
		{"12b & 10b", "8b"},
		{"12b | 3b", "15b"},
		{"12b ^ 4b", "8b"},
		{"9b / 2b", "4b"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, testEval(t, tt.input).Inspect())
		})
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello world" - "o"`, `"hell world"`},
		{`"ab" * 3`, `"ababab"`},
		{`"a" ~ "b"`, `"ab"`},
		{`"a" < "b"`, "true"},
		{"[1,2] ~ [3]", "[1,2,3]"},
		{"{a = 1} ~ {b = 2}", `{"a"=1,"b"=2}`},
		{"[1,2] + [10,20]", "[11,22]"},
		{"[1,2] * 2", "[2,4]"},
		{"2 * [1,2]", "[2,4]"},
		{`"ab" * [1, 2]`, `["ab","abab"]`},
		{"2b * [1b, 2b]", "[2b,4b]"},
		{`"" * 100000000000000000000`, `""`},
		{"-[1,[2]]", "[-1,[-2]]"},
		{"true && false", "false"},
		{"true || false", "true"},
		{"true & true", "true"},
		{"false | true", "true"},
		{"!true", "false"},
		{"1 <= 1", "true"},
		{"2b > 1b", "true"},
		{"[1,{a=2}] == [1,{a=2}]", "true"},
		{"[1,2] != [1,2,3]", "true"},
		{`1 == "1"`, "false"},
		{"#print == #print", "true"},
		{"func(){} == func(){}", "false"},
		{"funcdef f() {} #f == #f", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, testEval(t, tt.input).Inspect())
		})
	}
}

func TestOperatorErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostics.ErrorCode
	}{
		{"1/0", diagnostics.ErrR020},
		{"1b/0b", diagnostics.ErrR020},
		{`"ab" * -1`, diagnostics.ErrR020},
		{`"ab" * 1.5`, diagnostics.ErrR007},
		{`"a" * 100000000000000000000`, diagnostics.ErrR020},
		{`"ab" * 5000000000000000000`, diagnostics.ErrR020},
		{"[1,2] + [1,2,3]", diagnostics.ErrR020},
		{`1 + "a"`, diagnostics.ErrR010},
		{"1 && true", diagnostics.ErrR010},
		{"{a=1} ~ {a=2}", diagnostics.ErrR017},
		{"!1", diagnostics.ErrR011},
		{`-"a"`, diagnostics.ErrR011},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testEvalError(t, tt.input, tt.code)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	err := testEvalError(t, "[1,2] + [1,2,3]", diagnostics.ErrR020)
	assert.Contains(t, err.Message, "2 and 3")

	err = testEvalError(t, `1 + "a"`, diagnostics.ErrR010)
	assert.Equal(t, "undefined infix operation: number + string", err.Message)

	err = testEvalError(t, "true * [1]", diagnostics.ErrR010)
	assert.Equal(t, "undefined infix operation: boolean * number", err.Message, "the array broadcasts first")

	err = testEvalError(t, "[1,2][2]", diagnostics.ErrR015)
	assert.Equal(t, "index 2 out of bounds for length 2", err.Message)
}

func TestVariablePersistence(t *testing.T) {
	s := newSession()
	first, err := s.run(t, "$test = 2+2+3-4+4*8+6/2")
	require.NoError(t, err)
	second, err := s.run(t, "$test")
	require.NoError(t, err)

	assert.Equal(t, "38", first.Inspect())
	assert.Equal(t, "38", second.Inspect())
}

func TestFunctions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"definition_and_call", "funcdef hi($x){ret $x;} hi(2)+2", "4"},
		{"no_ret_is_void", "funcdef f() { 1 } f()", "void"},
		{"bare_ret", "funcdef f() { ret; 1 } f()", "void"},
		{"extra_arguments_ignored", "funcdef two($a, $b) { ret $a + $b } two(1, 2, 3)", "3"},
		{"recursion", "funcdef fib($n) { if $n < 2 { ret $n } ret fib($n - 1) + fib($n - 2) } fib(10)", "55"},
		{"ret_inside_while", "funcdef f() { $i = 0; while true { $i += 1; if $i == 3 { ret $i } } } f()", "3"},
		{"call_builtin", `call #len "abc"`, "3"},
		{"lambda_value", "$sq = func($x) { ret $x * $x } call $sq 4", "16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, testEval(t, tt.input).Inspect())
		})
	}
}

func TestParameterCountMismatch(t *testing.T) {
	testEvalError(t, "funcdef two($a, $b) { ret $a } two(1)", diagnostics.ErrR013)
	testEvalError(t, "len()", diagnostics.ErrR013)
}

func TestClosures(t *testing.T) {
	t.Run("captures_defining_environment", func(t *testing.T) {
		input := `
funcdef make($x) { ret func($y) { ret $x + $y } }
$add = make(10)
call $add 5`
		assert.Equal(t, "15", testEval(t, input).Inspect())
	})

	t.Run("not_call_site_environment", func(t *testing.T) {
		input := `
$x = 1
$f = func() { ret $x }
funcdef g($x) { ret call($f) }
g(99)`
		assert.Equal(t, "1", testEval(t, input).Inspect())
	})

	t.Run("mutates_captured_state", func(t *testing.T) {
		input := `
funcdef counter() { $n = 0; ret func() { $n += 1; ret $n } }
$c = counter()
call $c
call $c`
		assert.Equal(t, "2", testEval(t, input).Inspect())
	})

	t.Run("parameters_shadow", func(t *testing.T) {
		s := newSession()
		_, err := s.run(t, "$x = 1; funcdef f($x) { $x = 5; ret $x } f(2)")
		require.NoError(t, err)
		x, err := s.run(t, "$x")
		require.NoError(t, err)
		assert.Equal(t, "1", x.Inspect())
	})

	t.Run("assignment_writes_through", func(t *testing.T) {
		assert.Equal(t, "5", testEval(t, "$z = 1; funcdef g() { $z = 5 } g(); $z").Inspect())
	})

	t.Run("local_shadows", func(t *testing.T) {
		s := newSession()
		inner, err := s.run(t, `$z = 1; funcdef f() { local("z", 3); ret $z } f()`)
		require.NoError(t, err)
		outer, err := s.run(t, "$z")
		require.NoError(t, err)
		assert.Equal(t, "3", inner.Inspect())
		assert.Equal(t, "1", outer.Inspect())
	})
}

func TestReferences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"array_element", "$a = [1,2,3]; $a[0] = 9; $a", "[9,2,3]"},
		{"aliases_share_cells", "$a = [1,2,3]; $b = $a; $b[1] = 5; $a", "[1,5,3]"},
		{"object_field", "$o = {k = 1}; $o.k = 2; $o.k += 3; $o", `{"k"=5}`},
		{"nested", "$a = [[1], 2]; $a[0][0] = 7; $a", "[[7],2]"},
		{"dot_number", "$a = [1, 2]; $a.1 = 3; $a", "[1,3]"},
		{"dot_number_chain", "$a = [[1, 2]]; $a.0.1", "2"},
		{"assignment_value", "$a = [0]; $a[0] = 4", "4"},
		{"compound_element", "$a = [1]; $a[0] *= 10; $a[0]", "10"},
		{"clone_is_deep", "$a = [[1], 2]; $b = clone $a; $b[0][0] = 5; $a", "[[1],2]"},
		{"clone_copies", "$a = [[1], 2]; $b = clone $a; $b[0][0] = 5; $b", "[[5],2]"},
		{"append_is_new_array", "$a = [1]; $b = $a ~ [2]; $b[0] = 9; $a", "[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, testEval(t, tt.input).Inspect())
		})
	}
}

func TestIndexErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostics.ErrorCode
	}{
		{"[1,2][2]", diagnostics.ErrR015},
		{"[1][-1]", diagnostics.ErrR015},
		{"[1][0.5]", diagnostics.ErrR007},
		{"{a=1}.b", diagnostics.ErrR016},
		{`[1]["a"]`, diagnostics.ErrR010},
		{"{a=1, a=2}", diagnostics.ErrR017},
		{"1 = 2", diagnostics.ErrR009},
		{"$a = 1; $a + 1 = 2", diagnostics.ErrR009},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testEvalError(t, tt.input, tt.code)
		})
	}
}

func TestNoShortCircuit(t *testing.T) {
	s := newSession()
	result, err := s.run(t, `
funcdef t($m, $v) { print $m; ret $v }
t("left", true) || t("right", false)`)
	require.NoError(t, err)
	assert.Equal(t, "true", result.Inspect())
	assert.Equal(t, "right\nleft\n", s.out.String())

	s = newSession()
	result, err = s.run(t, `
funcdef t($m, $v) { print $m; ret $v }
t("left", false) && t("right", true)`)
	require.NoError(t, err)
	assert.Equal(t, "false", result.Inspect())
	assert.Equal(t, "right\nleft\n", s.out.String())
}

func TestNewlineEndsStatements(t *testing.T) {
	s := newSession()
	result, err := s.run(t, `
$n = 2
print "n" $n
$sq = $n * $n
print $sq
$i = 0
while $i < 2 {
  print "i" $i
  $i += 1
}
$sq`)
	require.NoError(t, err)
	assert.Equal(t, "4", result.Inspect())
	assert.Equal(t, "n 2\n4\ni 0\ni 1\n", s.out.String())
}

func TestControlFlow(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`if 1 < 2 { "yes" } else { "no" }`, `"yes"`},
		{`if 1 > 2 { "yes" } elif true { "elif" } else { "no" }`, `"elif"`},
		{`if 1 > 2 { "yes" } else { "no" }`, `"no"`},
		{"if false { 1 }", "void"},
		{"$i = 0; while $i < 5 { $i += 1 }; $i", "5"},
		{"while false { }", "void"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, testEval(t, tt.input).Inspect())
		})
	}

	testEvalError(t, "if 1 { }", diagnostics.ErrR007)
	testEvalError(t, "while 0 { }", diagnostics.ErrR007)
	testEvalError(t, "ret 1", diagnostics.ErrR021)
}

const animals = `
class Animal {
	funcdef init($name) { ret {name = $name} }
	funcdef to_string($self) { ret "animal " ~ $self.name }
}
class Dog extends Animal {
	funcdef bark($self) { ret "woof" }
}
$d = Dog("rex")
`

func TestClasses(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"inherited_method", "$d::to_string()", `"animal rex"`},
		{"own_method", "$d::bark()", `"woof"`},
		{"string_uses_to_string", "string $d", `"animal rex"`},
		{"type_is_class", "type $d", `"Dog"`},
		{"fields_still_indexable", "$d.name", `"rex"`},
		{"intrinsic_fallback", "$d::keys()", `["name"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, testEval(t, animals+tt.input).Inspect())
		})
	}

	err := testEvalError(t, animals+"$d::fly()", diagnostics.ErrR014)
	assert.Contains(t, err.Message, "Dog")
}

func TestClassEdgeCases(t *testing.T) {
	t.Run("empty_constructor", func(t *testing.T) {
		result := testEval(t, `class P { funcdef to_string($self) { ret "P!" } } $p = P(); string $p`)
		assert.Equal(t, `"P!"`, result.Inspect())
	})

	t.Run("tagged_scalar", func(t *testing.T) {
		input := `
class N {
	funcdef init($v) { ret $v }
	funcdef double($self) { ret $self * 2 }
}
$n = N(4)
`
		assert.Equal(t, "8", testEval(t, input+"$n::double()").Inspect())
		assert.Equal(t, `"N"`, testEval(t, input+"$n::type()").Inspect())
		assert.Equal(t, "5", testEval(t, input+"$n + 1").Inspect())
	})

	t.Run("constructor_returning_argument", func(t *testing.T) {
		input := `
class C { funcdef init($a) { ret $a } }
$arr = [1]
$c = C($arr)
`
		assert.Equal(t, `"array"`, testEval(t, input+"type $arr").Inspect())
		assert.Equal(t, `"C"`, testEval(t, input+"type $c").Inspect())
		assert.Equal(t, "[1]", testEval(t, input+"$c[0] = 2; $arr").Inspect())
	})

	t.Run("override", func(t *testing.T) {
		input := `
class A { funcdef who($self) { ret "a" } }
class B extends A { funcdef who($self) { ret "b" } }
B()::who()`
		assert.Equal(t, `"b"`, testEval(t, input).Inspect())
	})

	testEvalError(t, "5::nope()", diagnostics.ErrR014)
	testEvalError(t, "class B extends Nope {}", diagnostics.ErrR003)
	testEvalError(t, "class A {} class A {}", diagnostics.ErrR004)
	testEvalError(t, "class A { funcdef f() {} funcdef f() {} }", diagnostics.ErrR004)
}

func TestNameResolution(t *testing.T) {
	testEvalError(t, "$nope", diagnostics.ErrR001)
	testEvalError(t, "nope()", diagnostics.ErrR002)
	testEvalError(t, "#nope", diagnostics.ErrR002)
	testEvalError(t, "funcdef f() {} funcdef f() {}", diagnostics.ErrR004)
}

func TestHooks(t *testing.T) {
	s := newSession()
	result, err := s.run(t, `
$store = 0
hook("x", func() { ret $store * 2 }, func($v) { $store = $v })
$x = 21
$x`)
	require.NoError(t, err)
	assert.Equal(t, "42", result.Inspect())

	store, err := s.run(t, "$store")
	require.NoError(t, err)
	assert.Equal(t, "21", store.Inspect())

	_, err = s.run(t, `funcdef nothing() {} hook("y", func() { ret 1 }, nothing()) $y = 2`)
	require.Error(t, err)
	assert.True(t, diagnostics.Is(err, diagnostics.ErrR009), err.Error())

	result, err = s.run(t, "hook \"z\" func() { ret 3 } void\n$z")
	require.NoError(t, err)
	assert.Equal(t, "3", result.Inspect())
	_, err = s.run(t, "$z = 4")
	require.Error(t, err)
	assert.True(t, diagnostics.Is(err, diagnostics.ErrR009), err.Error())
}

func TestErrorPositionFromBuiltin(t *testing.T) {
	err := testEvalError(t, "$x = 1\nint \"abc\"", diagnostics.ErrR008)
	assert.Equal(t, 2, err.Token.Line)
	assert.Equal(t, 1, err.Token.Column)
}

func TestTraceLogging(t *testing.T) {
	s := newSession()
	var logs bytes.Buffer
	s.eval.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := s.run(t, "class A {} funcdef f() { } f(); A()")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "msg=call function=f")
	assert.Contains(t, logs.String(), "msg=class name=A")
	assert.Contains(t, logs.String(), "msg=construct class=A")
}
