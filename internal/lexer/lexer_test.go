package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `$five = 5;
funcdef add($x, $y) { ret $x + $y; }
$s = "hello world" ~ "!"
$b = 12b & 3b
if $a >= 1.5 { $a -= 1 } elif !$c { } else { }
$o.k::len() #add [1, 2]
while $x != 0 && $y <= 2 || $z == 3 {}
`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
	}{
		{token.DOLLAR, "$"},
		{token.LITERAL, "five"},
		{token.ASSIGN, "="},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},

		{token.FUNCDEF, "funcdef"},
		{token.LITERAL, "add"},
		{token.LPAREN, "("},
		{token.DOLLAR, "$"},
		{token.LITERAL, "x"},
		{token.COMMA, ","},
		{token.DOLLAR, "$"},
		{token.LITERAL, "y"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RET, "ret"},
		{token.DOLLAR, "$"},
		{token.LITERAL, "x"},
		{token.PLUS, "+"},
		{token.DOLLAR, "$"},
		{token.LITERAL, "y"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},

		{token.DOLLAR, "$"},
		{token.LITERAL, "s"},
		{token.ASSIGN, "="},
		{token.STRING, `"hello world"`},
		{token.TILDE, "~"},
		{token.STRING, `"!"`},

		{token.DOLLAR, "$"},
		{token.LITERAL, "b"},
		{token.ASSIGN, "="},
		{token.BYTE, "12b"},
		{token.AMPERSAND, "&"},
		{token.BYTE, "3b"},

		{token.IF, "if"},
		{token.DOLLAR, "$"},
		{token.LITERAL, "a"},
		{token.GT_EQ, ">="},
		{token.NUMBER, "1.5"},
		{token.LBRACE, "{"},
		{token.DOLLAR, "$"},
		{token.LITERAL, "a"},
		{token.COMPOUND_ASSIGN, "-="},
		{token.NUMBER, "1"},
		{token.RBRACE, "}"},
		{token.ELIF, "elif"},
		{token.BANG, "!"},
		{token.DOLLAR, "$"},
		{token.LITERAL, "c"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.ELSE, "else"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},

		{token.DOLLAR, "$"},
		{token.LITERAL, "o"},
		{token.DOT, "."},
		{token.LITERAL, "k"},
		{token.DOUBLE_COLON, "::"},
		{token.LITERAL, "len"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.HASH, "#"},
		{token.LITERAL, "add"},
		{token.LBRACKET, "["},
		{token.NUMBER, "1"},
		{token.COMMA, ","},
		{token.NUMBER, "2"},
		{token.RBRACKET, "]"},

		{token.WHILE, "while"},
		{token.DOLLAR, "$"},
		{token.LITERAL, "x"},
		{token.NOT_EQ, "!="},
		{token.NUMBER, "0"},
		{token.AND, "&&"},
		{token.DOLLAR, "$"},
		{token.LITERAL, "y"},
		{token.LT_EQ, "<="},
		{token.NUMBER, "2"},
		{token.OR, "||"},
		{token.DOLLAR, "$"},
		{token.LITERAL, "z"},
		{token.EQ, "=="},
		{token.NUMBER, "3"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},

		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		require.NoError(t, err, "tests[%d]", i)
		assert.Equal(t, tt.expectedType, tok.Type, "tests[%d] - type, lexeme %q", i, tok.Lexeme)
		assert.Equal(t, tt.expectedLexeme, tok.Lexeme, "tests[%d] - lexeme", i)
	}

	// EOF repeats
	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, token.EOF, tok.Type)
}

func TestLiterals(t *testing.T) {
	tokens, err := New(`42 3.25 255b 0b "a b" true false`).Tokens()
	require.NoError(t, err)
	require.Len(t, tokens, 7)

	assert.Equal(t, 42.0, tokens[0].Literal)
	assert.Equal(t, 3.25, tokens[1].Literal)
	assert.Equal(t, uint8(255), tokens[2].Literal)
	assert.Equal(t, uint8(0), tokens[3].Literal)
	assert.Equal(t, "a b", tokens[4].Literal)
	assert.Equal(t, token.TRUE, tokens[5].Type)
	assert.Equal(t, token.FALSE, tokens[6].Type)
}

func TestNumberAfterDotIsIntegral(t *testing.T) {
	tokens, err := New("$a.0.1 + 0.5").Tokens()
	require.NoError(t, err)

	var got []string
	for _, tok := range tokens {
		got = append(got, string(tok.Type)+" "+tok.Lexeme)
	}
	assert.Equal(t, []string{
		string(token.DOLLAR) + " $",
		string(token.LITERAL) + " a",
		string(token.DOT) + " .",
		string(token.NUMBER) + " 0",
		string(token.DOT) + " .",
		string(token.NUMBER) + " 1",
		string(token.PLUS) + " +",
		string(token.NUMBER) + " 0.5",
	}, got)
	assert.Equal(t, 1.0, tokens[5].Literal)
}

func TestPositions(t *testing.T) {
	tokens, err := New("$a = 1\n  print $a").Tokens()
	require.NoError(t, err)

	type pos struct{ line, col int }
	want := []pos{{1, 1}, {1, 2}, {1, 4}, {1, 6}, {2, 3}, {2, 9}, {2, 10}}
	require.Len(t, tokens, len(want))
	for i, p := range want {
		assert.Equal(t, p.line, tokens[i].Line, "token %d (%s) line", i, tokens[i].Lexeme)
		assert.Equal(t, p.col, tokens[i].Column, "token %d (%s) column", i, tokens[i].Lexeme)
	}
}

func TestCommentsAndUnicode(t *testing.T) {
	tokens, err := New("// a comment\n$größe = 1 // trailing\n$x2").Tokens()
	require.NoError(t, err)
	require.Len(t, tokens, 6)
	assert.Equal(t, "größe", tokens[1].Lexeme)
	assert.Equal(t, "x2", tokens[5].Lexeme)
}

func TestIdentifiersAreNormalized(t *testing.T) {
	precomposed, err := New("caf\u00e9").Tokens()
	require.NoError(t, err)
	decomposed, err := New("cafe\u0301").Tokens()
	require.NoError(t, err)

	require.Len(t, precomposed, 1)
	require.Len(t, decomposed, 1)
	assert.Equal(t, precomposed[0].Lexeme, decomposed[0].Lexeme)
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
	}{
		{"second_dot", "1.2.3", diagnostics.ErrL001},
		{"unterminated_string", `"abc`, diagnostics.ErrL002},
		{"invalid_operator", "$a =- 1", diagnostics.ErrL003},
		{"invalid_operator_group", "1 +* 2", diagnostics.ErrL003},
		{"byte_out_of_bounds", "256b", diagnostics.ErrL004},
		{"fractional_byte", "1.5b", diagnostics.ErrL001},
		{"unknown_symbol", "$a @ 1", diagnostics.ErrL001},
		{"single_colon", "$a:len", diagnostics.ErrL001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input).Tokens()
			require.Error(t, err)
			assert.True(t, diagnostics.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := New("$a = 1\n$b = 300b").Tokens()
	require.Error(t, err)
	var de *diagnostics.DiagnosticError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Token.Line)
	assert.Equal(t, 6, de.Token.Column)
	assert.Equal(t, "2:6: [L004] byte literal 300b out of bounds (0..255)", de.Error())
}
