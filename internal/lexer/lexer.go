package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
	afterDot     bool // last token was '.', so a number is an integer key
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// NextToken returns the next token. Once the input is exhausted it keeps
// returning EOF.
func (l *Lexer) NextToken() (token.Token, error) {
	tok, err := l.next()
	l.afterDot = err == nil && tok.Type == token.DOT
	return tok, err
}

func (l *Lexer) next() (token.Token, error) {
	l.skipWhitespace()

	line, col := l.line, l.column
	if l.atEnd() {
		return token.Token{Type: token.EOF, Lexeme: "", Literal: "", Line: line, Column: col}, nil
	}

	switch l.ch {
	case '$':
		return l.single(token.DOLLAR), nil
	case '#':
		return l.single(token.HASH), nil
	case ',':
		return l.single(token.COMMA), nil
	case ';':
		return l.single(token.SEMICOLON), nil
	case '(':
		return l.single(token.LPAREN), nil
	case ')':
		return l.single(token.RPAREN), nil
	case '[':
		return l.single(token.LBRACKET), nil
	case ']':
		return l.single(token.RBRACKET), nil
	case '{':
		return l.single(token.LBRACE), nil
	case '}':
		return l.single(token.RBRACE), nil
	case ':':
		if l.peekChar() != ':' {
			return token.Token{}, diagnostics.NewError(diagnostics.ErrL001, l.here(), "unexpected symbol ':'")
		}
		l.readChar()
		l.readChar()
		return token.Token{Type: token.DOUBLE_COLON, Lexeme: "::", Literal: "::", Line: line, Column: col}, nil
	case '"':
		return l.readString()
	}

	if isDigit(l.ch) {
		return l.readNumber()
	}
	if isLetter(l.ch) {
		ident := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Literal: ident, Line: line, Column: col}, nil
	}
	if token.IsOperatorChar(l.ch) {
		return l.readOperator()
	}

	return token.Token{}, diagnostics.NewError(diagnostics.ErrL001, l.here(), "unexpected symbol %q", l.ch)
}

// Tokens drains the lexer, excluding the final EOF token.
func (l *Lexer) Tokens() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		if tok.Type == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) here() token.Token {
	return token.Token{Type: token.ILLEGAL, Lexeme: string(l.ch), Literal: string(l.ch), Line: l.line, Column: l.column}
}

func (l *Lexer) single(tokenType token.TokenType) token.Token {
	tok := newToken(tokenType, l.ch, l.line, l.column)
	l.readChar()
	return tok
}

func (l *Lexer) readString() (token.Token, error) {
	line, col := l.line, l.column
	start := l.readPosition
	for {
		l.readChar()
		if l.atEnd() {
			return token.Token{}, diagnostics.NewError(diagnostics.ErrL002,
				token.Token{Type: token.ILLEGAL, Line: line, Column: col}, "unterminated string literal")
		}
		if l.ch == '"' {
			break
		}
	}
	content := l.input[start:l.position]
	l.readChar() // closing quote
	return token.Token{Type: token.STRING, Lexeme: `"` + content + `"`, Literal: content, Line: line, Column: col}, nil
}

// readNumber reads digits with at most one fractional part. The first '.'
// followed by a digit starts the fraction; any further '.' is rejected.
// Right after a '.' token the number is integral, so $a.0.1 chains.
// A 'b' suffix turns an integral value in 0..255 into a byte literal.
func (l *Lexer) readNumber() (token.Token, error) {
	line, col := l.line, l.column
	start := l.position
	var mantissa uint64
	fraction := false

	for {
		if isDigit(l.ch) {
			mantissa = mantissa*10 + uint64(l.ch-'0')
			l.readChar()
			continue
		}
		if l.ch == '.' {
			if l.afterDot {
				break
			}
			if fraction {
				return token.Token{}, diagnostics.NewError(diagnostics.ErrL001, l.here(), "unexpected symbol '.'")
			}
			if !isDigit(l.peekChar()) {
				break
			}
			fraction = true
			l.readChar()
			continue
		}
		break
	}

	lexeme := l.input[start:l.position]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return token.Token{}, diagnostics.NewError(diagnostics.ErrL004,
			token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: line, Column: col}, "invalid number %s", lexeme)
	}

	if l.ch != 'b' {
		return token.Token{Type: token.NUMBER, Lexeme: lexeme, Literal: value, Line: line, Column: col}, nil
	}

	errTok := token.Token{Type: token.ILLEGAL, Lexeme: lexeme + "b", Line: line, Column: col}
	if fraction {
		return token.Token{}, diagnostics.NewError(diagnostics.ErrL001, l.here(), "unexpected symbol 'b' after fractional number %s", lexeme)
	}
	if value > 255 {
		return token.Token{}, diagnostics.NewError(diagnostics.ErrL004, errTok, "byte literal %sb out of bounds (0..255)", lexeme)
	}
	l.readChar() // b
	return token.Token{Type: token.BYTE, Lexeme: lexeme + "b", Literal: uint8(mantissa), Line: line, Column: col}, nil
}

// readIdentifier returns the identifier in NFC form, so precomposed and
// decomposed spellings name the same thing.
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) || unicode.IsDigit(l.ch) || unicode.Is(unicode.Mn, l.ch) {
		l.readChar()
	}
	return norm.NFC.String(l.input[start:l.position])
}

// readOperator groups consecutive operator characters greedily and resolves
// the group against the operator table.
func (l *Lexer) readOperator() (token.Token, error) {
	line, col := l.line, l.column
	start := l.position
	for !l.atEnd() && token.IsOperatorChar(l.ch) {
		l.readChar()
	}
	group := l.input[start:l.position]
	tokType, ok := token.LookupOperator(group)
	if !ok {
		return token.Token{}, diagnostics.NewError(diagnostics.ErrL003,
			token.Token{Type: token.ILLEGAL, Lexeme: group, Literal: group, Line: line, Column: col},
			"invalid operator %q", group)
	}
	return token.Token{Type: tokType, Lexeme: group, Literal: group, Line: line, Column: col}, nil
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	literal := string(ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		if unicode.IsSpace(l.ch) {
			l.readChar()
			continue
		}
		// Line comments
		if l.ch == '/' && l.peekChar() == '/' {
			for !l.atEnd() && l.ch != '\n' {
				l.readChar()
			}
			continue
		}
		break
	}
}
