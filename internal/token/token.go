package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string      // Raw text as it appeared in the source
	Literal interface{} // Decoded payload: float64, uint8 or string
	Line    int         // Newlines seen before the token (1-based)
	Column  int         // Characters since the last newline (1-based)
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Literals
	NUMBER  TokenType = "NUMBER"
	BYTE    TokenType = "BYTE"
	STRING  TokenType = "STRING"
	LITERAL TokenType = "LITERAL" // bare identifier

	// Punctuation
	DOLLAR       TokenType = "$"
	HASH         TokenType = "#"
	COMMA        TokenType = ","
	SEMICOLON    TokenType = ";"
	LPAREN       TokenType = "("
	RPAREN       TokenType = ")"
	LBRACKET     TokenType = "["
	RBRACKET     TokenType = "]"
	LBRACE       TokenType = "{"
	RBRACE       TokenType = "}"
	DOUBLE_COLON TokenType = "::"

	// Operators
	ASSIGN          TokenType = "="
	COMPOUND_ASSIGN TokenType = "op="
	EQ              TokenType = "=="
	NOT_EQ          TokenType = "!="
	GT              TokenType = ">"
	LT              TokenType = "<"
	GT_EQ           TokenType = ">="
	LT_EQ           TokenType = "<="
	AND             TokenType = "&&"
	OR              TokenType = "||"
	BANG            TokenType = "!"
	PLUS            TokenType = "+"
	MINUS           TokenType = "-"
	ASTERISK        TokenType = "*"
	SLASH           TokenType = "/"
	DOT             TokenType = "."
	TILDE           TokenType = "~"
	AMPERSAND       TokenType = "&"
	PIPE            TokenType = "|"
	CARET           TokenType = "^"

	// Keywords
	TRUE    TokenType = "TRUE"
	FALSE   TokenType = "FALSE"
	FUNCDEF TokenType = "FUNCDEF"
	FUNC    TokenType = "FUNC"
	RET     TokenType = "RET"
	IF      TokenType = "IF"
	ELIF    TokenType = "ELIF"
	ELSE    TokenType = "ELSE"
	WHILE   TokenType = "WHILE"
)

var keywords = map[string]TokenType{
	"true":    TRUE,
	"false":   FALSE,
	"funcdef": FUNCDEF,
	"func":    FUNC,
	"ret":     RET,
	"if":      IF,
	"elif":    ELIF,
	"else":    ELSE,
	"while":   WHILE,
}

// LookupIdent returns the keyword type for ident, or LITERAL.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return LITERAL
}

var operators = map[string]TokenType{
	"=":  ASSIGN,
	"==": EQ,
	"!=": NOT_EQ,
	">":  GT,
	"<":  LT,
	">=": GT_EQ,
	"<=": LT_EQ,
	"&&": AND,
	"||": OR,
	"!":  BANG,
	"+":  PLUS,
	"-":  MINUS,
	"*":  ASTERISK,
	"/":  SLASH,
	".":  DOT,
	"~":  TILDE,
	"&":  AMPERSAND,
	"|":  PIPE,
	"^":  CARET,
}

// arithmetic symbols that may be followed by '=' to form a compound assignment
var compoundable = map[string]bool{
	"+": true,
	"-": true,
	"*": true,
	"/": true,
	"~": true,
	"&": true,
	"|": true,
	"^": true,
}

// LookupOperator resolves a greedily grouped run of operator characters.
func LookupOperator(group string) (TokenType, bool) {
	if tok, ok := operators[group]; ok {
		return tok, true
	}
	if len(group) == 2 && group[1] == '=' && compoundable[group[:1]] {
		return COMPOUND_ASSIGN, true
	}
	return ILLEGAL, false
}

// IsOperatorChar reports whether ch belongs to the operator character class.
func IsOperatorChar(ch rune) bool {
	switch ch {
	case '+', '-', '*', '/', '!', '&', '|', '~', '^', '.', '=', '>', '<':
		return true
	}
	return false
}

// CompoundOperator returns the arithmetic operator of a compound assignment lexeme ("+=" -> "+").
func CompoundOperator(lexeme string) string {
	if len(lexeme) == 2 && lexeme[1] == '=' {
		return lexeme[:1]
	}
	return lexeme
}
