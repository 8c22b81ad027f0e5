package parser

import (
	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/pipeline"
	"github.com/funvibe/sigil/internal/token"
)

// Operator precedence, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN      // = +=
	OR          // ||
	AND         // &&
	BIT_OR      // | ^
	BIT_AND     // &
	EQUALS      // == !=
	LESSGREATER // > < >= <=
	SUM         // + - ~
	PRODUCT     // * /
	PREFIX      // !x -x +x
	POSTFIX     // x.k x[i] x::m()
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:          ASSIGN,
	token.COMPOUND_ASSIGN: ASSIGN,
	token.OR:              OR,
	token.AND:             AND,
	token.PIPE:            BIT_OR,
	token.CARET:           BIT_OR,
	token.AMPERSAND:       BIT_AND,
	token.EQ:              EQUALS,
	token.NOT_EQ:          EQUALS,
	token.LT:              LESSGREATER,
	token.GT:              LESSGREATER,
	token.LT_EQ:           LESSGREATER,
	token.GT_EQ:           LESSGREATER,
	token.PLUS:            SUM,
	token.MINUS:           SUM,
	token.TILDE:           SUM,
	token.ASTERISK:        PRODUCT,
	token.SLASH:           PRODUCT,
	token.DOT:             POSTFIX,
	token.LBRACKET:        POSTFIX,
	token.DOUBLE_COLON:    POSTFIX,
}

// word that introduces a class definition; it is not a reserved keyword
const classWord = "class"
const extendsWord = "extends"

type (
	prefixParseFn func() (ast.Expression, error)
	infixParseFn  func(ast.Expression) (ast.Expression, error)
)

type Parser struct {
	stream pipeline.TokenStream

	curToken  token.Token
	peekToken token.Token
	peekErr   error // lexer failure while reading peekToken

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(stream pipeline.TokenStream) *Parser {
	p := &Parser{stream: stream}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.DOLLAR:   p.parseVariable,
		token.HASH:     p.parseFunctionReference,
		token.NUMBER:   p.parseNumberLiteral,
		token.BYTE:     p.parseByteLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBooleanLiteral,
		token.FALSE:    p.parseBooleanLiteral,
		token.LPAREN:   p.parseSubExpression,
		token.LBRACKET: p.parseArrayLiteral,
		token.LBRACE:   p.parseObjectLiteral,
		token.BANG:     p.parsePrefixExpression,
		token.MINUS:    p.parsePrefixExpression,
		token.PLUS:     p.parsePrefixExpression,
		token.FUNC:     p.parseLambda,
		token.FUNCDEF:  p.parseFunctionDefinition,
		token.IF:       p.parseIfExpression,
		token.WHILE:    p.parseWhileExpression,
		token.RET:      p.parseReturnExpression,
		token.LITERAL:  p.parseIdentifier,
	}

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for tokType := range precedences {
		p.infixParseFns[tokType] = p.parseInfixExpression
	}
	p.infixParseFns[token.ASSIGN] = p.parseAssignExpression
	p.infixParseFns[token.COMPOUND_ASSIGN] = p.parseAssignExpression
	p.infixParseFns[token.DOT] = p.parseDotExpression
	p.infixParseFns[token.LBRACKET] = p.parseIndexExpression
	p.infixParseFns[token.DOUBLE_COLON] = p.parseMethodCall

	// Prime peekToken; curToken stays empty until the first nextToken.
	p.peekToken, p.peekErr = stream.NextToken()
	return p
}

// nextToken advances by one token. A lexer error on the token being
// shifted in is reported here, so it surfaces exactly when that token is needed.
func (p *Parser) nextToken() error {
	if p.peekErr != nil {
		return p.peekErr
	}
	p.curToken = p.peekToken
	p.peekToken, p.peekErr = p.stream.NextToken()
	return nil
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekErr == nil && p.peekToken.Type == t
}

// expectPeek advances if the next token has type t.
func (p *Parser) expectPeek(t token.TokenType) error {
	if p.peekErr != nil {
		return p.peekErr
	}
	if p.peekTokenIs(t) {
		return p.nextToken()
	}
	if p.peekTokenIs(token.EOF) {
		return diagnostics.NewError(diagnostics.ErrP001, p.peekToken, "unexpected end of input, expected %s", t)
	}
	return diagnostics.NewError(diagnostics.ErrP004, p.peekToken, "expected %s, got %s", t, describe(p.peekToken))
}

func (p *Parser) peekPrecedence() int {
	if p.peekErr != nil {
		return LOWEST
	}
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseNext parses the next top-level expression. Leading semicolons are
// skipped. It returns nil, nil once the input is exhausted.
func (p *Parser) ParseNext() (ast.Expression, error) {
	for {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if !p.curTokenIs(token.SEMICOLON) {
			break
		}
	}
	if p.curTokenIs(token.EOF) {
		return nil, nil
	}
	return p.parseStatement()
}

// ParseNextExpression parses one expression starting at the next token,
// folding in infix operators that bind tighter than minPrecedence.
func (p *Parser) ParseNextExpression(minPrecedence int) (ast.Expression, error) {
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if p.curTokenIs(token.EOF) {
		return nil, nil
	}
	return p.parseExpression(minPrecedence)
}

// ParseProgram parses every remaining top-level expression.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	for {
		exp, err := p.ParseNext()
		if err != nil {
			return program, err
		}
		if exp == nil {
			return program, nil
		}
		program.Expressions = append(program.Expressions, exp)
	}
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.NUMBER, token.BYTE, token.STRING, token.LITERAL:
		return string(tok.Type) + " " + tok.Lexeme
	}
	return "'" + tok.Lexeme + "'"
}

// isOperator reports whether the token came from the operator character class.
func isOperator(tok token.Token) bool {
	if tok.Type == token.STRING || tok.Lexeme == "" {
		return false
	}
	return token.IsOperatorChar(rune(tok.Lexeme[0]))
}
