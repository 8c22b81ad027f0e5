package parser

import (
	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/token"
)

// parseIdentifier handles a bare name: a class definition when the name is
// "class" followed by another name, otherwise a function call.
func (p *Parser) parseIdentifier() (ast.Expression, error) {
	if p.curToken.Lexeme == classWord && p.peekTokenIs(token.LITERAL) {
		return p.parseClassDefinition()
	}

	call := &ast.CallExpression{Token: p.curToken, Function: p.curToken.Lexeme}
	args, bracketed, err := p.parseCallArguments()
	if err != nil {
		return nil, err
	}
	call.Arguments = args
	call.Bracketed = bracketed
	return call, nil
}

// parseCallArguments parses either a bracketed list name(a, b) or space
// separated arguments name a b. Space separated arguments continue while the
// next token can start an expression on the same line as the last consumed
// token, so they end at a newline, at ; , ) ] } and at operators that have no
// prefix form.
func (p *Parser) parseCallArguments() ([]ast.Expression, bool, error) {
	if p.peekTokenIs(token.LPAREN) && !p.peekOnNewLine() {
		if err := p.nextToken(); err != nil {
			return nil, false, err
		}
		args, err := p.parseExpressionList(token.RPAREN)
		return args, true, err
	}

	args := []ast.Expression{}
	for p.canStartArgument() {
		if err := p.nextToken(); err != nil {
			return nil, false, err
		}
		arg, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, false, err
		}
		args = append(args, arg)
	}
	return args, false, nil
}

func (p *Parser) canStartArgument() bool {
	if p.peekErr != nil {
		return false
	}
	if p.peekOnNewLine() {
		return false
	}
	switch p.peekToken.Type {
	case token.ELIF, token.ELSE:
		return false
	}
	_, ok := p.prefixParseFns[p.peekToken.Type]
	return ok
}

func (p *Parser) peekOnNewLine() bool {
	return p.peekToken.Line > p.curToken.Line
}

// parseExpressionList parses comma separated expressions up to end. The
// opening token is curToken.
func (p *Parser) parseExpressionList(end token.TokenType) ([]ast.Expression, error) {
	list := []ast.Expression{}
	if p.peekTokenIs(end) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return list, nil
	}

	if err := p.nextToken(); err != nil {
		return nil, err
	}
	exp, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	list = append(list, exp)

	for p.peekTokenIs(token.COMMA) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		exp, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		list = append(list, exp)
	}

	if err := p.expectPeek(end); err != nil {
		return nil, err
	}
	return list, nil
}
