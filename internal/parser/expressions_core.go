package parser

import (
	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/token"
)

// parseExpression is the precedence-climbing core. It expects curToken to be
// the first token of the expression and leaves curToken on its last token.
func (p *Parser) parseExpression(precedence int) (ast.Expression, error) {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		return nil, p.noPrefixParseFnError(p.curToken)
	}
	leftExp, err := prefix()
	if err != nil {
		return nil, err
	}

	for {
		if p.peekErr != nil {
			return leftExp, nil
		}
		if precedence >= p.peekPrecedence() {
			break
		}

		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp, nil
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		leftExp, err = infix(leftExp)
		if err != nil {
			return nil, err
		}
		// Space separated arguments swallow everything up to a terminator,
		// so such a method call ends the postfix chain.
		if mc, ok := leftExp.(*ast.MethodCall); ok && !mc.Bracketed {
			return leftExp, nil
		}
	}

	return leftExp, nil
}

// parseStatement parses one expression in statement position, where an
// operator without an infix form cannot follow the operand.
func (p *Parser) parseStatement() (ast.Expression, error) {
	exp, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if p.peekErr == nil && isOperator(p.peekToken) && p.infixParseFns[p.peekToken.Type] == nil {
		return nil, diagnostics.NewError(diagnostics.ErrP007, p.peekToken, "invalid infix operator '%s'", p.peekToken.Lexeme)
	}
	return exp, nil
}

func (p *Parser) noPrefixParseFnError(tok token.Token) error {
	switch {
	case tok.Type == token.EOF:
		return diagnostics.NewError(diagnostics.ErrP001, tok, "unexpected end of input, expected an expression")
	case tok.Type == token.SEMICOLON:
		return diagnostics.NewError(diagnostics.ErrP003, tok, "expected an expression before ';'")
	case isOperator(tok):
		return diagnostics.NewError(diagnostics.ErrP006, tok, "invalid prefix operator '%s'", tok.Lexeme)
	}
	return diagnostics.NewError(diagnostics.ErrP002, tok, "unexpected token %s", describe(tok))
}

func (p *Parser) parsePrefixExpression() (ast.Expression, error) {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	right, err := p.parseExpression(PREFIX)
	if err != nil {
		return nil, err
	}
	expression.Right = right
	return expression, nil
}

func (p *Parser) parseInfixExpression(left ast.Expression) (ast.Expression, error) {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}

	precedence := p.curPrecedence()
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	right, err := p.parseExpression(precedence)
	if err != nil {
		return nil, err
	}
	expression.Right = right
	return expression, nil
}

// parseAssignExpression parses = and op=, which are right-associative:
// $a = $b = 1 parses as $a = ($b = 1).
func (p *Parser) parseAssignExpression(left ast.Expression) (ast.Expression, error) {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}

	precedence := p.curPrecedence()
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	// Use precedence - 1 to make it right-associative
	right, err := p.parseExpression(precedence - 1)
	if err != nil {
		return nil, err
	}
	expression.Right = right
	return expression, nil
}

func (p *Parser) parseSubExpression() (ast.Expression, error) {
	startToken := p.curToken
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	inner, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.SubExpression{Token: startToken, Inner: inner}, nil
}

// parseIndexExpression parses container[index].
func (p *Parser) parseIndexExpression(left ast.Expression) (ast.Expression, error) {
	exp := &ast.IndexExpression{Token: p.curToken, Left: left}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	index, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	exp.Index = index
	if err := p.expectPeek(token.RBRACKET); err != nil {
		return nil, err
	}
	return exp, nil
}

// parseDotExpression desugars container.key into container["key"].
// A number after the dot indexes arrays: $a.0
func (p *Parser) parseDotExpression(left ast.Expression) (ast.Expression, error) {
	exp := &ast.IndexExpression{Token: p.curToken, Left: left}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	switch {
	case p.curTokenIs(token.NUMBER):
		exp.Index = &ast.NumberLiteral{Token: p.curToken, Value: p.curToken.Literal.(float64)}
	case p.curTokenIs(token.STRING):
		exp.Index = &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal.(string)}
	case p.curTokenIs(token.LITERAL) || token.LookupIdent(p.curToken.Lexeme) != token.LITERAL:
		exp.Index = &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Lexeme}
	case p.curTokenIs(token.EOF):
		return nil, diagnostics.NewError(diagnostics.ErrP001, p.curToken, "unexpected end of input after '.'")
	default:
		return nil, diagnostics.NewError(diagnostics.ErrP004, p.curToken, "expected a key after '.', got %s", describe(p.curToken))
	}
	return exp, nil
}

// parseMethodCall parses receiver::name(args) or receiver::name a b.
func (p *Parser) parseMethodCall(receiver ast.Expression) (ast.Expression, error) {
	call := &ast.MethodCall{Token: p.curToken, Receiver: receiver}
	if err := p.expectPeek(token.LITERAL); err != nil {
		return nil, err
	}
	call.Method = p.curToken.Lexeme

	args, bracketed, err := p.parseCallArguments()
	if err != nil {
		return nil, err
	}
	call.Arguments = args
	call.Bracketed = bracketed
	return call, nil
}
