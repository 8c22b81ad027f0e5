package parser

import (
	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/token"
)

// parseLambda parses func($a, $b) { ... }
func (p *Parser) parseLambda() (ast.Expression, error) {
	lambda := &ast.Lambda{Token: p.curToken}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	lambda.Parameters = params

	body, err := p.expectBlock()
	if err != nil {
		return nil, err
	}
	lambda.Body = body
	return lambda, nil
}

// parseFunctionDefinition parses funcdef name($a, $b) { ... }
func (p *Parser) parseFunctionDefinition() (ast.Expression, error) {
	return p.parseFunctionStatement()
}

func (p *Parser) parseFunctionStatement() (*ast.FunctionDefinition, error) {
	fn := &ast.FunctionDefinition{Token: p.curToken}
	if err := p.expectPeek(token.LITERAL); err != nil {
		return nil, err
	}
	fn.Name = p.curToken.Lexeme

	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	fn.Parameters = params

	body, err := p.expectBlock()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

// parseParameters parses ($a, $b). Every parameter is a variable.
func (p *Parser) parseParameters() ([]string, error) {
	if err := p.expectPeek(token.LPAREN); err != nil {
		return nil, err
	}
	params := []string{}
	if p.peekTokenIs(token.RPAREN) {
		return params, p.nextToken()
	}

	for {
		if p.peekErr != nil {
			return nil, p.peekErr
		}
		if p.peekTokenIs(token.EOF) {
			return nil, diagnostics.NewError(diagnostics.ErrP001, p.peekToken, "unexpected end of input in parameter list")
		}
		if !p.peekTokenIs(token.DOLLAR) {
			return nil, diagnostics.NewError(diagnostics.ErrP005, p.peekToken, "expected a parameter variable, got %s", describe(p.peekToken))
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		name, err := p.expectName("'$'")
		if err != nil {
			return nil, err
		}
		params = append(params, name)

		if p.peekTokenIs(token.COMMA) {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.expectPeek(token.RPAREN); err != nil {
			return nil, err
		}
		return params, nil
	}
}

// parseClassDefinition parses class Name [extends Parent] { funcdef ... }
// curToken is the word "class".
func (p *Parser) parseClassDefinition() (ast.Expression, error) {
	class := &ast.ClassDefinition{Token: p.curToken}
	if err := p.expectPeek(token.LITERAL); err != nil {
		return nil, err
	}
	class.Name = p.curToken.Lexeme

	if p.peekTokenIs(token.LITERAL) && p.peekToken.Lexeme == extendsWord {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.LITERAL); err != nil {
			return nil, err
		}
		class.Parent = p.curToken.Lexeme
	}

	if err := p.expectPeek(token.LBRACE); err != nil {
		return nil, err
	}
	for {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		switch p.curToken.Type {
		case token.SEMICOLON:
			continue
		case token.RBRACE:
			return class, nil
		case token.EOF:
			return nil, diagnostics.NewError(diagnostics.ErrP001, p.curToken, "unexpected end of input in class %s", class.Name)
		case token.FUNCDEF:
			method, err := p.parseFunctionStatement()
			if err != nil {
				return nil, err
			}
			class.Methods = append(class.Methods, method)
		default:
			return nil, diagnostics.NewError(diagnostics.ErrP002, p.curToken, "unexpected token %s in class body, expected funcdef", describe(p.curToken))
		}
	}
}
