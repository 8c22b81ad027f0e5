package parser

import (
	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/token"
)

func (p *Parser) parseVariable() (ast.Expression, error) {
	tok := p.curToken
	name, err := p.expectName("'$'")
	if err != nil {
		return nil, err
	}
	return &ast.Variable{Token: tok, Name: name}, nil
}

func (p *Parser) parseFunctionReference() (ast.Expression, error) {
	tok := p.curToken
	name, err := p.expectName("'#'")
	if err != nil {
		return nil, err
	}
	return &ast.FunctionReference{Token: tok, Name: name}, nil
}

// expectName consumes the identifier that must follow a sigil.
func (p *Parser) expectName(after string) (string, error) {
	if p.peekErr != nil {
		return "", p.peekErr
	}
	if p.peekTokenIs(token.EOF) {
		return "", diagnostics.NewError(diagnostics.ErrP001, p.peekToken, "unexpected end of input after %s", after)
	}
	if !p.peekTokenIs(token.LITERAL) {
		return "", diagnostics.NewError(diagnostics.ErrP004, p.peekToken, "expected a name after %s, got %s", after, describe(p.peekToken))
	}
	if err := p.nextToken(); err != nil {
		return "", err
	}
	return p.curToken.Lexeme, nil
}

func (p *Parser) parseNumberLiteral() (ast.Expression, error) {
	return &ast.NumberLiteral{Token: p.curToken, Value: p.curToken.Literal.(float64)}, nil
}

func (p *Parser) parseByteLiteral() (ast.Expression, error) {
	return &ast.ByteLiteral{Token: p.curToken, Value: p.curToken.Literal.(uint8)}, nil
}

func (p *Parser) parseStringLiteral() (ast.Expression, error) {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal.(string)}, nil
}

func (p *Parser) parseBooleanLiteral() (ast.Expression, error) {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}, nil
}

// parseArrayLiteral parses [e1, e2, ...]. A trailing comma is allowed.
func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	array := &ast.ArrayLiteral{Token: p.curToken, Elements: []ast.Expression{}}
	for {
		if p.peekTokenIs(token.RBRACKET) {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			return array, nil
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		elem, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		array.Elements = append(array.Elements, elem)

		if p.peekTokenIs(token.COMMA) {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.expectPeek(token.RBRACKET); err != nil {
			return nil, err
		}
		return array, nil
	}
}

// parseObjectLiteral parses { "key" = expr, ident = expr }.
func (p *Parser) parseObjectLiteral() (ast.Expression, error) {
	object := &ast.ObjectLiteral{Token: p.curToken}
	for {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if p.curTokenIs(token.RBRACE) {
			return object, nil
		}

		field := ast.ObjectField{Token: p.curToken}
		switch {
		case p.curTokenIs(token.STRING):
			field.Key = p.curToken.Literal.(string)
		case p.curTokenIs(token.LITERAL) || token.LookupIdent(p.curToken.Lexeme) != token.LITERAL:
			field.Key = p.curToken.Lexeme
		case p.curTokenIs(token.EOF):
			return nil, diagnostics.NewError(diagnostics.ErrP001, p.curToken, "unexpected end of input in object literal")
		default:
			return nil, diagnostics.NewError(diagnostics.ErrP002, p.curToken, "unexpected token %s, expected an object key", describe(p.curToken))
		}

		if err := p.expectPeek(token.ASSIGN); err != nil {
			return nil, err
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		field.Value = value
		object.Fields = append(object.Fields, field)

		if p.peekTokenIs(token.COMMA) {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.expectPeek(token.RBRACE); err != nil {
			return nil, err
		}
		return object, nil
	}
}
