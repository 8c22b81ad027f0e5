package parser

import (
	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/token"
)

// parseBlock parses the body of a block. curToken must be '{'. Block parsing
// consumes the closing '}' itself; the block ends at the first unmatched '}'.
func (p *Parser) parseBlock() (*ast.BlockExpression, error) {
	block := &ast.BlockExpression{Token: p.curToken, Expressions: []ast.Expression{}}
	for {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		switch p.curToken.Type {
		case token.SEMICOLON:
			continue
		case token.RBRACE:
			return block, nil
		case token.EOF:
			return nil, diagnostics.NewError(diagnostics.ErrP001, p.curToken, "unexpected end of input, expected '}'")
		}
		exp, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Expressions = append(block.Expressions, exp)
	}
}

// expectBlock consumes '{' and the block that follows it.
func (p *Parser) expectBlock() (*ast.BlockExpression, error) {
	if err := p.expectPeek(token.LBRACE); err != nil {
		return nil, err
	}
	return p.parseBlock()
}

// parseCondition parses the condition of if, elif and while. curToken is the keyword.
func (p *Parser) parseCondition() (ast.Expression, *ast.BlockExpression, error) {
	if p.peekTokenIs(token.EOF) {
		return nil, nil, diagnostics.NewError(diagnostics.ErrP001, p.peekToken, "unexpected end of input, expected a condition")
	}
	if err := p.nextToken(); err != nil {
		return nil, nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, nil, err
	}
	body, err := p.expectBlock()
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

// parseIfExpression parses if cond {..} elif cond {..} else {..}
func (p *Parser) parseIfExpression() (ast.Expression, error) {
	expression := &ast.IfExpression{Token: p.curToken}

	branchTok := p.curToken
	cond, body, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	expression.Branches = append(expression.Branches, ast.ConditionalBranch{Token: branchTok, Condition: cond, Body: body})

	for p.peekTokenIs(token.ELIF) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		branchTok := p.curToken
		cond, body, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		expression.Branches = append(expression.Branches, ast.ConditionalBranch{Token: branchTok, Condition: cond, Body: body})
	}

	if p.peekTokenIs(token.ELSE) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		alt, err := p.expectBlock()
		if err != nil {
			return nil, err
		}
		expression.Alternative = alt
	}

	return expression, nil
}

func (p *Parser) parseWhileExpression() (ast.Expression, error) {
	expression := &ast.WhileExpression{Token: p.curToken}
	cond, body, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	expression.Condition = cond
	expression.Body = body
	return expression, nil
}

// parseReturnExpression parses ret expr. A bare ret returns void.
func (p *Parser) parseReturnExpression() (ast.Expression, error) {
	ret := &ast.ReturnExpression{Token: p.curToken}
	if p.peekErr != nil {
		return nil, p.peekErr
	}
	switch p.peekToken.Type {
	case token.SEMICOLON, token.RBRACE, token.EOF:
		return ret, nil
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	ret.Value = value
	return ret, nil
}
