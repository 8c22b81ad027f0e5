package ast

import (
	"github.com/funvibe/sigil/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
	Accept(v Visitor)
}

// Expression is a Node that produces a value. Every construct of the
// language, definitions and control flow included, is an expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File        string
	Expressions []Expression
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Expressions) > 0 {
		return p.Expressions[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetToken() token.Token {
	if p == nil || len(p.Expressions) == 0 {
		return token.Token{}
	}
	return p.Expressions[0].GetToken()
}

// BlockExpression is a brace-delimited body. Blocks do not open a scope.
type BlockExpression struct {
	Token       token.Token // The '{' token
	Expressions []Expression
}

func (be *BlockExpression) Accept(v Visitor)     { v.VisitBlockExpression(be) }
func (be *BlockExpression) expressionNode()      {}
func (be *BlockExpression) TokenLiteral() string { return be.Token.Lexeme }
func (be *BlockExpression) GetToken() token.Token {
	if be == nil {
		return token.Token{}
	}
	return be.Token
}

// Visitor walks every node type.
type Visitor interface {
	VisitProgram(node *Program)
	VisitBlockExpression(node *BlockExpression)
	VisitNumberLiteral(node *NumberLiteral)
	VisitByteLiteral(node *ByteLiteral)
	VisitStringLiteral(node *StringLiteral)
	VisitBooleanLiteral(node *BooleanLiteral)
	VisitVariable(node *Variable)
	VisitFunctionReference(node *FunctionReference)
	VisitPrefixExpression(node *PrefixExpression)
	VisitInfixExpression(node *InfixExpression)
	VisitIndexExpression(node *IndexExpression)
	VisitSubExpression(node *SubExpression)
	VisitArrayLiteral(node *ArrayLiteral)
	VisitObjectLiteral(node *ObjectLiteral)
	VisitLambda(node *Lambda)
	VisitFunctionDefinition(node *FunctionDefinition)
	VisitCallExpression(node *CallExpression)
	VisitMethodCall(node *MethodCall)
	VisitReturnExpression(node *ReturnExpression)
	VisitIfExpression(node *IfExpression)
	VisitWhileExpression(node *WhileExpression)
	VisitClassDefinition(node *ClassDefinition)
}
