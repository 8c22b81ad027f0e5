package ast

import (
	"github.com/funvibe/sigil/internal/token"
)

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) Accept(v Visitor)      { v.VisitNumberLiteral(nl) }
func (nl *NumberLiteral) expressionNode()       {}
func (nl *NumberLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() token.Token { return nl.Token }

type ByteLiteral struct {
	Token token.Token
	Value uint8
}

func (bl *ByteLiteral) Accept(v Visitor)      { v.VisitByteLiteral(bl) }
func (bl *ByteLiteral) expressionNode()       {}
func (bl *ByteLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *ByteLiteral) GetToken() token.Token { return bl.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) Accept(v Visitor)      { v.VisitBooleanLiteral(bl) }
func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

// Variable is a $name reference.
type Variable struct {
	Token token.Token // The '$' token
	Name  string
}

func (va *Variable) Accept(v Visitor)      { v.VisitVariable(va) }
func (va *Variable) expressionNode()       {}
func (va *Variable) TokenLiteral() string  { return "$" + va.Name }
func (va *Variable) GetToken() token.Token { return va.Token }

// FunctionReference is a #name reference to a defined function.
type FunctionReference struct {
	Token token.Token // The '#' token
	Name  string
}

func (fr *FunctionReference) Accept(v Visitor)      { v.VisitFunctionReference(fr) }
func (fr *FunctionReference) expressionNode()       {}
func (fr *FunctionReference) TokenLiteral() string  { return "#" + fr.Name }
func (fr *FunctionReference) GetToken() token.Token { return fr.Token }

type PrefixExpression struct {
	Token    token.Token // The prefix token, e.g. !
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) Accept(v Visitor)      { v.VisitPrefixExpression(pe) }
func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// InfixExpression covers binary operators, assignment ("=") and compound
// assignment ("+=", ...).
type InfixExpression struct {
	Token    token.Token // The operator token, e.g. +
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) Accept(v Visitor)      { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// IsAssignment reports whether the expression writes to its left side.
func (ie *InfixExpression) IsAssignment() bool {
	return ie.Token.Type == token.ASSIGN || ie.Token.Type == token.COMPOUND_ASSIGN
}

// IndexExpression is container[index]; container.key is parsed into the
// same node with a synthetic literal index.
type IndexExpression struct {
	Token token.Token // The '[' or '.' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) Accept(v Visitor)      { v.VisitIndexExpression(ie) }
func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// SubExpression is a parenthesized expression.
type SubExpression struct {
	Token token.Token // The '(' token
	Inner Expression
}

func (se *SubExpression) Accept(v Visitor)      { v.VisitSubExpression(se) }
func (se *SubExpression) expressionNode()       {}
func (se *SubExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SubExpression) GetToken() token.Token { return se.Token }

type ArrayLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (al *ArrayLiteral) Accept(v Visitor)      { v.VisitArrayLiteral(al) }
func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token { return al.Token }

type ObjectField struct {
	Token token.Token // The key token
	Key   string
	Value Expression
}

// ObjectLiteral keeps fields in source order.
type ObjectLiteral struct {
	Token  token.Token // The '{' token
	Fields []ObjectField
}

func (ol *ObjectLiteral) Accept(v Visitor)      { v.VisitObjectLiteral(ol) }
func (ol *ObjectLiteral) expressionNode()       {}
func (ol *ObjectLiteral) TokenLiteral() string  { return ol.Token.Lexeme }
func (ol *ObjectLiteral) GetToken() token.Token { return ol.Token }

// Lambda is an anonymous function: func($a) { ... }
type Lambda struct {
	Token      token.Token // The 'func' token
	Parameters []string
	Body       *BlockExpression
}

func (l *Lambda) Accept(v Visitor)      { v.VisitLambda(l) }
func (l *Lambda) expressionNode()       {}
func (l *Lambda) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Lambda) GetToken() token.Token { return l.Token }

// FunctionDefinition: funcdef name($a, $b) { ... }
type FunctionDefinition struct {
	Token      token.Token // The 'funcdef' token
	Name       string
	Parameters []string
	Body       *BlockExpression
}

func (fd *FunctionDefinition) Accept(v Visitor)      { v.VisitFunctionDefinition(fd) }
func (fd *FunctionDefinition) expressionNode()       {}
func (fd *FunctionDefinition) TokenLiteral() string  { return fd.Token.Lexeme }
func (fd *FunctionDefinition) GetToken() token.Token { return fd.Token }

// CallExpression calls a function or class constructor by its bare name.
type CallExpression struct {
	Token     token.Token // The name token
	Function  string
	Arguments []Expression
	Bracketed bool // name(a, b) rather than name a b
}

func (ce *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// MethodCall: receiver::name(args)
type MethodCall struct {
	Token     token.Token // The '::' token
	Receiver  Expression
	Method    string
	Arguments []Expression
	Bracketed bool
}

func (mc *MethodCall) Accept(v Visitor)      { v.VisitMethodCall(mc) }
func (mc *MethodCall) expressionNode()       {}
func (mc *MethodCall) TokenLiteral() string  { return mc.Token.Lexeme }
func (mc *MethodCall) GetToken() token.Token { return mc.Token }

type ReturnExpression struct {
	Token token.Token // The 'ret' token
	Value Expression  // nil returns void
}

func (re *ReturnExpression) Accept(v Visitor)      { v.VisitReturnExpression(re) }
func (re *ReturnExpression) expressionNode()       {}
func (re *ReturnExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *ReturnExpression) GetToken() token.Token { return re.Token }

type ConditionalBranch struct {
	Token     token.Token // The 'if' or 'elif' token
	Condition Expression
	Body      *BlockExpression
}

// IfExpression: if cond {..} elif cond {..} else {..}
type IfExpression struct {
	Token       token.Token // The 'if' token
	Branches    []ConditionalBranch
	Alternative *BlockExpression // nil without else
}

func (ie *IfExpression) Accept(v Visitor)      { v.VisitIfExpression(ie) }
func (ie *IfExpression) expressionNode()       {}
func (ie *IfExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IfExpression) GetToken() token.Token { return ie.Token }

type WhileExpression struct {
	Token     token.Token // The 'while' token
	Condition Expression
	Body      *BlockExpression
}

func (we *WhileExpression) Accept(v Visitor)      { v.VisitWhileExpression(we) }
func (we *WhileExpression) expressionNode()       {}
func (we *WhileExpression) TokenLiteral() string  { return we.Token.Lexeme }
func (we *WhileExpression) GetToken() token.Token { return we.Token }

// ClassDefinition: class Name extends Parent { funcdef ... }
type ClassDefinition struct {
	Token   token.Token // The 'class' token
	Name    string
	Parent  string // empty without extends
	Methods []*FunctionDefinition
}

func (cd *ClassDefinition) Accept(v Visitor)      { v.VisitClassDefinition(cd) }
func (cd *ClassDefinition) expressionNode()       {}
func (cd *ClassDefinition) TokenLiteral() string  { return cd.Token.Lexeme }
func (cd *ClassDefinition) GetToken() token.Token { return cd.Token }
