package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/sigil/internal/ast"
)

// --- Tree Printer (S-expression view of the AST) ---

// TreePrinter renders the AST as S-expressions, one top-level expression per
// line. Operators appear in prefix position so precedence is explicit:
// 2 + 3 * 4 prints as (+ 2 (* 3 4)).
type TreePrinter struct {
	buf bytes.Buffer
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

// Print renders a single node.
func Print(node ast.Node) string {
	p := NewTreePrinter()
	node.Accept(p)
	return p.String()
}

func (p *TreePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *TreePrinter) list(head string, nodes ...ast.Node) {
	p.write("(" + head)
	for _, n := range nodes {
		p.write(" ")
		n.Accept(p)
	}
	p.write(")")
}

func (p *TreePrinter) params(params []string) string {
	vars := make([]string, len(params))
	for i, name := range params {
		vars[i] = "$" + name
	}
	return "(" + strings.Join(vars, " ") + ")"
}

func expressions(exps []ast.Expression) []ast.Node {
	nodes := make([]ast.Node, len(exps))
	for i, e := range exps {
		nodes[i] = e
	}
	return nodes
}

func (p *TreePrinter) VisitProgram(node *ast.Program) {
	for i, exp := range node.Expressions {
		if i > 0 {
			p.write("\n")
		}
		exp.Accept(p)
	}
}

func (p *TreePrinter) VisitBlockExpression(node *ast.BlockExpression) {
	p.list("block", expressions(node.Expressions)...)
}

func (p *TreePrinter) VisitNumberLiteral(node *ast.NumberLiteral) {
	p.write(strconv.FormatFloat(node.Value, 'f', -1, 64))
}

func (p *TreePrinter) VisitByteLiteral(node *ast.ByteLiteral) {
	p.write(strconv.Itoa(int(node.Value)) + "b")
}

func (p *TreePrinter) VisitStringLiteral(node *ast.StringLiteral) {
	p.write(`"` + node.Value + `"`)
}

func (p *TreePrinter) VisitBooleanLiteral(node *ast.BooleanLiteral) {
	p.write(strconv.FormatBool(node.Value))
}

func (p *TreePrinter) VisitVariable(node *ast.Variable) {
	p.write("$" + node.Name)
}

func (p *TreePrinter) VisitFunctionReference(node *ast.FunctionReference) {
	p.write("#" + node.Name)
}

func (p *TreePrinter) VisitPrefixExpression(node *ast.PrefixExpression) {
	p.list(node.Operator, node.Right)
}

func (p *TreePrinter) VisitInfixExpression(node *ast.InfixExpression) {
	p.list(node.Operator, node.Left, node.Right)
}

func (p *TreePrinter) VisitIndexExpression(node *ast.IndexExpression) {
	p.list("index", node.Left, node.Index)
}

func (p *TreePrinter) VisitSubExpression(node *ast.SubExpression) {
	p.list("group", node.Inner)
}

func (p *TreePrinter) VisitArrayLiteral(node *ast.ArrayLiteral) {
	p.list("array", expressions(node.Elements)...)
}

func (p *TreePrinter) VisitObjectLiteral(node *ast.ObjectLiteral) {
	p.write("(object")
	for _, field := range node.Fields {
		p.write(` "` + field.Key + `"=`)
		field.Value.Accept(p)
	}
	p.write(")")
}

func (p *TreePrinter) VisitLambda(node *ast.Lambda) {
	p.write("(func " + p.params(node.Parameters) + " ")
	node.Body.Accept(p)
	p.write(")")
}

func (p *TreePrinter) VisitFunctionDefinition(node *ast.FunctionDefinition) {
	p.write("(funcdef " + node.Name + " " + p.params(node.Parameters) + " ")
	node.Body.Accept(p)
	p.write(")")
}

func (p *TreePrinter) VisitCallExpression(node *ast.CallExpression) {
	p.list("call "+node.Function, expressions(node.Arguments)...)
}

func (p *TreePrinter) VisitMethodCall(node *ast.MethodCall) {
	nodes := append([]ast.Node{node.Receiver}, expressions(node.Arguments)...)
	p.list("method "+node.Method, nodes...)
}

func (p *TreePrinter) VisitReturnExpression(node *ast.ReturnExpression) {
	if node.Value == nil {
		p.write("(ret)")
		return
	}
	p.list("ret", node.Value)
}

func (p *TreePrinter) VisitIfExpression(node *ast.IfExpression) {
	p.write("(if")
	for _, branch := range node.Branches {
		p.write(" ")
		p.list("branch", branch.Condition, branch.Body)
	}
	if node.Alternative != nil {
		p.write(" ")
		p.list("else", node.Alternative)
	}
	p.write(")")
}

func (p *TreePrinter) VisitWhileExpression(node *ast.WhileExpression) {
	p.list("while", node.Condition, node.Body)
}

func (p *TreePrinter) VisitClassDefinition(node *ast.ClassDefinition) {
	head := "class " + node.Name
	if node.Parent != "" {
		head += " extends " + node.Parent
	}
	nodes := make([]ast.Node, len(node.Methods))
	for i, m := range node.Methods {
		nodes[i] = m
	}
	p.list(head, nodes...)
}
