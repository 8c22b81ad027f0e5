package diagnostics

import (
	"errors"
	"fmt"

	"github.com/funvibe/sigil/internal/token"
)

type ErrorCode string

// Lexical errors
const (
	ErrL001 ErrorCode = "L001" // unexpected symbol
	ErrL002 ErrorCode = "L002" // unexpected end of input
	ErrL003 ErrorCode = "L003" // invalid operator
	ErrL004 ErrorCode = "L004" // numeric literal out of bounds
)

// Syntax errors
const (
	ErrP001 ErrorCode = "P001" // unexpected end of input
	ErrP002 ErrorCode = "P002" // unexpected token
	ErrP003 ErrorCode = "P003" // expected expression
	ErrP004 ErrorCode = "P004" // expected token
	ErrP005 ErrorCode = "P005" // expected variable
	ErrP006 ErrorCode = "P006" // invalid prefix operator
	ErrP007 ErrorCode = "P007" // invalid infix operator
)

// Runtime errors
const (
	// name resolution
	ErrR001 ErrorCode = "R001" // variable not found
	ErrR002 ErrorCode = "R002" // function not found
	ErrR003 ErrorCode = "R003" // class not found
	ErrR004 ErrorCode = "R004" // cannot redefine

	// type and shape
	ErrR007 ErrorCode = "R007" // invalid value type
	ErrR008 ErrorCode = "R008" // type conversion failed
	ErrR009 ErrorCode = "R009" // expected variable (assignment target)
	ErrR010 ErrorCode = "R010" // undefined infix operation
	ErrR011 ErrorCode = "R011" // undefined prefix operation
	ErrR013 ErrorCode = "R013" // parameter count mismatch
	ErrR014 ErrorCode = "R014" // unknown method
	ErrR015 ErrorCode = "R015" // index out of bounds
	ErrR016 ErrorCode = "R016" // key not found
	ErrR017 ErrorCode = "R017" // key already defined

	// semantic and domain
	ErrR020 ErrorCode = "R020" // operator domain error
	ErrR021 ErrorCode = "R021" // return outside of function

	// raised by scripts through error()
	ErrR030 ErrorCode = "R030"
)

// DiagnosticError is the single error type produced by every stage.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
}

func NewError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewRuntimeError creates an error without a position. The evaluator attaches
// the position of the calling expression when the error leaves a builtin.
func NewRuntimeError(code ErrorCode, format string, args ...interface{}) *DiagnosticError {
	return NewError(code, token.Token{}, format, args...)
}

func (e *DiagnosticError) Error() string {
	loc := ""
	if e.HasPosition() {
		loc = fmt.Sprintf("%d:%d: ", e.Token.Line, e.Token.Column)
	}
	if e.File != "" {
		loc = e.File + ":" + loc
		if !e.HasPosition() {
			loc += " "
		}
	}
	return fmt.Sprintf("%s[%s] %s", loc, e.Code, e.Message)
}

func (e *DiagnosticError) HasPosition() bool {
	return e.Token.Line > 0
}

// WithPosition sets the position if the error does not have one yet.
func (e *DiagnosticError) WithPosition(tok token.Token) *DiagnosticError {
	if !e.HasPosition() {
		e.Token = tok
	}
	return e
}

// Is reports whether err is a DiagnosticError with the given code.
func Is(err error, code ErrorCode) bool {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Wrap converts any error into a DiagnosticError positioned at tok.
// DiagnosticErrors keep their own position when they have one.
func Wrap(err error, tok token.Token) *DiagnosticError {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.WithPosition(tok)
	}
	return NewError(ErrR030, tok, "%s", err.Error())
}
