package config

const SourceFileExt = ".sg"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".sg", ".sigil"}

// Built-in function names
const (
	PrintFuncName  = "print"
	IntFuncName    = "int"
	StringFuncName = "string"
	ByteFuncName   = "byte"
	BoolFuncName   = "bool"
	TypeFuncName   = "type"
	LenFuncName    = "len"
	CloneFuncName  = "clone"
	ErrorFuncName  = "error"
	HookFuncName   = "hook"
	CallFuncName   = "call"
	LocalFuncName  = "local"
	KeysFuncName   = "keys"
	VoidFuncName   = "void"
)

// Intrinsic class names, one per runtime value tag
const (
	VoidClassName     = "void"
	BooleanClassName  = "boolean"
	NumberClassName   = "number"
	ByteClassName     = "byte"
	StringClassName   = "string"
	ArrayClassName    = "array"
	ObjectClassName   = "object"
	FunctionClassName = "function"
)

// Method names with special meaning
const (
	InitMethodName     = "init"
	ToStringMethodName = "to_string"
	TypeMethodName     = "type"
)
