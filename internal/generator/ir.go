package generator

import "github.com/calumari/oocgen/internal/diag"

// This file houses the declaration model and the intermediate structures
// shared across phases (scan -> resolve -> analyze -> emit).

// Config holds settings for a full run over input files.
type Config struct {
	Inputs  []string // C sources scanned for [ooc] blocks, in order
	Output  string   // bodies artifact, or the only artifact in single-file mode
	Header  string   // declarations artifact; derived from Output when empty
	Options Options
	Command string // invocation shown in the generated banner
	Version string // oocgen build version
	Jobs    int    // concurrent file reads; <= 0 means GOMAXPROCS

	MaxDiagnostics int // diagnostics kept per run; <= 0 uses the default
}

// Options controls how declarations are rendered.
type Options struct {
	StaticTableInit     bool   // compile-time dispatch tables instead of lazy fill routines
	DebugMode           bool   // cast prologue in body macros
	RootTypeName        string // implicit base of classes declared without one
	SingleFile          bool   // merge both artifacts into one stream
	HeaderName          string // include name of the declarations artifact
	MaxIdentifierLength int    // generated identifiers longer than this are reported
	Stamp               string // optional generator stamp written into the banner
	Runtime             Runtime
}

// Runtime names the helper functions and types the generated code relies on.
type Runtime struct {
	ArrayType   string `toml:"array_type"`
	ArrayInit   string `toml:"array_init"`
	ArrayClear  string `toml:"array_clear"`
	ArrayGrowth int    `toml:"array_growth"`
	Alloc       string `toml:"alloc"`
	Free        string `toml:"free"`
}

const (
	defaultRootTypeName  = "Object"
	defaultHeaderName    = "ooc_gen.h"
	defaultMaxIdentifier = 31
)

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		StaticTableInit:     true,
		RootTypeName:        defaultRootTypeName,
		HeaderName:          defaultHeaderName,
		MaxIdentifierLength: defaultMaxIdentifier,
		Runtime:             DefaultRuntime(),
	}
}

// DefaultRuntime matches the growable array and allocator of the Vim sources
// the generator was first written for.
func DefaultRuntime() Runtime {
	return Runtime{
		ArrayType:   "garray_T",
		ArrayInit:   "ga_init2",
		ArrayClear:  "ga_clear",
		ArrayGrowth: 128,
		Alloc:       "alloc",
		Free:        "vim_free",
	}
}

// withDefaults fills unset string and numeric fields. Boolean fields are
// taken as given.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.RootTypeName == "" {
		o.RootTypeName = def.RootTypeName
	}
	if o.HeaderName == "" {
		o.HeaderName = def.HeaderName
	}
	if o.MaxIdentifierLength <= 0 {
		o.MaxIdentifierLength = def.MaxIdentifierLength
	}
	rt := &o.Runtime
	if rt.ArrayType == "" {
		rt.ArrayType = def.Runtime.ArrayType
	}
	if rt.ArrayInit == "" {
		rt.ArrayInit = def.Runtime.ArrayInit
	}
	if rt.ArrayClear == "" {
		rt.ArrayClear = def.Runtime.ArrayClear
	}
	if rt.ArrayGrowth <= 0 {
		rt.ArrayGrowth = def.Runtime.ArrayGrowth
	}
	if rt.Alloc == "" {
		rt.Alloc = def.Runtime.Alloc
	}
	if rt.Free == "" {
		rt.Free = def.Runtime.Free
	}
	return o
}

// DeclKind tags a Declaration.
type DeclKind uint8

const (
	DeclConstant DeclKind = iota + 1
	DeclTypedef
	DeclClass
	DeclStruct
)

func (k DeclKind) String() string {
	switch k {
	case DeclConstant:
		return "const"
	case DeclTypedef:
		return "typedef"
	case DeclClass:
		return "class"
	case DeclStruct:
		return "struct"
	}
	return "unknown"
}

// Declaration is one entry of the encounter-ordered declaration stream.
// Name/Value are set for constants, Value holds the raw line of a typedef,
// and Type points into the store for classes and structs.
type Declaration struct {
	Kind  DeclKind
	Pos   diag.Pos
	Name  string
	Value string
	Type  TypeID
}

// TypeID indexes the TypeDecl arena of a Store. NoType is never a valid
// declaration.
type TypeID uint32

const NoType TypeID = 0

// TypeKind distinguishes classes (dispatch table, virtual methods) from
// plain structs.
type TypeKind uint8

const (
	KindClass TypeKind = iota + 1
	KindStruct
)

func (k TypeKind) String() string {
	if k == KindStruct {
		return "struct"
	}
	return "class"
}

// TypeDecl is a class or struct declaration. Base is written once by the
// resolver; BaseName keeps the spelling from the source.
type TypeDecl struct {
	ID       TypeID
	Name     string
	Kind     TypeKind
	BaseName string
	Base     TypeID
	Prefix   string
	Variant  string
	Members  []Member
	Methods  []Method
	Pos      diag.Pos
}

// Member is a data field. IsArray, ElemType and Embedded are derived by the
// resolver.
type Member struct {
	Name     string
	Type     string
	Suffix   string // array suffix such as "[MAX_FILTER_SIZE]"
	IsArray  bool
	ElemType string
	Embedded TypeID
	Pos      diag.Pos
}

// Method is a declared method signature.
type Method struct {
	Name   string
	Result string
	Params []string
	Pos    diag.Pos
}

const (
	methodInit    = "init"
	methodDestroy = "destroy"
	methodNew     = "new"

	baseSentinel  = "object"
	tablePtrField = "op"
	selfParam     = "_self"
	selfName      = "self"
)

func (t *TypeDecl) HasMethod(name string) bool {
	for i := range t.Methods {
		if t.Methods[i].Name == name {
			return true
		}
	}
	return false
}

// generated C names

func (t *TypeDecl) TableStruct() string  { return "_" + t.Name + "_c" }
func (t *TypeDecl) TableType() string    { return "_" + t.Name + "_VT" }
func (t *TypeDecl) TableVar() string     { return "_vt_" + t.Name }
func (t *TypeDecl) ObjectStruct() string { return "_" + t.Name + "_o" }
func (t *TypeDecl) ObjectType() string   { return t.Name + "_T" }

// FuncName is the static function implementing method name on t.
func (t *TypeDecl) FuncName(name string) string { return "_" + t.Prefix + "_" + name }

// Slot is one entry of a dispatch table. Owner implements the slot;
// Introducer first declared it and fixes its signature and position.
type Slot struct {
	Name       string
	Owner      TypeID
	Introducer TypeID
	Method     Method
}

// Field is one entry of an object layout.
type Field struct {
	Name     string
	Type     string
	Suffix   string
	Owner    TypeID
	TablePtr bool
}

// TableField is a dispatch-table slot rendered as a function pointer.
type TableField struct {
	Slot
	Decl string
}

// StepKind classifies a constructor or destructor chain step.
type StepKind uint8

const (
	StepBaseInit StepKind = iota + 1
	StepSetTable
	StepArrayInit
	StepMemberInit
	StepArrayClear
	StepMemberDestroy
	StepBaseDestroy
)

func (k StepKind) String() string {
	switch k {
	case StepBaseInit:
		return "base-init"
	case StepSetTable:
		return "set-table"
	case StepArrayInit:
		return "array-init"
	case StepMemberInit:
		return "member-init"
	case StepArrayClear:
		return "array-clear"
	case StepMemberDestroy:
		return "member-destroy"
	case StepBaseDestroy:
		return "base-destroy"
	}
	return "unknown"
}

// ChainStep is a single statically bound call in an init or destroy chain.
// Callee is the function (or table) used, Owner the type it belongs to and
// Member the field it acts on, if any. TypeName is the element type of an
// array member or the declared type of an embedded member.
type ChainStep struct {
	Kind     StepKind
	Callee   string
	Owner    TypeID
	Member   string
	TypeName string
}

// Artifacts is the rendered output of a generation pass. Bodies is the only
// artifact in single-file mode.
type Artifacts struct {
	Declarations []byte
	Bodies       []byte
}
