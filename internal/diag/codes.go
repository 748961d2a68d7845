package diag

// Code identifies a class of diagnostic.
type Code uint16

const (
	UnknownCode Code = 0

	// scanner
	UnrecognizedDeclarationLine Code = 1001
	PrematureBlockTermination   Code = 1002
	UnsupportedDeclarationKind  Code = 1003
	UnsupportedStatement        Code = 1004
	BadClassOption              Code = 1005

	// resolver
	UnknownBaseClass     Code = 2001
	IncompatibleBaseKind Code = 2002
	InheritanceCycle     Code = 2003
	DuplicateTypeName    Code = 2004

	// emitter
	IdentifierTooLong Code = 3001
)

var codeNames = map[Code]string{
	UnknownCode:                 "Unknown",
	UnrecognizedDeclarationLine: "UnrecognizedDeclarationLine",
	PrematureBlockTermination:   "PrematureBlockTermination",
	UnsupportedDeclarationKind:  "UnsupportedDeclarationKind",
	UnsupportedStatement:        "UnsupportedStatement",
	BadClassOption:              "BadClassOption",
	UnknownBaseClass:            "UnknownBaseClass",
	IncompatibleBaseKind:        "IncompatibleBaseKind",
	InheritanceCycle:            "InheritanceCycle",
	DuplicateTypeName:           "DuplicateTypeName",
	IdentifierTooLong:           "IdentifierTooLong",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[UnknownCode]
}

// DefaultSeverity is the severity a phase uses unless it has a reason to
// escalate.
func (c Code) DefaultSeverity() Severity {
	switch c {
	case IdentifierTooLong, UnsupportedStatement, BadClassOption, DuplicateTypeName:
		return SevWarning
	default:
		return SevError
	}
}
