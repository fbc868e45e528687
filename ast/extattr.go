package ast

// [Name], [Name=Value], [Name(Arguments)], ...
type ExtendedAttribute struct {
	Name  Identifier            `json:"name"`
	Kind  ExtendedAttributeKind `json:"kind"`
	Range SourceRange           `json:"range"`
}

func (a *ExtendedAttribute) Span() SourceRange {
	return a.Range
}

// ExtendedAttributeKind is the shape of an extended attribute's value.
type ExtendedAttributeKind interface {
	isExtendedAttributeKind()
}

// [Name]
type NoArgs struct{}

// [Name(Arguments)]
type ArgList struct {
	Arguments []*Argument `json:"arguments,omitempty"`
}

// [Name=Ident(Arguments)]
type NamedArgList struct {
	Identifier Identifier  `json:"identifier"`
	Arguments  []*Argument `json:"arguments,omitempty"`
}

// [Name=Ident]
type Ident struct {
	Value Identifier `json:"value"`
}

// [Name="text"]; Value is the verbatim literal, quotes included.
type StringArg struct {
	Value string `json:"value"`
}

// [Name=1.5]
type Decimal struct {
	Value string `json:"value"`
}

// [Name=15]
type Integer struct {
	Value string `json:"value"`
}

// [Name=(A, B)]
type IdentList struct {
	Values []Identifier `json:"values"`
}

// [Name=(1, 2)]
type IntegerList struct {
	Values []string `json:"values"`
}

// [Name=("a", "b")]; values are verbatim literals.
type StringList struct {
	Values []string `json:"values"`
}

// [Name=*]
type Wildcard struct{}

func (NoArgs) isExtendedAttributeKind()        {}
func (*ArgList) isExtendedAttributeKind()      {}
func (*NamedArgList) isExtendedAttributeKind() {}
func (*Ident) isExtendedAttributeKind()        {}
func (*StringArg) isExtendedAttributeKind()    {}
func (*Decimal) isExtendedAttributeKind()      {}
func (*Integer) isExtendedAttributeKind()      {}
func (*IdentList) isExtendedAttributeKind()    {}
func (*IntegerList) isExtendedAttributeKind()  {}
func (*StringList) isExtendedAttributeKind()   {}
func (Wildcard) isExtendedAttributeKind()      {}
