// Package ast defines the typed WebIDL syntax tree. Nodes are built once by
// package astbuild and are read-only afterwards.
package ast

// SourceRange is a half-open byte range [StartOffset, EndOffset) together
// with the line and column of both ends. Lines are 1-based, columns 0-based.
type SourceRange struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`
}

// Len returns the number of bytes covered by the range.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// Contains reports whether offset lies within [StartOffset, EndOffset).
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

type Node interface {
	Span() SourceRange
}

type BaseNode struct {
	Range              SourceRange          `json:"range"`
	ExtendedAttributes []*ExtendedAttribute `json:"extendedAttributes,omitempty"`
}

func (b BaseNode) Span() SourceRange {
	return b.Range
}

// Attributes returns the extended attributes in source order.
func (b BaseNode) Attributes() []*ExtendedAttribute {
	return b.ExtendedAttributes
}

// Identifier is a name with its location. Equality is text equality.
type Identifier struct {
	Value string      `json:"value"`
	Range SourceRange `json:"range"`
}

func (i Identifier) Span() SourceRange {
	return i.Range
}

// The file root node
type File struct {
	Definitions []Definition `json:"definitions,omitempty"`
	Range       SourceRange  `json:"range"`
}

func (f *File) Span() SourceRange {
	return f.Range
}

type Definition interface {
	Node
	Attributes() []*ExtendedAttribute
	isDefinition()
}

// NamedDefinition is a definition with a single identifier of its own.
// Partial definitions name the definition they extend.
type NamedDefinition interface {
	Definition
	Name() Identifier
}

// MemberHolder is a definition with a body of members.
type MemberHolder interface {
	NamedDefinition
	MemberList() []Member
}

// interface Foo : Bar { ... };
type Interface struct {
	BaseNode
	Identifier  Identifier  `json:"identifier"`
	Inheritance *Identifier `json:"inheritance,omitempty"`
	Members     []Member    `json:"members,omitempty"`
}

// interface mixin Foo { ... };
type Mixin struct {
	BaseNode
	Identifier Identifier `json:"identifier"`
	Members    []Member   `json:"members,omitempty"`
}

// dictionary Foo : Bar { ... };
type Dictionary struct {
	BaseNode
	Identifier  Identifier          `json:"identifier"`
	Inheritance *Identifier         `json:"inheritance,omitempty"`
	Members     []*DictionaryMember `json:"members,omitempty"`
}

// partial interface Foo { ... };
type PartialInterface struct {
	BaseNode
	Identifier Identifier `json:"identifier"`
	Members    []Member   `json:"members,omitempty"`
}

// partial interface mixin Foo { ... };
type PartialMixin struct {
	BaseNode
	Identifier Identifier `json:"identifier"`
	Members    []Member   `json:"members,omitempty"`
}

// partial dictionary Foo { ... };
type PartialDictionary struct {
	BaseNode
	Identifier Identifier          `json:"identifier"`
	Members    []*DictionaryMember `json:"members,omitempty"`
}

// partial namespace Foo { ... };
type PartialNamespace struct {
	BaseNode
	Identifier Identifier `json:"identifier"`
	Members    []Member   `json:"members,omitempty"`
}

// namespace Foo { ... };
type Namespace struct {
	BaseNode
	Identifier Identifier `json:"identifier"`
	Members    []Member   `json:"members,omitempty"`
}

// callback interface Foo { ... };
type CallbackInterface struct {
	BaseNode
	Identifier Identifier `json:"identifier"`
	Members    []Member   `json:"members,omitempty"`
}

// typedef Type Foo;
type Typedef struct {
	BaseNode
	Identifier Identifier `json:"identifier"`
	Type       Type       `json:"type"`
}

// enum Foo { "a", "b" };
type Enum struct {
	BaseNode
	Identifier Identifier `json:"identifier"`
	Values     []string   `json:"values,omitempty"` // unquoted
}

// Foo includes Bar;
type Includes struct {
	BaseNode
	InterfaceName Identifier `json:"interfaceName"`
	MixinName     Identifier `json:"mixinName"`
}

// callback Foo = Type (Arguments);
type CallbackFunction struct {
	BaseNode
	Identifier Identifier  `json:"identifier"`
	ReturnType Type        `json:"returnType"`
	Arguments  []*Argument `json:"arguments,omitempty"`
}

// BrokenDefinition stands in for a definition that could not be built. Its
// identifier holds the raw text of the definition.
type BrokenDefinition struct {
	BaseNode
	Identifier Identifier `json:"identifier"`
}

func (*Interface) isDefinition()         {}
func (*Mixin) isDefinition()             {}
func (*Dictionary) isDefinition()        {}
func (*PartialInterface) isDefinition()  {}
func (*PartialMixin) isDefinition()      {}
func (*PartialDictionary) isDefinition() {}
func (*PartialNamespace) isDefinition()  {}
func (*Namespace) isDefinition()         {}
func (*CallbackInterface) isDefinition() {}
func (*Typedef) isDefinition()           {}
func (*Enum) isDefinition()              {}
func (*Includes) isDefinition()          {}
func (*CallbackFunction) isDefinition()  {}
func (*BrokenDefinition) isDefinition()  {}

func (d *Interface) Name() Identifier         { return d.Identifier }
func (d *Mixin) Name() Identifier             { return d.Identifier }
func (d *Dictionary) Name() Identifier        { return d.Identifier }
func (d *PartialInterface) Name() Identifier  { return d.Identifier }
func (d *PartialMixin) Name() Identifier      { return d.Identifier }
func (d *PartialDictionary) Name() Identifier { return d.Identifier }
func (d *PartialNamespace) Name() Identifier  { return d.Identifier }
func (d *Namespace) Name() Identifier         { return d.Identifier }
func (d *CallbackInterface) Name() Identifier { return d.Identifier }
func (d *Typedef) Name() Identifier           { return d.Identifier }
func (d *Enum) Name() Identifier              { return d.Identifier }
func (d *CallbackFunction) Name() Identifier  { return d.Identifier }
func (d *BrokenDefinition) Name() Identifier  { return d.Identifier }

func (d *Interface) MemberList() []Member         { return d.Members }
func (d *Mixin) MemberList() []Member             { return d.Members }
func (d *PartialInterface) MemberList() []Member  { return d.Members }
func (d *PartialMixin) MemberList() []Member      { return d.Members }
func (d *PartialNamespace) MemberList() []Member  { return d.Members }
func (d *Namespace) MemberList() []Member         { return d.Members }
func (d *CallbackInterface) MemberList() []Member { return d.Members }

// IsPartial reports whether def extends a definition declared elsewhere.
func IsPartial(def Definition) bool {
	switch def.(type) {
	case *PartialInterface, *PartialMixin, *PartialDictionary, *PartialNamespace:
		return true
	}
	return false
}

// DictionaryMember is a single dictionary field.
type DictionaryMember struct {
	BaseNode
	Name         Identifier `json:"name"`
	Type         Type       `json:"type"`
	Required     bool       `json:"required,omitempty"`
	DefaultValue *string    `json:"defaultValue,omitempty"` // verbatim source text
}

// optional any SomeArg = "x"
type Argument struct {
	BaseNode
	Name         Identifier `json:"name"`
	Type         Type       `json:"type"`
	Optional     bool       `json:"optional,omitempty"`
	Variadic     bool       `json:"variadic,omitempty"`
	DefaultValue *string    `json:"defaultValue,omitempty"` // verbatim source text
}
