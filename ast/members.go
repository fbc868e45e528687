package ast

type Member interface {
	Node
	Attributes() []*ExtendedAttribute
	isMember()
}

// NamedMember is a member with a name of its own.
type NamedMember interface {
	Member
	MemberName() *Identifier
}

// OperationType distinguishes regular operations from special ones.
type OperationType int

const (
	OperationRegular OperationType = iota
	OperationStringifier
	OperationGetter
	OperationSetter
	OperationDeleter
)

func (t OperationType) String() string {
	switch t {
	case OperationStringifier:
		return "stringifier"
	case OperationGetter:
		return "getter"
	case OperationSetter:
		return "setter"
	case OperationDeleter:
		return "deleter"
	}
	return "regular"
}

func (t OperationType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// constructor(Arguments);
type Constructor struct {
	BaseNode
	Arguments []*Argument `json:"arguments,omitempty"`
}

// const Type NAME = value;
type Constant struct {
	BaseNode
	Name  Identifier `json:"name"`
	Type  Type       `json:"type"`
	Value string     `json:"value"` // verbatim source text
}

// readonly attribute Type name;
type Attribute struct {
	BaseNode
	Name        Identifier `json:"name"`
	Type        Type       `json:"type"`
	Readonly    bool       `json:"readonly,omitempty"`
	Static      bool       `json:"static,omitempty"`
	Stringifier bool       `json:"stringifier,omitempty"`
	Inherit     bool       `json:"inherit,omitempty"`
}

// Type name(Arguments);
type Operation struct {
	BaseNode
	Name          *Identifier   `json:"name,omitempty"`
	ReturnType    Type          `json:"returnType"`
	Arguments     []*Argument   `json:"arguments,omitempty"`
	Static        bool          `json:"static,omitempty"`
	OperationType OperationType `json:"operationType"`
}

// maplike<Key, Value>;
type Maplike struct {
	BaseNode
	KeyType   Type `json:"keyType"`
	ValueType Type `json:"valueType"`
	Readonly  bool `json:"readonly,omitempty"`
}

// setlike<Element>;
type Setlike struct {
	BaseNode
	ElementType Type `json:"elementType"`
	Readonly    bool `json:"readonly,omitempty"`
}

// iterable<Key?, Value>;
type Iterable struct {
	BaseNode
	KeyType   Type `json:"keyType,omitempty"`
	ValueType Type `json:"valueType"`
}

// async iterable<Key?, Value>(Arguments);
type AsyncIterable struct {
	BaseNode
	KeyType   Type        `json:"keyType,omitempty"`
	ValueType Type        `json:"valueType"`
	Arguments []*Argument `json:"arguments,omitempty"`
}

// BrokenMember stands in for a member that could not be built.
type BrokenMember struct {
	BaseNode
}

func (*Constructor) isMember()   {}
func (*Constant) isMember()      {}
func (*Attribute) isMember()     {}
func (*Operation) isMember()     {}
func (*Maplike) isMember()       {}
func (*Setlike) isMember()       {}
func (*Iterable) isMember()      {}
func (*AsyncIterable) isMember() {}
func (*BrokenMember) isMember()  {}

func (m *Constant) MemberName() *Identifier  { return &m.Name }
func (m *Attribute) MemberName() *Identifier { return &m.Name }
func (m *Operation) MemberName() *Identifier { return m.Name }

// The With* helpers return a modified copy and leave the receiver untouched.

func (a Attribute) WithReadonly() *Attribute {
	a.Readonly = true
	return &a
}

func (a Attribute) WithStatic() *Attribute {
	a.Static = true
	return &a
}

func (a Attribute) WithStringifier() *Attribute {
	a.Stringifier = true
	return &a
}

func (a Attribute) WithInherit() *Attribute {
	a.Inherit = true
	return &a
}

func (o Operation) WithStatic() *Operation {
	o.Static = true
	return &o
}

func (o Operation) WithOperationType(t OperationType) *Operation {
	o.OperationType = t
	return &o
}

func (m Maplike) WithReadonly() *Maplike {
	m.Readonly = true
	return &m
}

func (s Setlike) WithReadonly() *Setlike {
	s.Readonly = true
	return &s
}
