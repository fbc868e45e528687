package ast

type Type interface {
	Node
	Attributes() []*ExtendedAttribute
	isType()
}

// PrimitiveKind enumerates the built-in leaf types.
type PrimitiveKind int

const (
	Any PrimitiveKind = iota
	Void
	Undefined
	Boolean
	Byte
	Octet
	Short
	UnsignedShort
	Long
	UnsignedLong
	LongLong
	UnsignedLongLong
	Float
	UnrestrictedFloat
	Double
	UnrestrictedDouble
	Bigint
	DOMString
	ByteString
	USVString
	Object
	Symbol
	ArrayBuffer
	SharedArrayBuffer
	DataView
	Int8Array
	Int16Array
	Int32Array
	Uint8Array
	Uint16Array
	Uint32Array
	Uint8ClampedArray
	BigInt64Array
	BigUint64Array
	Float16Array
	Float32Array
	Float64Array
)

var primitiveNames = [...]string{
	Any:                "any",
	Void:               "void",
	Undefined:          "undefined",
	Boolean:            "boolean",
	Byte:               "byte",
	Octet:              "octet",
	Short:              "short",
	UnsignedShort:      "unsigned short",
	Long:               "long",
	UnsignedLong:       "unsigned long",
	LongLong:           "long long",
	UnsignedLongLong:   "unsigned long long",
	Float:              "float",
	UnrestrictedFloat:  "unrestricted float",
	Double:             "double",
	UnrestrictedDouble: "unrestricted double",
	Bigint:             "bigint",
	DOMString:          "DOMString",
	ByteString:         "ByteString",
	USVString:          "USVString",
	Object:             "object",
	Symbol:             "symbol",
	ArrayBuffer:        "ArrayBuffer",
	SharedArrayBuffer:  "SharedArrayBuffer",
	DataView:           "DataView",
	Int8Array:          "Int8Array",
	Int16Array:         "Int16Array",
	Int32Array:         "Int32Array",
	Uint8Array:         "Uint8Array",
	Uint16Array:        "Uint16Array",
	Uint32Array:        "Uint32Array",
	Uint8ClampedArray:  "Uint8ClampedArray",
	BigInt64Array:      "BigInt64Array",
	BigUint64Array:     "BigUint64Array",
	Float16Array:       "Float16Array",
	Float32Array:       "Float32Array",
	Float64Array:       "Float64Array",
}

var primitivesByName = func() map[string]PrimitiveKind {
	m := make(map[string]PrimitiveKind, len(primitiveNames))
	for k, name := range primitiveNames {
		m[name] = PrimitiveKind(k)
	}
	return m
}()

// LookupPrimitive returns the primitive kind spelled by name, with words
// separated by single spaces ("unsigned long long").
func LookupPrimitive(name string) (PrimitiveKind, bool) {
	k, ok := primitivesByName[name]
	return k, ok
}

func (k PrimitiveKind) String() string {
	if k >= 0 && int(k) < len(primitiveNames) {
		return primitiveNames[k]
	}
	return "PrimitiveKind(?)"
}

func (k PrimitiveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// long, DOMString, Uint8Array, ...
type PrimitiveType struct {
	BaseNode
	Kind PrimitiveKind `json:"kind"`
}

// Node
type IdentifierType struct {
	BaseNode
	Name Identifier `json:"name"`
}

// T?
type NullableType struct {
	BaseNode
	Inner Type `json:"inner"`
}

// sequence<T>
type SequenceType struct {
	BaseNode
	Inner Type `json:"inner"`
}

// async_sequence<T>
type AsyncSequenceType struct {
	BaseNode
	Inner Type `json:"inner"`
}

// record<K, V>
type RecordType struct {
	BaseNode
	KeyType   Type `json:"keyType"`
	ValueType Type `json:"valueType"`
}

// Promise<T>
type PromiseType struct {
	BaseNode
	Inner Type `json:"inner"`
}

// (A or B or C)
type UnionType struct {
	BaseNode
	Options []Type `json:"options"`
}

// FrozenArray<T>
type FrozenArrayType struct {
	BaseNode
	Inner Type `json:"inner"`
}

// ObservableArray<T>
type ObservableArrayType struct {
	BaseNode
	Inner Type `json:"inner"`
}

func (*PrimitiveType) isType()       {}
func (*IdentifierType) isType()      {}
func (*NullableType) isType()        {}
func (*SequenceType) isType()        {}
func (*AsyncSequenceType) isType()   {}
func (*RecordType) isType()          {}
func (*PromiseType) isType()         {}
func (*UnionType) isType()           {}
func (*FrozenArrayType) isType()     {}
func (*ObservableArrayType) isType() {}
