package astbuild

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/parser"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger().WithContext(context.Background())
}

func build(t *testing.T, src string) *ast.File {
	t.Helper()
	root, _ := parser.Parse(src, nil)
	file, err := Build(testContext(t), root)
	require.NoError(t, err)
	return file
}

func single[T ast.Definition](t *testing.T, src string) T {
	t.Helper()
	file := build(t, src)
	require.Len(t, file.Definitions, 1, ast.DumpString(file))
	def, ok := file.Definitions[0].(T)
	require.True(t, ok, "got %T", file.Definitions[0])
	return def
}

func primitive(t *testing.T, typ ast.Type) ast.PrimitiveKind {
	t.Helper()
	p, ok := typ.(*ast.PrimitiveType)
	require.True(t, ok, "got %T", typ)
	return p.Kind
}

func TestBuildInterface(t *testing.T) {
	iface := single[*ast.Interface](t, "interface Foo { };")

	assert.Equal(t, "Foo", iface.Identifier.Value)
	assert.Nil(t, iface.Inheritance)
	assert.Empty(t, iface.Members)
	assert.Equal(t, ast.SourceRange{StartLine: 1, EndLine: 1, EndColumn: 18, EndOffset: 18}, iface.Range)
	assert.Equal(t, ast.SourceRange{StartLine: 1, StartColumn: 10, EndLine: 1, EndColumn: 13, StartOffset: 10, EndOffset: 13}, iface.Identifier.Range)
}

func TestBuildDictionary(t *testing.T) {
	dict := single[*ast.Dictionary](t, "dictionary D : Base { required DOMString id; long count = 42; };")

	assert.Equal(t, "D", dict.Identifier.Value)
	require.NotNil(t, dict.Inheritance)
	assert.Equal(t, "Base", dict.Inheritance.Value)
	require.Len(t, dict.Members, 2)

	id := dict.Members[0]
	assert.Equal(t, "id", id.Name.Value)
	assert.True(t, id.Required)
	assert.Equal(t, ast.DOMString, primitive(t, id.Type))
	assert.Nil(t, id.DefaultValue)

	count := dict.Members[1]
	assert.Equal(t, "count", count.Name.Value)
	assert.False(t, count.Required)
	require.NotNil(t, count.DefaultValue)
	assert.Equal(t, "42", *count.DefaultValue)
}

func TestBuildBrokenDefinition(t *testing.T) {
	file := build(t, "interface { };\ninterface B {};")
	require.Len(t, file.Definitions, 2)

	broken, ok := file.Definitions[0].(*ast.BrokenDefinition)
	require.True(t, ok, "got %T", file.Definitions[0])
	assert.Equal(t, "interface{};", broken.Identifier.Value)
	assert.Equal(t, 0, broken.Range.StartOffset)
	assert.Equal(t, 14, broken.Range.EndOffset)

	b, ok := file.Definitions[1].(*ast.Interface)
	require.True(t, ok, "got %T", file.Definitions[1])
	assert.Equal(t, "B", b.Identifier.Value)
}

func TestBuildMemberIsolation(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"interface", "interface A { attribute long; const long X = 1; };"},
		{"partial interface", "partial interface A { attribute long; const long X = 1; };"},
		{"mixin", "interface mixin A { attribute long; const long X = 1; };"},
		{"namespace", "namespace A { attribute long; const long X = 1; };"},
		{"callback interface", "callback interface A { long (; const long X = 1; };"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			file := build(t, test.src)
			require.Len(t, file.Definitions, 1)
			holder, ok := file.Definitions[0].(ast.MemberHolder)
			require.True(t, ok, "got %T", file.Definitions[0])

			members := holder.MemberList()
			require.Len(t, members, 2, ast.DumpString(file))
			assert.IsType(t, &ast.BrokenMember{}, members[0])
			c, ok := members[1].(*ast.Constant)
			require.True(t, ok, "got %T", members[1])
			assert.Equal(t, "X", c.Name.Value)
			assert.Equal(t, "1", c.Value)
		})
	}
}

func TestBuildDictionaryMemberDropped(t *testing.T) {
	dict := single[*ast.Dictionary](t, "dictionary D { long; DOMString name; };")
	require.Len(t, dict.Members, 1)
	assert.Equal(t, "name", dict.Members[0].Name.Value)
}

func TestBuildMembers(t *testing.T) {
	iface := single[*ast.Interface](t, `interface A {
  constructor(optional long x = -1, DOMString... rest);
  static readonly attribute long count;
  inherit attribute DOMString title;
  getter DOMString (unsigned long index);
  stringifier;
  stringifier readonly attribute DOMString href;
  static undefined reset();
  iterable<long, DOMString>;
  async iterable<long>(optional boolean all);
  readonly maplike<DOMString, long>;
  setlike<DOMString>;
};`)
	m := iface.Members
	require.Len(t, m, 11, ast.DumpString(iface))

	ctor := m[0].(*ast.Constructor)
	require.Len(t, ctor.Arguments, 2)
	assert.True(t, ctor.Arguments[0].Optional)
	require.NotNil(t, ctor.Arguments[0].DefaultValue)
	assert.Equal(t, "-1", *ctor.Arguments[0].DefaultValue)
	assert.True(t, ctor.Arguments[1].Variadic)
	assert.Equal(t, "rest", ctor.Arguments[1].Name.Value)

	count := m[1].(*ast.Attribute)
	assert.True(t, count.Static)
	assert.True(t, count.Readonly)
	assert.Equal(t, ast.Long, primitive(t, count.Type))

	title := m[2].(*ast.Attribute)
	assert.True(t, title.Inherit)
	assert.False(t, title.Readonly)

	getter := m[3].(*ast.Operation)
	assert.Equal(t, ast.OperationGetter, getter.OperationType)
	assert.Nil(t, getter.Name)
	require.Len(t, getter.Arguments, 1)
	assert.Equal(t, ast.UnsignedLong, primitive(t, getter.Arguments[0].Type))

	str := m[4].(*ast.Operation)
	assert.Equal(t, ast.OperationStringifier, str.OperationType)
	assert.Nil(t, str.Name)
	assert.Equal(t, ast.DOMString, primitive(t, str.ReturnType))

	href := m[5].(*ast.Attribute)
	assert.True(t, href.Stringifier)
	assert.True(t, href.Readonly)

	reset := m[6].(*ast.Operation)
	assert.True(t, reset.Static)
	require.NotNil(t, reset.Name)
	assert.Equal(t, "reset", reset.Name.Value)

	it := m[7].(*ast.Iterable)
	assert.Equal(t, ast.Long, primitive(t, it.KeyType))
	assert.Equal(t, ast.DOMString, primitive(t, it.ValueType))

	async := m[8].(*ast.AsyncIterable)
	assert.Nil(t, async.KeyType)
	assert.Equal(t, ast.Long, primitive(t, async.ValueType))
	require.Len(t, async.Arguments, 1)

	ml := m[9].(*ast.Maplike)
	assert.True(t, ml.Readonly)

	sl := m[10].(*ast.Setlike)
	assert.False(t, sl.Readonly)
	assert.Equal(t, ast.DOMString, primitive(t, sl.ElementType))
}

func TestBuildNamespaceAttributesReadonly(t *testing.T) {
	ns := single[*ast.Namespace](t, "namespace console { attribute long depth; };")
	require.Len(t, ns.Members, 1)
	assert.True(t, ns.Members[0].(*ast.Attribute).Readonly)
}

func TestBuildTypes(t *testing.T) {
	file := build(t, `
typedef (long or (DOMString or boolean) or (float or double)?)? A;
typedef [Clamp] long? B;
typedef record<DOMString, sequence<unsigned long long>> C;
typedef Promise<any> D;
typedef FrozenArray<Node>? E;
`)
	require.Len(t, file.Definitions, 5, ast.DumpString(file))
	typeOf := func(i int) ast.Type { return file.Definitions[i].(*ast.Typedef).Type }

	a := typeOf(0).(*ast.NullableType)
	u := a.Inner.(*ast.UnionType)
	require.Len(t, u.Options, 4)
	assert.Equal(t, ast.Long, primitive(t, u.Options[0]))
	assert.Equal(t, ast.DOMString, primitive(t, u.Options[1]))
	assert.Equal(t, ast.Boolean, primitive(t, u.Options[2]))
	nested := u.Options[3].(*ast.NullableType).Inner.(*ast.UnionType)
	assert.Len(t, nested.Options, 2)

	b := typeOf(1).(*ast.NullableType)
	assert.Empty(t, b.Attributes())
	inner := b.Inner.(*ast.PrimitiveType)
	assert.Equal(t, ast.Long, inner.Kind)
	require.Len(t, inner.Attributes(), 1)
	assert.Equal(t, "Clamp", inner.Attributes()[0].Name.Value)
	assert.Less(t, inner.Range.EndOffset, b.Range.EndOffset)

	c := typeOf(2).(*ast.RecordType)
	assert.Equal(t, ast.DOMString, primitive(t, c.KeyType))
	seq := c.ValueType.(*ast.SequenceType)
	assert.Equal(t, ast.UnsignedLongLong, primitive(t, seq.Inner))

	d := typeOf(3).(*ast.PromiseType)
	assert.Equal(t, ast.Any, primitive(t, d.Inner))

	e := typeOf(4).(*ast.NullableType)
	frozen := e.Inner.(*ast.FrozenArrayType)
	assert.Equal(t, "Node", frozen.Inner.(*ast.IdentifierType).Name.Value)
}

func TestBuildExtendedAttributes(t *testing.T) {
	iface := single[*ast.Interface](t, `[Exposed=(Window,Worker), Constructor(long x), LegacyFactoryFunction=Image(DOMString src),
 Reflect, ReflectDefault=2, Named="x", Scale=1.5, Ints=(1,2), Strs=("a","b"), Global=*, Exposed=Window]
interface X {};`)

	attrs := iface.Attributes()
	require.Len(t, attrs, 11)

	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name.Value
	}
	assert.Equal(t, []string{
		"Exposed", "Constructor", "LegacyFactoryFunction", "Reflect", "ReflectDefault",
		"Named", "Scale", "Ints", "Strs", "Global", "Exposed",
	}, names)

	identList := attrs[0].Kind.(*ast.IdentList)
	require.Len(t, identList.Values, 2)
	assert.Equal(t, "Worker", identList.Values[1].Value)

	argList := attrs[1].Kind.(*ast.ArgList)
	require.Len(t, argList.Arguments, 1)
	assert.Equal(t, "x", argList.Arguments[0].Name.Value)

	named := attrs[2].Kind.(*ast.NamedArgList)
	assert.Equal(t, "Image", named.Identifier.Value)
	require.Len(t, named.Arguments, 1)

	assert.Equal(t, ast.NoArgs{}, attrs[3].Kind)
	assert.Equal(t, &ast.Integer{Value: "2"}, attrs[4].Kind)
	assert.Equal(t, &ast.StringArg{Value: `"x"`}, attrs[5].Kind)
	assert.Equal(t, &ast.Decimal{Value: "1.5"}, attrs[6].Kind)
	assert.Equal(t, &ast.IntegerList{Values: []string{"1", "2"}}, attrs[7].Kind)
	assert.Equal(t, &ast.StringList{Values: []string{`"a"`, `"b"`}}, attrs[8].Kind)
	assert.Equal(t, ast.Wildcard{}, attrs[9].Kind)
	assert.Equal(t, "Window", attrs[10].Kind.(*ast.Ident).Value.Value)
}

func TestBuildOtherDefinitions(t *testing.T) {
	file := build(t, `
enum E { "a", "b", };
Node includes Slotted;
callback Done = undefined (DOMString data, optional any extra);
partial dictionary P { long x; };
partial interface mixin M { attribute long y; };
partial namespace N { long z(); };
`)
	require.Len(t, file.Definitions, 6, ast.DumpString(file))

	e := file.Definitions[0].(*ast.Enum)
	assert.Equal(t, []string{"a", "b"}, e.Values)

	inc := file.Definitions[1].(*ast.Includes)
	assert.Equal(t, "Node", inc.InterfaceName.Value)
	assert.Equal(t, "Slotted", inc.MixinName.Value)

	cb := file.Definitions[2].(*ast.CallbackFunction)
	assert.Equal(t, "Done", cb.Identifier.Value)
	assert.Equal(t, ast.Undefined, primitive(t, cb.ReturnType))
	require.Len(t, cb.Arguments, 2)
	assert.True(t, cb.Arguments[1].Optional)

	pd := file.Definitions[3].(*ast.PartialDictionary)
	assert.Len(t, pd.Members, 1)
	assert.True(t, ast.IsPartial(pd))

	pm := file.Definitions[4].(*ast.PartialMixin)
	assert.Equal(t, "M", pm.Identifier.Value)

	pn := file.Definitions[5].(*ast.PartialNamespace)
	require.Len(t, pn.Members, 1)
	assert.Equal(t, "z", pn.Members[0].(*ast.Operation).Name.Value)
}

func TestBuildRejectsNonFileRoot(t *testing.T) {
	_, err := Build(testContext(t), &parser.Node{Rule: parser.RuleDefinition})
	assert.Error(t, err)

	_, err = Build(testContext(t), nil)
	assert.Error(t, err)
}

func TestBuildEmptyFile(t *testing.T) {
	file := build(t, "")
	assert.Empty(t, file.Definitions)
	assert.Equal(t, ast.SourceRange{StartLine: 1, EndLine: 1}, file.Range)
}

func TestBuildCorpus(t *testing.T) {
	paths, err := filepath.Glob("../parser/testdata/*.webidl")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			data, err := os.ReadFile(path)
			require.NoError(t, err)

			first := build(t, string(data))
			for _, def := range first.Definitions {
				_, broken := def.(*ast.BrokenDefinition)
				assert.False(t, broken, ast.DumpString(def))
				if holder, ok := def.(ast.MemberHolder); ok {
					for _, m := range holder.MemberList() {
						_, broken := m.(*ast.BrokenMember)
						assert.False(t, broken, ast.DumpString(m))
					}
				}
			}

			second := build(t, string(data))
			assert.Empty(t, ast.Diff(first, second))
		})
	}
}
