package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syntaxError struct {
	token Token
	msg   string
}

func parseCollecting(input string) (*Node, []Token, []syntaxError) {
	var errs []syntaxError
	root, tokens := Parse(input, ErrorListenerFunc(func(offending Token, line, column int, msg string) {
		errs = append(errs, syntaxError{offending, msg})
	}))
	return root, tokens, errs
}

func TestParse(t *testing.T) {
	const testDir = "./testdata"
	names, err := os.ReadDir(testDir)
	require.NoError(t, err)

	const ext = ".webidl"
	for _, entry := range names {
		fname := entry.Name()
		if !strings.HasSuffix(fname, ext) {
			continue
		}
		name := strings.TrimSuffix(fname, ext)
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(testDir, fname))
			require.NoError(t, err)

			root, tokens, errs := parseCollecting(string(data))
			require.Empty(t, errs)
			require.False(t, root.HasError())

			var sb strings.Builder
			for _, token := range tokens {
				sb.WriteString(token.Text)
			}
			assert.Equal(t, string(data), sb.String())
			assert.NotNil(t, root.Child(RuleDefinitions))
		})
	}
}

// definitionsOf flattens the right-recursive definitions chain.
func definitionsOf(root *Node) []*Node {
	var out []*Node
	for n := root.Child(RuleDefinitions); n != nil; n = n.Child(RuleDefinitions) {
		out = append(out, n)
	}
	return out
}

func TestParseChainShape(t *testing.T) {
	root, _, errs := parseCollecting(`interface A {}; dictionary B {}; enum C { "x" };`)
	require.Empty(t, errs)

	defs := definitionsOf(root)
	require.Len(t, defs, 3)
	assert.Equal(t, "interfaceA{};", defs[0].Child(RuleDefinition).Text())
	assert.NotNil(t, defs[1].Child(RuleDefinition).Child(RuleDictionary))
	assert.NotNil(t, defs[2].Child(RuleDefinition).Child(RuleEnum))
}

func TestParseMemberChain(t *testing.T) {
	root, _, errs := parseCollecting(`interface A { attribute long a; [X] void b(); const long C = 1; };`)
	require.Empty(t, errs)

	rest := root.Child(RuleDefinitions).Child(RuleDefinition).
		Child(RuleCallbackOrInterfaceOrMixin).Child(RuleInterfaceOrMixin).Child(RuleInterfaceRest)
	require.NotNil(t, rest)

	var members []*Node
	for n := rest.Child(RuleInterfaceMembers); n != nil; n = n.Child(RuleInterfaceMembers) {
		members = append(members, n)
	}
	require.Len(t, members, 3)
	assert.NotNil(t, members[1].Child(RuleExtendedAttributeList))
	assert.NotNil(t, members[2].Child(RuleInterfaceMember).Child(RulePartialInterfaceMember).Child(RuleConst))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		offset  int
	}{
		{"missing semicolon at eof", "interface Foo {}", "missing ';' at <EOF>", 16},
		{"unterminated body", "interface Foo {", "missing '}' at <EOF>", 15},
		{"garbage member", "interface Foo { ??? };", "mismatched input '?' expecting a member", 16},
		{"garbage definition", "foo bar;", "missing 'includes' at 'bar'", 4},
		{"bad top level", "; interface A {};", "mismatched input ';' expecting a definition", 0},
		{"bad partial", "partial enum X {};", "mismatched input 'enum' expecting {'interface', 'dictionary', 'namespace'}", 8},
		{"extraneous token", "interface Foo {} x;", "extraneous input 'x' expecting ';'", 17},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, errs := parseCollecting(test.input)
			require.NotEmpty(t, errs)
			assert.Equal(t, test.message, errs[0].msg)
			assert.Equal(t, test.offset, errs[0].token.Start)
		})
	}
}

func TestParseRecoveryKeepsLaterDefinitions(t *testing.T) {
	root, tokens, errs := parseCollecting("interface Foo {\ninterface Bar {};")
	require.NotEmpty(t, errs)

	defs := definitionsOf(root)
	require.Len(t, defs, 2)
	assert.Equal(t, "interfaceBar{};", defs[1].Child(RuleDefinition).Text())
	assert.Len(t, tokens, 13)
}

func TestParseTerminates(t *testing.T) {
	inputs := []string{
		"[", "[]", "[,", "interface", "interface {", "partial", "dictionary X { required; };",
		"enum E { , };", "typedef ;", "callback = ;", "interface A { attribute; getter; };",
		"interface A { (long or) x(); };", "interface A { iterable<; };", "}}}{{{",
		"[Foo=(1,] interface A {};", "namespace N { readonly maplike<long, long>; };",
	}
	for _, input := range inputs {
		root, tokens, _ := parseCollecting(input)
		require.NotNil(t, root, input)

		var sb strings.Builder
		for _, token := range tokens {
			sb.WriteString(token.Text)
		}
		assert.Equal(t, input, sb.String())
	}
}
