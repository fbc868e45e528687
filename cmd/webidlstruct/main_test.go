package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger().WithContext(context.Background())
}

type harness struct {
	app *app
	out *bytes.Buffer
	env map[string]string
}

func newHarness(t *testing.T, files map[string]string) *harness {
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	h := &harness{out: &bytes.Buffer{}, env: map[string]string{}}
	h.app = &app{
		fs: fs,
		lookup: func(key string) (string, bool) {
			v, ok := h.env[key]
			return v, ok
		},
		out:    h.out,
		errOut: &bytes.Buffer{},
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	cmd := newRootCommand(h.app)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	return cmd.ExecuteContext(testContext(t))
}

func (h *harness) read(t *testing.T, name string) string {
	data, err := afero.ReadFile(h.app.fs, name)
	require.NoError(t, err)
	return string(data)
}

var corpusFiles = map[string]string{
	"idl/dom.webidl": `interface EventTarget {};
interface Node : EventTarget {};
interface mixin Slotted {};`,
	"idl/html/element.webidl": `interface Element : Node {};
Element includes Slotted;
dictionary init {};`,
}

func TestCheck(t *testing.T) {
	h := newHarness(t, map[string]string{
		"a.webidl": "interface foo {\n  attribute long ;\n};",
		"b.webidl": "interface Fine {};",
	})

	err := h.run(t, "check", "*.webidl")
	require.Error(t, err)
	assert.Regexp(t, `found \d+ problems`, err.Error())

	out := h.out.String()
	assert.Contains(t, out, "a.webidl:1:10: error Identifier 'foo' should start with an uppercase letter")
	assert.Contains(t, out, "a.webidl:2:17: error missing")
	assert.NotContains(t, out, "b.webidl")
}

func TestCheckFix(t *testing.T) {
	h := newHarness(t, map[string]string{
		"a.webidl": "interface foo {};\ndictionary bar {};\n",
	})

	require.NoError(t, h.run(t, "check", "--fix", "a.webidl"))
	assert.Equal(t, "interface Foo {};\ndictionary Bar {};\n", h.read(t, "a.webidl"))
	assert.Contains(t, h.out.String(), "a.webidl: applied 2 fixes")

	h.out.Reset()
	require.NoError(t, h.run(t, "check", "a.webidl"))
	assert.Empty(t, h.out.String())
}

func TestResolveCommand(t *testing.T) {
	h := newHarness(t, corpusFiles)

	require.NoError(t, h.run(t, "resolve", "--kind", "childInterfaces", "Node"))
	assert.Equal(t, "idl/html/element.webidl:1:10: Element\n", h.out.String())

	h.out.Reset()
	require.NoError(t, h.run(t, "resolve", "--kind", "mixin", "Slotted", "idl/**/*.webidl"))
	assert.Equal(t, "idl/dom.webidl:3:16: Slotted\n", h.out.String())

	err := h.run(t, "resolve", "--kind", "nope", "Node")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown lookup kind "nope"`)
}

func TestASTCommand(t *testing.T) {
	h := newHarness(t, corpusFiles)

	require.NoError(t, h.run(t, "ast", "idl/dom.webidl"))
	out := h.out.String()
	assert.Contains(t, out, "# idl/dom.webidl")
	assert.Contains(t, out, "value: EventTarget")

	h.out.Reset()
	require.NoError(t, h.run(t, "ast", "--format", "pretty", "idl/dom.webidl"))
	assert.Contains(t, h.out.String(), "&ast.Interface{")

	err := h.run(t, "ast", "--format", "json", "idl/dom.webidl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "json"`)
}

func TestTreeCommand(t *testing.T) {
	h := newHarness(t, corpusFiles)
	require.NoError(t, h.run(t, "tree", "idl/dom.webidl"))
	out := h.out.String()
	assert.Contains(t, out, "Definition(Interface) [0,25)")
	assert.Contains(t, out, "Name(inheritance)")
}

func TestLoadErrors(t *testing.T) {
	h := newHarness(t, corpusFiles)

	err := h.run(t, "tree", "missing.webidl", "nothing/*.webidl", "idl/dom.webidl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading missing.webidl")
	assert.Contains(t, err.Error(), `no files match "nothing/*.webidl"`)
	assert.Contains(t, h.out.String(), "# idl/dom.webidl")
}

func TestConfigLayers(t *testing.T) {
	h := newHarness(t, map[string]string{
		defaultConfigPath: "format: pretty\nlogLevel: info\ninclude: [idl/*.webidl]\n",
		"custom.yaml":     "noColor: true\n",
		"bad.yaml":        "unknownKey: 1\n",
	})

	cfg, err := loadConfig(h.app.fs, "", h.app.lookup)
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: "info", Format: FormatPretty, Include: []string{"idl/*.webidl"}}, cfg)

	h.env["WEBIDLSTRUCT_LOG_LEVEL"] = "debug"
	h.env["WEBIDLSTRUCT_INCLUDE"] = "a.webidl,b.webidl"
	cfg, err = loadConfig(h.app.fs, "", h.app.lookup)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, FormatPretty, cfg.Format)
	assert.Equal(t, []string{"a.webidl", "b.webidl"}, cfg.Include)

	cfg, err = loadConfig(h.app.fs, "custom.yaml", func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	want := DefaultConfig()
	want.NoColor = true
	assert.Equal(t, want, cfg)

	_, err = loadConfig(h.app.fs, "bad.yaml", h.app.lookup)
	assert.Error(t, err)
	_, err = loadConfig(h.app.fs, "absent.yaml", h.app.lookup)
	assert.Error(t, err)

	cfg, err = loadConfig(afero.NewMemMapFs(), "", func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFlagsOverrideConfig(t *testing.T) {
	files := map[string]string{defaultConfigPath: "format: pretty\n"}
	for k, v := range corpusFiles {
		files[k] = v
	}
	h := newHarness(t, files)
	h.env["WEBIDLSTRUCT_FORMAT"] = "pretty"

	require.NoError(t, h.run(t, "ast", "--format", "yaml", "idl/dom.webidl"))
	assert.Equal(t, FormatYAML, h.app.cfg.Format)
	assert.True(t, h.app.cfg.NoColor)
	assert.NotContains(t, h.out.String(), "&ast.Interface{")
}

func TestIncludeDefaults(t *testing.T) {
	h := newHarness(t, corpusFiles)
	require.NoError(t, h.run(t, "tree"))
	out := h.out.String()
	assert.Contains(t, out, "# idl/dom.webidl")
	assert.Contains(t, out, "# idl/html/element.webidl")
}
