package render

import (
	"encoding/json"
	"testing"

	"envstack/internal/stack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sample() *stack.Stack {
	return &stack.Stack{Name: "work", Vars: []stack.Var{
		{Key: "HOME", Value: "/root"},
		{Key: "PATH", Value: "/bin"},
	}}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatEnv, f)

	f, err = ParseFormat(" YAML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)
}

func TestEnvFormat(t *testing.T) {
	out, err := String(sample(), FormatEnv)
	require.NoError(t, err)
	assert.Equal(t, "# [stack=work] Saved environment variables\nHOME=/root\nPATH=/bin\n", out)
}

func TestExportFormatQuotes(t *testing.T) {
	st := &stack.Stack{Name: "q", Vars: []stack.Var{
		{Key: "PLAIN", Value: "/usr/bin:/bin"},
		{Key: "EMPTY", Value: ""},
		{Key: "SPACED", Value: "a b"},
		{Key: "QUOTE", Value: "it's"},
	}}
	out, err := String(st, FormatExport)
	require.NoError(t, err)
	assert.Equal(t, "# [stack=q] Saved environment variables\n"+
		"export PLAIN=/usr/bin:/bin\n"+
		"export EMPTY=''\n"+
		"export SPACED='a b'\n"+
		"export QUOTE='it'\\''s'\n", out)
}

func TestJSONFormatKeepsOrder(t *testing.T) {
	st := &stack.Stack{Name: "j", Vars: []stack.Var{
		{Key: "Z", Value: "last\nline"},
		{Key: "A", Value: "first"},
	}}
	out, err := String(st, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"Z\": \"last\\nline\",\n  \"A\": \"first\"\n}\n", out)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "last\nline", decoded["Z"])

	out, err = String(&stack.Stack{Name: "e"}, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)
}

func TestYAMLFormat(t *testing.T) {
	st := sample()
	st.Vars = append(st.Vars, stack.Var{Key: "NUM", Value: "42"})
	out, err := String(st, FormatYAML)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "/root", decoded["HOME"])
	assert.Equal(t, "42", decoded["NUM"])
}

func TestUnknownFormat(t *testing.T) {
	_, err := String(sample(), Format("xml"))
	assert.Error(t, err)
}
