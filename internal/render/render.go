package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"envstack/internal/stack"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatEnv    Format = "env"
	FormatExport Format = "export"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatEnv, FormatExport, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatEnv, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected env, export, json, or yaml)", s)
	}
}

func Formats() []Format {
	return []Format{FormatEnv, FormatExport, FormatJSON, FormatYAML}
}

// Write renders st to w in the given format.
func Write(w io.Writer, st *stack.Stack, format Format) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatEnv, "":
		out = shellLines(st, func(v stack.Var) string { return v.Key + "=" + v.Value })
	case FormatExport:
		out = shellLines(st, func(v stack.Var) string { return "export " + v.Key + "=" + ShellQuote(v.Value) })
	case FormatJSON:
		out, err = jsonObject(st)
	case FormatYAML:
		out, err = yamlMapping(st)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	_, err = w.Write(out)
	return err
}

func String(st *stack.Stack, format Format) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, st, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func shellLines(st *stack.Stack, line func(stack.Var) string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# [stack=%s] Saved environment variables\n", st.Name)
	for _, v := range st.Vars {
		sb.WriteString(line(v))
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// ShellQuote wraps s in single quotes for POSIX shells. Values made only of
// safe characters are returned as-is.
func ShellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, unsafeShellRune) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func unsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("_-./:,+@%=", r):
		return false
	}
	return true
}

// jsonObject keeps keys in stack order, which encoding/json maps would not.
func jsonObject(st *stack.Stack) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, v := range st.Vars {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		k, err := json.Marshal(v.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(val)
	}
	if len(st.Vars) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func yamlMapping(st *stack.Stack) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, v := range st.Vars {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Value},
		)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
