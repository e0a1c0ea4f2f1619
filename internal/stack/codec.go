package stack

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Encode writes one KEY=VALUE record per line. Newlines, carriage returns
// and backslashes inside values are escaped so every record stays on one line.
func Encode(w io.Writer, vars []Var) error {
	bw := bufio.NewWriter(w)
	for _, v := range vars {
		if err := validKey(v.Key); err != nil {
			return err
		}
		if _, err := bw.WriteString(v.Key + "=" + escapeValue(v.Value) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads records written by Encode. Blank lines are skipped. Files
// whose first non-blank line has no '=' are read as the legacy layout of
// alternating key and value lines.
func Decode(r io.Reader) ([]Var, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.Contains(line, "=") {
			return decodeLegacy(lines[i:], i)
		}
		break
	}
	return decodeRecords(lines)
}

func decodeRecords(lines []string) ([]Var, error) {
	var vars []Var
	for i, line := range lines {
		lineNo := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, raw, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: line %d: expected KEY=VALUE", ErrMalformed, lineNo)
		}
		if err := validKey(key); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNo, err)
		}
		val, err := unescapeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNo, err)
		}
		vars = append(vars, Var{Key: key, Value: val})
	}
	return vars, nil
}

// decodeLegacy reads key and value lines in turn. Surrounding whitespace is
// trimmed from both, and an empty value line is an empty value.
func decodeLegacy(lines []string, offset int) ([]Var, error) {
	var vars []Var
	for i := 0; i < len(lines); i += 2 {
		lineNo := offset + i + 1
		key := strings.TrimSpace(lines[i])
		if key == "" && i == len(lines)-1 {
			break
		}
		if err := validKey(key); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNo, err)
		}
		if i+1 >= len(lines) {
			return nil, fmt.Errorf("%w: cannot find value for env=%s", ErrMalformed, key)
		}
		vars = append(vars, Var{Key: key, Value: strings.TrimSpace(lines[i+1])})
	}
	return vars, nil
}

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidVariable, key)
	}
	return nil
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)

func escapeValue(s string) string {
	return valueEscaper.Replace(s)
}

func unescapeValue(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i == len(s) {
			return "", fmt.Errorf("dangling escape at end of value")
		}
		switch s[i] {
		case '\\':
			sb.WriteByte('\\')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		default:
			return "", fmt.Errorf("unknown escape \\%c", s[i])
		}
	}
	return sb.String(), nil
}
