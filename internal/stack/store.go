package stack

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

const fileExt = ".txt"

type Store struct {
	rootDir string
	log     *zap.Logger

	// LookupEnv resolves variable values at push time. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

func New(rootDir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{rootDir: rootDir, log: log, LookupEnv: os.LookupEnv}
}

func (s *Store) Root() string {
	return s.rootDir
}

// Path maps a stack name to its file under the storage root.
func (s *Store) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.rootDir, name+fileExt), nil
}

func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsRune(name, '/'), strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return fmt.Errorf("%w: %q contains a control character", ErrInvalidName, name)
	}
	return nil
}

// Capture resolves names from the environment, sorted and de-duplicated.
// Unset variables are captured as empty strings.
func (s *Store) Capture(names []string) []Var {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	vars := make([]Var, 0, len(sorted))
	for i, name := range sorted {
		if i > 0 && name == sorted[i-1] {
			continue
		}
		val, ok := s.LookupEnv(name)
		if !ok {
			s.log.Debug("variable unset, storing empty value", zap.String("env", name))
		}
		vars = append(vars, Var{Key: name, Value: val})
	}
	return vars
}

// Push snapshots the named variables into a new stack. An existing stack of
// the same name is never overwritten.
func (s *Store) Push(name string, names []string) (*Stack, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	var cleaned []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n == "" {
			continue
		}
		if err := validKey(n); err != nil {
			return nil, fmt.Errorf("stack %q: %w", name, err)
		}
		cleaned = append(cleaned, n)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("stack %q: %w", name, ErrNoVariables)
	}
	vars := s.Capture(cleaned)

	var buf bytes.Buffer
	if err := Encode(&buf, vars); err != nil {
		return nil, fmt.Errorf("stack %q: %w", name, err)
	}

	if err := os.MkdirAll(s.rootDir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("stack %q: %w", name, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create stack file: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write stack file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write stack file: %w", err)
	}

	s.log.Debug("wrote stack file", zap.String("stack", name), zap.String("path", path), zap.Int("vars", len(vars)))
	return &Stack{Name: name, Vars: vars}, nil
}

// Get reads a stack without modifying it.
func (s *Store) Get(name string) (*Stack, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stack %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("open stack file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat stack file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("stack %q: %w", name, ErrNotFound)
	}

	vars, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("stack %q: %w", name, err)
	}
	s.log.Debug("read stack", zap.String("stack", name), zap.String("path", path), zap.Int("vars", len(vars)))
	return &Stack{Name: name, Vars: vars}, nil
}

// Pop reads a stack, hands it to consume and deletes the file once consume
// succeeds. A failing consume leaves the stack in place.
func (s *Store) Pop(name string, consume func(*Stack) error) (*Stack, error) {
	st, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	if consume != nil {
		if err := consume(st); err != nil {
			return nil, err
		}
	}
	path, _ := s.Path(name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stack %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("remove stack file: %w", err)
	}
	s.log.Debug("removed stack file", zap.String("stack", name), zap.String("path", path))
	return st, nil
}

// List returns the names of all stacks under the storage root. A missing
// root is an empty store.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read storage dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), fileExt)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
