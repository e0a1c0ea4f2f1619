package stack

import "errors"

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrMalformed     = errors.New("malformed stack file")
	ErrInvalidName   = errors.New("invalid stack name")
	ErrNoVariables   = errors.New("no environment variables given")

	ErrInvalidVariable = errors.New("invalid environment variable name")
)

// Var is one captured environment variable.
type Var struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

type Stack struct {
	Name string `json:"name"`
	Vars []Var  `json:"vars"`
}

// Keys returns the variable names in stored order.
func (s *Stack) Keys() []string {
	keys := make([]string, 0, len(s.Vars))
	for _, v := range s.Vars {
		keys = append(keys, v.Key)
	}
	return keys
}
