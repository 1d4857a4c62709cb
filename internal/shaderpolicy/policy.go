// Package shaderpolicy decides which shaders a document may run, using a
// CEL expression over the shader source.
package shaderpolicy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
)

var ErrNotBool = errors.New("policy must evaluate to a bool")

// Policy is a compiled shader validation expression. It sees the
// variables source (string), size (int, in bytes) and uniforms (the names
// of the declared uniforms).
type Policy struct {
	expr string
	prg  cel.Program
}

// New compiles expr. An empty expression accepts every shader.
func New(expr string) (*Policy, error) {
	p := &Policy{expr: expr}
	if strings.TrimSpace(expr) == "" {
		return p, nil
	}

	env, err := cel.NewEnv(
		cel.Variable("source", cel.StringType),
		cel.Variable("size", cel.IntType),
		cel.Variable("uniforms", cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("compile %q: %w", expr, ErrNotBool)
	}

	p.prg, err = env.Program(ast,
		cel.InterruptCheckFrequency(100),
		cel.CostLimit(10000),
	)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return p, nil
}

func (p *Policy) String() string { return p.expr }

// Evaluate runs the policy against a shader source.
func (p *Policy) Evaluate(source string) (bool, error) {
	if p.prg == nil {
		return true, nil
	}

	out, _, err := p.prg.Eval(map[string]any{
		"source":   source,
		"size":     len(source),
		"uniforms": Uniforms(source),
	})
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", p.expr, err)
	}

	allowed, ok := out.(types.Bool)
	if !ok {
		return false, ErrNotBool
	}
	return bool(allowed), nil
}

// IsShaderValid fails closed: a shader the policy cannot evaluate is rejected.
func (p *Policy) IsShaderValid(source string) bool {
	ok, err := p.Evaluate(source)
	return err == nil && ok
}

// Uniforms lists the names declared by "uniform <type> <name>;" lines.
func Uniforms(source string) []string {
	names := []string{}
	for line := range strings.Lines(source) {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 3 || fields[0] != "uniform" {
			continue
		}
		name := strings.TrimSuffix(fields[len(fields)-1], ";")
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		names = append(names, name)
	}
	return names
}
