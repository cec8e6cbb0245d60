// Package suite loads grammar test suites from HCL files.
//
// A suite names one grammar and any number of cases to check against it:
//
//	grammar = file("expr.bnf")
//
//	case "sum" {
//	  rule   = "expr"
//	  input  = "1+2"
//	  expect = true
//	}
package suite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

const (
	ModeMatch  = "match"
	ModeSearch = "search"
)

type Suite struct {
	Path    string
	Grammar string
	Cases   []Case
}

// Case is one expectation. An empty Rule means the whole program.
type Case struct {
	Name   string `hcl:"name,label"`
	Rule   string `hcl:"rule,optional"`
	Input  string `hcl:"input"`
	Mode   string `hcl:"mode,optional"`
	Expect bool   `hcl:"expect"`
}

type fileRoot struct {
	Grammar string  `hcl:"grammar"`
	Cases   []*Case `hcl:"case,block"`
}

// Load parses and decodes the suite at path. Relative paths given to file()
// are resolved against the suite's directory.
func Load(path string) (*Suite, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(path, src)
}

func parse(path string, src []byte) (*Suite, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse suite %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(f.Body, evalContext(filepath.Dir(path)), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode suite %s: %w", path, diags)
	}

	s := &Suite{Path: path, Grammar: root.Grammar}
	seen := make(map[string]bool, len(root.Cases))
	for _, c := range root.Cases {
		if seen[c.Name] {
			return nil, fmt.Errorf("suite %s: duplicate case %q", path, c.Name)
		}
		seen[c.Name] = true

		switch c.Mode {
		case "":
			c.Mode = ModeMatch
		case ModeMatch, ModeSearch:
		default:
			return nil, fmt.Errorf("suite %s: case %q: unknown mode %q", path, c.Name, c.Mode)
		}
		s.Cases = append(s.Cases, *c)
	}
	return s, nil
}

func evalContext(dir string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"file":      fileFunc(dir),
			"trimspace": stdlib.TrimSpaceFunc,
			"chomp":     stdlib.ChompFunc,
		},
	}
}

// fileFunc reads a file relative to dir and returns its contents verbatim.
func fileFunc(dir string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "path", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			p := args[0].AsString()
			if !filepath.IsAbs(p) {
				p = filepath.Join(dir, p)
			}
			b, err := os.ReadFile(p)
			if err != nil {
				return cty.UnknownVal(cty.String), err
			}
			return cty.StringVal(string(b)), nil
		},
	})
}
