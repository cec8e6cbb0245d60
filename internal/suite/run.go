package suite

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"bnfplay/internal/bnf"
	"bnfplay/internal/nfa"
)

type Options struct {
	// Parallel bounds the number of cases run at once; values below 1 mean 1.
	Parallel int
	Logger   *slog.Logger
}

// Result is the outcome of one case. Err is set when the case could not be
// evaluated at all, for example because its rule does not exist; such a case
// never passes.
type Result struct {
	Case   Case
	Got    bool
	Passed bool
	Paths  int
	Err    error
}

func (r Result) Detail() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	if r.Passed {
		return ""
	}
	return fmt.Sprintf("expected %t, got %t", r.Case.Expect, r.Got)
}

// Run compiles the suite grammar once and evaluates every case against it.
// Results are returned in case order. The returned error is reserved for
// failures that affect the whole suite: a bad grammar or a cancelled context.
func Run(ctx context.Context, s *Suite, opts Options) ([]Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	g, err := bnf.Parse(s.Grammar)
	if err != nil {
		return nil, fmt.Errorf("suite %s: %w", s.Path, err)
	}
	prog, err := nfa.NewCompiler(log).Compile(g)
	if err != nil {
		return nil, fmt.Errorf("suite %s: %w", s.Path, err)
	}

	parallel := max(opts.Parallel, 1)
	results := make([]Result, len(s.Cases))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)
	for i, c := range s.Cases {
		if gctx.Err() != nil {
			break
		}
		i, c := i, c
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = runCase(prog, c)
			log.Debug("case finished", "suite", s.Path, "case", c.Name, "passed", results[i].Passed)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func runCase(prog *nfa.Program, c Case) Result {
	r := Result{Case: c}

	p := prog
	if c.Rule != "" {
		sub, err := prog.SubProgram(c.Rule)
		if err != nil {
			r.Err = err
			return r
		}
		p = sub
	}

	switch c.Mode {
	case ModeSearch:
		paths := p.Search(c.Input)
		r.Paths = len(paths)
		r.Got = nfa.Covers(paths, c.Input)
	default:
		r.Got = p.Match(c.Input)
	}
	r.Passed = r.Got == c.Expect
	return r
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
