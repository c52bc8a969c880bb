package readme

import (
	"context"
	"errors"
)

// Outcome is the per-package result of a batch run.
type Outcome struct {
	Package string
	// Readme is the README path of the package.
	Readme string
	// Result is set by CheckAll.
	Result CheckResult
	// Action is set by GenerateAll.
	Action Action
	// Content holds the planned README bytes of a dry run.
	Content []byte
	Err     error

	generated bool
}

// Status returns the display status of the outcome.
func (o Outcome) Status() string {
	switch {
	case o.Err != nil:
		return "Failed"
	case o.generated:
		return o.Action.String()
	default:
		return o.Result.String()
	}
}

// Failed reports whether the outcome should fail the run: an error, or a
// check that found a missing or stale README.
func (o Outcome) Failed() bool {
	if o.Err != nil {
		return true
	}
	return !o.generated && o.Result.Err() != nil
}

// Batch runs the engine over a list of packages, one at a time and in order.
// A failing package is recorded in its Outcome and the batch moves on,
// unless FailFast is set. With DryRun, GenerateAll only plans.
type Batch struct {
	Engine   *Engine
	FailFast bool
	DryRun   bool
}

// CheckAll checks every package in pkgs.
func (b *Batch) CheckAll(ctx context.Context, pkgs []Package) ([]Outcome, error) {
	return b.each(ctx, pkgs, func(pkg Package) Outcome {
		res, err := b.Engine.Check(ctx, pkg)
		return Outcome{Package: pkg.Name, Readme: pkg.ReadmePath(), Result: res, Err: err}
	})
}

// GenerateAll generates the README of every package in pkgs under mode.
func (b *Batch) GenerateAll(ctx context.Context, pkgs []Package, mode Mode) ([]Outcome, error) {
	return b.each(ctx, pkgs, func(pkg Package) Outcome {
		out := Outcome{Package: pkg.Name, Readme: pkg.ReadmePath(), generated: true}
		if b.DryRun {
			out.Content, out.Action, out.Err = b.Engine.Plan(ctx, pkg, mode)
		} else {
			out.Action, out.Err = b.Engine.Generate(ctx, pkg, mode)
		}
		return out
	})
}

func (b *Batch) each(ctx context.Context, pkgs []Package, fn func(Package) Outcome) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(pkgs))
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		out := fn(pkg)
		outcomes = append(outcomes, out)
		if out.Err != nil && b.FailFast {
			return outcomes, out.Err
		}
	}
	return outcomes, nil
}

// Failures joins the errors of every failed outcome. Stale or missing
// READMEs found by a check contribute their sentinel error wrapped with the
// package name.
func Failures(outcomes []Outcome) error {
	var errs []error
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			errs = append(errs, o.Err)
		case o.Failed():
			errs = append(errs, &PackageError{Package: o.Package, Err: o.Result.Err()})
		}
	}
	return errors.Join(errs...)
}
