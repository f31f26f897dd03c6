// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"strings"

	apperrors "mgas/internal/errors"
	"mgas/internal/runner"
)

// Rule scripts the outcome of every command whose joined arguments contain
// a given substring.
type Rule struct {
	contains string
	result   runner.Result
	fail     bool
}

// Returns makes matching commands succeed with stdout.
func (r *Rule) Returns(stdout string) *Rule {
	r.result = runner.Result{Stdout: stdout}
	r.fail = false
	return r
}

// Fails makes matching commands exit with code and the given output.
func (r *Rule) Fails(code int, stdout, stderr string) *Rule {
	r.result = runner.Result{Stdout: stdout, Stderr: stderr, ExitCode: code}
	r.fail = true
	return r
}

// Fake records every command it is asked to run. Commands without a matching
// rule succeed with empty output. Later rules take precedence.
type Fake struct {
	Calls []runner.Command
	rules []*Rule
}

// NewFake creates an empty Fake.
func NewFake() *Fake {
	return &Fake{}
}

// On registers a rule for commands whose arguments contain argsContain.
func (f *Fake) On(argsContain string) *Rule {
	r := &Rule{contains: argsContain}
	f.rules = append(f.rules, r)
	return r
}

// Run implements runner.Runner.
func (f *Fake) Run(_ context.Context, c runner.Command) (runner.Result, error) {
	f.Calls = append(f.Calls, c)
	joined := strings.Join(c.Args, " ")

	for i := len(f.rules) - 1; i >= 0; i-- {
		r := f.rules[i]
		if !strings.Contains(joined, r.contains) {
			continue
		}
		if r.fail {
			return r.result, apperrors.NewProcessError(c.Name, c.Args, r.result.ExitCode, r.result.Stdout, r.result.Stderr, nil)
		}
		return r.result, nil
	}
	return runner.Result{}, nil
}

// Args returns the joined arguments of every recorded call, in order.
func (f *Fake) Args() []string {
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, strings.Join(c.Args, " "))
	}
	return out
}

// Ran reports whether any recorded call's arguments contain argsContain.
func (f *Fake) Ran(argsContain string) bool {
	for _, args := range f.Args() {
		if strings.Contains(args, argsContain) {
			return true
		}
	}
	return false
}
