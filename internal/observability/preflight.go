package observability

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// CheckFunc probes one external dependency of the pipeline.
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of one preflight probe.
type CheckResult struct {
	Name    string
	Err     error
	Latency time.Duration
}

// Preflight runs named dependency checks before any stage touches the
// network or disk, so a missing binary or model fails the run up front
// instead of half way through a long download.
type Preflight struct {
	checks []namedCheck
}

type namedCheck struct {
	name string
	fn   CheckFunc
}

// Register adds a named check.
func (p *Preflight) Register(name string, fn CheckFunc) {
	p.checks = append(p.checks, namedCheck{name: name, fn: fn})
}

// Run executes all checks in registration order and returns every result.
// The second return is false when any check failed.
func (p *Preflight) Run(ctx context.Context) ([]CheckResult, bool) {
	results := make([]CheckResult, 0, len(p.checks))
	healthy := true

	for _, c := range p.checks {
		start := time.Now()
		err := c.fn(ctx)
		results = append(results, CheckResult{
			Name:    c.name,
			Err:     err,
			Latency: time.Since(start),
		})
		if err != nil {
			healthy = false
		}
	}
	return results, healthy
}

// BinaryCheck verifies an executable is resolvable via PATH or an explicit
// path.
func BinaryCheck(bin string) CheckFunc {
	return func(ctx context.Context) error {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%s not found: %w", bin, err)
		}
		return nil
	}
}

// FileCheck verifies a regular file exists, typically model weights.
func FileCheck(path string) CheckFunc {
	return func(ctx context.Context) error {
		fi, err := os.Stat(path)
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		return nil
	}
}
