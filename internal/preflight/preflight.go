package preflight

import (
	"context"

	"mkvbatch/internal/config"
	"mkvbatch/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks that mkvpropedit is installed and that every path can be
// edited in place.
func RunAll(ctx context.Context, cfg *config.Config, paths []string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(ctx, cfg) {
		if status.Optional {
			continue
		}
		results = append(results, fromStatus(status))
	}
	for _, path := range paths {
		results = append(results, CheckFileWritable(path))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

func fromStatus(status deps.Status) Result {
	if status.Available {
		detail := status.Command
		if status.Version != "" {
			detail = status.Version
		}
		return Result{Name: status.Name, Passed: true, Detail: detail}
	}
	return Result{Name: status.Name, Detail: status.Detail}
}
