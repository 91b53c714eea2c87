package mkvpropedit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"mkvbatch/internal/logging"
	"mkvbatch/internal/services"
)

// Status is the outcome of one mkvpropedit run.
type Status int

const (
	StatusSuccess Status = iota
	StatusWarning
	StatusError
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes s by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StatusFromExitCode maps mkvpropedit exit codes: 0 success, 1 warnings,
// 2 error. Anything else is unknown.
func StatusFromExitCode(code int) Status {
	switch code {
	case 0:
		return StatusSuccess
	case 1:
		return StatusWarning
	case 2:
		return StatusError
	default:
		return StatusUnknown
	}
}

// Result reports one execution.
type Result struct {
	Path     string `json:"path"`
	Status   Status `json:"status"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output,omitempty"`
}

// commandRunner executes a command and returns its combined output and exit
// code. err is only set when the process could not be run at all.
type commandRunner func(ctx context.Context, name string, args ...string) (output []byte, exitCode int, err error)

// Runner executes mkvpropedit argument arrays.
type Runner struct {
	binary string
	run    commandRunner
	logger *slog.Logger
}

// NewRunner constructs a runner for binary, or "mkvpropedit" when empty.
func NewRunner(binary string, logger *slog.Logger) *Runner {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "mkvpropedit"
	}
	return &Runner{
		binary: binary,
		run:    defaultCommandRunner,
		logger: logging.NewComponentLogger(logger, "mkvpropedit"),
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (r *Runner) WithCommandRunner(fn commandRunner) {
	if r != nil && fn != nil {
		r.run = fn
	}
}

// Run executes one builder output. Error and unknown exit statuses are
// returned as ErrExternalTool errors alongside the result.
func (r *Runner) Run(ctx context.Context, args []string) (Result, error) {
	argv := Argv(args)
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return Result{}, ErrMissingInput
	}
	result := Result{Path: argv[0]}
	logger := logging.WithContext(services.WithFile(ctx, result.Path), r.logger)

	logger.Debug("executing mkvpropedit", logging.Strings("args", argv[1:]))
	started := time.Now()
	output, code, err := r.run(ctx, r.binary, argv...)
	elapsed := time.Since(started)
	result.Output = strings.TrimSpace(string(output))
	if err != nil {
		result.Status = StatusUnknown
		result.ExitCode = -1
		return result, services.Wrap(services.ErrExternalTool, "mkvpropedit", "run", result.Path, err)
	}
	result.ExitCode = code
	result.Status = StatusFromExitCode(code)

	switch result.Status {
	case StatusSuccess:
		logger.Info("file updated", logging.Duration("elapsed", elapsed))
		return result, nil
	case StatusWarning:
		logging.WarnWithContext(logger, "mkvpropedit reported warnings", "mkvpropedit_warning",
			logging.String("output", result.Output),
			logging.Duration("elapsed", elapsed),
		)
		return result, nil
	default:
		var cause error
		if result.Output != "" {
			cause = errors.New(result.Output)
		}
		return result, services.Wrap(services.ErrExternalTool, "mkvpropedit", "run",
			fmt.Sprintf("%s: exit code %d (%s)", result.Path, code, result.Status), cause)
	}
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) ([]byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err == nil {
		return output, 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return output, exitErr.ExitCode(), nil
	}
	return output, -1, err
}
