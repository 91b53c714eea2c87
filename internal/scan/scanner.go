package scan

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"mkvbatch/internal/logging"
	"mkvbatch/internal/services"
)

// Inspector reads track metadata for one file.
type Inspector interface {
	Inspect(ctx context.Context, path string) (*File, error)
}

// InspectorFunc adapts a function to the Inspector interface.
type InspectorFunc func(ctx context.Context, path string) (*File, error)

// Inspect calls fn.
func (fn InspectorFunc) Inspect(ctx context.Context, path string) (*File, error) {
	return fn(ctx, path)
}

// Scanner inspects a set of files with bounded concurrency.
type Scanner struct {
	inspector   Inspector
	concurrency int
	logger      *slog.Logger
}

// NewScanner constructs a scanner. A concurrency below one is treated as one.
func NewScanner(inspector Inspector, concurrency int, logger *slog.Logger) *Scanner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Scanner{
		inspector:   inspector,
		concurrency: concurrency,
		logger:      logging.NewComponentLogger(logger, "scan"),
	}
}

// Scan inspects every distinct path and returns the results in input order.
// Paths sharing a Key are inspected once; the first occurrence wins. The
// first inspection failure cancels the remaining work.
func (s *Scanner) Scan(ctx context.Context, paths []string) ([]*File, error) {
	if s == nil || s.inspector == nil {
		return nil, services.Wrap(services.ErrInvalidArgument, "scan", "scan files", "scanner has no inspector", nil)
	}
	unique := dedupePaths(paths)
	if len(unique) == 0 {
		return nil, nil
	}

	results := make([]*File, len(unique))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i, path := range unique {
		group.Go(func() error {
			file, err := s.inspector.Inspect(groupCtx, path)
			if err != nil {
				return services.Wrap(services.ErrExternalTool, "scan", "inspect", fmt.Sprintf("inspect %q", path), err)
			}
			if file == nil {
				return services.Wrap(services.ErrExternalTool, "scan", "inspect", fmt.Sprintf("inspector returned no result for %q", path), nil)
			}
			if file.Path == "" {
				file.Path = path
			}
			s.logger.Debug("file scanned",
				logging.String(logging.FieldFile, path),
				logging.Int("tracks", len(file.Tracks)),
			)
			results[i] = file
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	s.logger.Info("scan complete", logging.Int("files", len(results)))
	return results, nil
}

func dedupePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		key := Key(path)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, path)
	}
	return out
}
