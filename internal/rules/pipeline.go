package rules

import (
	"log/slog"

	"mkvbatch/internal/logging"
	"mkvbatch/internal/scan"
	"mkvbatch/internal/services"
	"mkvbatch/internal/trackconfig"
)

// Rule derives batch state from one scanned file.
type Rule interface {
	Name() string
	Apply(file *scan.File, batch *trackconfig.Batch) error
}

// Pipeline runs rules in registration order and stops at the first error.
type Pipeline struct {
	rules  []Rule
	logger *slog.Logger
}

// NewPipeline constructs a pipeline over rules.
func NewPipeline(logger *slog.Logger, rules ...Rule) *Pipeline {
	return &Pipeline{
		rules:  append([]Rule(nil), rules...),
		logger: logging.NewComponentLogger(logger, "rules"),
	}
}

// Apply runs every rule against file.
func (p *Pipeline) Apply(file *scan.File, batch *trackconfig.Batch) error {
	if err := guard(file, batch); err != nil {
		return err
	}
	for _, rule := range p.rules {
		if err := rule.Apply(file, batch); err != nil {
			p.logger.Debug("rule failed",
				logging.String("rule", rule.Name()),
				logging.String(logging.FieldFile, file.Path),
				logging.Error(err),
			)
			return err
		}
		p.logger.Debug("rule applied",
			logging.String("rule", rule.Name()),
			logging.String(logging.FieldFile, file.Path),
		)
	}
	return nil
}

// FileRules returns the per-file rules in their required order.
func FileRules() []Rule {
	return []Rule{
		PositionRule{},
		TitleRule{},
		AudioNamingRule{},
		SubtitleNamingRule{},
		VideoNamingRule{},
		LanguageRule{},
	}
}

// AggregateRules returns the cross-file rules.
func AggregateRules() []Rule {
	return []Rule{
		DefaultFlagRule{},
		ForcedFlagRule{},
	}
}

// Process initializes each added file with files, copies the batch's pending
// global edits onto it, then runs aggregate once with the last added file.
// Files already in the batch are not re-derived, so their edits survive.
func Process(batch *trackconfig.Batch, added []*scan.File, files, aggregate *Pipeline) error {
	if batch == nil {
		return services.Wrap(services.ErrInvalidArgument, "rules", "process", "batch is nil", nil)
	}
	for _, file := range added {
		if err := files.Apply(file, batch); err != nil {
			return err
		}
		batch.ApplyPending(batch.FileConfig(file.Key()))
	}
	if len(added) == 0 {
		return nil
	}
	return aggregate.Apply(added[len(added)-1], batch)
}

func guard(file *scan.File, batch *trackconfig.Batch) error {
	if file == nil {
		return services.Wrap(services.ErrInvalidArgument, "rules", "apply", "scanned file is nil", nil)
	}
	if batch == nil {
		return services.Wrap(services.ErrInvalidArgument, "rules", "apply", "batch is nil", nil)
	}
	return nil
}

// fileConfig looks up the per-file configuration of file.
func fileConfig(rule string, file *scan.File, batch *trackconfig.Batch) (*trackconfig.FileConfig, error) {
	if err := guard(file, batch); err != nil {
		return nil, err
	}
	cfg := batch.FileConfig(file.Key())
	if cfg == nil {
		return nil, services.Wrap(services.ErrNotFound, "rules", rule, "file "+file.Path+" is not part of the batch", nil)
	}
	return cfg, nil
}

// eachRecord calls fn with every scanned record of kind and the per-file
// slot whose Index equals the record's ordinal, skipping unmatched records.
func eachRecord(file *scan.File, cfg *trackconfig.FileConfig, kind trackconfig.Kind, fn func(rec scan.Track, slot *trackconfig.Track)) {
	for _, rec := range file.TracksOf(kind.ScanType()) {
		if slot := cfg.Track(kind, rec.StreamKindID); slot != nil {
			fn(rec, slot)
		}
	}
}
