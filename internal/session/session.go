package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"mkvbatch/internal/logging"
	"mkvbatch/internal/mkvpropedit"
	"mkvbatch/internal/rules"
	"mkvbatch/internal/scan"
	"mkvbatch/internal/services"
	"mkvbatch/internal/trackconfig"
	"mkvbatch/internal/validation"
)

// Options configures a session.
type Options struct {
	Resolver   trackconfig.Resolver
	Severities validation.Severities
	Logger     *slog.Logger
}

// Executor runs one mkvpropedit argument array.
type Executor interface {
	Run(ctx context.Context, args []string) (mkvpropedit.Result, error)
}

// Command is the planned invocation for one file. Empty files have nothing
// to write and carry no arguments.
type Command struct {
	Path  string   `json:"path"`
	Args  []string `json:"args,omitempty"`
	Empty bool     `json:"empty"`
}

// Session is one batch editing transaction.
type Session struct {
	id        string
	opts      Options
	batch     *trackconfig.Batch
	files     *rules.Pipeline
	aggregate *rules.Pipeline
	reference string
	observers []trackconfig.Observer
	logger    *slog.Logger
}

// New starts a session.
func New(opts Options) *Session {
	s := &Session{opts: opts}
	s.Reset()
	return s
}

// Reset discards the batch and starts a new transaction. Observers stay
// subscribed.
func (s *Session) Reset() {
	s.id = uuid.NewString()
	s.reference = ""
	s.logger = logging.NewComponentLogger(s.opts.Logger, "session").With(logging.String(logging.FieldSessionID, s.id))
	s.batch = trackconfig.NewBatch(s.opts.Resolver, s.opts.Logger)
	for _, o := range s.observers {
		s.batch.Subscribe(o)
	}
	s.files = rules.NewPipeline(s.opts.Logger, rules.FileRules()...)
	s.aggregate = rules.NewPipeline(s.opts.Logger, rules.AggregateRules()...)
	s.logger.Debug("session started")
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Context annotates ctx with the session identifier.
func (s *Session) Context(ctx context.Context) context.Context {
	return services.WithSessionID(ctx, s.id)
}

// Batch exposes the session's batch.
func (s *Session) Batch() *trackconfig.Batch {
	return s.batch
}

// Subscribe registers an observer on the current and every future batch.
func (s *Session) Subscribe(o trackconfig.Observer) {
	if o == nil {
		return
	}
	s.observers = append(s.observers, o)
	s.batch.Subscribe(o)
}

// SetReference makes the file at path govern the global slot counts instead
// of the per-kind maximum. An empty path restores the default.
func (s *Session) SetReference(path string) {
	s.reference = scan.Key(path)
}

// Load adds scanned files to the batch and derives their initial state.
// Files already present are skipped.
func (s *Session) Load(files ...*scan.File) error {
	var added []*scan.File
	for _, file := range files {
		if _, ok := s.batch.AddFile(file); ok {
			added = append(added, file)
		} else if file != nil {
			s.logger.Debug("duplicate file skipped", logging.String(logging.FieldFile, file.Path))
		}
	}
	if err := s.resize(); err != nil {
		return err
	}
	if len(added) == 0 {
		return nil
	}
	if err := rules.Process(s.batch, added, s.files, s.aggregate); err != nil {
		return err
	}
	s.logger.Info("files loaded",
		logging.Int("added", len(added)),
		logging.Int("files", len(s.batch.Files())),
	)
	return nil
}

func (s *Session) resize() error {
	if s.reference == "" {
		s.batch.EnsureMaxTrackCount()
		return nil
	}
	for _, file := range s.batch.Files() {
		if file.Key() == s.reference {
			s.batch.EnsureTrackCount(file, trackconfig.Kinds...)
			return nil
		}
	}
	return services.Wrap(services.ErrNotFound, "session", "resize", fmt.Sprintf("reference file %q is not part of the batch", s.reference), nil)
}

// Apply performs one edit on the batch.
func (s *Session) Apply(edit Edit) error {
	resolver := s.batch.Resolver()
	switch edit.Property {
	case trackconfig.PropertyTitle:
		s.batch.SetTitle(edit.Value)
		return nil
	case trackconfig.PropertyLanguage:
		option := resolver.Resolve(edit.Value)
		if option.IsUndetermined() && !isUndeterminedCode(edit.Value) {
			return services.Wrap(services.ErrInvalidArgument, "session", "edit", fmt.Sprintf("unknown language %q", edit.Value), nil)
		}
		return s.batch.SetLanguage(edit.Kind, edit.Index, option)
	case trackconfig.PropertyName:
		return s.batch.SetName(edit.Kind, edit.Index, edit.Value)
	}

	value, err := parseBool(edit.Value)
	if err != nil {
		return err
	}
	switch edit.Property {
	case trackconfig.PropertyDefault:
		return s.batch.SetDefault(edit.Kind, edit.Index, value)
	case trackconfig.PropertyForced:
		return s.batch.SetForced(edit.Kind, edit.Index, value)
	case trackconfig.PropertyEnabled:
		return s.batch.SetEnabled(edit.Kind, edit.Index, value)
	default:
		return services.Wrap(services.ErrInvalidArgument, "session", "edit", fmt.Sprintf("unsupported property %q", edit.Property), nil)
	}
}

// Validate runs the validation pipeline with the session severities.
func (s *Session) Validate() []validation.Result {
	return validation.Run(s.batch, s.opts.Severities)
}

// Plan builds the command of every file in batch order.
func (s *Session) Plan() ([]Command, error) {
	configs := s.batch.FileConfigs()
	commands := make([]Command, 0, len(configs))
	for _, cfg := range configs {
		builder := mkvpropedit.ForFile(cfg, s.batch)
		if builder.IsEmpty() {
			commands = append(commands, Command{Path: cfg.Path, Empty: true})
			continue
		}
		args, err := builder.Build()
		if err != nil {
			return nil, err
		}
		commands = append(commands, Command{Path: cfg.Path, Args: args})
	}
	return commands, nil
}

// Execute runs every non-empty planned command sequentially. A failing file
// does not stop the remaining ones; all failures are returned joined.
func (s *Session) Execute(ctx context.Context, executor Executor) ([]mkvpropedit.Result, error) {
	commands, err := s.Plan()
	if err != nil {
		return nil, err
	}
	ctx = s.Context(ctx)
	var results []mkvpropedit.Result
	var errs []error
	for _, command := range commands {
		if command.Empty {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		result, err := executor.Run(services.WithFile(ctx, command.Path), command.Args)
		results = append(results, result)
		if err != nil {
			s.logger.Error("file update failed",
				logging.String(logging.FieldFile, command.Path),
				logging.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return results, errors.Join(errs...)
}
