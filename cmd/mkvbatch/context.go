package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mkvbatch/internal/config"
	"mkvbatch/internal/language"
	"mkvbatch/internal/logging"
	"mkvbatch/internal/media/ffprobe"
	"mkvbatch/internal/media/mediainfo"
	"mkvbatch/internal/scan"
	"mkvbatch/internal/session"
	"mkvbatch/internal/validation"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	inspector scan.Inspector
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// log returns the CLI logger. It falls back to defaults when the
// configuration could not be loaded so errors can still be reported.
func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg := config.Default()
		if loaded := c.configValue(); loaded != nil {
			cfg = *loaded
		}
		if c.logLevelFlag != nil {
			if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
				cfg.Logging.Level = level
			}
		}
		logger, err := logging.NewFromConfig(&cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) scanInspector(cfg *config.Config) scan.Inspector {
	if c.inspector != nil {
		return c.inspector
	}
	if cfg.Scan.Backend == config.BackendFFprobe {
		return ffprobe.NewInspector(cfg.Tools.FFprobe)
	}
	return mediainfo.NewInspector(cfg.Tools.MediaInfo)
}

func (c *commandContext) scanFiles(ctx context.Context, paths []string) ([]*scan.File, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	scanner := scan.NewScanner(c.scanInspector(cfg), cfg.Scan.Concurrency, c.log())
	return scanner.Scan(ctx, paths)
}

func (c *commandContext) newSession() (*session.Session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	severities, err := validation.ResolveSeverities(cfg.Validation.Strictness, cfg.Validation.Severities)
	if err != nil {
		return nil, err
	}
	return session.New(session.Options{
		Resolver:   languageTable(cfg),
		Severities: severities,
		Logger:     c.log(),
	}), nil
}

func languageTable(cfg *config.Config) *language.Table {
	custom := make([]language.Option, 0, len(cfg.Languages.Custom))
	for _, entry := range cfg.Languages.Custom {
		custom = append(custom, language.NewCustom(entry.Name, entry.Code))
	}
	return language.DefaultTable(custom...)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
