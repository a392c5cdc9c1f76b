package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thywilljoshua/book-toc/internal/ai"
	"github.com/thywilljoshua/book-toc/internal/config"
	"github.com/thywilljoshua/book-toc/internal/extract"
	"github.com/thywilljoshua/book-toc/internal/logging"
)

// app is the state shared by all commands, filled in before any of them run.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "tocproc",
		Short:         "Parse, detect and extract book tables of contents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log level: none|debug|info|warn|error")

	root.AddCommand(parseCmd(a), detectCmd(a), extractCmd(a), navCmd(a))
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log.With(zap.String("run_id", uuid.NewString()))
	a.log.Debug("Configuration loaded",
		zap.String("config", a.configPath),
		zap.Int("toc_pages", cfg.Extract.TocPages),
		zap.String("ai", cfg.AI.Provider))
	return nil
}

// repairer returns the configured AI repairer. force turns it on even when
// the configuration says off.
func (a *app) repairer(ctx context.Context, force bool) (ai.Repairer, error) {
	provider := a.cfg.AI.Provider
	if force && provider == "off" {
		provider = "gemini"
	}
	if !strings.EqualFold(provider, "gemini") {
		return ai.Noop{}, nil
	}
	g, err := ai.NewGemini(ctx, a.cfg.AI.APIKey, a.cfg.AI.Model, a.log)
	if err != nil {
		return nil, fmt.Errorf("unable to enable AI repair: %w", err)
	}
	return g, nil
}

func (a *app) extractOptions(r ai.Repairer) extract.Options {
	return extract.Options{
		TocPages:         a.cfg.Extract.TocPages,
		NormalizeLeaders: a.cfg.Extract.NormalizeLeaders,
		Repairer:         r,
		Log:              a.log,
	}
}

// readInput reads the named file, or cmd's stdin for "-" or no argument.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("unable to read stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("unable to read input: %w", err)
	}
	return b, nil
}
