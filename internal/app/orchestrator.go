// Package app wires the pipeline stages into one run.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/quantmind-br/gitpick/internal/config"
	"github.com/quantmind-br/gitpick/internal/domain"
	"github.com/quantmind-br/gitpick/internal/fetch"
	"github.com/quantmind-br/gitpick/internal/github"
	"github.com/quantmind-br/gitpick/internal/output"
	"github.com/quantmind-br/gitpick/internal/picker"
	"github.com/quantmind-br/gitpick/internal/utils"
)

// Orchestrator coordinates the resolve, pick and download stages. Each
// stage finishes completely before the next starts; only a per-file
// download failure is non-fatal.
type Orchestrator struct {
	config    *config.Config
	lister    domain.TreeLister
	picker    domain.Picker
	scheduler *fetch.Scheduler
	logger    *utils.Logger
}

// OrchestratorOptions contains options for creating an orchestrator.
// Lister, Picker and Scheduler default to the production implementations
// configured from Config.
type OrchestratorOptions struct {
	Config       *config.Config
	Verbose      bool
	ShowProgress bool
	Lister       domain.TreeLister
	Picker       domain.Picker
	Scheduler    *fetch.Scheduler
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: opts.Verbose,
	})

	lister := opts.Lister
	if lister == nil {
		lister = github.NewClient(github.Options{
			APIRoot:   cfg.GitHub.APIRoot,
			UserAgent: cfg.GitHub.UserAgent,
			Timeout:   cfg.GitHub.Timeout,
			Logger:    logger,
		})
	}

	chooser := opts.Picker
	if chooser == nil {
		if cfg.Picker.Builtin {
			chooser = picker.NewBuiltinPicker(picker.BuiltinOptions{Logger: logger})
		} else {
			chooser = picker.NewFzfPicker(picker.FzfOptions{
				Command: cfg.Picker.Command,
				Height:  cfg.Picker.Height,
				Logger:  logger,
			})
		}
	}

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = fetch.NewScheduler(fetch.SchedulerOptions{
			RawRoot: cfg.GitHub.RawRoot,
			Timeout: cfg.GitHub.Timeout,
			Writer: output.NewWriter(output.WriterOptions{
				BaseDir:    utils.ExpandPath(cfg.Output.Directory),
				CreateDirs: cfg.Output.CreateDirs,
			}),
			ShowProgress: opts.ShowProgress,
			Logger:       logger,
		})
	}

	return &Orchestrator{
		config:    cfg,
		lister:    lister,
		picker:    chooser,
		scheduler: scheduler,
		logger:    logger,
	}, nil
}

// Run resolves the repository tree, hands the file paths to the picker and
// downloads the chosen ones. The repoArg is the "owner/name" form; a
// non-empty ref overrides the default tree. Resolution and selection
// failures are fatal and propagate; download failures stay in the summary.
func (o *Orchestrator) Run(ctx context.Context, repoArg, ref string) (fetch.Summary, error) {
	startTime := time.Now()

	repo, err := domain.ParseRepository(repoArg)
	if err != nil {
		return fetch.Summary{}, err
	}
	if ref != "" {
		repo.Ref = ref
	}

	log := o.logger.WithRepo(repo.Slug())
	log.Info().Str("ref", repo.Ref).Msg("Resolving repository tree")

	entries, err := o.lister.ListTree(ctx, repo)
	if err != nil {
		return fetch.Summary{}, err
	}
	log.Info().Int("files", len(entries)).Msg("Tree resolved")

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, entry.Path)
	}

	chosen, err := o.picker.Select(ctx, paths)
	if err != nil {
		return fetch.Summary{}, err
	}
	if len(chosen) == 0 {
		log.Info().Msg("No files chosen, nothing to download")
		return fetch.Summary{}, nil
	}

	summary := o.scheduler.FetchAll(ctx, repo, chosen)

	log.Info().
		Int("fetched", summary.Fetched).
		Int("failed", summary.Failed).
		Dur("duration", time.Since(startTime)).
		Msg("Run completed")

	return summary, nil
}
