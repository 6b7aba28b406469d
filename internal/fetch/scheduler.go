// Package fetch downloads chosen files from the raw content host.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/quantmind-br/gitpick/internal/domain"
	"github.com/quantmind-br/gitpick/internal/output"
	"github.com/quantmind-br/gitpick/internal/utils"
)

// maxInFlight caps concurrent downloads. The cap is fixed; callers cannot
// raise it.
const maxInFlight = 4

// DefaultRawRoot is the host serving raw file contents
const DefaultRawRoot = "https://raw.githubusercontent.com"

// Scheduler downloads chosen files and hands the bodies to the writer.
// Download failures are logged per file and never abort the batch.
type Scheduler struct {
	httpClient   *http.Client
	writer       *output.Writer
	rawRoot      string
	showProgress bool
	log          *utils.Logger
}

// SchedulerOptions contains options for creating a Scheduler
type SchedulerOptions struct {
	RawRoot      string
	Timeout      time.Duration
	HTTPClient   *http.Client
	Writer       *output.Writer
	ShowProgress bool
	Logger       *utils.Logger
}

// DefaultSchedulerOptions returns default scheduler options
func DefaultSchedulerOptions() SchedulerOptions {
	return SchedulerOptions{
		RawRoot:      DefaultRawRoot,
		Timeout:      30 * time.Second,
		ShowProgress: true,
	}
}

// Summary counts the outcomes of one download batch
type Summary struct {
	Fetched int
	Failed  int
}

// NewScheduler creates a new download scheduler
func NewScheduler(opts SchedulerOptions) *Scheduler {
	defaults := DefaultSchedulerOptions()
	if opts.RawRoot == "" {
		opts.RawRoot = defaults.RawRoot
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	writer := opts.Writer
	if writer == nil {
		writer = output.NewWriter(output.DefaultWriterOptions())
	}

	log := opts.Logger
	if log == nil {
		log = utils.NewDefaultLogger()
	}

	return &Scheduler{
		httpClient:   httpClient,
		writer:       writer,
		rawRoot:      opts.RawRoot,
		showProgress: opts.ShowProgress,
		log:          log.WithComponent("fetch"),
	}
}

// FetchAll downloads every chosen path and returns the batch outcome. At
// most maxInFlight downloads run at once. The call returns only after every
// started download has finished.
func (s *Scheduler) FetchAll(ctx context.Context, repo domain.Repository, chosen []string) Summary {
	if len(chosen) == 0 {
		return Summary{}
	}

	targets := make([]domain.FetchTarget, 0, len(chosen))
	for _, path := range chosen {
		targets = append(targets, domain.NewFetchTarget(s.rawRoot, repo, path))
	}

	s.log.Info().Str("repo", repo.Slug()).Int("files", len(targets)).Msg("Downloading chosen files")

	var bar *progressbar.ProgressBar
	if s.showProgress {
		bar = utils.NewProgressBar(len(targets), utils.DescDownloading)
	}

	errs := utils.ParallelForEach(ctx, targets, maxInFlight, func(ctx context.Context, target domain.FetchTarget) error {
		if bar != nil {
			defer bar.Add(1)
		}
		return s.fetchOne(ctx, target)
	})

	failed := len(utils.CollectErrors(errs))
	summary := Summary{
		Fetched: len(targets) - failed,
		Failed:  failed,
	}

	s.log.Info().Int("fetched", summary.Fetched).Int("failed", summary.Failed).Msg("Download completed")
	return summary
}

// fetchOne downloads a single target and writes it under its
// repository-relative path. The response status is not validated; the raw
// host answers misses with a plain-text body and that body is what lands
// on disk.
func (s *Scheduler) fetchOne(ctx context.Context, target domain.FetchTarget) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.RawURL, nil)
	if err != nil {
		s.log.Error().Err(err).Str("url", target.RawURL).Msg("Download failed")
		return domain.NewDownloadError(target.RawURL, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Error().Err(err).Str("url", target.RawURL).Msg("Download failed")
		return domain.NewDownloadError(target.RawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.log.Error().Err(err).Str("url", target.RawURL).Msg("Reading response failed")
		return domain.NewReadError(target.RawURL, err)
	}

	if err := s.writer.Write(ctx, target.Path, body); err != nil {
		s.log.Error().Err(err).Str("path", target.Path).Msg("Saving file failed")
		return domain.NewIOError(err)
	}

	s.log.Debug().Str("path", target.Path).Int("bytes", len(body)).Msg("File saved")
	return nil
}
