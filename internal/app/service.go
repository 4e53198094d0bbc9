// Package app contains the application layer with the publish orchestration logic.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vaerpub/vaerpub/internal/pkg/builder"
	"github.com/vaerpub/vaerpub/internal/pkg/config"
	apperrors "github.com/vaerpub/vaerpub/internal/pkg/errors"
	"github.com/vaerpub/vaerpub/internal/pkg/git"
	"github.com/vaerpub/vaerpub/internal/pkg/history"
	"github.com/vaerpub/vaerpub/internal/pkg/message"
	"github.com/vaerpub/vaerpub/internal/pkg/ui"
)

// Norwegian status lines carried over from the original publish script.
// MsgNoChanges in particular is part of the tool's observable contract.
const (
	MsgNoChanges = "Ingen endringer aa publisere."
	MsgPublished = "Publisert."
)

// PublishOptions contains options for the publish workflow.
type PublishOptions struct {
	SkipBuild bool
	SkipSync  bool
	DryRun    bool
	// Strict aborts on build or sync failures instead of logging and
	// continuing. The historical script ignored both.
	Strict bool
	// Pause blocks for Enter at the end of the run.
	Pause bool
}

// PublishReport summarizes one publish run.
type PublishReport struct {
	BuildRan    bool
	BuildOK     bool
	BuildOutput string
	SyncRan     bool
	SyncOK      bool
	HadChanges  bool
	Committed   bool
	Pushed      bool
	Message     string
	Files       []git.StagedFile
	Duration    time.Duration
}

// PublishService orchestrates the build-and-publish workflow.
type PublishService struct {
	gitClient  git.Client
	buildRun   builder.Runner
	uiManager  ui.Manager
	historyMgr history.Manager
	composer   *message.Composer
	config     *config.Config
}

// NewPublishService creates a PublishService with the given dependencies.
// historyMgr may be nil when the publish log is disabled.
func NewPublishService(
	gitClient git.Client,
	buildRun builder.Runner,
	uiManager ui.Manager,
	historyMgr history.Manager,
	composer *message.Composer,
	cfg *config.Config,
) *PublishService {
	return &PublishService{
		gitClient:  gitClient,
		buildRun:   buildRun,
		uiManager:  uiManager,
		historyMgr: historyMgr,
		composer:   composer,
		config:     cfg,
	}
}

// Publish runs the workflow: build, sync, stage, diff-check, commit, push.
//
// Build and sync failures are tolerated by default: the run always reaches
// the staged-diff check, which is the workflow's only branch point. A run
// with no staged changes commits and pushes nothing.
func (s *PublishService) Publish(ctx context.Context, opts *PublishOptions) (*PublishReport, error) {
	if opts == nil {
		opts = &PublishOptions{}
	}

	start := time.Now()
	report := &PublishReport{}

	// Step 1: regenerate the page
	if !opts.SkipBuild {
		if err := s.runBuild(ctx, opts, report); err != nil {
			return report, err
		}
	}

	// Step 2: sync with the remote so the push is not rejected
	if !opts.SkipSync {
		if err := s.runSync(ctx, opts, report); err != nil {
			return report, err
		}
	}

	// Step 3: stage everything, including deletions
	s.uiManager.ShowStep("Legger endringer i ko")
	if err := s.gitClient.AddAll(ctx); err != nil {
		return report, err
	}

	// Step 4: the single branch point
	hasChanges, err := s.gitClient.HasStagedChanges(ctx)
	if err != nil {
		return report, err
	}
	report.HadChanges = hasChanges

	if !hasChanges {
		s.uiManager.ShowInfo(MsgNoChanges)
		report.Duration = time.Since(start)
		s.record(report)
		s.finish(opts)
		return report, nil
	}

	files, err := s.gitClient.StagedFiles(ctx)
	if err != nil {
		apperrors.Warn("could not list staged files: %v", err)
	}
	report.Files = files

	// Step 5: commit with the timestamped message
	report.Message = s.composer.Compose()

	if opts.DryRun {
		s.uiManager.ShowInfo(fmt.Sprintf("Toerrkjoering: ville committet %d fil(er) med meldingen %q", len(files), report.Message))
		report.Duration = time.Since(start)
		s.finish(opts)
		return report, nil
	}

	s.uiManager.ShowStep(fmt.Sprintf("Committer: %s", report.Message))
	if err := s.gitClient.Commit(ctx, report.Message); err != nil {
		report.Duration = time.Since(start)
		s.record(report)
		return report, err
	}
	report.Committed = true

	// Step 6: push to the configured upstream
	spinner := s.uiManager.ShowSpinner("Publiserer til " + s.config.Git.Remote + "...")
	spinner.Start()
	err = s.gitClient.Push(ctx)
	spinner.Stop()
	if err != nil {
		report.Duration = time.Since(start)
		s.record(report)
		return report, err
	}
	report.Pushed = true

	report.Duration = time.Since(start)
	s.uiManager.ShowSuccess(MsgPublished)
	s.record(report)
	s.finish(opts)
	return report, nil
}

// runBuild invokes the external page builder.
// A failed build is logged and, outside strict mode, ignored.
func (s *PublishService) runBuild(ctx context.Context, opts *PublishOptions, report *PublishReport) error {
	s.uiManager.ShowStep("Bygger vaersiden")

	result, err := s.buildRun.Run(ctx)
	if err != nil {
		// The command could not be started at all (tool missing)
		return err
	}

	report.BuildRan = true
	report.BuildOK = result.OK()
	report.BuildOutput = result.Output

	if !result.OK() {
		if opts.Strict {
			return apperrors.NewBuildError(result.Err, result.Output)
		}
		s.uiManager.ShowWarning(fmt.Sprintf("Byggesteget feilet (exit %d), fortsetter likevel", result.ExitCode))
		apperrors.Warn("build failed with exit %d: %s", result.ExitCode, result.Output)
	}
	return nil
}

// runSync pulls from the remote with rebase.
// A failed sync is logged and, outside strict mode, ignored.
func (s *PublishService) runSync(ctx context.Context, opts *PublishOptions, report *PublishReport) error {
	s.uiManager.ShowStep(fmt.Sprintf("Henter fra %s/%s", s.config.Git.Remote, s.config.Git.Branch))

	report.SyncRan = true
	result, err := s.gitClient.Pull(ctx, s.config.Git.Remote, s.config.Git.Branch, s.config.Git.Rebase)
	if err != nil {
		if opts.Strict {
			return err
		}
		s.uiManager.ShowWarning("Synkronisering feilet, fortsetter likevel")
		apperrors.Warn("sync failed: %v", err)
		return nil
	}

	report.SyncOK = true
	if result.Updated {
		s.uiManager.ShowInfo(result.Message)
	}
	return nil
}

// record appends the run to the publish log.
func (s *PublishService) record(report *PublishReport) {
	if s.historyMgr == nil {
		return
	}

	entry := &history.Entry{
		Message:    report.Message,
		Committed:  report.Committed,
		Pushed:     report.Pushed,
		BuildOK:    !report.BuildRan || report.BuildOK,
		SyncOK:     !report.SyncRan || report.SyncOK,
		DurationMS: report.Duration.Milliseconds(),
	}
	for _, f := range report.Files {
		entry.Files = append(entry.Files, f.Path)
	}

	if err := s.historyMgr.Save(entry); err != nil {
		apperrors.Warn("could not record publish run: %v", err)
	}
}

// finish handles the optional end-of-run pause.
func (s *PublishService) finish(opts *PublishOptions) {
	if opts.Pause {
		s.uiManager.Pause("")
	}
}
