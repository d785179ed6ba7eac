// Package batch iterates upload jobs strictly sequentially, isolates per-job
// failures, and runs the operator-driven restart loop around whole passes.
package batch

import (
	"context"
	"path/filepath"

	"yt-studio-uploader/internal/logging"
	"yt-studio-uploader/internal/model"
	"yt-studio-uploader/internal/pairing"
)

// Decision is the operator's end-of-batch choice.
type Decision int

const (
	DecisionExit Decision = iota
	DecisionRestart
)

// Decider supplies the operator's decision after a batch pass. Injected so
// tests can script it instead of reading a terminal.
type Decider interface {
	Decide(summary model.BatchSummary) (Decision, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(summary model.BatchSummary) (Decision, error)

func (f DeciderFunc) Decide(summary model.BatchSummary) (Decision, error) {
	return f(summary)
}

// Uploader drives one job to a terminal outcome. The studio machine is the
// real implementation.
type Uploader interface {
	Upload(ctx context.Context, job model.VideoJob) model.UploadOutcome
	// ResetTemplate drops per-run cached state before a restarted pass.
	ResetTemplate()
}

// Controller runs batches of upload jobs. Jobs run one at a time: the remote
// studio session holds a single stateful upload dialog, so there is nothing
// to parallelize.
type Controller struct {
	uploader  Uploader
	decider   Decider
	log       *logging.Logger
	videosDir string
	report    func(model.BatchSummary)
}

// New builds a controller. report may be nil; it is called with each pass's
// summary before the operator is asked to restart or exit.
func New(uploader Uploader, decider Decider, log *logging.Logger, videosDir string, report func(model.BatchSummary)) *Controller {
	return &Controller{
		uploader:  uploader,
		decider:   decider,
		log:       log,
		videosDir: videosDir,
		report:    report,
	}
}

// RunBatch drives jobs in order and returns every outcome. A failed job
// never halts the batch; the controller records the outcome and moves on.
func (c *Controller) RunBatch(ctx context.Context, jobs []model.VideoJob) []model.UploadOutcome {
	outcomes := make([]model.UploadOutcome, 0, len(jobs))
	for i, job := range jobs {
		if ctx.Err() != nil {
			c.log.Warn("Interrupted")
			break
		}
		c.log.Info("Video %d/%d: %s", i+1, len(jobs), filepath.Base(job.VideoPath))
		out := c.uploader.Upload(ctx, job)
		if out.Succeeded() {
			c.log.Success("Video %d/%d uploaded: %s", i+1, len(jobs), job.Basename)
		} else {
			c.log.Error("Video %d/%d failed at %s: %s", i+1, len(jobs), out.StageReached, out.FailureReason)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// Loop is the outer control loop: resolve jobs, run the batch, report, then
// ask the operator to restart or exit. A restart re-runs the pairing
// resolver, so files added since the previous pass are picked up.
// Discovery failures are fatal; per-job failures never are.
func (c *Controller) Loop(ctx context.Context) error {
	for {
		c.log.Info("Checking for videos in: %s", c.videosDir)
		jobs, err := pairing.Resolve(c.videosDir)
		if err != nil {
			return err
		}

		var outcomes []model.UploadOutcome
		if len(jobs) == 0 {
			c.log.Info("No video files found in %s.", c.videosDir)
		} else {
			c.log.Info("Found %d video(s) to upload.", len(jobs))
			outcomes = c.RunBatch(ctx, jobs)
		}

		summary := model.Summarize(outcomes)
		if c.report != nil {
			c.report(summary)
		}

		decision, err := c.decider.Decide(summary)
		if err != nil {
			return err
		}
		if decision == DecisionExit {
			return nil
		}
		c.uploader.ResetTemplate()
	}
}
