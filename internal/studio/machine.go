package studio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"yt-studio-uploader/internal/describe"
	"yt-studio-uploader/internal/logging"
	"yt-studio-uploader/internal/model"
)

// Defaults applied by Config.withDefaults. The processing wait is long
// because Studio only reveals the details form once upload and initial
// processing finish.
const (
	DefaultStageTimeout      = 20 * time.Second
	DefaultProcessingTimeout = 5 * time.Minute
	DefaultRetryAttempts     = 3
	DefaultRetryDelay        = 500 * time.Millisecond
)

// Config tunes the machine's waits and retry policy. Timeouts are inputs,
// not constants, so tests drive the machine against a fake UI with near-zero
// waits.
type Config struct {
	StudioURL string

	// StageTimeout bounds every single UI interaction except the
	// processing wait.
	StageTimeout time.Duration
	// ProcessingTimeout bounds the upload-complete / processing-ready wait.
	ProcessingTimeout time.Duration
	// RetryAttempts is the total number of attempts per interaction for
	// failures marked retryable.
	RetryAttempts int
	// RetryDelay is the pause between retry attempts.
	RetryDelay time.Duration

	Selectors Selectors

	// TemplateOverride, when set, is used as the description template
	// instead of reading the studio's pre-filled default once per run.
	TemplateOverride string
}

func (c Config) withDefaults() Config {
	if c.StageTimeout <= 0 {
		c.StageTimeout = DefaultStageTimeout
	}
	if c.ProcessingTimeout <= 0 {
		c.ProcessingTimeout = DefaultProcessingTimeout
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.Selectors == (Selectors{}) {
		c.Selectors = DefaultSelectors()
	}
	return c
}

// Machine drives one job at a time through the upload flow. It is not safe
// for concurrent use: the underlying browser session holds exactly one
// upload dialog.
type Machine struct {
	ui  RemoteUI
	cfg Config
	log *logging.Logger

	template       string
	templateLoaded bool
}

func NewMachine(ui RemoteUI, cfg Config, log *logging.Logger) *Machine {
	return &Machine{
		ui:  ui,
		cfg: cfg.withDefaults(),
		log: log,
	}
}

// ResetTemplate drops the cached default-description template so the next
// job re-reads it. Called on batch restart.
func (m *Machine) ResetTemplate() {
	m.template = ""
	m.templateLoaded = false
}

// Upload runs job through the full stage sequence and returns its terminal
// outcome. UI failures never escape: they become a Failed outcome carrying
// the failure kind and the stage reached. A thumbnail-attach failure is
// recorded as a warning on the outcome, not a failure.
func (m *Machine) Upload(ctx context.Context, job model.VideoJob) model.UploadOutcome {
	out := model.UploadOutcome{Job: job}
	stage := model.StageIdle

	advance := func(to string) {
		next, err := model.Transition(stage, to)
		if err != nil {
			m.log.Error("%v", err)
			return
		}
		stage = next
	}
	fail := func(kind string, err error) model.UploadOutcome {
		serr := &StageError{Kind: kind, Stage: stage, Err: err}
		m.log.Error("%s: %v", job.Basename, serr)
		out.FinalState = model.StateFailed
		out.StageReached = stage
		out.FailureKind = kind
		out.FailureReason = err.Error()
		return out
	}
	sel := m.cfg.Selectors

	if err := m.retry(ctx, func() error { return m.openUploadDialog(ctx) }); err != nil {
		return fail(KindNavigation, err)
	}
	advance(model.StageNavigated)
	m.log.Debug("%s: upload dialog open", job.Basename)

	videoPath, err := filepath.Abs(job.VideoPath)
	if err != nil {
		return fail(KindFileSelect, err)
	}
	if _, err := os.Stat(videoPath); err != nil {
		return fail(KindFileSelect, err)
	}
	if err := m.retry(ctx, func() error {
		return m.ui.SetFileInput(ctx, sel.FileInput, videoPath, m.cfg.StageTimeout)
	}); err != nil {
		return fail(KindFileSelect, err)
	}
	advance(model.StageFileSelected)
	advance(model.StageUploading)
	m.log.Debug("%s: video file selected", job.Basename)

	advance(model.StageProcessingWait)
	if err := m.ui.WaitVisible(ctx, sel.NextButton, m.cfg.ProcessingTimeout); err != nil {
		return fail(KindTimeout, err)
	}

	if err := m.retry(ctx, func() error {
		return m.ui.Type(ctx, sel.TitleBox, job.Basename, m.cfg.StageTimeout)
	}); err != nil {
		return fail(KindEdit, err)
	}
	advance(model.StageRenamed)
	m.log.Debug("%s: title set", job.Basename)

	template, err := m.loadTemplate(ctx)
	if err != nil {
		return fail(KindEdit, err)
	}
	description := describe.Render(template, job.Basename, job.Keywords)
	if err := m.retry(ctx, func() error {
		return m.ui.Type(ctx, sel.DescriptionBox, description, m.cfg.StageTimeout)
	}); err != nil {
		return fail(KindEdit, err)
	}
	advance(model.StageDescriptionEdited)

	if job.HasThumbnail() {
		if err := m.attachThumbnail(ctx, job.ThumbnailPath); err != nil {
			out.ThumbnailWarning = err.Error()
			m.log.Warn("%s: thumbnail attach failed, publishing without it: %v", job.Basename, err)
		} else {
			advance(model.StageThumbnailAttached)
			m.log.Debug("%s: thumbnail attached", job.Basename)
		}
	}

	advance(model.StagePublishRequested)
	if err := m.confirmPublish(ctx); err != nil {
		return fail(KindPublish, err)
	}
	advance(model.StateSucceeded)

	out.FinalState = model.StateSucceeded
	out.StageReached = model.StateSucceeded
	return out
}

func (m *Machine) openUploadDialog(ctx context.Context) error {
	sel := m.cfg.Selectors
	if err := m.ui.Navigate(ctx, m.cfg.StudioURL); err != nil {
		return err
	}
	if err := m.ui.Click(ctx, sel.CreateButton, m.cfg.StageTimeout); err != nil {
		return err
	}
	return m.ui.Click(ctx, sel.UploadMenuItem, m.cfg.StageTimeout)
}

// loadTemplate returns the description template: the configured override if
// present, otherwise the studio's pre-filled default description read once
// from the first job's dialog and cached for the rest of the run.
func (m *Machine) loadTemplate(ctx context.Context) (string, error) {
	if m.cfg.TemplateOverride != "" {
		return m.cfg.TemplateOverride, nil
	}
	if m.templateLoaded {
		return m.template, nil
	}
	var text string
	err := m.retry(ctx, func() error {
		var err error
		text, err = m.ui.Text(ctx, m.cfg.Selectors.DescriptionBox, m.cfg.StageTimeout)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("read default description template: %w", err)
	}
	m.template = text
	m.templateLoaded = true
	return text, nil
}

func (m *Machine) attachThumbnail(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	f, err := os.Open(abs)
	if err != nil {
		return err
	}
	_ = f.Close()

	// Reveal the thumbnail controls; a failed scroll is harmless if the
	// input is already in view.
	sel := m.cfg.Selectors
	if err := m.ui.ScrollBy(ctx, sel.UploadDialog, 500, m.cfg.StageTimeout); err != nil {
		m.log.Debug("scroll upload dialog: %v", err)
	}
	return m.retry(ctx, func() error {
		return m.ui.SetFileInput(ctx, sel.ThumbnailInput, abs, m.cfg.StageTimeout)
	})
}

// confirmPublish advances through the details, video elements, and checks
// screens, confirms on the visibility screen, and waits for the success
// dialog. Each click retries individually; the sequence as a whole is never
// replayed since the clicks mutate remote state.
func (m *Machine) confirmPublish(ctx context.Context) error {
	sel := m.cfg.Selectors
	for i := 0; i < 3; i++ {
		if err := m.retry(ctx, func() error {
			return m.ui.Click(ctx, sel.NextButton, m.cfg.StageTimeout)
		}); err != nil {
			return err
		}
	}
	if err := m.retry(ctx, func() error {
		return m.ui.Click(ctx, sel.DoneButton, m.cfg.StageTimeout)
	}); err != nil {
		return err
	}
	if err := m.ui.WaitVisible(ctx, sel.SuccessClose, m.cfg.StageTimeout); err != nil {
		return err
	}
	if err := m.ui.Click(ctx, sel.SuccessClose, m.cfg.StageTimeout); err != nil {
		m.log.Debug("dismiss success dialog: %v", err)
	}
	return nil
}

func (m *Machine) retry(ctx context.Context, op func() error) error {
	attempts := m.cfg.RetryAttempts
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) || attempt == attempts {
			return err
		}
		m.log.Debug("retryable UI failure (attempt %d/%d): %v", attempt, attempts, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.cfg.RetryDelay):
		}
	}
	return err
}
