package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"yt-studio-uploader/internal/logging"
	"yt-studio-uploader/internal/model"
	"yt-studio-uploader/internal/pairing"
	"yt-studio-uploader/internal/studio"
)

// fakeUploader succeeds every job except the stems listed in failStems,
// which fail with a processing timeout.
type fakeUploader struct {
	failStems map[string]bool
	uploaded  []string
	resets    int
}

func (f *fakeUploader) Upload(ctx context.Context, job model.VideoJob) model.UploadOutcome {
	f.uploaded = append(f.uploaded, job.Basename)
	if f.failStems[job.Basename] {
		return model.UploadOutcome{
			Job:           job,
			FinalState:    model.StateFailed,
			StageReached:  model.StageProcessingWait,
			FailureKind:   studio.KindTimeout,
			FailureReason: "processing signal never appeared",
		}
	}
	return model.UploadOutcome{
		Job:          job,
		FinalState:   model.StateSucceeded,
		StageReached: model.StateSucceeded,
	}
}

func (f *fakeUploader) ResetTemplate() { f.resets++ }

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.New(logging.ColorNever, false, "")
	if err != nil {
		t.Fatal(err)
	}
	return log
}

func writeVideo(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunBatch_FailureDoesNotHaltBatch(t *testing.T) {
	up := &fakeUploader{failStems: map[string]bool{"b": true}}
	c := New(up, nil, testLogger(t), "", nil)

	jobs := []model.VideoJob{
		{VideoPath: "a.mp4", Basename: "a"},
		{VideoPath: "b.mp4", Basename: "b"},
		{VideoPath: "c.mp4", Basename: "c"},
	}
	outcomes := c.RunBatch(context.Background(), jobs)

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if !outcomes[0].Succeeded() || outcomes[1].Succeeded() || !outcomes[2].Succeeded() {
		t.Fatalf("unexpected outcome sequence: %+v", outcomes)
	}
	if outcomes[1].FailureKind != studio.KindTimeout || outcomes[1].StageReached != model.StageProcessingWait {
		t.Fatalf("unexpected failure detail: %+v", outcomes[1])
	}

	summary := model.Summarize(outcomes)
	failed := summary.FailedOutcomes()
	if len(failed) != 1 || failed[0].Job.Basename != "b" {
		t.Fatalf("summary must list exactly job b as failed, got %+v", failed)
	}
}

func TestLoop_RestartPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "a.mp4")

	up := &fakeUploader{}
	passes := 0
	decider := DeciderFunc(func(summary model.BatchSummary) (Decision, error) {
		passes++
		if passes == 1 {
			// Operator drops in a new pair, then chooses restart.
			writeVideo(t, dir, "b.mp4")
			return DecisionRestart, nil
		}
		return DecisionExit, nil
	})

	var summaries []model.BatchSummary
	c := New(up, decider, testLogger(t), dir, func(s model.BatchSummary) {
		summaries = append(summaries, s)
	})

	if err := c.Loop(context.Background()); err != nil {
		t.Fatalf("loop failed: %v", err)
	}

	if passes != 2 {
		t.Fatalf("expected 2 passes, got %d", passes)
	}
	want := []string{"a", "a", "b"}
	if len(up.uploaded) != len(want) {
		t.Fatalf("expected uploads %v, got %v", want, up.uploaded)
	}
	for i := range want {
		if up.uploaded[i] != want[i] {
			t.Fatalf("expected uploads %v, got %v", want, up.uploaded)
		}
	}
	if up.resets != 1 {
		t.Fatalf("expected one template reset on restart, got %d", up.resets)
	}
	if len(summaries) != 2 || summaries[0].Total != 1 || summaries[1].Total != 2 {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestLoop_EmptyDirectoryStillAsksOperator(t *testing.T) {
	dir := t.TempDir()
	up := &fakeUploader{}
	asked := 0
	decider := DeciderFunc(func(summary model.BatchSummary) (Decision, error) {
		asked++
		if summary.Total != 0 {
			t.Fatalf("expected empty summary, got %+v", summary)
		}
		return DecisionExit, nil
	})

	c := New(up, decider, testLogger(t), dir, nil)
	if err := c.Loop(context.Background()); err != nil {
		t.Fatalf("loop failed: %v", err)
	}
	if asked != 1 {
		t.Fatalf("expected operator prompt once, got %d", asked)
	}
	if len(up.uploaded) != 0 {
		t.Fatalf("expected no uploads, got %v", up.uploaded)
	}
}

func TestLoop_MissingDirectoryIsFatal(t *testing.T) {
	up := &fakeUploader{}
	c := New(up, DeciderFunc(func(model.BatchSummary) (Decision, error) {
		t.Fatal("decider must not run after discovery failure")
		return DecisionExit, nil
	}), testLogger(t), filepath.Join(t.TempDir(), "nope"), nil)

	err := c.Loop(context.Background())
	var de *pairing.DiscoveryError
	if !errors.As(err, &de) {
		t.Fatalf("expected discovery error, got %v", err)
	}
}

func TestLoop_DeciderErrorStopsLoop(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "a.mp4")

	wantErr := errors.New("stdin closed")
	c := New(&fakeUploader{}, DeciderFunc(func(model.BatchSummary) (Decision, error) {
		return DecisionExit, wantErr
	}), testLogger(t), dir, nil)

	if err := c.Loop(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected decider error, got %v", err)
	}
}
