package model

import "testing"

func TestCanTransition_AllowsExpectedPaths(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{StageIdle, StageNavigated},
		{StageNavigated, StageFileSelected},
		{StageFileSelected, StageUploading},
		{StageUploading, StageProcessingWait},
		{StageProcessingWait, StageRenamed},
		{StageRenamed, StageDescriptionEdited},
		{StageDescriptionEdited, StageThumbnailAttached},
		{StageDescriptionEdited, StagePublishRequested},
		{StageThumbnailAttached, StagePublishRequested},
		{StagePublishRequested, StateSucceeded},
		{StageProcessingWait, StateFailed},
		{StageIdle, StateFailed},
	}

	for _, tc := range cases {
		if !CanTransition(tc.from, tc.to) {
			t.Fatalf("expected transition %q -> %q to be allowed", tc.from, tc.to)
		}
	}
}

func TestCanTransition_RejectsInvalidPaths(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{StageIdle, StageFileSelected},
		{StageNavigated, StageRenamed},
		{StateSucceeded, StageIdle},
		{StateFailed, StageIdle},
		{StageThumbnailAttached, StateSucceeded},
		{"not_a_stage", StageIdle},
	}

	for _, tc := range cases {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("expected transition %q -> %q to be rejected", tc.from, tc.to)
		}
	}
}

func TestTransition_BlocksIllegalJump(t *testing.T) {
	stage := StageIdle
	stage, err := Transition(stage, StageNavigated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage != StageNavigated {
		t.Fatalf("expected stage %q, got %q", StageNavigated, stage)
	}

	if _, err := Transition(stage, StagePublishRequested); err == nil {
		t.Fatalf("expected illegal transition error")
	}
}

func TestSummarize_CountsAndFailedList(t *testing.T) {
	outcomes := []UploadOutcome{
		{Job: VideoJob{Basename: "a"}, FinalState: StateSucceeded, StageReached: StateSucceeded},
		{Job: VideoJob{Basename: "b"}, FinalState: StateFailed, StageReached: StageProcessingWait, FailureKind: "timeout"},
		{Job: VideoJob{Basename: "c"}, FinalState: StateSucceeded, StageReached: StateSucceeded},
	}

	s := Summarize(outcomes)
	if s.Total != 3 || s.Succeeded != 2 || s.Failed != 1 {
		t.Fatalf("unexpected summary counts: %+v", s)
	}

	failed := s.FailedOutcomes()
	if len(failed) != 1 || failed[0].Job.Basename != "b" {
		t.Fatalf("expected only job b in failed list, got %+v", failed)
	}
}
