package model

// VideoJob is one unit of upload work: a local video file plus its optional
// same-stem thumbnail and keyword sidecar. Jobs are rebuilt fresh by the
// pairing resolver on every batch pass and are never shared between passes.
type VideoJob struct {
	VideoPath     string   `json:"video_path"`
	Basename      string   `json:"basename"`
	ThumbnailPath string   `json:"thumbnail_path,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}

// HasThumbnail reports whether a same-stem image was paired with the video.
func (j VideoJob) HasThumbnail() bool {
	return j.ThumbnailPath != ""
}

// UploadOutcome is the terminal result of driving one job through the
// upload state machine.
type UploadOutcome struct {
	Job              VideoJob `json:"job"`
	FinalState       string   `json:"final_state"`
	StageReached     string   `json:"stage_reached"`
	FailureKind      string   `json:"failure_kind,omitempty"`
	FailureReason    string   `json:"failure_reason,omitempty"`
	ThumbnailWarning string   `json:"thumbnail_warning,omitempty"`
}

func (o UploadOutcome) Succeeded() bool {
	return o.FinalState == StateSucceeded
}

// BatchSummary aggregates the outcomes of one full batch pass.
type BatchSummary struct {
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Outcomes  []UploadOutcome `json:"outcomes"`
}

// Summarize computes the per-pass rollup from the recorded outcomes.
func Summarize(outcomes []UploadOutcome) BatchSummary {
	s := BatchSummary{
		Total:    len(outcomes),
		Outcomes: outcomes,
	}
	for _, o := range outcomes {
		if o.Succeeded() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// FailedOutcomes returns only the failed outcomes, in batch order, so the
// operator can see exactly what to re-attempt on the next pass.
func (s BatchSummary) FailedOutcomes() []UploadOutcome {
	out := make([]UploadOutcome, 0, s.Failed)
	for _, o := range s.Outcomes {
		if !o.Succeeded() {
			out = append(out, o)
		}
	}
	return out
}
