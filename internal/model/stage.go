package model

import "fmt"

// Stages of the per-job upload state machine, in flow order. Each stage
// corresponds to one remote-UI interaction; StateSucceeded and StateFailed
// are terminal.
const (
	StageIdle              = "idle"
	StageNavigated         = "navigated_to_upload_page"
	StageFileSelected      = "file_selected"
	StageUploading         = "uploading"
	StageProcessingWait    = "processing_wait"
	StageRenamed           = "renamed"
	StageDescriptionEdited = "description_edited"
	StageThumbnailAttached = "thumbnail_attached"
	StagePublishRequested  = "publish_requested"
	StateSucceeded         = "succeeded"
	StateFailed            = "failed"
)

var allowedTransitions = map[string]map[string]bool{
	StageIdle: {
		StageNavigated: true,
		StateFailed:    true,
	},
	StageNavigated: {
		StageFileSelected: true,
		StateFailed:       true,
	},
	StageFileSelected: {
		StageUploading: true,
		StateFailed:    true,
	},
	StageUploading: {
		StageProcessingWait: true,
		StateFailed:         true,
	},
	StageProcessingWait: {
		StageRenamed: true,
		StateFailed:  true,
	},
	StageRenamed: {
		StageDescriptionEdited: true,
		StateFailed:            true,
	},
	StageDescriptionEdited: {
		StageThumbnailAttached: true,
		StagePublishRequested:  true, // no thumbnail paired, stage skipped
		StateFailed:            true,
	},
	StageThumbnailAttached: {
		StagePublishRequested: true,
		StateFailed:           true,
	},
	StagePublishRequested: {
		StateSucceeded: true,
		StateFailed:    true,
	},
	StateSucceeded: {},
	StateFailed:    {},
}

func IsKnownStage(stage string) bool {
	_, ok := allowedTransitions[stage]
	return ok
}

func IsTerminal(stage string) bool {
	return stage == StateSucceeded || stage == StateFailed
}

func CanTransition(from, to string) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

// Transition advances a stage cursor, rejecting jumps the machine must never
// take (re-entering a stage, skipping forward past an unvisited one).
func Transition(from, to string) (string, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("invalid upload stage transition: %q -> %q", from, to)
	}
	return to, nil
}
