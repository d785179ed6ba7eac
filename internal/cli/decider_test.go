package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"yt-studio-uploader/internal/batch"
	"yt-studio-uploader/internal/model"
)

func newTestDecider(input string) (*promptDecider, *bytes.Buffer) {
	out := &bytes.Buffer{}
	d := newPromptDecider(strings.NewReader(input), out)
	d.sleep = func(time.Duration) {}
	return d, out
}

func TestDecide_ExitAliases(t *testing.T) {
	for _, input := range []string{"\n", "y\n", "yes\n", "exit\n", "EXIT\n"} {
		d, _ := newTestDecider(input)
		decision, err := d.Decide(model.BatchSummary{})
		if err != nil {
			t.Fatalf("input %q: unexpected error: %v", input, err)
		}
		if decision != batch.DecisionExit {
			t.Fatalf("input %q: expected exit decision", input)
		}
	}
}

func TestDecide_RestartAliases(t *testing.T) {
	for _, input := range []string{"n\n", "no\n", "restart\n"} {
		d, out := newTestDecider(input)
		decision, err := d.Decide(model.BatchSummary{})
		if err != nil {
			t.Fatalf("input %q: unexpected error: %v", input, err)
		}
		if decision != batch.DecisionRestart {
			t.Fatalf("input %q: expected restart decision", input)
		}
		if !strings.Contains(out.String(), "Restarting now!") {
			t.Fatalf("input %q: missing countdown output: %q", input, out.String())
		}
	}
}

func TestDecide_InvalidInputReprompts(t *testing.T) {
	d, out := newTestDecider("banana\nexit\n")
	decision, err := d.Decide(model.BatchSummary{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision != batch.DecisionExit {
		t.Fatalf("expected exit after reprompt")
	}
	if !strings.Contains(out.String(), "Invalid input") {
		t.Fatalf("expected reprompt message, got %q", out.String())
	}
	if got := strings.Count(out.String(), "Do you want to exit?"); got != 2 {
		t.Fatalf("expected 2 prompts, got %d", got)
	}
}

func TestDecide_ClosedInputIsAnError(t *testing.T) {
	d, _ := newTestDecider("")
	if _, err := d.Decide(model.BatchSummary{}); err == nil {
		t.Fatalf("expected error on closed input")
	}
}
