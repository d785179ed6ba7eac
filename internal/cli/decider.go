package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"yt-studio-uploader/internal/batch"
	"yt-studio-uploader/internal/model"
)

// promptDecider asks the operator whether to exit or restart after a batch
// pass. Reader, writer, and sleep are injected so tests drive it with
// scripted input and no real delays.
type promptDecider struct {
	in    *bufio.Reader
	out   io.Writer
	sleep func(time.Duration)
}

func newPromptDecider(in io.Reader, out io.Writer) *promptDecider {
	return &promptDecider{
		in:    bufio.NewReader(in),
		out:   out,
		sleep: time.Sleep,
	}
}

// Decide accepts "exit"/"restart" and the y/n aliases; anything else
// re-prompts. A closed input stream surfaces as an error and ends the loop.
func (d *promptDecider) Decide(model.BatchSummary) (batch.Decision, error) {
	for {
		fmt.Fprint(d.out, "Do you want to exit? ([y]/n): ")
		line, err := d.in.ReadString('\n')
		if err != nil && line == "" {
			return batch.DecisionExit, fmt.Errorf("read operator choice: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "y", "yes", "exit":
			fmt.Fprintln(d.out, "Exiting uploader. Goodbye!")
			return batch.DecisionExit, nil
		case "n", "no", "restart":
			fmt.Fprintln(d.out, "Restarting uploader in:")
			for i := 3; i > 0; i-- {
				fmt.Fprintf(d.out, "%d...\n", i)
				d.sleep(time.Second)
			}
			fmt.Fprintln(d.out, "Restarting now!")
			return batch.DecisionRestart, nil
		default:
			fmt.Fprintln(d.out, "Invalid input. Please enter 'y' or 'n'.")
		}
	}
}
