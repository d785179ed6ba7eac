package cli

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"yt-studio-uploader/internal/browser"
	"yt-studio-uploader/internal/config"
)

type doctorCheck struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type doctorResult struct {
	OK     bool          `json:"ok"`
	Checks []doctorCheck `json:"checks"`
}

func runDoctor(args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	settingsPath := fs.String("settings", config.DefaultSettingsPath, "settings file path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.ReadFile(*settingsPath)
	if err != nil {
		return err
	}

	result := doctorResult{OK: true}
	add := func(c doctorCheck) {
		result.Checks = append(result.Checks, c)
		if !c.OK {
			result.OK = false
		}
	}

	_ = godotenv.Load()
	add(checkStudioURL())
	add(checkVideosDir(cfg.VideosDir))
	add(checkChromeBinary(cfg.ChromePath))
	add(checkDebugger(cfg.DebuggerURL))

	if *jsonOut {
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		for _, c := range result.Checks {
			status := "ok"
			if !c.OK {
				status = "FAIL"
			}
			fmt.Printf("%-4s %-20s %s\n", status, c.Name, c.Message)
		}
	}
	if !result.OK {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}

func checkStudioURL() doctorCheck {
	url := strings.TrimSpace(os.Getenv(config.EnvStudioURL))
	if url == "" {
		return doctorCheck{
			Name:    "config:studio_url",
			OK:      false,
			Message: config.EnvStudioURL + " is not set (environment or .env)",
		}
	}
	return doctorCheck{Name: "config:studio_url", OK: true, Message: url}
}

func checkVideosDir(dir string) doctorCheck {
	if _, err := os.ReadDir(dir); err != nil {
		return doctorCheck{Name: "directory:videos", OK: false, Message: err.Error()}
	}
	return doctorCheck{Name: "directory:videos", OK: true, Message: dir}
}

func checkChromeBinary(override string) doctorCheck {
	path := strings.TrimSpace(override)
	if path == "" {
		var err error
		path, err = browser.DefaultChromePath(runtime.GOOS)
		if err != nil {
			return doctorCheck{Name: "browser:chrome", OK: false, Message: err.Error()}
		}
	}
	if filepath.Base(path) == path {
		resolved, err := exec.LookPath(path)
		if err != nil {
			return doctorCheck{Name: "browser:chrome", OK: false, Message: fmt.Sprintf("%s not found on PATH", path)}
		}
		return doctorCheck{Name: "browser:chrome", OK: true, Message: resolved}
	}
	if _, err := os.Stat(path); err != nil {
		return doctorCheck{Name: "browser:chrome", OK: false, Message: err.Error()}
	}
	return doctorCheck{Name: "browser:chrome", OK: true, Message: path}
}

func checkDebugger(debuggerURL string) doctorCheck {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(strings.TrimRight(debuggerURL, "/") + "/json/version")
	if err != nil {
		return doctorCheck{
			Name:    "browser:debugger",
			OK:      false,
			Message: fmt.Sprintf("no DevTools endpoint at %s (start Chrome with --remote-debugging-port or use run --launch-chrome)", debuggerURL),
		}
	}
	defer resp.Body.Close()
	return doctorCheck{Name: "browser:debugger", OK: true, Message: debuggerURL}
}
