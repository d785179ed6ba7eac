package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"yt-studio-uploader/internal/batch"
	"yt-studio-uploader/internal/browser"
	"yt-studio-uploader/internal/config"
	"yt-studio-uploader/internal/logging"
	"yt-studio-uploader/internal/model"
	"yt-studio-uploader/internal/studio"
)

func runUpload(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	settingsPath := fs.String("settings", config.DefaultSettingsPath, "settings file path")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	launchChrome := fs.Bool("launch-chrome", false, "start a local Chrome with remote debugging before attaching")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*settingsPath)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.ColorMode, *verbose, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Close()
	}()

	fmt.Println(renderBanner())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// One browser session for the whole process, released exactly once no
	// matter how the loop ends.
	session, err := browser.Connect(ctx, browser.Options{
		DebuggerURL:  cfg.DebuggerURL,
		ChromePath:   cfg.ChromePath,
		LaunchChrome: *launchChrome || cfg.LaunchChrome,
	})
	if err != nil {
		return err
	}
	defer session.Close()
	log.Info("Attached to Chrome at %s", cfg.DebuggerURL)

	machine := studio.NewMachine(session, studio.Config{
		StudioURL:         cfg.StudioURL,
		StageTimeout:      time.Duration(cfg.StageTimeoutSeconds) * time.Second,
		ProcessingTimeout: time.Duration(cfg.ProcessingTimeoutSeconds) * time.Second,
		RetryAttempts:     cfg.RetryAttempts,
		RetryDelay:        time.Duration(cfg.RetryDelayMillis) * time.Millisecond,
		TemplateOverride:  cfg.DescriptionTemplate,
	}, log)

	controller := batch.New(
		machine,
		newPromptDecider(os.Stdin, os.Stdout),
		log,
		cfg.VideosDir,
		func(s model.BatchSummary) { fmt.Println(renderSummary(s)) },
	)
	return controller.Loop(ctx)
}
