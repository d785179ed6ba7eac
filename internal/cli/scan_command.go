package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"yt-studio-uploader/internal/config"
	"yt-studio-uploader/internal/pairing"
)

func runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	settingsPath := fs.String("settings", config.DefaultSettingsPath, "settings file path")
	dir := fs.String("dir", "", "videos directory (defaults to the configured videos_dir)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	videosDir := strings.TrimSpace(*dir)
	if videosDir == "" {
		cfg, err := config.ReadFile(*settingsPath)
		if err != nil {
			return err
		}
		videosDir = cfg.VideosDir
		if v := strings.TrimSpace(os.Getenv(config.EnvVideosDir)); v != "" {
			videosDir = v
		}
	}

	jobs, err := pairing.Resolve(videosDir)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(map[string]any{
			"videos_dir": videosDir,
			"total":      len(jobs),
			"jobs":       jobs,
		})
	}

	if len(jobs) == 0 {
		fmt.Printf("no video files found in %s\n", videosDir)
		return nil
	}
	fmt.Printf("%d job(s) in %s:\n", len(jobs), videosDir)
	for i, job := range jobs {
		thumb := "-"
		if job.HasThumbnail() {
			thumb = filepath.Base(job.ThumbnailPath)
		}
		fmt.Printf("  %d. %s  video=%s thumbnail=%s keywords=%d\n",
			i+1, job.Basename, filepath.Base(job.VideoPath), thumb, len(job.Keywords))
	}
	return nil
}
