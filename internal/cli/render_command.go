package cli

import (
	"flag"
	"fmt"
	"strings"

	"yt-studio-uploader/internal/config"
	"yt-studio-uploader/internal/describe"
	"yt-studio-uploader/internal/pairing"
)

// runRender previews the description one job would get, using the template
// from --template or the settings file. The studio's live default can only
// be read mid-upload, so previewing requires a local template.
func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	settingsPath := fs.String("settings", config.DefaultSettingsPath, "settings file path")
	dir := fs.String("dir", "", "videos directory (defaults to the configured videos_dir)")
	stem := fs.String("stem", "", "video stem to render the description for")
	template := fs.String("template", "", "description template (overrides the settings file)")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*stem) == "" {
		return fmt.Errorf("--stem is required")
	}

	cfg, err := config.ReadFile(*settingsPath)
	if err != nil {
		return err
	}

	tpl := strings.TrimSpace(*template)
	if tpl == "" {
		tpl = cfg.DescriptionTemplate
	}
	if tpl == "" {
		return fmt.Errorf("no template available: pass --template or set description_template in %s", *settingsPath)
	}

	videosDir := strings.TrimSpace(*dir)
	if videosDir == "" {
		videosDir = cfg.VideosDir
	}
	jobs, err := pairing.Resolve(videosDir)
	if err != nil {
		return err
	}
	for _, job := range jobs {
		if job.Basename == strings.TrimSpace(*stem) {
			fmt.Println(describe.Render(tpl, job.Basename, job.Keywords))
			return nil
		}
	}
	return fmt.Errorf("no video with stem %q in %s", *stem, videosDir)
}
