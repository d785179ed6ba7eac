package cli

import "fmt"

func Run(args []string) error {
	if len(args) == 0 {
		printRootUsage()
		return nil
	}

	switch args[0] {
	case "run":
		return runUpload(args[1:])
	case "scan":
		return runScan(args[1:])
	case "render":
		return runRender(args[1:])
	case "doctor":
		return runDoctor(args[1:])
	case "setup":
		return runSetup(args[1:])
	case "help", "-h", "--help":
		printRootUsage()
		return nil
	default:
		printRootUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printRootUsage() {
	fmt.Println("yt-studio-uploader: bulk video publisher for the studio web UI")
	fmt.Println()
	fmt.Println("Quick Start:")
	fmt.Println("  yt-studio-uploader setup")
	fmt.Println("  yt-studio-uploader doctor")
	fmt.Println("  yt-studio-uploader run")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run     upload every video in the videos folder, then offer restart or exit")
	fmt.Println("  scan    list the jobs a run would upload, without uploading")
	fmt.Println("  render  preview the rendered description for one video stem")
	fmt.Println("  doctor  run configuration and browser preflight checks")
	fmt.Println("  setup   interactive wizard that writes .env and uploader.yaml")
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - STUDIO_URL must be set (environment or .env) before run")
	fmt.Println("  - Start Chrome with --remote-debugging-port=9222 or pass --launch-chrome")
	fmt.Println("  - Use --json on scan and doctor for machine-readable output")
}
