package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"yt-studio-uploader/internal/config"
)

type setupField struct {
	Key      string
	Label    string
	Help     string
	Value    string
	Required bool
	Bool     bool
}

type setupModel struct {
	fields  []setupField
	index   int
	input   textinput.Model
	errMsg  string
	done    bool
	aborted bool
}

func newSetupModel(fields []setupField) setupModel {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 512
	input.Focus()
	if len(fields) > 0 {
		input.SetValue(fields[0].Value)
		input.CursorEnd()
	}
	return setupModel{fields: fields, input: input}
}

func (m setupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		field := &m.fields[m.index]
		if field.Required && value == "" {
			m.errMsg = field.Label + " is required"
			return m, nil
		}
		if field.Bool && value != "" {
			if _, err := parseBool(value); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
		}
		field.Value = value
		m.errMsg = ""
		m.index++
		if m.index >= len(m.fields) {
			m.done = true
			return m, tea.Quit
		}
		m.input.SetValue(m.fields[m.index].Value)
		m.input.CursorEnd()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	return m, cmd
}

func (m setupModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	field := m.fields[m.index]
	var b strings.Builder
	b.WriteString(titleStyle.Render("yt-studio-uploader setup"))
	b.WriteString(fmt.Sprintf("  %s\n\n", mutedStyle.Render(fmt.Sprintf("step %d/%d", m.index+1, len(m.fields)))))
	b.WriteString(field.Label + "\n")
	b.WriteString(m.input.View() + "\n")
	if field.Help != "" {
		b.WriteString(mutedStyle.Render(field.Help) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(failStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString(mutedStyle.Render("enter to confirm, esc to cancel"))
	return b.String()
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "true":
		return true, nil
	case "n", "no", "false", "":
		return false, nil
	default:
		return false, fmt.Errorf("enter y or n, got %q", raw)
	}
}

func runSetup(args []string) error {
	fs := flag.NewFlagSet("setup", flag.ContinueOnError)
	settingsPath := fs.String("settings", config.DefaultSettingsPath, "settings file path")
	envPath := fs.String("env", ".env", "env file path")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !stdinIsTTY() {
		return errors.New("setup requires an interactive terminal (TTY)")
	}

	cfg, err := config.ReadFile(*settingsPath)
	if err != nil {
		return err
	}

	fields := []setupField{
		{
			Key:      "studio_url",
			Label:    "Studio URL",
			Help:     "the studio channel URL uploads start from; stored in " + *envPath,
			Value:    strings.TrimSpace(os.Getenv(config.EnvStudioURL)),
			Required: true,
		},
		{
			Key:   "videos_dir",
			Label: "Videos directory",
			Help:  "folder scanned for <title>.<video-ext> plus optional thumbnail and keyword files",
			Value: cfg.VideosDir,
		},
		{
			Key:   "debugger_url",
			Label: "Chrome DevTools URL",
			Help:  "endpoint of a Chrome started with --remote-debugging-port",
			Value: cfg.DebuggerURL,
		},
		{
			Key:   "launch_chrome",
			Label: "Launch Chrome automatically? (y/n)",
			Help:  "start a local Chrome with remote debugging at the beginning of run",
			Value: formatBool(cfg.LaunchChrome),
			Bool:  true,
		},
		{
			Key:   "description_template",
			Label: "Description template (optional)",
			Help:  "KEYWORD and TITLE are substituted; leave empty to use the studio's default description",
			Value: cfg.DescriptionTemplate,
		},
	}

	p := tea.NewProgram(newSetupModel(fields))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	m, ok := finalModel.(setupModel)
	if !ok || m.aborted || !m.done {
		fmt.Println("setup canceled")
		return nil
	}

	var studioURL string
	for _, field := range m.fields {
		value := strings.TrimSpace(field.Value)
		switch field.Key {
		case "studio_url":
			studioURL = value
		case "videos_dir":
			cfg.VideosDir = value
		case "debugger_url":
			cfg.DebuggerURL = value
		case "launch_chrome":
			cfg.LaunchChrome, _ = parseBool(value)
		case "description_template":
			cfg.DescriptionTemplate = value
		}
	}

	if err := config.SaveEnv(*envPath, studioURL); err != nil {
		return err
	}
	if err := config.Save(*settingsPath, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s and %s\n", *envPath, *settingsPath)
	fmt.Println("next: yt-studio-uploader doctor")
	return nil
}

func formatBool(v bool) string {
	if v {
		return "y"
	}
	return "n"
}
