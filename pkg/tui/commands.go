package tui

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"text/template"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/clcollins/aidash/pkg/incident"
	"github.com/clcollins/aidash/pkg/launcher"
)

const (
	nilIncidentMsg = "no incident highlighted"
	editorDisabled = "no editor configured; set `editor` in the config file or use --editor"
)

var errEditorDisabled = errors.New(editorDisabled)

type editorFinishedMsg struct {
	err  error
	file *os.File
}

// openEditorCmd writes the draft description to a temp file and opens it in
// the configured editor, suspending the TUI until the editor exits
func openEditorCmd(editor launcher.EditorLauncher, draft incident.Draft) tea.Cmd {
	log.Debug("tui.openEditorCmd(): opening editor")

	if !editor.Enabled {
		return func() tea.Msg { return errMsg{errEditorDisabled} }
	}

	file, err := os.CreateTemp(os.TempDir(), "aidash-*.md")
	if err != nil {
		log.Debug("tui.openEditorCmd()", "error", err)
		return func() tea.Msg { return errMsg{err} }
	}

	content, err := descriptionTemplate(draft)
	if err == nil {
		_, err = file.WriteString(content)
	}
	if err != nil {
		file.Close() //nolint:errcheck
		os.Remove(file.Name()) //nolint:errcheck
		return func() tea.Msg { return errMsg{err} }
	}

	command := editor.BuildCommand(file.Name())
	c := exec.Command(command[0], command[1:]...)

	log.Debug("tui.openEditorCmd()", "command", c.String())
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			log.Debug("tui.openEditorCmd()", "error", err)
			return editorFinishedMsg{err: fmt.Errorf("editor exited with error: %w", err), file: file}
		}
		return editorFinishedMsg{file: file}
	})
}

// readEditedDescription reads the edited temp file back, dropping comment
// lines, and removes it
func readEditedDescription(file *os.File) (string, error) {
	defer os.Remove(file.Name()) //nolint:errcheck
	defer file.Close()           //nolint:errcheck

	b, err := os.ReadFile(file.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read description: %w", err)
	}

	return stripComments(b), nil
}

// stripComments drops lines starting with '#' and trims surrounding blank lines
func stripComments(b []byte) string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(b))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func descriptionTemplate(d incident.Draft) (string, error) {
	t, err := template.New("description").Parse(descriptionEditorTemplate)
	if err != nil {
		return "", err
	}

	o := new(bytes.Buffer)
	err = t.Execute(o, d)
	if err != nil {
		return "", err
	}

	return o.String(), nil
}

const descriptionEditorTemplate = `{{ .Description }}

# Please describe the incident above. Lines starting
# with '#' will be ignored and an empty description
# leaves the report incomplete.
#
# Title: {{ .Title }}
# Severity: {{ .Severity }}
#
`
