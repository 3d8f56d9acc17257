package launcher

import (
	"errors"
	"fmt"
	"strings"
)

const fileVar = "%%FILE%%"

// EditorLauncher builds the command used to edit incident descriptions in an
// external editor
type EditorLauncher struct {
	Enabled bool
	editor  []string
}

func NewEditorLauncher(editor string) (EditorLauncher, error) {
	launcher := EditorLauncher{
		editor: strings.Fields(editor),
	}

	err := launcher.validate()
	if err != nil {
		return EditorLauncher{}, err
	}

	return launcher, nil
}

func (l *EditorLauncher) validate() error {
	errs := []error{}

	if len(l.editor) == 0 || l.editor[0] == "" {
		errs = append(errs, errors.New("editor is not set"))
	}

	if len(l.editor) > 0 && strings.Contains(l.editor[0], "%%") {
		errs = append(errs, errors.New("first editor argument cannot have a replaceable"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("editor error: %w", errors.Join(errs...))
	}

	l.Enabled = true
	return nil
}

// BuildCommand returns the editor command for file. If the editor arguments
// contain %%FILE%% it is replaced, otherwise the file is appended.
func (l EditorLauncher) BuildCommand(file string) []string {
	command := []string{l.editor[0]}

	replaced := false
	for _, arg := range l.editor[1:] {
		if strings.Contains(arg, fileVar) {
			replaced = true
		}
		command = append(command, strings.ReplaceAll(arg, fileVar, file))
	}

	if !replaced {
		command = append(command, file)
	}

	return command
}
