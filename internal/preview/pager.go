package preview

import (
	"errors"
	"io"
	"strings"

	"github.com/noborus/ov/oviewer"
)

// ErrEmpty is returned when there is nothing to page
var ErrEmpty = errors.New("nothing to preview")

// PagerCommand shows content in an ov pager. It satisfies tea.ExecCommand,
// so Bubble Tea releases the terminal while it runs.
type PagerCommand struct {
	content string

	stdin          io.Reader
	stdout, stderr io.Writer
}

// NewPagerCommand creates a pager for content
func NewPagerCommand(content string) *PagerCommand {
	return &PagerCommand{content: content}
}

// Run blocks until the user leaves the pager
func (c *PagerCommand) Run() error {
	if strings.TrimSpace(c.content) == "" {
		return ErrEmpty
	}

	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}

	// Keep the pager from writing its screen back over the menu
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// SetStdin is part of tea.ExecCommand; ov opens the terminal itself
func (c *PagerCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout is part of tea.ExecCommand
func (c *PagerCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr is part of tea.ExecCommand
func (c *PagerCommand) SetStderr(w io.Writer) { c.stderr = w }
