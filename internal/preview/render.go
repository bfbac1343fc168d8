package preview

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"selectmenu/internal/domain"
)

var (
	rendererMu sync.Mutex
	// One renderer per wrap width. Building one is comparatively slow and
	// WithAutoStyle can block on terminal queries, so the style is fixed.
	renderers = map[int]*glamour.TermRenderer{}
)

// Markdown returns the markdown document shown for item
func Markdown(item domain.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", item.Label())
	if item.Title != "" && item.Title != item.Key {
		fmt.Fprintf(&b, "`%s`\n\n", item.Key)
	}
	if detail := strings.TrimSpace(item.Detail); detail != "" {
		b.WriteString(detail)
		b.WriteString("\n")
	} else {
		b.WriteString("_No details._\n")
	}
	return b.String()
}

// Render renders item as styled terminal text wrapped at width. When the
// markdown renderer fails the raw markdown is returned.
func Render(item domain.Item, width int) string {
	md := Markdown(item)
	if width < 20 {
		width = 20
	}

	r, err := renderer(width)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func renderer(width int) (*glamour.TermRenderer, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if r := renderers[width]; r != nil {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.DarkStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	renderers[width] = r
	return r, nil
}
