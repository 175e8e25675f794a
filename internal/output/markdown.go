package output

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// rendererCache holds one glamour renderer per (width, plain) pair.
var rendererCache sync.Map // map[rendererKey]*glamour.TermRenderer

type rendererKey struct {
	width int
	plain bool
}

func renderer(width int, plain bool) (*glamour.TermRenderer, error) {
	key := rendererKey{width: width, plain: plain}
	if cached, ok := rendererCache.Load(key); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(key, r)
	return r, nil
}

// Markdown renders text as terminal markdown wrapped at width. On any
// rendering failure the text is returned unchanged.
func Markdown(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	r, err := renderer(max(width, 20), colorDisabled) //nolint:mnd // narrowest useful wrap
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
