package legal

import (
	"io"
	"strings"

	"github.com/samber/lo"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Modal builds the modal fragment for d: a title, a close button and the
// document body split into paragraphs.
func Modal(d Document) (g.Node, error) {
	text, err := Lookup(d)
	if err != nil {
		return nil, err
	}

	paragraphs := lo.Filter(strings.Split(text.Body, "\n\n"), func(p string, _ int) bool {
		return strings.TrimSpace(p) != ""
	})

	return h.Div(
		h.Class("fixed inset-0 bg-black/50 flex items-center justify-center z-50"),
		g.Attr("role", "dialog"),
		g.Attr("aria-modal", "true"),
		g.Attr("data-document", d.String()),
		h.Div(
			h.Class("bg-white rounded-2xl shadow-lg max-w-2xl w-full p-6 relative max-h-[80vh] overflow-y-auto"),
			h.Button(
				h.Type("button"),
				h.Class("absolute top-3 right-3 text-gray-500 hover:text-gray-800"),
				g.Attr("aria-label", "Close"),
				g.Attr("data-action", "close-modal"),
				g.Text("✕"),
			),
			h.H2(h.Class("text-2xl font-bold mb-4 text-gray-900"), g.Text(text.Title)),
			g.Group(g.Map(paragraphs, func(p string) g.Node {
				return h.P(h.Class("text-gray-700 whitespace-pre-line mb-4"), g.Text(p))
			})),
		),
	), nil
}

// Render writes the modal fragment for d to w.
func Render(w io.Writer, d Document) error {
	node, err := Modal(d)
	if err != nil {
		return err
	}
	return node.Render(w)
}
