package partials

import (
	"github.com/a-h/templ"
	"github.com/nfrund/folio/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// NoticeKind selects the notice styling.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a dismissible status message, returned on its own as an htmx
// fragment through the renderer.
func Notice(kind NoticeKind, message string) templ.Component {
	return view.AdaptGomponentToTempl(notice(kind, message))
}

func notice(kind NoticeKind, message string) cmp.Node {
	role := "status"
	if kind == NoticeError {
		role = "alert"
	}
	return g.Div(g.Class("notice notice-"+string(kind)), g.Role(role),
		g.Span(cmp.Text(message)),
		g.Button(g.Type("button"), g.Class("notice-close"), g.Aria("label", "Dismiss"), cmp.Text("×")),
	)
}
