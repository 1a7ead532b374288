package partials

import (
	"github.com/nfrund/folio/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Flash renders the session notices, or nothing.
func Flash(data view.FlashData) cmp.Node {
	if data.Empty() {
		return nil
	}
	return g.Div(g.ID("flash"),
		cmp.Map(data.Success, func(m string) cmp.Node {
			return notice(NoticeSuccess, m)
		}),
		cmp.Map(data.Error, func(m string) cmp.Node {
			return notice(NoticeError, m)
		}),
	)
}
