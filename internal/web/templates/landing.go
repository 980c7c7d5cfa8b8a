package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/robinrobin1706/space-biology/internal/util"
)

// LandingPage renders the catalogue overview served at "/".
func LandingPage(v Landing) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}

		ew.printf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		ew.printf(`<title>NASA Space Biology Catalogue</title></head><body>`)
		ew.printf(`<header><h1>NASA Space Biology Catalogue</h1>`)
		ew.printf(`<p>%s experiments catalogued</p></header>`, util.FormatNumber(len(v.Experiments)))

		order, counts := categoryCounts(v.Experiments)
		if len(order) > 0 {
			ew.printf(`<ul class="categories">`)
			for _, c := range order {
				ew.printf(`<li>%s: %d</li>`, text(c), counts[c])
			}
			ew.printf(`</ul>`)
		}

		ew.printf(`<table class="experiments"><thead><tr>`)
		ew.printf(`<th>ID</th><th>Title</th><th>Category</th><th>Organism</th><th>Mission</th><th>Duration</th><th>Success</th>`)
		ew.printf(`</tr></thead><tbody>`)
		for _, e := range v.Experiments {
			ew.printf(`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				text(e.Code), text(e.Title), text(e.Category), text(e.Organism),
				text(e.Mission), text(e.Duration), formatProbability(e.SuccessProbability))
		}
		ew.printf(`</tbody></table>`)

		if len(v.Datasets) > 0 {
			ew.printf(`<h2>Reference datasets</h2><ul class="datasets">`)
			for _, d := range v.Datasets {
				ew.printf(`<li>%s %s (%s, %s data points)</li>`,
					text(d.ID), text(d.Title), text(d.Status), util.FormatNumber(d.DataPoints))
			}
			ew.printf(`</ul>`)
		}

		ew.printf(`<footer>Generated %s. Live updates at <code>/ws</code>.</footer>`, util.FormatDateHuman(v.GeneratedAt))
		ew.printf(`</body></html>`)
		return ew.err
	})
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
