package rules

import (
	"context"
	"strconv"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// timingAdjustable checks for meta refresh redirects with a nonzero
// delay, which take the page away from the user without their control.
type timingAdjustable struct{}

func (timingAdjustable) Metadata() Metadata {
	return Metadata{
		Slug:        "timing_adjustable",
		Title:       "Timing Adjustable",
		Description: "Contents must be shown without time limit, or at least there have to be controls to disable it or increase the duration. Links should be opened without delay.",
		Guideline: model.Guideline{
			Title:  "2.2.1 Timing Adjustable",
			Anchor: "time-limits-required-behaviors",
		},
	}
}

// refreshDelay extracts the delay seconds from a refresh content value
// such as "5; url=https://example.com/".
func refreshDelay(content string) int {
	digits := content
	if end := strings.IndexFunc(content, func(r rune) bool { return r < '0' || r > '9' }); end >= 0 {
		digits = content[:end]
	}
	delay, _ := strconv.Atoi(digits)
	return delay
}

func (timingAdjustable) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	meta := doc.FindFirst(`meta[http-equiv="refresh"]`)
	if meta != nil {
		if content, ok := meta.GetAttribute("content"); ok && refreshDelay(content) != 0 {
			rep.ErrorAt(meta, "timed_meta_refresh",
				"A meta tag with an invalid value for http-equiv=\"refresh\" was found:")
		}
	}

	rep.Finish("No problems were found in the HTML code.")
	return nil
}
