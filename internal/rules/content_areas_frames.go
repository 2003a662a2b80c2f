package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

var framePositionRe = regexp.MustCompile(`(?i)(top|right|bottom|left|outer|inner)`)

// contentAreasFrames checks that frames and iframes carry descriptive
// title attributes. Whether an untitled frame is a pure layout frame
// cannot be derived from markup, so the rule asks per frame source.
type contentAreasFrames struct{}

func (contentAreasFrames) Metadata() Metadata {
	return Metadata{
		Slug:        "structured_content_areas_frames",
		Title:       "Structured Content Areas: Frames",
		Description: "Frames must have descriptive title attributes.",
		Guideline: model.Guideline{
			Title:  "2.4.1 Bypass Blocks",
			Anchor: "navigation-mechanisms-skip",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H64",
				Title:  "Using the title attribute of the frame and iframe elements",
			},
		},
	}
}

func (contentAreasFrames) Run(_ context.Context, rep *Report, doc *dom.Document, opts Options) error {
	frames := doc.Find("frame,iframe")
	if len(frames) == 0 {
		rep.Skip("There are no frames in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	requested := make(map[string]bool)

	for _, frame := range frames {
		title, hasTitle := frame.GetAttribute("title")
		src, hasSrc := frame.GetAttribute("src")

		switch {
		case !hasTitle:
			rep.ErrorAt(frame, "missing_title_attribute",
				"The following frame is missing a title attribute:")

		case title == "":
			if !hasSrc {
				break
			}
			sanitized := SanitizeSrc(src)
			frameType, answered := opts.Value("frame_type_" + sanitized)
			if !answered {
				if !requested[sanitized] {
					requested[sanitized] = true
					rep.Request(model.RequestData{
						Slug:        "frame_type_" + sanitized,
						Type:        "select",
						Label:       "Frame Type",
						Description: fmt.Sprintf("Choose whether the frame %s is purely a layout frame or actually provides content.", rep.LinkSrc(src)),
						Options: []model.Choice{
							{Value: "content", Label: "Content frame"},
							{Value: "decorative", Label: "Layout frame"},
						},
						Default: "content",
					})
				}
				break
			}
			if frameType == "content" {
				rep.ErrorAt(frame, "empty_title_attribute_content",
					"The following frame has an empty title attribute although it provides actual content: An empty title attribute is only acceptable for layout frames.")
			}

		default:
			if !hasSrc {
				break
			}
			if strings.Contains(src, title) {
				rep.ErrorAt(frame, "title_attribute_part_of_src",
					"The following frame seems to have an auto-generated title attribute: The title should describe the frame in clear human language.")
			} else if framePositionRe.MatchString(src) {
				rep.ErrorAt(frame, "title_attribute_contains_position",
					"The following frame uses the title attribute to describe the position of the frame:")
			}
		}
	}

	rep.Finish("All frames in the HTML code have valid title attributes provided.")
	return nil
}
