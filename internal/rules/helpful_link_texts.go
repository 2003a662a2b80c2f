package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// helpfulLinkTexts checks that every link has a text, that equal link
// texts point to equal targets, that the text is not a generic phrase,
// and that links to non-HTML files mention the file type.
type helpfulLinkTexts struct{}

var nonWordRe = regexp.MustCompile(`[^ \w]+`)

var genericLinkTexts = map[string]bool{
	"continue reading": true,
	"read more":        true,
	"more":             true,
	"continue":         true,
}

// fileTypeTokens maps target file extensions to the words a link text
// may use to announce the file type. The matched extension itself is
// always accepted too.
var fileTypeTokens = []struct {
	extensions []string
	tokens     []string
}{
	{[]string{"jpg", "jpeg", "jpe", "gif", "png", "bmp", "tiff", "tif"}, []string{"image", "picture", "graphic"}},
	{[]string{"wmv", "avi", "divx", "flv", "mov", "mpeg", "mpg", "mpe", "ogv", "webm", "mkv"}, []string{"video", "motion picture", "film", "sequence"}},
	{[]string{"txt", "csv", "css", "js", "rtx", "rtf"}, []string{"text", "document"}},
	{[]string{"mp3", "m4a", "wav", "ogg", "wma"}, []string{"audio", "song", "track"}},
	{[]string{"zip", "rar", "tar", "gz", "gzip", "7z"}, []string{"archive"}},
	{[]string{"doc", "docx", "dotx", "dotm"}, []string{"document", "word", "office", "microsoft"}},
	{[]string{"xla", "xls", "xlt", "xlw", "xlsx", "xlsm", "xlsb", "xltx", "xltm", "xlam"}, []string{"spreadsheet", "excel", "office", "microsoft"}},
	{[]string{"pot", "pps", "ppt", "pptx", "pptm", "ppsx", "ppsm", "potx", "potm", "ppam"}, []string{"presentation", "slides", "powerpoint", "office", "microsoft"}},
	{[]string{"odt"}, []string{"document", "openoffice"}},
	{[]string{"ods"}, []string{"spreadsheet", "openoffice"}},
	{[]string{"odp"}, []string{"presentation", "slides", "openoffice"}},
	{[]string{"pages"}, []string{"document", "pages", "apple"}},
	{[]string{"numbers"}, []string{"spreadsheet", "numbers", "apple"}},
	{[]string{"key"}, []string{"presentation", "slides", "keynote", "apple"}},
}

// nonHTMLContentTokens returns the accepted file type words for a link
// target, or nil when the target is regular HTML content.
func nonHTMLContentTokens(href string) []string {
	if strings.HasPrefix(href, "mailto:") {
		return []string{"email", "mail"}
	}
	if strings.HasPrefix(href, "tel:") {
		return []string{"telephone", "phone", "call"}
	}

	ext := srcFileExtension(href)
	if ext == "" {
		return nil
	}
	for _, entry := range fileTypeTokens {
		for _, candidate := range entry.extensions {
			if ext == candidate {
				return append([]string{ext}, entry.tokens...)
			}
		}
	}
	return nil
}

// linkText collects the perceivable text of a link: text nodes, child
// element texts and, for text-less children such as images, their alt
// attributes.
func linkText(link *dom.Node) string {
	var text strings.Builder
	for _, child := range link.Children(true) {
		if child.IsTextNode() {
			text.WriteString(child.Text())
			continue
		}
		if content := child.Text(); content != "" {
			text.WriteString(content)
			continue
		}
		if alt, _ := child.GetAttribute("alt"); alt != "" {
			text.WriteString(alt)
		}
	}
	return text.String()
}

func (helpfulLinkTexts) Metadata() Metadata {
	return Metadata{
		Slug:        "helpful_link_texts",
		Title:       "Helpful Link Texts",
		Description: "The purpose of all links should be obvious from the link text or direct context of the link. When leading to non-HTML content, links should inform about the file type of the target.",
		Guideline: model.Guideline{
			Title:  "2.4.4 Link Purpose",
			Anchor: "navigation-mechanisms-refs",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H30",
				Title:  "Providing link text that describes the purpose of a link for anchor elements",
			},
		},
	}
}

func (helpfulLinkTexts) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	links := doc.Find("a")
	if len(links) == 0 {
		rep.Skip("There are no links in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	// Link texts seen so far, keyed by target.
	seen := make(map[string]string)

	for _, link := range links {
		text := linkText(link)
		if text == "" {
			rep.ErrorAt(link, "missing_link_text",
				"The following link is missing a link text:")
			continue
		}

		href, _ := link.GetAttribute("href")
		if href == "" {
			continue
		}

		duplicate := false
		for otherHref, otherText := range seen {
			if otherText == text && otherHref != href {
				duplicate = true
				break
			}
		}
		if duplicate {
			rep.ErrorAt(link, "duplicate_link_text",
				"The link text of the following link is already used for another link with a different target:")
			continue
		}
		seen[href] = text

		words := strings.TrimSpace(strings.ToLower(nonWordRe.ReplaceAllString(text, "")))
		if genericLinkTexts[words] {
			rep.ErrorAt(link, "non_descriptive_link_text",
				"The link text of the following link does not properly describe its target:")
			continue
		}

		tokens := nonHTMLContentTokens(href)
		if len(tokens) == 0 {
			continue
		}
		lower := strings.ToLower(text)
		mentioned := false
		for _, token := range tokens {
			if strings.Contains(lower, token) {
				mentioned = true
				break
			}
		}
		if !mentioned {
			rep.ErrorAt(link, "missing_non_html_content_link_text",
				"The link text of the following link does not properly describe the target file type although it is non-HTML content:")
		}
	}

	rep.Finish("All links in the HTML code have valid link texts provided.")
	return nil
}
