package rules

import (
	"context"
	"strings"

	"golang.org/x/text/language"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// documentLanguage checks that the html element declares the document
// language, via lang or, for XHTML documents, xml:lang.
type documentLanguage struct{}

func (documentLanguage) Metadata() Metadata {
	return Metadata{
		Slug:        "document_language",
		Title:       "Document Language",
		Description: "The main language of the document must be provided as attribute in the html tag.",
		Guideline: model.Guideline{
			Title:  "3.1.1 Language of Page",
			Anchor: "meaning-doc-lang-id",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H57",
				Title:  "Using language attributes on the html element",
			},
		},
	}
}

// isLangValid reports whether the value is a well-formed BCP 47 tag.
func isLangValid(lang string) bool {
	tag, err := language.Parse(lang)
	return err == nil && tag != language.Und
}

func (documentLanguage) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	root := doc.FindFirst("html")
	if root == nil {
		rep.Error("missing_lang_attribute", "The html element is missing the lang attribute.")
		rep.Finish("")
		return nil
	}

	attribute := "lang"
	if strings.Contains(doc.DocumentType(), "xhtml") {
		attribute = "xml:lang"
	}

	lang, _ := root.GetAttribute(attribute)
	switch {
	case lang == "":
		rep.Error("missing_"+strings.ReplaceAll(attribute, ":", "_")+"_attribute",
			"The html element is missing the "+attribute+" attribute.")
	case !isLangValid(lang):
		rep.Error("invalid_"+strings.ReplaceAll(attribute, ":", "_")+"_attribute",
			"The html element has an invalid "+attribute+" attribute.")
	}

	rep.Finish("The document language is properly provided through the " + attribute + " attribute of the html element.")
	return nil
}
