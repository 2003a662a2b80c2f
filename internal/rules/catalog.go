package rules

// Catalog returns the full rule set in evaluation order. The order is
// hand-curated, roughly from perceivable content concerns towards
// technical markup validity, and determines the sequence in which an
// audit steps through the rules.
//
// The validator may be nil; the markup validity rule then degrades to
// its doctype check.
func Catalog(validator HTMLValidator) []Rule {
	return []Rule{
		graphicalLinks{},
		graphicalButtons{},
		graphicalImageMaps{},
		imagesAlternativeTexts{},
		objectsAlternativeTexts{},
		captchasAlternativeTexts{},
		captchaAlternatives{},
		videoAlternatives{},
		structuralHeadings{},
		structuralLists{},
		structuralQuotes{},
		contentAreasHeadings{},
		contentAreasFrames{},
		organizedContent{},
		organizedSelectLists{},
		formControlLabels{},
		helpfulLinkTexts{},
		typographicalCharacters{},
		keyboardTabindex{},
		multipleWays{},
		timingAdjustable{},
		uiComponentsRoles{},
		dynamicContent{},
		tableMarkup{},
		deprecatedUsage{},
		validHTML{validator: validator},
		documentLanguage{},
	}
}

// IndexOf returns the position of the rule with the given slug in the
// catalog, or -1 when no such rule exists.
func IndexOf(catalog []Rule, slug string) int {
	for i, r := range catalog {
		if r.Metadata().Slug == slug {
			return i
		}
	}
	return -1
}
