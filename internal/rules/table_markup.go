package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// tableMarkup checks that data tables carry proper structural markup
// and that layout tables carry none of it.
type tableMarkup struct{}

func (tableMarkup) Metadata() Metadata {
	return Metadata{
		Slug:        "table_markup",
		Title:       "Valid table markup",
		Description: "Data tables must have a valid structure with marked headings and relationships between the cells. If layout tables are present, structural table markup must not be used for these.",
		Guideline: model.Guideline{
			Title:  "1.3.1 Info and Relationships",
			Anchor: "content-structure-separation-programmatic",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H39",
				Title:  "Using caption elements to associate data table captions with data tables",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H43",
				Title:  "Using id and headers attributes to associate data cells with header cells in data tables",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H51",
				Title:  "Using table markup to present tabular information",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H63",
				Title:  "Using the scope attribute to associate header cells and data cells in data tables",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H73",
				Title:  "Using the summary attribute of the table element to give an overview of data tables",
			},
		},
	}
}

// headerRowCount counts rows consisting exclusively of th cells.
// Counting stops at two, more than one such row marks a complex table.
func headerRowCount(table *dom.Node) int {
	count := 0
	for _, row := range table.Find("tr") {
		cells := row.Children(false)
		if len(cells) == 0 {
			continue
		}
		headersOnly := true
		for _, cell := range cells {
			if cell.TagName() != "th" {
				headersOnly = false
				break
			}
		}
		if headersOnly {
			count++
			if count > 1 {
				return count
			}
		}
	}
	return count
}

// checkHeadingless handles data tables without th cells: the heading
// kind has to be asked, and the answer decides which markup is missing.
func checkHeadingless(rep *Report, table *dom.Node, opts Options) {
	identifier := NodeIdentifier(table)
	questionSlug := "table_headings_" + identifier
	headings, answered := opts.Value(questionSlug)
	if !answered {
		rep.Request(model.RequestData{
			Slug:        questionSlug,
			Type:        "select",
			Label:       "Table headings",
			Description: fmt.Sprintf("Specify what kind of headings the data table in line %d uses.", table.LineNo()),
			Options: []model.Choice{
				{Value: "none", Label: "No headings"},
				{Value: "columns", Label: "Column headings"},
				{Value: "rows", Label: "Row headings"},
				{Value: "columnsrows", Label: "Both column and row headings"},
			},
			Default: "columns",
		})
		return
	}

	if headings == "columns" || headings == "columnsrows" {
		rep.Error("missing_column_heading_markup",
			fmt.Sprintf("The data table in line %d is missing valid markup for its column headings.", table.LineNo()))
	}
	if headings == "rows" || headings == "columnsrows" {
		if len(table.Find(`td[scope="row"]`)) == 0 {
			rep.Error("missing_row_heading_markup",
				fmt.Sprintf("The data table in line %d is missing valid markup for its row headings.", table.LineNo()))
		}
	}
}

func checkDataTable(rep *Report, table *dom.Node, opts Options) {
	if len(table.Find("th")) == 0 {
		checkHeadingless(rep, table, opts)
	} else {
		if table.FindFirst("thead") == nil && table.FindFirst("tr:first-child > th") != nil {
			rep.Error("missing_thead_tag",
				fmt.Sprintf("The data table in line %d should use thead to wrap its column headings.", table.LineNo()))
		}
		if table.FindFirst("th[headers],td[headers]") == nil && headerRowCount(table) > 1 {
			rep.Error("missing_headers_and_id_attributes_complex",
				fmt.Sprintf("The data table in line %d should use headers and id attributes to mark complex relationships between its cells.", table.LineNo()))
		}
	}

	// The parser synthesizes a tbody around bare rows; synthesized
	// elements have no source position.
	if tbody := table.FindFirst("tbody"); tbody == nil || tbody.LineNo() == 0 {
		rep.Error("missing_tbody_tag",
			fmt.Sprintf("The data table in line %d is missing a tbody element.", table.LineNo()))
	}

	if caption := table.FindFirst("caption"); caption != nil {
		summary, _ := table.GetAttribute("summary")
		if summary != "" && strings.TrimSpace(summary) == strings.TrimSpace(caption.Text()) {
			rep.Error("summary_equals_caption",
				fmt.Sprintf("The summary attribute of the data table in line %d has a similar value like its caption element.", table.LineNo()))
		}
	}
}

func checkLayoutTable(rep *Report, table *dom.Node) {
	summary, _ := table.GetAttribute("summary")
	if len(table.Find("caption,th,td[headers]")) > 0 || summary != "" {
		rep.Error("misuse_of_structural_markup_layout",
			fmt.Sprintf("The layout table in line %d uses structural markup which is only allowed for data tables.", table.LineNo()))
	}
}

func (tableMarkup) Run(_ context.Context, rep *Report, doc *dom.Document, opts Options) error {
	tables := doc.Find("table")

	if len(tables) == 0 {
		hasTableData, answered := opts.Value("has_table_data")
		switch {
		case !answered:
			rep.Request(model.RequestData{
				Slug:        "has_table_data",
				Type:        "select",
				Label:       "Tabular data available",
				Description: "Specify whether the page contains tabular data.",
				Options:     yesNoChoices(),
				Default:     "no",
			})
		case hasTableData == "yes":
			rep.Error("missing_table_markup_for_tabular_data",
				"The page contains tabular data that do not use proper table markup.")
		default:
			rep.Skip("There are no tables in the HTML code provided. Therefore this test was skipped.")
			rep.Finish("")
			return nil
		}
	}

	for _, table := range tables {
		isDataTable := false
		if layoutTableUsage, _ := opts.Global("layout_table_usage"); layoutTableUsage == "no" {
			isDataTable = true
		} else {
			identifier := NodeIdentifier(table)
			questionSlug := "table_type_" + identifier
			tableType, answered := opts.Value(questionSlug)
			if !answered {
				rep.Request(model.RequestData{
					Slug:        questionSlug,
					Type:        "select",
					Label:       "Table Type",
					Description: fmt.Sprintf("Does the table in line %d contain actual data or is it a layout table?", table.LineNo()),
					Options: []model.Choice{
						{Value: "data", Label: "Data Table"},
						{Value: "layout", Label: "Layout Table"},
					},
					Default: "data",
				})
				continue
			}
			isDataTable = tableType == "data"
		}

		if isDataTable {
			checkDataTable(rep, table, opts)
		} else {
			checkLayoutTable(rep, table)
		}
	}

	rep.Finish("All tables in the HTML code use valid table markup.")
	return nil
}
