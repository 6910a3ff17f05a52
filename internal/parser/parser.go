// Package parser extracts resource metadata from the documentation site's
// HTML: the index page's resource table and the per-resource property
// tables on detail pages.
//
// The markup varies across pages, so header and row discovery run through
// ordered fallback strategies, and every extraction step degrades to an
// empty value instead of failing. Malformed markup is expected input here,
// not an error condition.
package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/apiforge/modelgen/internal/logger"
)

// Parser parses index and detail pages of the documentation site.
type Parser struct {
	docsBase string
	log      *logger.Logger
}

// New creates a parser. docsBase is the host prefix used to resolve
// relative detail-page hrefs. A nil logger falls back to a no-op logger.
func New(docsBase string, log *logger.Logger) *Parser {
	if log == nil {
		log = logger.Nop()
	}
	return &Parser{
		docsBase: strings.TrimSuffix(docsBase, "/") + "/",
		log:      log.WithComponent("parser"),
	}
}

// headerStrategy extracts the header cells of a table, returning nil when
// the strategy does not apply. Strategies are tried in order because the
// source renders header rows inconsistently across pages.
type headerStrategy func(table *goquery.Selection) *goquery.Selection

var headerStrategies = []headerStrategy{
	// Dedicated heading cells.
	func(table *goquery.Selection) *goquery.Selection {
		if th := table.Find("th"); th.Length() > 0 {
			return th
		}
		return nil
	},
	// A row flagged as header via its class.
	func(table *goquery.Selection) *goquery.Selection {
		if row := table.Find("tr.header").First(); row.Length() > 0 {
			return row.Find("td, th")
		}
		return nil
	},
	// First row treated as header.
	func(table *goquery.Selection) *goquery.Selection {
		if row := table.Find("tr").First(); row.Length() > 0 {
			return row.Find("td, th")
		}
		return nil
	},
}

// headerCells returns the header cells of a table, or nil when the table
// has no rows at all.
func headerCells(table *goquery.Selection) *goquery.Selection {
	for _, strategy := range headerStrategies {
		if cells := strategy(table); cells != nil && cells.Length() > 0 {
			return cells
		}
	}
	return nil
}

// headerText returns the concatenated, lower-cased header text of a table.
func headerText(table *goquery.Selection) string {
	cells := headerCells(table)
	if cells == nil {
		return ""
	}
	var b strings.Builder
	cells.Each(func(_ int, cell *goquery.Selection) {
		b.WriteString(strings.ToLower(cell.Text()))
		b.WriteString(" ")
	})
	return b.String()
}

// rowStrategy extracts the data rows of a table, returning nil when the
// strategy does not apply.
type rowStrategy func(table *goquery.Selection) *goquery.Selection

var rowStrategies = []rowStrategy{
	// Rows flagged with the filter marker class.
	func(table *goquery.Selection) *goquery.Selection {
		if rows := table.Find("tr.filter"); rows.Length() > 0 {
			return rows
		}
		return nil
	},
	// Generic body rows.
	func(table *goquery.Selection) *goquery.Selection {
		if rows := table.Find("tbody tr"); rows.Length() > 0 {
			return rows
		}
		return nil
	},
	// Any row that is not flagged as header.
	func(table *goquery.Selection) *goquery.Selection {
		if rows := table.Find("tr").Not(".header"); rows.Length() > 0 {
			return rows
		}
		return nil
	},
}

// dataRows returns the data rows of a table, or nil when none exist.
func dataRows(table *goquery.Selection) *goquery.Selection {
	for _, strategy := range rowStrategies {
		if rows := strategy(table); rows != nil && rows.Length() > 0 {
			return rows
		}
	}
	return nil
}

// findTable returns the first table in the document whose header text
// satisfies the predicate.
func findTable(doc *goquery.Document, match func(header string) bool) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if match(headerText(table)) {
			found = table
			return false
		}
		return true
	})
	return found
}

// cellText returns the trimmed text of the nth cell in a selection.
func cellText(cells *goquery.Selection, n int) string {
	return strings.TrimSpace(cells.Eq(n).Text())
}
