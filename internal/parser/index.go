package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/apiforge/modelgen/internal/model"
)

// indexHeaderLabels are the substrings that must all appear in a table's
// lower-cased header text for it to be selected as the resource index
// table. Containment is order-independent because header markup varies.
var indexHeaderLabels = []string{
	"service",
	"endpoint",
	"resource uri",
	"supported methods",
	"webhook",
	"scope",
}

// noWebhookMarker is the CSS class token on the webhook cell that marks a
// resource without webhook support.
const noWebhookMarker = "NoWebhook"

// ParseIndex extracts the resource list from the index page. Resources
// come back with empty property lists; properties live on the detail
// pages. Malformed rows contribute nothing; a page with no matching table
// yields an empty slice.
func ParseIndex(html string, docsBase string) []model.Resource {
	return New(docsBase, nil).ParseIndex(html)
}

// ParseIndex extracts the resource list from the index page.
func (p *Parser) ParseIndex(html string) []model.Resource {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		p.log.WithError(err).Warn("index page is not parseable HTML")
		return nil
	}

	table := findTable(doc, isIndexHeader)
	if table == nil {
		p.log.Warn("no table matched the index header labels")
		return nil
	}

	resources := make([]model.Resource, 0)
	rows := dataRows(table)
	if rows == nil {
		return resources
	}

	rows.Each(func(_ int, row *goquery.Selection) {
		if resource, ok := p.decodeIndexRow(row); ok {
			resources = append(resources, resource)
		}
	})

	p.log.Infof("index page yielded %d resources", len(resources))
	return resources
}

func isIndexHeader(header string) bool {
	for _, label := range indexHeaderLabels {
		if !strings.Contains(header, label) {
			return false
		}
	}
	return true
}

// decodeIndexRow decodes one data row of the index table. Fixed layout:
// [service, endpoint, resource uri, supported methods, webhook, scope].
func (p *Parser) decodeIndexRow(row *goquery.Selection) (model.Resource, bool) {
	cells := row.Find("td, th")
	if cells.Length() < 6 {
		return model.Resource{}, false
	}

	service := cellText(cells, 0)

	endpointCell := cells.Eq(1)
	name := strings.TrimSpace(endpointCell.Text())
	detailURL := ""
	if link := endpointCell.Find("a").First(); link.Length() > 0 {
		if text := strings.TrimSpace(link.Text()); text != "" {
			name = text
		}
		if href, ok := link.Attr("href"); ok {
			detailURL = p.resolveDocsURL(href)
		}
	}

	resourceURI := cellText(cells, 2)

	if !validIndexField(service) || !validIndexField(name) || !validIndexField(resourceURI) {
		return model.Resource{}, false
	}

	return model.Resource{
		Name:             name,
		Endpoint:         resourceURI,
		Service:          service,
		ResourceURI:      resourceURI,
		SupportedMethods: cellText(cells, 3),
		HasWebhook:       decodeWebhookCell(cells.Eq(4)),
		Scope:            cellText(cells, 5),
		DetailURL:        detailURL,
	}, true
}

// validIndexField rejects empty values and values that read like a header
// label, which guards against a second embedded header row being misread
// as data.
func validIndexField(value string) bool {
	if value == "" {
		return false
	}
	lower := strings.ToLower(value)
	for _, label := range indexHeaderLabels {
		if strings.Contains(lower, label) {
			return false
		}
	}
	return true
}

// decodeWebhookCell derives the webhook flag from the cell's CSS class:
// a NoWebhook marker means false, any other non-empty class means true,
// and no class at all means false.
func decodeWebhookCell(cell *goquery.Selection) bool {
	class, _ := cell.Attr("class")
	class = strings.TrimSpace(class)
	if class == "" {
		return false
	}
	return !strings.Contains(class, noWebhookMarker)
}

// resolveDocsURL resolves a detail-page href: absolute URLs pass through
// unchanged, relative ones resolve against the documentation host prefix.
func (p *Parser) resolveDocsURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return p.docsBase + strings.TrimPrefix(href, "/")
}
