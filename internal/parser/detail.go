package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/apiforge/modelgen/internal/model"
)

const (
	// apiPathPrefix identifies endpoint snippets inside code blocks.
	apiPathPrefix = "/api/v1/"
	// divisionToken is the placeholder the documentation uses for the
	// caller's administration in endpoint snippets.
	divisionToken = "{division}"
	// keyMarkerTitle is the title attribute of the marker image that
	// flags a property as part of the resource's primary identity.
	keyMarkerTitle = "Key"
)

// ParseDetail extracts the resource description from a detail page: the
// resource name, its endpoint, the lead description and the property
// table. Every lookup degrades to an empty value; the returned resource
// is merged into the index resource by the orchestrator.
func (p *Parser) ParseDetail(html string) model.Resource {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		p.log.WithError(err).Warn("detail page is not parseable HTML")
		return model.Resource{Name: model.UnknownResourceName}
	}

	resource := model.Resource{
		Name:        detailName(doc),
		Endpoint:    detailEndpoint(doc),
		Description: detailDescription(doc),
	}

	table := findTable(doc, isDetailHeader)
	if table == nil {
		p.log.WithField("resource", resource.Name).Warn("no property table found on detail page")
		return resource
	}

	rows := table.Find("tr")
	rows.Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			// Row 0 is the header.
			return
		}
		if prop, ok := decodePropertyRow(row); ok {
			resource.Properties = append(resource.Properties, prop)
		}
	})

	p.log.Debugf("detail page for %s yielded %d properties", resource.Name, len(resource.Properties))
	return resource
}

// isDetailHeader matches the property table: its header must mention name
// and type, plus either mandatory or description.
func isDetailHeader(header string) bool {
	if !strings.Contains(header, "name") || !strings.Contains(header, "type") {
		return false
	}
	return strings.Contains(header, "mandatory") || strings.Contains(header, "description")
}

// decodePropertyRow decodes one property row. Fixed layout:
// [checkbox, name, mandatory, valuePost, valuePut, type, description].
func decodePropertyRow(row *goquery.Selection) (model.Property, bool) {
	cells := row.Find("td, th")
	if cells.Length() < 7 {
		return model.Property{}, false
	}

	nameCell := cells.Eq(1)
	name := strings.TrimSpace(nameCell.Text())
	if name == "" || strings.Contains(name, "|") {
		// Empty and pipe-bearing names come from malformed separator rows.
		return model.Property{}, false
	}

	mandatory := strings.EqualFold(cellText(cells, 2), "true")
	isKey := nameCell.Find("img").FilterFunction(func(_ int, img *goquery.Selection) bool {
		title, _ := img.Attr("title")
		return title == keyMarkerTitle
	}).Length() > 0

	return model.NewProperty(
		name,
		model.NormalizeType(cellText(cells, 5)),
		cellText(cells, 6),
		mandatory,
		isKey,
	), true
}

// detailName extracts the resource name: the first h1, else the page
// title with its suffix stripped, else a fixed placeholder.
func detailName(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if idx := strings.Index(title, " - "); idx >= 0 {
		title = strings.TrimSpace(title[:idx])
	}
	if title != "" {
		return title
	}
	return model.UnknownResourceName
}

// detailEndpoint extracts the endpoint from the first code or pre block
// that mentions both the API path prefix and the division placeholder.
func detailEndpoint(doc *goquery.Document) string {
	endpoint := ""
	doc.Find("code, pre").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		text := strings.TrimSpace(block.Text())
		if strings.Contains(text, apiPathPrefix) && strings.Contains(text, divisionToken) {
			endpoint = text
			return false
		}
		return true
	})
	return endpoint
}

// detailDescription extracts the first paragraph sibling following the
// first h1, skipping any non-paragraph siblings in between.
func detailDescription(doc *goquery.Document) string {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(h1.NextAllFiltered("p").First().Text())
}
