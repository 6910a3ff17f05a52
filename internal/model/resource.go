package model

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultGroup is the grouping key used when neither an explicit service
// nor a recognizable endpoint segment is available.
const DefaultGroup = "general"

// endpointGroupPattern extracts the service segment out of a documented
// endpoint, e.g. /api/v1/{division}/crm/Accounts -> crm.
var endpointGroupPattern = regexp.MustCompile(`(?i)/api/v1/(?:\{division\}|current)/([A-Za-z0-9]+)/`)

// Resource is one documented API entity. Values are immutable after
// construction; WithDetail produces a new value instead of mutating.
type Resource struct {
	Name        string
	Endpoint    string
	Description string
	Properties  []Property

	// Routing metadata from the index page.
	Service          string
	ResourceURI      string
	SupportedMethods string
	HasWebhook       bool
	Scope            string
	DetailURL        string
}

// ClassName derives the generated class name: all non-alphanumeric
// characters are stripped and each resulting word is title-cased.
func (r Resource) ClassName() string {
	words := strings.FieldsFunc(r.Name, func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(upperFirst(w))
	}
	return b.String()
}

// GroupKey derives the namespace/grouping key for the resource: the
// explicit service wins, then the endpoint's service path segment, then
// DefaultGroup.
func (r Resource) GroupKey() string {
	if s := sanitizeGroup(r.Service); s != "" {
		return s
	}
	if m := endpointGroupPattern.FindStringSubmatch(r.Endpoint); m != nil {
		return strings.ToLower(m[1])
	}
	return DefaultGroup
}

func sanitizeGroup(s string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// WithDetail returns a new Resource carrying the index-page routing
// metadata of r while taking name, endpoint, description and properties
// from the higher-fidelity detail page, falling back to the index values
// wherever the detail parse yielded nothing.
func (r Resource) WithDetail(detail Resource) Resource {
	merged := r

	if detail.Name != "" && detail.Name != UnknownResourceName {
		merged.Name = detail.Name
	}
	if detail.Endpoint != "" {
		merged.Endpoint = detail.Endpoint
	}
	if detail.Description != "" {
		merged.Description = detail.Description
	}
	if len(detail.Properties) > 0 {
		merged.Properties = detail.Properties
	}

	return merged
}

// UnknownResourceName is the detail-page resource name of last resort.
const UnknownResourceName = "UnknownResource"
