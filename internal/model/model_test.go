package model

import (
	"testing"
)

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want PropertyType
	}{
		{name: "guid", raw: "Guid", want: TypeString},
		{name: "uuid", raw: "UUID", want: TypeString},
		{name: "int16", raw: "Int16", want: TypeInt},
		{name: "int32", raw: "Int32", want: TypeInt},
		{name: "byte", raw: "Byte", want: TypeInt},
		{name: "double", raw: "Double", want: TypeFloat},
		{name: "decimal", raw: "decimal", want: TypeFloat},
		{name: "boolean", raw: "Boolean", want: TypeBool},
		{name: "datetime", raw: "DateTime", want: TypeString},
		{name: "whitespace", raw: "  String  ", want: TypeString},
		{name: "unknown defaults to string", raw: "Edm.Binary", want: TypeString},
		{name: "empty defaults to string", raw: "", want: TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeType(tt.raw); got != tt.want {
				t.Errorf("NormalizeType(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeType_Idempotent(t *testing.T) {
	// Normalizing the canonical name of any canonical type must yield the
	// same type again.
	for _, typ := range []PropertyType{TypeString, TypeInt, TypeFloat, TypeBool} {
		if got := NormalizeType(typ.String()); got != typ {
			t.Errorf("NormalizeType(%q) = %v, want %v", typ.String(), got, typ)
		}
	}
}

func TestFieldNameFrom(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "acronym rule wins", raw: "ID", want: "id"},
		{name: "acronym lower", raw: "url", want: "url"},
		{name: "acronym mixed case", raw: "Json", want: "json"},
		{name: "plain name", raw: "Code", want: "code"},
		{name: "only first char lowered", raw: "IsActive", want: "isActive"},
		{name: "underscore split", raw: "Account_Code", want: "accountCode"},
		{name: "space split", raw: "main contact", want: "mainContact"},
		{name: "hyphen split", raw: "billing-address", want: "billingAddress"},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FieldNameFrom(tt.raw); got != tt.want {
				t.Errorf("FieldNameFrom(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNewProperty_KeyOverridesMandatory(t *testing.T) {
	// A detected key marker forces required/non-nullable even when the
	// mandatory column says false.
	p := NewProperty("ID", TypeString, "Primary key", false, true)
	if !p.IsRequired || p.IsNullable {
		t.Errorf("key property = {required:%v nullable:%v}, want {true false}",
			p.IsRequired, p.IsNullable)
	}
}

func TestNewProperty_NeverRequiredAndNullable(t *testing.T) {
	for _, mandatory := range []bool{true, false} {
		for _, key := range []bool{true, false} {
			p := NewProperty("Name", TypeString, "", mandatory, key)
			if p.IsRequired && p.IsNullable {
				t.Errorf("mandatory=%v key=%v: property is both required and nullable", mandatory, key)
			}
		}
	}
}

func TestProperty_AccessorName(t *testing.T) {
	tests := []struct {
		name string
		prop Property
		want string
	}{
		{name: "getter style", prop: Property{Name: "Code", Type: TypeString}, want: "Code"},
		{name: "acronym accessor", prop: Property{Name: "ID", Type: TypeString}, want: "ID"},
		{name: "bool gets predicate prefix", prop: Property{Name: "Blocked", Type: TypeBool}, want: "IsBlocked"},
		{name: "bool keeps existing prefix", prop: Property{Name: "IsActive", Type: TypeBool}, want: "IsActive"},
		{name: "multi word", prop: Property{Name: "main contact", Type: TypeString}, want: "MainContact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prop.AccessorName(); got != tt.want {
				t.Errorf("AccessorName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResource_ClassName(t *testing.T) {
	tests := []struct {
		name     string
		resource Resource
		want     string
	}{
		{name: "plain", resource: Resource{Name: "Accounts"}, want: "Accounts"},
		{name: "spaces stripped", resource: Resource{Name: "Sales Invoice Lines"}, want: "SalesInvoiceLines"},
		{name: "punctuation stripped", resource: Resource{Name: "G/L Accounts"}, want: "GLAccounts"},
		{name: "digits kept", resource: Resource{Name: "Documents10"}, want: "Documents10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resource.ClassName(); got != tt.want {
				t.Errorf("ClassName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResource_GroupKey(t *testing.T) {
	tests := []struct {
		name     string
		resource Resource
		want     string
	}{
		{
			name:     "explicit service wins",
			resource: Resource{Service: "CRM", Endpoint: "/api/v1/{division}/financial/Accounts"},
			want:     "crm",
		},
		{
			name:     "endpoint segment",
			resource: Resource{Endpoint: "/api/v1/{division}/crm/Accounts"},
			want:     "crm",
		},
		{
			name:     "current division variant",
			resource: Resource{Endpoint: "/api/v1/current/system/Me"},
			want:     "system",
		},
		{
			name:     "default group",
			resource: Resource{Endpoint: "/something/else"},
			want:     DefaultGroup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resource.GroupKey(); got != tt.want {
				t.Errorf("GroupKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResource_WithDetail(t *testing.T) {
	base := Resource{
		Name:             "Accounts",
		Service:          "CRM",
		ResourceURI:      "/api/v1/{division}/crm/Accounts",
		SupportedMethods: "GET POST",
		HasWebhook:       true,
		Scope:            "Crm accounts",
		DetailURL:        "https://docs.example.com/accounts",
		Description:      "from index",
	}

	detail := Resource{
		Name:        "Accounts",
		Endpoint:    "/api/v1/{division}/crm/Accounts",
		Description: "from detail page",
		Properties:  []Property{NewProperty("ID", TypeString, "", true, true)},
	}

	merged := base.WithDetail(detail)

	if merged.Service != "CRM" || merged.DetailURL != base.DetailURL || !merged.HasWebhook {
		t.Error("WithDetail() dropped index routing metadata")
	}
	if merged.Description != "from detail page" {
		t.Errorf("Description = %q, want detail-page value", merged.Description)
	}
	if len(merged.Properties) != 1 {
		t.Fatalf("len(Properties) = %d, want 1", len(merged.Properties))
	}

	// Base must stay untouched.
	if len(base.Properties) != 0 || base.Description != "from index" {
		t.Error("WithDetail() mutated the base resource")
	}
}

func TestResource_WithDetail_FallsBackOnEmptyDetail(t *testing.T) {
	base := Resource{Name: "Accounts", Description: "index description"}

	merged := base.WithDetail(Resource{Name: UnknownResourceName})

	if merged.Name != "Accounts" {
		t.Errorf("Name = %q, want index fallback", merged.Name)
	}
	if merged.Description != "index description" {
		t.Errorf("Description = %q, want index fallback", merged.Description)
	}
}
