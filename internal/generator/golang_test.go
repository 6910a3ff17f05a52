package generator

import (
	"strings"
	"testing"

	"github.com/apiforge/modelgen/internal/model"
)

func accountsFixture() model.Resource {
	return model.Resource{
		Name:        "Accounts",
		Service:     "CRM",
		Endpoint:    "/api/v1/{division}/crm/Accounts",
		Description: "Customer accounts.",
		Properties: []model.Property{
			model.NewProperty("ID", model.TypeString, "Primary key", true, true),
			model.NewProperty("Name", model.TypeString, "Account name", true, false),
			model.NewProperty("Code", model.TypeString, "Account code", false, false),
			model.NewProperty("Blocked", model.TypeBool, "Blocked flag", true, false),
		},
	}
}

func TestGo_Emit_Golden(t *testing.T) {
	resource := model.Resource{
		Name:     "Me",
		Endpoint: "/api/v1/current/system/Me",
		Properties: []model.Property{
			model.NewProperty("ID", model.TypeString, "Primary key", true, true),
		},
	}

	want := `// Code generated by modelgen. DO NOT EDIT.
//
// Resource: Me (/api/v1/current/system/Me)

package system

import (
	"encoding/json"

	"github.com/apiforge/modelgen/pkg/coerce"
)

// Me is the generated model for the Me resource.
type Me struct {
	id string
}

// NewMe constructs a Me with every field set. Pass nil for absent
// nullable fields.
func NewMe(id string) *Me {
	return &Me{
		id: id,
	}
}

// MeFromMap builds a Me from an untyped map keyed by the documented
// property names. Required fields coerce with zero-value fallbacks;
// nullable fields pass raw values through or stay nil.
func MeFromMap(m map[string]any) *Me {
	return &Me{
		id: coerce.String(m["ID"]),
	}
}

// ToMap returns the untyped map form keyed by the documented property
// names.
func (r *Me) ToMap() map[string]any {
	m := make(map[string]any, 1)
	m["ID"] = r.id
	return m
}

// MarshalJSON implements json.Marshaler by delegating to ToMap.
func (r *Me) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// ID returns the ID property.
func (r *Me) ID() string {
	return r.id
}
`

	got, err := NewGo().Emit(resource)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if got != want {
		t.Errorf("Emit() output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGo_Emit_Deterministic(t *testing.T) {
	g := NewGo()
	resource := accountsFixture()

	first, err := g.Emit(resource)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	second, err := g.Emit(resource)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	if first != second {
		t.Error("Emit() is not byte-for-byte deterministic")
	}
}

func TestGo_Emit_Structure(t *testing.T) {
	got, err := NewGo().Emit(accountsFixture())
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	wantFragments := []string{
		"package crm",
		"type Accounts struct {",
		// Nullable properties become pointers; required ones do not.
		"code    *string",
		"name    string",
		// Coercion by original documented name, not canonical field name.
		`coerce.String(m["Name"])`,
		`coerce.NullableString(m["Code"])`,
		`coerce.Bool(m["Blocked"])`,
		// ToMap emits the original documented names.
		`m["ID"] = r.id`,
		`m["Code"] = r.code`,
		// Predicate accessor for booleans, getter style otherwise.
		"func (r *Accounts) IsBlocked() bool {",
		"func (r *Accounts) Code() *string {",
		"func (r *Accounts) ID() string {",
		"func (r *Accounts) MarshalJSON() ([]byte, error) {",
	}

	for _, fragment := range wantFragments {
		if !strings.Contains(got, fragment) {
			t.Errorf("Emit() output missing %q", fragment)
		}
	}
}

func TestGo_Emit_NoUsableName(t *testing.T) {
	_, err := NewGo().Emit(model.Resource{Name: "!!!"})
	if err == nil {
		t.Error("Emit() should fail for a resource with no usable class name")
	}
}

func TestGo_FileName(t *testing.T) {
	tests := []struct {
		name     string
		resource model.Resource
		want     string
	}{
		{
			name:     "grouped by service",
			resource: model.Resource{Name: "Sales Invoice Lines", Service: "SalesInvoice"},
			want:     "salesinvoice/sales_invoice_lines.go",
		},
		{
			name:     "grouped by endpoint segment",
			resource: model.Resource{Name: "Accounts", Endpoint: "/api/v1/{division}/crm/Accounts"},
			want:     "crm/accounts.go",
		},
		{
			name:     "default group",
			resource: model.Resource{Name: "Accounts"},
			want:     "general/accounts.go",
		},
		{
			name:     "acronym run stays readable",
			resource: model.Resource{Name: "GLAccounts", Service: "financial"},
			want:     "financial/gl_accounts.go",
		},
	}

	g := NewGo()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.FileName(tt.resource); got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}
