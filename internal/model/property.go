// Package model defines the canonical in-memory representation of a
// documented REST resource and its properties, plus the derived naming
// rules shared by the parser and the code generator.
package model

import "strings"

// PropertyType is the canonical type of a resource property.
type PropertyType int

const (
	// TypeString is the canonical string type (also used for GUIDs and dates).
	TypeString PropertyType = iota
	// TypeInt is the canonical integer type.
	TypeInt
	// TypeFloat is the canonical floating-point type.
	TypeFloat
	// TypeBool is the canonical boolean type.
	TypeBool
)

// String returns the canonical name of the type.
func (t PropertyType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	default:
		return "string"
	}
}

// Property is one documented field of a resource.
type Property struct {
	Name        string
	Type        PropertyType
	Description string
	IsRequired  bool
	IsNullable  bool
}

// NewProperty builds a Property, enforcing the requiredness invariant:
// a property is never both required and nullable, and a key field is
// always required and non-nullable regardless of the mandatory column.
func NewProperty(name string, typ PropertyType, description string, mandatory, isKey bool) Property {
	p := Property{
		Name:        name,
		Type:        typ,
		Description: description,
		IsRequired:  mandatory,
		IsNullable:  !mandatory,
	}
	if isKey {
		p.IsRequired = true
		p.IsNullable = false
	}
	return p
}

// FieldName returns the canonical field name for the property.
func (p Property) FieldName() string {
	return FieldNameFrom(p.Name)
}

// AccessorName returns the exported accessor name for the property.
// Boolean properties get a predicate-style name; everything else keeps
// the plain exported form.
func (p Property) AccessorName() string {
	name := exportedName(p.Name)
	if p.Type == TypeBool && !strings.HasPrefix(name, "Is") {
		return "Is" + name
	}
	return name
}
