// Package catalog turns parsed JSON product catalogs into spreadsheet rows.
//
// A catalog document is either a single product object or an array of
// them. Polymorphic fields are resolved once into the types below, and the
// versioned Rules turn each Product into an OutputRow.
package catalog

import (
	"fmt"

	"github.com/tidwall/gjson"
)

type DescriptionsKind int

const (
	DescriptionsAbsent DescriptionsKind = iota
	DescriptionsSingle
	DescriptionsMany
)

// Description is one entry of a product's descriptions field
type Description struct {
	Value string
}

// Descriptions is the normalized descriptions field. Items holds only the
// object entries; Truthy records whether the raw field was non-empty.
type Descriptions struct {
	Kind   DescriptionsKind
	Items  []Description
	Truthy bool
}

type OptionalsKind int

const (
	OptionalsNone OptionalsKind = iota
	OptionalsFlags
	OptionalsGroups
)

// Flag is a recognized key of the flags form of optionals
type Flag struct {
	Key    string
	Repr   string
	Truthy bool
}

type OptionItem struct {
	Name string
}

type OptionGroup struct {
	Name    string
	HasName bool
	Items   []OptionItem
}

// Optionals is either a flags mapping or a sequence of option groups
type Optionals struct {
	Kind   OptionalsKind
	Flags  []Flag
	Groups []OptionGroup
}

// Product is one catalog record with every field already resolved
type Product struct {
	Name              string
	HasName           bool
	Descriptions      Descriptions
	Optionals         Optionals
	InternalReference string
}

// Recognized keys of the flags form, in emission order
var flagKeys = []string{"budgetPage", "productPage"}

// Parse reads a catalog document. Records that are not objects still yield
// a Product so that every input record maps to exactly one row.
func Parse(data []byte) ([]Product, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse catalog: invalid JSON")
	}

	root := gjson.ParseBytes(data)
	switch {
	case root.IsArray():
		records := root.Array()
		products := make([]Product, 0, len(records))
		for _, record := range records {
			products = append(products, NewProduct(record))
		}
		return products, nil
	case root.IsObject():
		return []Product{NewProduct(root)}, nil
	default:
		return nil, fmt.Errorf("failed to parse catalog: expected an object or an array of objects, got %s", root.Type)
	}
}

// NewProduct resolves a single JSON record
func NewProduct(record gjson.Result) Product {
	if !record.IsObject() {
		return Product{InternalReference: ReferencePlaceholder}
	}

	product := Product{
		Descriptions:      parseDescriptions(record.Get("descriptions")),
		Optionals:         parseOptionals(record.Get("optionals")),
		InternalReference: ResolveReference(record),
	}

	name := record.Get("name")
	if present(name) {
		product.Name = name.String()
		product.HasName = true
	}

	return product
}

func parseDescriptions(field gjson.Result) Descriptions {
	descriptions := Descriptions{Truthy: truthy(field)}

	var entries []gjson.Result
	switch {
	case field.IsArray():
		descriptions.Kind = DescriptionsMany
		entries = field.Array()
	case field.IsObject():
		descriptions.Kind = DescriptionsSingle
		entries = []gjson.Result{field}
	default:
		return descriptions
	}

	for _, entry := range entries {
		if !entry.IsObject() {
			continue
		}
		value := entry.Get("value")
		var text string
		if present(value) {
			text = value.String()
		}
		descriptions.Items = append(descriptions.Items, Description{Value: text})
	}

	return descriptions
}

func parseOptionals(field gjson.Result) Optionals {
	switch {
	case field.IsObject():
		optionals := Optionals{Kind: OptionalsFlags}
		for _, key := range flagKeys {
			value := field.Get(key)
			if !value.Exists() {
				continue
			}
			optionals.Flags = append(optionals.Flags, Flag{
				Key:    key,
				Repr:   repr(value),
				Truthy: truthy(value),
			})
		}
		return optionals

	case field.IsArray():
		optionals := Optionals{Kind: OptionalsGroups}
		for _, group := range field.Array() {
			if !group.IsObject() {
				continue
			}
			parsed := OptionGroup{}
			if name := group.Get("name"); present(name) {
				parsed.Name = name.String()
				parsed.HasName = true
			}
			for _, item := range group.Get("optionals").Array() {
				if !item.IsObject() {
					continue
				}
				name := item.Get("name")
				if !present(name) {
					continue
				}
				parsed.Items = append(parsed.Items, OptionItem{Name: name.String()})
			}
			optionals.Groups = append(optionals.Groups, parsed)
		}
		return optionals
	}

	return Optionals{Kind: OptionalsNone}
}

// present reports whether a key exists with a non-null value
func present(value gjson.Result) bool {
	return value.Exists() && value.Type != gjson.Null
}

// truthy mirrors the emptiness test used to pick placeholder text:
// null, false, 0, "" and empty containers are all empty
func truthy(value gjson.Result) bool {
	switch value.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return value.Float() != 0
	case gjson.String:
		return value.Str != ""
	case gjson.JSON:
		found := false
		value.ForEach(func(_, _ gjson.Result) bool {
			found = true
			return false
		})
		return found
	default:
		return false
	}
}

// repr renders a raw flag value, with booleans capitalized as True/False
func repr(value gjson.Result) string {
	switch value.Type {
	case gjson.True:
		return "True"
	case gjson.False:
		return "False"
	case gjson.Null:
		return "None"
	case gjson.String:
		return value.Str
	default:
		return value.Raw
	}
}
