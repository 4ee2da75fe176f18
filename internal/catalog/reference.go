package catalog

import "github.com/tidwall/gjson"

const (
	referenceKey       = "internalReference"
	productInformation = "productInformation"
)

// ResolveReference finds a record's internal reference. The lookup checks
// the record itself, then productInformation, then the first top-level
// object (in document order) holding the key. It never descends further.
func ResolveReference(record gjson.Result) string {
	if !record.IsObject() {
		return ReferencePlaceholder
	}

	if ref, ok := directReference(record); ok {
		return ref
	}

	if info := record.Get(productInformation); info.IsObject() {
		if ref, ok := directReference(info); ok {
			return ref
		}
	}

	ref := ReferencePlaceholder
	record.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		if found, ok := directReference(value); ok {
			ref = found
			return false
		}
		return true
	})

	return ref
}

func directReference(object gjson.Result) (string, bool) {
	value := object.Get(referenceKey)
	if !present(value) {
		return "", false
	}
	return value.String(), true
}
