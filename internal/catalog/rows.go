package catalog

// OutputRow is one formatted product, written once and never changed
type OutputRow struct {
	ProductName       string
	Description       string
	InternalReference string
	Optionals         string
}

// BuildRows formats every product in input order, one row each
func BuildRows(products []Product, rules *Rules) []OutputRow {
	rows := make([]OutputRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, OutputRow{
			ProductName:       rules.ProductName(p),
			Description:       rules.Description(p.Descriptions),
			InternalReference: p.InternalReference,
			Optionals:         rules.Optionals(p.Optionals),
		})
	}
	return rows
}

// Cells returns the row's values in the column order of rules.Headers
func (r OutputRow) Cells(rules *Rules) []string {
	if rules.IncludeReference {
		return []string{r.ProductName, r.Description, r.InternalReference, r.Optionals}
	}
	return []string{r.ProductName, r.Description, r.Optionals}
}
