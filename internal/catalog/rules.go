package catalog

import (
	"fmt"
	"strings"
)

type Version string

const (
	// V1 writes the consolidated sheet: flat bullets, heading lines dropped
	V1 Version = "v1"
	// V2 writes the final sheet with the internal reference column
	V2 Version = "v2"
)

// Default strings written when a field is missing or empty
const (
	DescriptionPlaceholder = "Descrição não disponível"
	OptionalsPlaceholder   = "Nenhum opcional cadastrado"
	ReferencePlaceholder   = "N/A"
	UnnamedProduct         = "Sem nome"
	UnnamedGroup           = "Opção"
)

const (
	bullet    = "• "
	subBullet = "  ▸ "
	listItem  = "- "
	yes       = "Sim"
	no        = "Não"
)

// Labels for the flags form of optionals under V2
var flagLabels = map[string]string{
	"budgetPage":  "Incluso no orçamento",
	"productPage": "Visível no catálogo",
}

// DefaultHeadingDenylist holds the heading words V1 drops from descriptions
var DefaultHeadingDenylist = []string{"características", "especificações", "detalhes"}

// Rules is one versioned set of formatting and layout rules
type Rules struct {
	Version          Version
	Headers          []string
	ColumnWidths     []float64
	IncludeReference bool
	BoldHeader       bool
	MinRowHeight     float64
	LineHeight       float64
	OutputSuffix     string
	HeadingDenylist  []string
}

// RulesFor returns the rule set for a version name. A nil denylist falls
// back to DefaultHeadingDenylist; V2 never applies one.
func RulesFor(version string, denylist []string) (*Rules, error) {
	if denylist == nil {
		denylist = DefaultHeadingDenylist
	}

	switch Version(strings.ToLower(strings.TrimSpace(version))) {
	case V1:
		return &Rules{
			Version:         V1,
			Headers:         []string{"PRODUTO", "DESCRIÇÃO COMPLETA", "OPCIONAIS"},
			ColumnWidths:    []float64{35, 70, 40},
			MinRowHeight:    20,
			LineHeight:      15,
			OutputSuffix:    "_CONSOLIDADO.xlsx",
			HeadingDenylist: denylist,
		}, nil
	case V2:
		return &Rules{
			Version:          V2,
			Headers:          []string{"PRODUTO", "DESCRIÇÃO COMPLETA", "REF. INTERNA", "OPCIONAIS"},
			ColumnWidths:     []float64{35, 70, 20, 40},
			IncludeReference: true,
			BoldHeader:       true,
			MinRowHeight:     60,
			LineHeight:       15,
			OutputSuffix:     "_FINAL.xlsx",
		}, nil
	default:
		return nil, fmt.Errorf("unknown rules version %q (expected %s or %s)", version, V1, V2)
	}
}

// ProductName returns the text of the PRODUTO column
func (r *Rules) ProductName(p Product) string {
	if r.Version == V1 {
		return p.Name
	}
	if !p.HasName {
		return UnnamedProduct
	}
	return strings.TrimSpace(p.Name)
}

// Description formats the descriptions field into one cell of bullet text
func (r *Rules) Description(d Descriptions) string {
	if r.Version == V1 {
		return r.consolidatedDescription(d)
	}

	if !d.Truthy {
		return DescriptionPlaceholder
	}

	var parts []string
	for _, desc := range d.Items {
		if desc.Value == "" {
			continue
		}
		lines := strings.Split(desc.Value, "\n")
		for i, line := range lines {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, listItem) {
				line = bullet + strings.TrimSpace(line[len(listItem):])
			}
			lines[i] = line
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// consolidatedDescription has no placeholder: v1 leaves the cell empty when
// a record carries no descriptions.
func (r *Rules) consolidatedDescription(d Descriptions) string {
	var lines []string
	for _, desc := range d.Items {
		for _, line := range strings.Split(desc.Value, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case strings.HasPrefix(line, listItem):
				lines = append(lines, bullet+line[len(listItem):])
			case strings.Contains(line, ":"):
				lines = append(lines, bullet+line)
			case !r.isHeading(line):
				lines = append(lines, bullet+line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Rules) isHeading(line string) bool {
	lower := strings.ToLower(line)
	for _, word := range r.HeadingDenylist {
		if word != "" && strings.Contains(lower, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

// Optionals formats the optionals field into one cell
func (r *Rules) Optionals(o Optionals) string {
	var lines []string

	switch o.Kind {
	case OptionalsFlags:
		for _, flag := range o.Flags {
			if r.Version == V1 {
				lines = append(lines, fmt.Sprintf("%s%s: %s", bullet, flag.Key, flag.Repr))
				continue
			}
			answer := no
			if flag.Truthy {
				answer = yes
			}
			lines = append(lines, fmt.Sprintf("%s%s: %s", bullet, flagLabels[flag.Key], answer))
		}

	case OptionalsGroups:
		for _, group := range o.Groups {
			if r.Version == V1 {
				name := group.Name
				if !group.HasName {
					name = UnnamedGroup
				}
				for _, item := range group.Items {
					if item.Name != "" {
						lines = append(lines, fmt.Sprintf("%s%s: %s", bullet, name, item.Name))
					}
				}
				continue
			}

			if !group.HasName || len(group.Items) == 0 {
				continue
			}
			block := []string{fmt.Sprintf("%s%s:", bullet, group.Name)}
			for _, item := range group.Items {
				block = append(block, subBullet+item.Name)
			}
			lines = append(lines, strings.Join(block, "\n"))
		}
	}

	if len(lines) == 0 && r.Version == V2 {
		return OptionalsPlaceholder
	}
	return strings.Join(lines, "\n")
}

// RowHeight sizes a data row from the taller of its two multi-line cells
func (r *Rules) RowHeight(row OutputRow) float64 {
	lines := max(LineCount(row.Description), LineCount(row.Optionals))
	return max(r.MinRowHeight, float64(lines)*r.LineHeight)
}

// LineCount counts newline-separated lines; empty text is one line
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}
