// Package status maps operation status codes to display labels and icons.
//
// The table is configuration data: the set of codes the backend declares is
// passed in at construction time. Codes outside the table resolve to a
// fallback display and are never treated as errors. Labels are translation
// tokens; the locale package turns them into display text.
package status

import (
	"strings"

	"github.com/five82/opsview/internal/config"
)

// Icon identifies a status icon. Renderers map it to a glyph.
type Icon string

const (
	IconPending   Icon = "schedule"
	IconCompleted Icon = "check_circle"
	IconFailed    Icon = "error"
	IconCancelled Icon = "cancel"
	IconUnknown   Icon = "help"
)

// FallbackLabel is returned for codes that are not in the table.
const FallbackLabel = "Unknown"

// Display is the derived presentation of a status code.
type Display struct {
	Label string
	Icon  Icon
	Known bool
}

// DefaultTable is used when the configuration declares no statuses.
func DefaultTable() []config.StatusEntry {
	return []config.StatusEntry{
		{Code: "PENDING", Label: "Pending", Icon: string(IconPending)},
		{Code: "COMPLETED", Label: "Completed", Icon: string(IconCompleted)},
		{Code: "FAILED", Label: "Failed", Icon: string(IconFailed)},
		{Code: "CANCELLED", Label: "Cancelled", Icon: string(IconCancelled)},
	}
}

// Mapper resolves status codes against a fixed table. It is immutable and safe
// for concurrent use.
type Mapper struct {
	table map[string]Display
	codes []string
}

// NewMapper builds a Mapper from entries. An empty slice selects DefaultTable.
// Entries with an empty label use the title-cased code; an empty icon uses
// the fallback icon.
func NewMapper(entries []config.StatusEntry) *Mapper {
	if len(entries) == 0 {
		entries = DefaultTable()
	}
	m := &Mapper{table: make(map[string]Display, len(entries))}
	for _, entry := range entries {
		code := normalize(entry.Code)
		if code == "" {
			continue
		}
		if _, dup := m.table[code]; dup {
			continue
		}
		label := strings.TrimSpace(entry.Label)
		if label == "" {
			label = titleCase(code)
		}
		icon := Icon(strings.TrimSpace(entry.Icon))
		if icon == "" {
			icon = IconUnknown
		}
		m.table[code] = Display{Label: label, Icon: icon, Known: true}
		m.codes = append(m.codes, code)
	}
	return m
}

// Display returns the label and icon for code.
func (m *Mapper) Display(code string) Display {
	if m != nil {
		if d, ok := m.table[normalize(code)]; ok {
			return d
		}
	}
	return Display{Label: FallbackLabel, Icon: IconUnknown}
}

// LabelFor returns the label token for code.
func (m *Mapper) LabelFor(code string) string {
	return m.Display(code).Label
}

// IconFor returns the icon for code.
func (m *Mapper) IconFor(code string) Icon {
	return m.Display(code).Icon
}

// Codes returns the known codes in declaration order.
func (m *Mapper) Codes() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.codes))
	copy(out, m.codes)
	return out
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// titleCase converts an underscore-separated code to title case.
func titleCase(value string) string {
	parts := strings.Split(strings.ToLower(value), "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
