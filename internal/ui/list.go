package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"

	"github.com/five82/opsview/internal/listing"
	"github.com/five82/opsview/internal/status"
)

// Column widths for the fixed parts of a row.
const (
	idColumnWidth     = 8
	labelColumnWidth  = 14
	amountColumnWidth = 16
	dateColumnWidth   = 10
)

var iconGlyphs = map[status.Icon]string{
	status.IconPending:   "◷",
	status.IconCompleted: "✔",
	status.IconFailed:    "✖",
	status.IconCancelled: "⊘",
	status.IconUnknown:   "?",
}

// glyphFor maps a status icon to a terminal glyph. Unrecognized icons from
// config render as the unknown glyph.
func glyphFor(icon status.Icon) string {
	if g, ok := iconGlyphs[icon]; ok {
		return g
	}
	return iconGlyphs[status.IconUnknown]
}

// contentHeight is the height below the header and command bar.
func (m Model) contentHeight() int {
	return m.height - 2
}

// listHeight is the number of rows visible inside the list box.
func (m Model) listHeight() int {
	return m.contentHeight() - 2
}

// renderList renders the list pane for the current phase.
func (m Model) renderList() string {
	height := m.contentHeight()
	inner := m.width - 2
	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)

	var body string
	switch {
	case m.activateErr != nil:
		body = styles.DangerText.Render(m.activateErr.Error())
	case m.view.Phase == listing.PhaseLoading || m.view.Phase == listing.PhaseIdle:
		body = styles.MutedText.Render("Loading operations...")
	case m.view.Phase == listing.PhaseFailed:
		body = m.renderFailure(styles, inner)
	case m.view.Phase == listing.PhaseDisposed:
		body = styles.MutedText.Render("Closed")
	case m.view.Total == 0:
		body = styles.MutedText.Render("No operations")
	case len(m.view.Rows) == 0:
		body = styles.MutedText.Render(fmt.Sprintf("No operations match %q", m.view.Term))
	default:
		body = m.renderRows(inner, bgColor)
	}

	return m.renderTitledBox(m.listTitle(), body, m.width, height, true)
}

func (m Model) listTitle() string {
	if m.view.Phase != listing.PhaseReady {
		return "Operations"
	}
	if m.view.Filtered() {
		return fmt.Sprintf("Operations (%d/%d)", len(m.view.Rows), m.view.Total)
	}
	return fmt.Sprintf("Operations (%d)", m.view.Total)
}

func (m Model) renderFailure(styles Styles, width int) string {
	msg := "unknown error"
	if m.view.Err != nil {
		msg = m.view.Err.Error()
	}
	lines := []string{
		styles.DangerText.Render("Could not load operations"),
		styles.Text.Render(truncate(msg, width)),
		"",
		styles.MutedText.Render("Press r to retry"),
	}
	return strings.Join(lines, "\n")
}

// renderRows renders the visible window of rows around the selection.
func (m Model) renderRows(width int, bgColor string) string {
	rows := m.view.Rows
	visible := max(m.listHeight(), 1)
	start := 0
	if m.selectedRow >= visible {
		start = m.selectedRow - visible + 1
	}
	end := min(start+visible, len(rows))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.selectedRow
		lineBg := bgColor
		if selected {
			lineBg = m.theme.SelectionBg
		}
		content := m.formatRow(rows[i], width, lineBg, selected)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(lineBg)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

// formatRow formats one operation.
// Format: "glyph #ID Description · Label  Amount  Date"
func (m Model) formatRow(row listing.Row, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)
	op := row.Operation

	label := m.loc.Translate(row.Status.Label)
	amount := m.loc.FormatAmount(op.Amount)
	date := m.loc.FormatDate(op.ParsedDate())
	idStr := "#" + truncate(string(op.ID), idColumnWidth-1)

	fixed := 2 + idColumnWidth + 1 + 3 + labelColumnWidth + amountColumnWidth + 2 + dateColumnWidth
	descWidth := max(width-fixed, 10)

	var glyphStyle, idStyle, descStyle, sepStyle, labelStyle, amountStyle, dateStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		glyphStyle, idStyle, descStyle, sepStyle = selText, selText, selText, selText
		labelStyle, amountStyle, dateStyle = selText, selText, selText
	} else {
		styles := m.theme.Styles()
		statusColor := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatusColor(row.Status.Icon)))
		glyphStyle = statusColor
		idStyle = styles.MutedText
		descStyle = styles.Text
		sepStyle = styles.FaintText
		labelStyle = statusColor
		amountStyle = styles.Text
		if op.Amount.Sign() < 0 {
			amountStyle = styles.DangerText
		}
		dateStyle = styles.MutedText
	}

	return bg.Render(glyphFor(row.Status.Icon), glyphStyle) + bg.Space() +
		bg.Render(padRight(idStr, idColumnWidth), idStyle) + bg.Space() +
		bg.Render(padRight(truncate(op.Description, descWidth), descWidth), descStyle) +
		bg.Render(" · ", sepStyle) +
		bg.Render(padRight(truncate(label, labelColumnWidth), labelColumnWidth), labelStyle) +
		bg.Render(padLeft(amount, amountColumnWidth), amountStyle) + bg.Spaces(2) +
		bg.Render(date, dateStyle)
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// Frame style: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				bg.FillLine(line, innerWidth)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// sumAmounts totals the amounts of the visible rows.
func sumAmounts(rows []listing.Row) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Operation.Amount)
	}
	return total
}

// truncate shortens s to at most max terminal cells, marking the cut with "...".
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= max {
		return s
	}
	if max <= 3 {
		return ansi.Truncate(s, max, "")
	}
	return ansi.Truncate(s, max, "...")
}

// truncateMiddle keeps the start and the longer end of s within max cells.
func truncateMiddle(s string, max int) string {
	if max <= 0 {
		return ""
	}
	width := ansi.StringWidth(s)
	if width <= max {
		return s
	}
	if max <= 5 {
		return ansi.Truncate(s, max, "")
	}
	endLen := (max - 3) * 2 / 3
	startLen := max - 3 - endLen
	end := ansi.TruncateLeft(s, width-endLen, "")
	if ansi.StringWidth(end) > endLen {
		// A wide rune straddled the cut.
		end = ansi.TruncateLeft(s, width-endLen+1, "")
	}
	return ansi.Truncate(s, startLen, "") + "..." + end
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
