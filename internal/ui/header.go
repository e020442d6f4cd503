package ui

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/opsview/internal/listing"
	"github.com/five82/opsview/internal/operations"
)

// renderHeader renders the status bar: name, state, locale and endpoint.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("opsview", styles.Logo),
		m.phaseBadge(styles, bg),
	}

	if m.view.Phase == listing.PhaseReady && len(m.view.Rows) > 0 && m.loc != nil {
		parts = append(parts,
			bg.Render("Total:", styles.MutedText)+bg.Space()+
				bg.Render(m.loc.FormatAmount(sumAmounts(m.view.Rows)), styles.Text))
	}
	if m.loc != nil {
		parts = append(parts,
			bg.Render(m.loc.Tag(), styles.MutedText)+bg.Space()+
				bg.Render(m.loc.Currency(), styles.FaintText))
	}
	if m.width >= 100 && m.apiURL != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.apiURL, 40), styles.FaintText))
	}
	if !m.lastUpdated.IsZero() {
		parts = append(parts, bg.Render(m.lastUpdated.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// phaseBadge summarizes the controller phase.
func (m Model) phaseBadge(styles Styles, bg BgStyle) string {
	if m.activateErr != nil {
		return bg.Render("Closed", styles.DangerText)
	}
	v := m.view
	switch v.Phase {
	case listing.PhaseLoading:
		return bg.Render("Loading operations...", styles.WarningText.Bold(true))
	case listing.PhaseReady:
		if v.Filtered() {
			return bg.Render(fmt.Sprintf("%d of %d operations", len(v.Rows), v.Total), styles.SuccessText)
		}
		return bg.Render(fmt.Sprintf("%d operations", v.Total), styles.SuccessText)
	case listing.PhaseFailed:
		return bg.Render("RETRIEVAL "+classifyError(v.Err), styles.DangerText)
	case listing.PhaseDisposed:
		return bg.Render("Closed", styles.MutedText)
	default:
		return bg.Render("Idle", styles.MutedText)
	}
}

// classifyError returns a short label for a retrieval failure.
func classifyError(err error) string {
	if err == nil {
		return "FAILED"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "TIMEOUT"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "UNREACHABLE"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "returned status"):
		return "HTTP ERROR"
	case strings.Contains(msg, "decode"):
		return "BAD RESPONSE"
	case operations.IsRetrievalError(err):
		return "FAILED"
	}
	return "ERROR"
}

// renderCommandBar renders the key hints and the search field.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"/", "Search"},
		{"j/k", "Navigate"},
		{"r", "Reload"},
		{"?", "More"},
	}
	if m.view.Term != "" {
		commands = append(commands, cmd{"esc", "Clear"})
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	switch {
	case m.searching:
		segments = append(segments, m.searchInput.View())
	case m.view.Term != "":
		segments = append(segments, bg.Render("/"+truncate(m.view.Term, 24), styles.AccentText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Width(m.width).
		Render(bg.Join(segments, sep))
}
