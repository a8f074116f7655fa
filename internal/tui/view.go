package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	sections := []string{
		m.renderTitleBar(),
		TableBorderStyle.Render(m.table.View()),
	}
	if m.editing {
		sections = append(sections, m.renderEditor())
	}
	if details := m.renderDetails(); details != "" {
		sections = append(sections, details)
	}
	if status := m.statusLine(); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("PAYGO - Job Offer Comparison")
	subtitle := SubtitleStyle.Render(fmt.Sprintf("Country: %s   Filing: %s", m.Country(), m.filingStatus))
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m Model) renderEditor() string {
	return lipgloss.JoinHorizontal(lipgloss.Left,
		MetricLabelStyle.Render("Salary: "),
		m.input.View())
}

func (m Model) renderDetails() string {
	if m.comparison == nil {
		return ""
	}
	var sb strings.Builder
	if best := m.comparison.BestOffer(); best != nil {
		name := best.Offer.Name
		if name == "" {
			name = best.Offer.ID
		}
		sb.WriteString(BestOfferStyle.Render("Best offer: " + name))
		sb.WriteString("\n")
	}
	for _, rec := range m.comparison.Recommendations {
		sb.WriteString(MetricLabelStyle.Render("• " + rec))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderStatusBar() string {
	bindings := []key.Binding{keys.PrevCountry, keys.NextCountry, keys.Filing, keys.Edit, keys.Quit}
	if m.editing {
		bindings = []key.Binding{keys.Confirm, keys.Cancel}
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, HelpKeyStyle.Render(h.Key)+" "+HelpDescStyle.Render(h.Desc))
	}
	return StatusBarStyle.Render(strings.Join(parts, "  "))
}
