package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case recomputeMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.recompute()
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.PrevCountry):
		if len(m.countries) == 0 {
			return m, nil
		}
		m.countryIndex = (m.countryIndex - 1 + len(m.countries)) % len(m.countries)
		return m, m.scheduleRecompute()

	case key.Matches(msg, keys.NextCountry):
		if len(m.countries) == 0 {
			return m, nil
		}
		m.countryIndex = (m.countryIndex + 1) % len(m.countries)
		return m, m.scheduleRecompute()

	case key.Matches(msg, keys.Filing):
		if m.filingStatus == domain.FilingMarried {
			m.filingStatus = domain.FilingSingle
		} else {
			m.filingStatus = domain.FilingMarried
		}
		return m, m.scheduleRecompute()

	case key.Matches(msg, keys.Edit):
		offer, ok := m.selectedOffer()
		if !ok {
			return m, nil
		}
		m.editing = true
		m.editOriginal = *offer
		m.input.SetValue(offer.Salary.String())
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		m.stopEditing()
		return m, nil

	case key.Matches(msg, keys.Cancel):
		if offer, ok := m.selectedOffer(); ok {
			*offer = m.editOriginal
		}
		m.stopEditing()
		return m, m.scheduleRecompute()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	// each keystroke is an input change; only the last one is scored
	if offer, ok := m.selectedOffer(); ok {
		offer.Salary = config.ParseAmount(m.input.Value())
	}
	return m, tea.Batch(cmd, m.scheduleRecompute())
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.SetValue("")
}

// scheduleRecompute starts a new debounce window and invalidates the
// pending ones
func (m *Model) scheduleRecompute() tea.Cmd {
	m.generation++
	generation := m.generation
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return recomputeMsg{generation: generation}
	})
}

// recompute replaces the comparison with a fresh one. On failure the
// previous comparison stays on screen next to the error.
func (m *Model) recompute() {
	if m.scorer == nil || len(m.offers) == 0 {
		return
	}
	comparison, err := m.scorer.ScoreOffers(m.offers, m.Country(), m.filingStatus)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.comparison = comparison
	m.table.SetRows(lo.Map(comparison.Offers, func(s domain.ScoredOffer, _ int) table.Row {
		name := s.Offer.Name
		if name == "" {
			name = s.Offer.ID
		}
		if s.Offer.ID == comparison.BestOfferID {
			name = "* " + name
		}
		return table.Row{
			name,
			FormatCurrency(s.Offer.Salary),
			FormatCurrency(s.Calculated.NetTotalCompensationAnnual),
			s.Calculated.NetHourlyWithCommute.StringFixed(2),
			s.Scores.WorkLife.StringFixed(1),
			s.Scores.Benefits.StringFixed(1),
			s.Scores.Financial.StringFixed(1),
			s.Scores.Overall.StringFixed(1),
		}
	}))
}

func (m *Model) selectedOffer() (*domain.Offer, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.offers) {
		return nil, false
	}
	return &m.offers[i], true
}

func (m Model) statusLine() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.comparison == nil {
		return SubtitleStyle.Render("Scoring offers...")
	}
	return ""
}
