// Package tui is an interactive job offer comparison for the terminal.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/rgehrsitz/paygo/internal/compare"
	"github.com/rgehrsitz/paygo/internal/domain"
)

// DefaultDebounce is how long input must settle before offers are rescored
const DefaultDebounce = 600 * time.Millisecond

// Scorer scores offers. *compare.Engine implements it.
type Scorer interface {
	ScoreOffers(offers []domain.Offer, countryCode string, filingStatus domain.FilingStatus) (*compare.OfferComparison, error)
}

// Model represents the entire application state
type Model struct {
	// Terminal dimensions
	width  int
	height int

	scorer       Scorer
	countries    []string
	countryIndex int
	filingStatus domain.FilingStatus
	offers       []domain.Offer

	comparison *compare.OfferComparison
	err        error

	table table.Model
	input textinput.Model

	editing      bool
	editOriginal domain.Offer

	// every input change bumps generation; recomputeMsgs from older
	// generations are dropped
	generation int
	debounce   time.Duration
}

// Option configures a Model
type Option func(*Model)

// WithDebounce overrides DefaultDebounce
func WithDebounce(d time.Duration) Option {
	return func(m *Model) {
		m.debounce = d
	}
}

// NewModel creates a new application model. country selects the starting
// entry of countries; an unknown code starts at the first one.
func NewModel(scorer Scorer, countries []string, country string, filingStatus domain.FilingStatus, offers []domain.Offer, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g., 95000"
	ti.CharLimit = 12
	ti.Width = 20

	t := table.New(
		table.WithColumns(tableColumns()),
		table.WithFocused(true),
		table.WithHeight(len(offers)+1),
	)
	styles := table.DefaultStyles()
	styles.Header = TableHeaderStyle
	styles.Selected = TableHighlightStyle
	t.SetStyles(styles)

	_, index, found := lo.FindIndexOf(countries, func(c string) bool {
		return c == domain.NormalizeCode(country)
	})
	if !found {
		index = 0
	}

	m := Model{
		width:        100,
		height:       24,
		scorer:       scorer,
		countries:    countries,
		countryIndex: index,
		filingStatus: filingStatus,
		offers:       append([]domain.Offer(nil), offers...),
		table:        t,
		input:        ti,
		debounce:     DefaultDebounce,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init scores the offers once on startup
func (m Model) Init() tea.Cmd {
	generation := m.generation
	return func() tea.Msg {
		return recomputeMsg{generation: generation}
	}
}

// Country returns the selected country code
func (m Model) Country() string {
	if len(m.countries) == 0 {
		return ""
	}
	return m.countries[m.countryIndex]
}

// Comparison returns the latest scored comparison
func (m Model) Comparison() *compare.OfferComparison {
	return m.comparison
}

// Offers returns the offers as currently edited
func (m Model) Offers() []domain.Offer {
	return m.offers
}

// Err returns the error of the latest recompute
func (m Model) Err() error {
	return m.err
}

func tableColumns() []table.Column {
	return []table.Column{
		{Title: "Offer", Width: 22},
		{Title: "Salary", Width: 11},
		{Title: "Net Total", Width: 11},
		{Title: "Net/Hour", Width: 9},
		{Title: "Work-Life", Width: 9},
		{Title: "Benefits", Width: 9},
		{Title: "Financial", Width: 9},
		{Title: "Overall", Width: 8},
	}
}
