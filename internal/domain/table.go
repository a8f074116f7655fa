package domain

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// CountryTable is an immutable set of country profiles keyed by code.
// Lookups hand out copies, so the table can be shared freely.
type CountryTable struct {
	profiles map[string]*CountryProfile
}

// NewCountryTable builds a table from the given profiles. Codes are
// normalized to upper case; a later profile with the same code wins.
func NewCountryTable(profiles ...CountryProfile) *CountryTable {
	t := &CountryTable{profiles: make(map[string]*CountryProfile, len(profiles))}
	for i := range profiles {
		p := profiles[i].Clone()
		p.Code = NormalizeCode(p.Code)
		t.profiles[p.Code] = p
	}
	return t
}

// NormalizeCode upper-cases and trims a country code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Profile returns a copy of the profile for code
func (t *CountryTable) Profile(code string) (*CountryProfile, bool) {
	if t == nil {
		return nil, false
	}
	p, ok := t.profiles[NormalizeCode(code)]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Codes returns the country codes in sorted order
func (t *CountryTable) Codes() []string {
	if t == nil {
		return nil
	}
	codes := lo.Keys(t.profiles)
	sort.Strings(codes)
	return codes
}

// Len returns the number of countries in the table
func (t *CountryTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.profiles)
}
