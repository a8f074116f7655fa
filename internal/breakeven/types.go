package breakeven

import (
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// SalaryRequest asks for the gross salary that leaves TargetNet after tax
type SalaryRequest struct {
	Country      string              `json:"country"`
	FilingStatus domain.FilingStatus `json:"filingStatus"`
	Deductions   decimal.Decimal     `json:"deductions"`
	TargetNet    decimal.Decimal     `json:"targetNet"`

	// Optional search bounds; zero values are widened automatically
	MinGross *decimal.Decimal `json:"minGross,omitempty"`
	MaxGross *decimal.Decimal `json:"maxGross,omitempty"`

	MaxIterations int             `json:"-"` // zero uses the solver default
	Tolerance     decimal.Decimal `json:"-"` // zero uses the solver default
}

// Params returns the tax parameters of the request
func (r SalaryRequest) Params() domain.TaxParams {
	return domain.TaxParams{FilingStatus: r.FilingStatus, Deductions: r.Deductions}
}

// SalaryResult is the outcome of a gross-up search
type SalaryResult struct {
	Request         SalaryRequest    `json:"request"`
	Success         bool             `json:"success"`
	Iterations      int              `json:"iterations"`
	ConvergenceInfo string           `json:"convergenceInfo"`
	Gross           decimal.Decimal  `json:"gross"`
	Tax             domain.TaxResult `json:"tax"`
	Net             decimal.Decimal  `json:"net"`
	EffectiveRate   decimal.Decimal  `json:"effectiveRate"`
}

// Equivalent compares the salary needed in one country against a reference
type Equivalent struct {
	SalaryResult
	// Difference is Gross minus the reference salary
	Difference decimal.Decimal `json:"difference"`
}

// EquivalentResult holds the salary equivalents of a reference salary
type EquivalentResult struct {
	From            string          `json:"from"`
	Salary          decimal.Decimal `json:"salary"`
	Net             decimal.Decimal `json:"net"`
	Equivalents     []Equivalent    `json:"equivalents"`
	Cheapest        string          `json:"cheapest,omitempty"`
	Recommendations []string        `json:"recommendations"`
}

// SolverOptions configures the search
type SolverOptions struct {
	Tolerance     decimal.Decimal // width of the final gross interval
	MaxIterations int // bisection steps
	MaxGross      decimal.Decimal // upper limit for automatic bound widening
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 100,
		MaxGross:      decimal.NewFromInt(1_000_000_000),
	}
}

// Validate checks the request before a search
func (r *SalaryRequest) Validate() error {
	if r.TargetNet.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "target net income cannot be negative"}
	}
	if r.Deductions.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "deductions cannot be negative"}
	}
	if r.MinGross != nil && r.MinGross.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "min gross cannot be negative"}
	}
	if r.MinGross != nil && r.MaxGross != nil && r.MinGross.GreaterThan(*r.MaxGross) {
		return &BreakEvenError{Operation: "validate_request", Message: "min gross cannot be greater than max gross"}
	}
	return nil
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
