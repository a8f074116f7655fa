package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// TaxSource computes the tax owed on an income. *calculation.TaxCalculator
// implements it.
type TaxSource interface {
	CalculateTax(income decimal.Decimal, countryCode string, params domain.TaxParams) (domain.TaxResult, error)
}

// Solver finds gross salaries that produce a given net income
type Solver struct {
	Tax     TaxSource
	Options SolverOptions
	Logger  calculation.Logger
}

// NewSolver creates a new break-even solver
func NewSolver(tax TaxSource, options SolverOptions) *Solver {
	return &Solver{
		Tax:     tax,
		Options: options,
		Logger:  calculation.NopLogger{},
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(tax TaxSource) *Solver {
	return NewSolver(tax, DefaultSolverOptions())
}

// SolveGross bisects for the smallest gross salary whose net income reaches
// the request's target. Net income grows with gross as long as no marginal
// rate reaches 100%, which holds for every bundled country.
func (s *Solver) SolveGross(ctx context.Context, req SalaryRequest) (*SalaryResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	req.Country = domain.NormalizeCode(req.Country)

	lo := decimal.Zero
	if req.MinGross != nil {
		lo = *req.MinGross
	}
	if net, _, err := s.netAt(req, lo); err != nil {
		return nil, err
	} else if net.GreaterThanOrEqual(req.TargetNet) {
		return s.result(req, lo, 0, true, "Lower bound already meets target")
	}

	hi, err := s.upperBound(ctx, req, lo)
	if err != nil {
		return nil, err
	}

	iterations := 0
	for iterations < req.MaxIterations && hi.Sub(lo).GreaterThan(req.Tolerance) {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		net, _, err := s.netAt(req, mid)
		if err != nil {
			return nil, err
		}
		if net.GreaterThanOrEqual(req.TargetNet) {
			hi = mid
		} else {
			lo = mid
		}
	}

	if hi.Sub(lo).GreaterThan(req.Tolerance) {
		return s.result(req, hi, iterations, false, fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations))
	}
	s.Logger.Debugf("break-even %s target=%s gross=%s iterations=%d", req.Country, req.TargetNet, hi, iterations)
	return s.result(req, hi, iterations, true, fmt.Sprintf("Converged within %s", req.Tolerance.String()))
}

// upperBound returns a gross at or above the target, doubling from the
// target when the request sets no maximum
func (s *Solver) upperBound(ctx context.Context, req SalaryRequest, lo decimal.Decimal) (decimal.Decimal, error) {
	if req.MaxGross != nil {
		net, _, err := s.netAt(req, *req.MaxGross)
		if err != nil {
			return decimal.Zero, err
		}
		if net.LessThan(req.TargetNet) {
			return decimal.Zero, &BreakEvenError{
				Operation: "solve_gross",
				Message:   fmt.Sprintf("net income at max gross %s is %s, below target %s", req.MaxGross.StringFixed(2), net.StringFixed(2), req.TargetNet.StringFixed(2)),
			}
		}
		return *req.MaxGross, nil
	}

	hi := decimal.Min(decimal.Max(req.TargetNet.Mul(two), lo.Add(decimal.NewFromInt(1))), s.Options.MaxGross)
	for {
		select {
		case <-ctx.Done():
			return decimal.Zero, ctx.Err()
		default:
		}

		net, _, err := s.netAt(req, hi)
		if err != nil {
			return decimal.Zero, err
		}
		if net.GreaterThanOrEqual(req.TargetNet) {
			return hi, nil
		}
		if hi.GreaterThanOrEqual(s.Options.MaxGross) {
			return decimal.Zero, &BreakEvenError{
				Operation: "solve_gross",
				Message:   fmt.Sprintf("no gross up to %s reaches net %s", s.Options.MaxGross.StringFixed(0), req.TargetNet.StringFixed(2)),
			}
		}
		hi = decimal.Min(hi.Mul(two), s.Options.MaxGross)
	}
}

func (s *Solver) netAt(req SalaryRequest, gross decimal.Decimal) (decimal.Decimal, domain.TaxResult, error) {
	result, err := s.Tax.CalculateTax(gross, req.Country, req.Params())
	if err != nil {
		return decimal.Zero, result, &BreakEvenError{
			Operation: "solve_gross",
			Message:   "failed to calculate tax",
			Cause:     err,
		}
	}
	return gross.Sub(result.TotalTax), result, nil
}

func (s *Solver) result(req SalaryRequest, gross decimal.Decimal, iterations int, success bool, info string) (*SalaryResult, error) {
	net, tax, err := s.netAt(req, gross)
	if err != nil {
		return nil, err
	}
	effective := decimal.Zero
	if gross.IsPositive() {
		effective = tax.TotalTax.Div(gross).Mul(decimal.NewFromInt(100))
	}
	return &SalaryResult{
		Request:         req,
		Success:         success,
		Iterations:      iterations,
		ConvergenceInfo: info,
		Gross:           gross,
		Tax:             tax,
		Net:             net,
		EffectiveRate:   effective,
	}, nil
}
