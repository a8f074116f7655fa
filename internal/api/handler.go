// Package api serves the tax, wage and offer comparison calculators over
// HTTP with JSON bodies.
package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/paygo/internal/breakeven"
	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/compare"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/paycheck"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Server routes requests to the calculators
type Server struct {
	table    *domain.CountryTable
	tax      *calculation.TaxCalculator
	offers   *compare.Engine
	paycheck *paycheck.Calculator
	solver   *breakeven.Solver
	log      *zap.Logger
}

// NewServer creates a server over the given country table and tax calculator
func NewServer(table *domain.CountryTable, tax *calculation.TaxCalculator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		table:    table,
		tax:      tax,
		offers:   compare.NewEngine(tax, compare.WithEngineLogger(log.Sugar())),
		paycheck: paycheck.NewCalculator(tax, table),
		solver:   newSolver(tax, log),
		log:      log,
	}
}

func newSolver(tax *calculation.TaxCalculator, log *zap.Logger) *breakeven.Solver {
	solver := breakeven.NewDefaultSolver(tax)
	solver.Logger = log.Sugar()
	return solver
}

// ListenAndServe serves on addr until the listener fails
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("paygo api listening", zap.String("addr", addr))
	return fasthttp.ListenAndServe(addr, s.Handler())
}

// Handler returns the routed request handler with request logging
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.logRequests(s.route)
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		s.only(ctx, fasthttp.MethodGet, s.handleHealth)
	case "/v1/countries":
		s.only(ctx, fasthttp.MethodGet, s.handleCountries)
	case "/v1/tax":
		s.only(ctx, fasthttp.MethodPost, s.handleTax)
	case "/v1/wage":
		s.only(ctx, fasthttp.MethodPost, s.handleWage)
	case "/v1/compare":
		s.only(ctx, fasthttp.MethodPost, s.handleCompare)
	case "/v1/equivalent":
		s.only(ctx, fasthttp.MethodPost, s.handleEquivalent)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (s *Server) only(ctx *fasthttp.RequestCtx, method string, next fasthttp.RequestHandler) {
	if string(ctx.Method()) != method {
		ctx.Response.Header.Set(fasthttp.HeaderAllow, method)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (s *Server) logRequests(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		s.log.Debug("request",
			zap.String("method", string(ctx.Method())),
			zap.String("path", string(ctx.Path())),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("duration", time.Since(start)))
	}
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCountries(ctx *fasthttp.RequestCtx) {
	codes := s.table.Codes()
	resp := CountriesResponse{Countries: make([]CountrySummary, 0, len(codes))}
	for _, code := range codes {
		profile, _ := s.table.Profile(code)
		resp.Countries = append(resp.Countries, CountrySummary{
			Code:       profile.Code,
			Name:       profile.Name,
			Currency:   profile.Currency,
			HasTaxData: profile.HasTaxData(),
		})
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleTax(ctx *fasthttp.RequestCtx) {
	var req TaxRequest
	if !decodeBody(ctx, &req) {
		return
	}
	status, ok := domain.ParseFilingStatus(req.FilingStatus)
	if !ok {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("Unknown filing status %q", req.FilingStatus))
		return
	}
	params := domain.TaxParams{FilingStatus: status, Deductions: req.Deductions}

	result, err := s.tax.CalculateTax(req.Income, req.Country, params)
	if err != nil {
		s.writeCalculationError(ctx, err)
		return
	}
	effective, err := s.tax.EffectiveTaxRate(req.Income, req.Country, params)
	if err != nil {
		s.writeCalculationError(ctx, err)
		return
	}
	marginal, err := s.tax.MarginalTaxRate(req.Income, req.Country, params)
	if err != nil {
		s.writeCalculationError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, TaxResponse{
		Country:       domain.NormalizeCode(req.Country),
		Income:        req.Income,
		Result:        result,
		EffectiveRate: effective,
		MarginalRate:  marginal,
	})
}

func (s *Server) handleWage(ctx *fasthttp.RequestCtx) {
	var req WageRequest
	if !decodeBody(ctx, &req) {
		return
	}
	status, ok := domain.ParseFilingStatus(req.FilingStatus)
	if !ok {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("Unknown filing status %q", req.FilingStatus))
		return
	}
	params := domain.TaxParams{FilingStatus: status}

	var (
		breakdown *paycheck.Breakdown
		err       error
	)
	switch {
	case !req.Salary.IsZero() && !req.Hourly.IsZero():
		writeError(ctx, fasthttp.StatusBadRequest, "Provide either salary or hourly, not both")
		return
	case !req.Hourly.IsZero():
		breakdown, err = s.paycheck.FromHourly(paycheck.HourlyInput{
			Rate:                 req.Hourly,
			HoursPerWeek:         req.HoursPerWeek,
			OvertimeHoursPerWeek: req.OvertimeHours,
			WeeksPerYear:         req.WeeksPerYear,
		}, req.Country, params)
	default:
		breakdown, err = s.paycheck.FromSalary(req.Salary, req.Country, params)
	}
	if err != nil {
		s.writeCalculationError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, breakdown)
}

func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) {
	var req CompareRequest
	if !decodeBody(ctx, &req) {
		return
	}
	comparison, err := s.offers.ScoreOffers(req.Offers, req.Country, domain.FilingStatus(req.FilingStatus))
	if err != nil {
		s.writeCalculationError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, CompareResponse{Comparison: comparison})
}

func (s *Server) handleEquivalent(ctx *fasthttp.RequestCtx) {
	var req EquivalentRequest
	if !decodeBody(ctx, &req) {
		return
	}
	status, ok := domain.ParseFilingStatus(req.FilingStatus)
	if !ok {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("Unknown filing status %q", req.FilingStatus))
		return
	}
	result, err := s.solver.EquivalentSalaries(ctx, req.Salary, req.From, req.To, domain.TaxParams{FilingStatus: status})
	if err != nil {
		s.writeCalculationError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) writeCalculationError(ctx *fasthttp.RequestCtx, err error) {
	for _, clientErr := range []error{
		calculation.ErrNegativeIncome,
		calculation.ErrNegativeDeductions,
		paycheck.ErrNegativeRate,
		paycheck.ErrNegativeHours,
		compare.ErrNoOffers,
		compare.ErrTooManyOffers,
		compare.ErrDuplicateOfferID,
		compare.ErrUnknownFilingStatus,
	} {
		if errors.Is(err, clientErr) {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
	}
	var bee *breakeven.BreakEvenError
	if errors.As(err, &bee) && bee.Cause == nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	s.log.Error("calculation failed", zap.String("path", string(ctx.Path())), zap.Error(err))
	writeError(ctx, fasthttp.StatusInternalServerError, "Internal error")
}

func decodeBody(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
