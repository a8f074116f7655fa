package output

import (
	"bytes"
	"encoding/csv"
)

// CSVSummarizer implements the simple summary CSV output (one row per amount).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(r *TaxReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Country", "Item", "Amount"}); err != nil {
		return nil, err
	}

	rows := [][]string{{r.Country, "Income", r.Income.StringFixed(2)}}
	for _, line := range r.Lines() {
		rows = append(rows, []string{r.Country, line.Label, line.Amount.StringFixed(2)})
	}
	rows = append(rows,
		[]string{r.Country, "Total tax", r.Result.TotalTax.StringFixed(2)},
		[]string{r.Country, "Net income", r.NetIncome().StringFixed(2)},
		[]string{r.Country, "Effective rate", r.EffectiveRate.StringFixed(4)},
		[]string{r.Country, "Marginal rate", r.MarginalRate.StringFixed(4)},
	)
	for _, row := range periodRows(r) {
		rows = append(rows,
			[]string{r.Country, row[0] + " gross", row[1]},
			[]string{r.Country, row[0] + " net", row[2]},
		)
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
