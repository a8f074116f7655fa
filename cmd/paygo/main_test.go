package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const offersExample = "../../test/testdata/offers_example.yaml"

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "paygo", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	out, err := executeCommand(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "paygo")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"tax", "rates", "wage", "compare", "break-even", "equivalent", "countries", "validate", "serve", "version"}

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, names[name], "expected command %s to be registered", name)
	}

	for _, flag := range []string{"countries", "debug"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "expected persistent flag --%s", flag)
	}
}

func TestTaxCommand(t *testing.T) {
	out, err := executeCommand(t, "tax", "50,000", "--country", "US", "--filing-status", "single", "--deductions", "0", "--format", "console")
	require.NoError(t, err)

	assert.Contains(t, out, "United States (US, USD)")
	assert.Contains(t, out, "Federal tax:     6307.50")
	assert.Contains(t, out, "Total tax:       12382.50")
	assert.Contains(t, out, "Effective rate:  24.77%")
	assert.Contains(t, out, "Marginal rate:   34.15%")
}

func TestTaxCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "tax", "50000", "--country", "us", "--filing-status", "married", "--deductions", "0", "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		Country string `json:"country"`
		Result  struct {
			FederalTax string `json:"federalTax"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "US", decoded.Country)
	assert.Equal(t, "5560", decoded.Result.FederalTax)
}

func TestTaxCommand_Errors(t *testing.T) {
	_, err := executeCommand(t, "tax", "-100", "--country", "US", "--filing-status", "single", "--deductions", "0", "--format", "console")
	assert.Error(t, err)

	_, err = executeCommand(t, "tax", "abc", "--country", "US")
	assert.Error(t, err)

	_, err = executeCommand(t, "tax", "100", "--country", "US", "--filing-status", "widowed")
	assert.Error(t, err)
}

func TestRatesCommand(t *testing.T) {
	out, err := executeCommand(t, "rates", "500000", "--country", "US,kr,AE", "--filing-status", "single")
	require.NoError(t, err)

	assert.Contains(t, out, "US")
	assert.Contains(t, out, "47.15%")
	assert.Contains(t, out, "KR")
	assert.NotContains(t, out, "AE", "countries without tax data are skipped")
}

func TestWageCommand(t *testing.T) {
	out, err := executeCommand(t, "wage", "--salary", "50000", "--hourly", "", "--country", "US", "--filing-status", "single")
	require.NoError(t, err)
	assert.Contains(t, out, "Annual")
	assert.Contains(t, out, "50000.00")
	assert.Contains(t, out, "37617.50")

	out, err = executeCommand(t, "wage", "--salary", "", "--hourly", "25", "--overtime", "5", "--country", "US")
	require.NoError(t, err)
	assert.Contains(t, out, "Overtime pay: 9750.00")
	assert.Contains(t, out, "61750.00")

	_, err = executeCommand(t, "wage", "--salary", "", "--hourly", "", "--overtime", "")
	assert.Error(t, err, "one of --salary or --hourly is required")
}

func TestCompareCommand(t *testing.T) {
	for _, format := range []string{"table", "compact", "csv", "json"} {
		t.Run(format, func(t *testing.T) {
			out, err := executeCommand(t, "compare", offersExample, "--country", "", "--filing-status", "", "--format", format)
			require.NoError(t, err)
			assert.Contains(t, out, "Remote Startup")
		})
	}

	out, err := executeCommand(t, "compare", offersExample, "--country", "", "--filing-status", "", "--format", "json")
	require.NoError(t, err)
	var decoded struct {
		Country string `json:"country"`
		Offers  []struct {
			Offer struct {
				ID string `json:"id"`
			} `json:"offer"`
		} `json:"offers"`
		BestOfferID string `json:"bestOfferId"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "US", decoded.Country)
	assert.Len(t, decoded.Offers, 3)
	assert.NotEmpty(t, decoded.BestOfferID)

	out, err = executeCommand(t, "compare", offersExample, "--country", "de", "--filing-status", "", "--format", "compact")
	require.NoError(t, err)
	assert.Contains(t, out, "BigCo Downtown")

	_, err = executeCommand(t, "compare", offersExample, "--country", "", "--filing-status", "", "--format", "xml")
	assert.Error(t, err)

	_, err = executeCommand(t, "compare", "does-not-exist.yaml", "--format", "table")
	assert.Error(t, err)
}

func TestBreakEvenCommand(t *testing.T) {
	out, err := executeCommand(t, "break-even", "37,617.50", "--country", "US", "--filing-status", "single", "--deductions", "0", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN SALARY")
	assert.Contains(t, out, "Gross salary:   50000.0")

	out, err = executeCommand(t, "break-even", "60000", "--country", "AE", "--filing-status", "single", "--deductions", "0", "--format", "json")
	require.NoError(t, err)
	var decoded struct {
		Gross   string `json:"gross"`
		Success bool   `json:"success"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.True(t, decoded.Success)
	assert.True(t, strings.HasPrefix(decoded.Gross, "60000"), decoded.Gross)

	_, err = executeCommand(t, "break-even", "-5", "--country", "US", "--format", "table")
	assert.Error(t, err)

	_, err = executeCommand(t, "break-even", "100", "--country", "US", "--format", "xml")
	assert.Error(t, err)
}

func TestEquivalentCommand(t *testing.T) {
	out, err := executeCommand(t, "equivalent", "100000", "--from", "AE", "--to", "us, gb", "--filing-status", "single", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "SALARY EQUIVALENTS")
	assert.Contains(t, out, "Reference: 100000.00 in AE (net 100000.00)")
	assert.Contains(t, out, "GB")

	out, err = executeCommand(t, "equivalent", "50000", "--from", "US", "--to", "", "--filing-status", "single", "--format", "json")
	require.NoError(t, err)
	var decoded struct {
		Equivalents []json.RawMessage `json:"equivalents"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded.Equivalents, 28, "every other country with tax data")
}

func TestCountriesCommand(t *testing.T) {
	out, err := executeCommand(t, "countries")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 31, "header plus 30 countries")
	assert.Contains(t, out, "no tax data")
	assert.Contains(t, out, "United Kingdom")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(`countries:
  XX:
    name: Testland
    currency: TST
    income:
      - {min: 0, max: 10000, rate: 0}
      - {min: 10000, rate: 0.2}
`), 0o644))
	out, err := executeCommand(t, "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "1 countries")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte(`countries:
  XX:
    name: Testland
    currency: TST
    income:
      - {min: 0, max: 10000, rate: 0}
      - {min: 12000, rate: 0.2}
`), 0o644))
	_, err = executeCommand(t, "validate", invalid)
	assert.Error(t, err)

	// the table override feeds every command
	out, err = executeCommand(t, "--countries", valid, "tax", "20000", "--country", "XX", "--filing-status", "single", "--deductions", "0", "--format", "console")
	require.NoError(t, err)
	assert.Contains(t, out, "Total tax:       2000.00")
	countriesFile = ""
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "paygo dev"))
}

func TestParseMoney(t *testing.T) {
	d, err := parseMoney("$1,234.50")
	require.NoError(t, err)
	assert.Equal(t, "1234.5", d.String())

	_, err = parseMoney("twelve")
	assert.Error(t, err)
}

func TestListenAddr(t *testing.T) {
	t.Setenv("PORT", "")
	assert.Equal(t, ":8080", listenAddr())
	t.Setenv("PORT", "9090")
	assert.Equal(t, ":9090", listenAddr())
}
