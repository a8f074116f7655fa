package compare

import (
	"github.com/goccy/go-json"
)

// JSONFormatter formats offer comparisons as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for an offer comparison
func (jf *JSONFormatter) Format(comparison *OfferComparison) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(comparison, "", "  ")
	} else {
		data, err = json.Marshal(comparison)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
