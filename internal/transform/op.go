// Package transform maps wire operation requests onto the fixed catalog of
// table transformations and statistical analyses, and applies them.
package transform

import (
	"fmt"
	"strconv"

	"sheetprep/internal/dataset"
)

// Kind enumerates the operation catalog.
type Kind int

const (
	KindDropMissing Kind = iota
	KindFillMean
	KindFillMedian
	KindFillConstant
	KindOutlierIQR
	KindOutlierZScore
	KindDropDuplicates
	KindScaleZScore
	KindScaleMinMax
	KindCorrelation
	KindTTestOneSample
	KindTTestTwoSample
	KindChiSquare
)

func (k Kind) String() string {
	switch k {
	case KindDropMissing:
		return "drop_missing"
	case KindFillMean:
		return "fill_mean"
	case KindFillMedian:
		return "fill_median"
	case KindFillConstant:
		return "fill_constant"
	case KindOutlierIQR:
		return "outlier_iqr"
	case KindOutlierZScore:
		return "outlier_zscore"
	case KindDropDuplicates:
		return "drop_duplicates"
	case KindScaleZScore:
		return "scale_zscore"
	case KindScaleMinMax:
		return "scale_minmax"
	case KindCorrelation:
		return "correlation"
	case KindTTestOneSample:
		return "t_test_one_sample"
	case KindTTestTwoSample:
		return "t_test_two_sample"
	case KindChiSquare:
		return "chi_square"
	}
	return "unknown"
}

// Mutates reports whether the operation rewrites the table (as opposed to
// producing a statistic summary only).
func (k Kind) Mutates() bool {
	switch k {
	case KindCorrelation, KindTTestOneSample, KindTTestTwoSample, KindChiSquare:
		return false
	}
	return true
}

// Defaults for optional parameters.
const (
	DefaultZThreshold = 3.0
	DefaultIQRFence   = 1.5
	HighCorrThreshold = 0.7
)

// Op is a parsed, typed operation request.
type Op struct {
	Kind Kind

	// Columns restricts the operation to named columns; empty means all
	// applicable columns.
	Columns []string

	FillValue string  // constant fill literal
	Threshold float64 // z-score fence
	Fence     float64 // IQR multiplier

	Column1   string  // test column / first sample
	Column2   string  // second sample / second categorical
	TestValue float64 // hypothesized mean for the one-sample t-test
}

// Request is the wire form: an operation name plus a loose parameter map.
type Request struct {
	Operation  string         `json:"operation"`
	Parameters map[string]any `json:"parameters"`
}

// Parse validates the request against the catalog and returns the typed
// operation. Unknown operations and methods fail with InvalidOperation.
func (r Request) Parse() (Op, error) {
	p := params(r.Parameters)
	switch r.Operation {
	case "missing_values":
		method := p.str("method", "drop")
		cols, err := p.columns()
		if err != nil {
			return Op{}, err
		}
		switch method {
		case "drop":
			return Op{Kind: KindDropMissing, Columns: cols}, nil
		case "fill_mean":
			return Op{Kind: KindFillMean, Columns: cols}, nil
		case "fill_median":
			return Op{Kind: KindFillMedian, Columns: cols}, nil
		case "fill_value":
			v, ok := p.raw("fill_value")
			if !ok {
				return Op{}, dataset.E(dataset.KindInvalidOperation, "missing_values: fill_value method requires a fill_value parameter")
			}
			return Op{Kind: KindFillConstant, Columns: cols, FillValue: literal(v)}, nil
		}
		return Op{}, dataset.E(dataset.KindInvalidOperation, "missing_values: unknown method %q", method)

	case "outliers":
		method := p.str("method", "iqr")
		cols, err := p.columns()
		if err != nil {
			return Op{}, err
		}
		switch method {
		case "iqr":
			fence, err := p.num("fence", DefaultIQRFence)
			if err != nil {
				return Op{}, err
			}
			return Op{Kind: KindOutlierIQR, Columns: cols, Fence: fence}, nil
		case "zscore":
			threshold, err := p.num("threshold", DefaultZThreshold)
			if err != nil {
				return Op{}, err
			}
			return Op{Kind: KindOutlierZScore, Columns: cols, Threshold: threshold}, nil
		}
		return Op{}, dataset.E(dataset.KindInvalidOperation, "outliers: unknown method %q", method)

	case "duplicates":
		cols, err := p.columns()
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: KindDropDuplicates, Columns: cols}, nil

	case "standardization":
		method := p.str("method", "zscore")
		cols, err := p.columns()
		if err != nil {
			return Op{}, err
		}
		switch method {
		case "zscore":
			return Op{Kind: KindScaleZScore, Columns: cols}, nil
		case "minmax":
			return Op{Kind: KindScaleMinMax, Columns: cols}, nil
		}
		return Op{}, dataset.E(dataset.KindInvalidOperation, "standardization: unknown method %q", method)

	case "correlation":
		cols, err := p.columns()
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: KindCorrelation, Columns: cols}, nil

	case "t_test":
		col1 := p.str("column1", "")
		if col1 == "" {
			return Op{}, dataset.E(dataset.KindInvalidOperation, "t_test: column1 is required")
		}
		if col2 := p.str("column2", ""); col2 != "" {
			return Op{Kind: KindTTestTwoSample, Column1: col1, Column2: col2}, nil
		}
		if v, ok := p.raw("value"); ok {
			mu, err := toFloat(v, "value")
			if err != nil {
				return Op{}, err
			}
			return Op{Kind: KindTTestOneSample, Column1: col1, TestValue: mu}, nil
		}
		return Op{}, dataset.E(dataset.KindInvalidOperation, "t_test: provide column2 (two-sample) or value (one-sample)")

	case "chi_square":
		col1 := p.str("column1", "")
		col2 := p.str("column2", "")
		if col1 == "" || col2 == "" {
			return Op{}, dataset.E(dataset.KindInvalidOperation, "chi_square: column1 and column2 are required")
		}
		return Op{Kind: KindChiSquare, Column1: col1, Column2: col2}, nil
	}
	return Op{}, dataset.E(dataset.KindInvalidOperation, "unknown operation %q", r.Operation)
}

type params map[string]any

func (p params) raw(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

func (p params) str(key, def string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func (p params) num(key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	return toFloat(v, key)
}

// columns reads the optional "columns" parameter. A present-but-empty list
// is an explicit empty selection and rejected.
func (p params) columns() ([]string, error) {
	v, ok := p["columns"]
	if !ok {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, dataset.E(dataset.KindInvalidOperation, "columns must be a list of column names")
	}
	if len(list) == 0 {
		return nil, dataset.E(dataset.KindEmptySelection, "columns selection is empty")
	}
	cols := make([]string, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, dataset.E(dataset.KindInvalidOperation, "columns must be a list of column names")
		}
		cols[i] = s
	}
	return cols, nil
}

func toFloat(v any, key string) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err == nil {
			return f, nil
		}
	}
	return 0, dataset.E(dataset.KindInvalidOperation, "%s must be a number, got %v", key, v)
}

// literal renders a parameter value as a cell literal.
func literal(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return dataset.FormatFloat(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
