package scenario

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kilianp07/dispatchsim/config"
	"github.com/kilianp07/dispatchsim/core/demand"
)

// ErrNoColumn is returned when the configured CSV column is missing.
var ErrNoColumn = errors.New("demand column not found")

// LoadDemand builds the demand curve described by cfg. Inline values win
// over the file.
func LoadDemand(cfg config.DemandConfig) (*demand.AnnualCurve, error) {
	name := "inline"
	values := cfg.Values
	if len(values) == 0 {
		data, err := os.ReadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("read demand: %w", err)
		}
		switch cfg.Format {
		case "csv":
			values, err = ParseCSV(bytes.NewReader(data), cfg.Column)
		case "json":
			values, err = ParseJSON(data)
		default:
			err = fmt.Errorf("unsupported demand format %q", cfg.Format)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Path, err)
		}
		name = strings.TrimSuffix(filepath.Base(cfg.Path), filepath.Ext(cfg.Path))
	}
	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = v * cfg.Scale
	}
	return demand.NewAnnualCurve(name, cfg.Unit, scaled)
}

// ParseCSV reads one numeric column. When column is empty the last column
// is used. A first row that does not parse as a number is a header.
func ParseCSV(r io.Reader, column string) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, demand.ErrInvalidCurve
	}
	idx := len(rows[0]) - 1
	start := 0
	if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][idx]), 64); err != nil || column != "" {
		start = 1
		if column != "" {
			idx = -1
			for i, h := range rows[0] {
				if strings.EqualFold(strings.TrimSpace(h), column) {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, fmt.Errorf("%w: %s", ErrNoColumn, column)
			}
		}
	}
	out := make([]float64, 0, len(rows)-start)
	for n, row := range rows[start:] {
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if idx >= len(row) {
			return nil, fmt.Errorf("row %d: missing column %d", n+start+1, idx+1)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+start+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseJSON accepts either a bare array of numbers or an object with a
// "values" array.
func ParseJSON(data []byte) ([]float64, error) {
	var values []float64
	if err := json.Unmarshal(data, &values); err == nil {
		return values, nil
	}
	var doc struct {
		Values []float64 `json:"values"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Values == nil {
		return nil, errors.New(`json demand needs an array or a "values" field`)
	}
	return doc.Values, nil
}
