// Package export writes dispatch results for external consumers.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/kilianp07/dispatchsim/core/dispatch"
	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
)

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes the report to w with one row per period. Columns are
// period, demand, residual and one column per asset in dispatch order.
func WriteCSV(w io.Writer, r dispatch.Report) error {
	cw := csv.NewWriter(w)
	header := append([]string{"period", "demand", "residual"}, r.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range r.Rows() {
		rec := make([]string, 0, len(header))
		rec = append(rec, strconv.Itoa(row.Period), formatFloat(row.Demand), formatFloat(row.Residual))
		for _, d := range row.Dispatch {
			rec = append(rec, formatFloat(d))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonRow struct {
	Period   int                `json:"period"`
	Demand   float64            `json:"demand"`
	Residual float64            `json:"residual"`
	Dispatch map[string]float64 `json:"dispatch"`
}

type jsonReport struct {
	RunID   string    `json:"run_id"`
	Columns []string  `json:"columns"`
	Rows    []jsonRow `json:"rows"`
}

// WriteJSON writes the report to w in JSON format.
func WriteJSON(w io.Writer, r dispatch.Report) error {
	out := jsonReport{RunID: r.RunID, Columns: r.Columns, Rows: make([]jsonRow, 0, len(r.Demand))}
	for _, row := range r.Rows() {
		jr := jsonRow{Period: row.Period, Demand: row.Demand, Residual: row.Residual, Dispatch: make(map[string]float64, len(r.Columns))}
		for i, name := range r.Columns {
			jr.Dispatch[name] = row.Dispatch[i]
		}
		out.Rows = append(out.Rows, jr)
	}
	return json.NewEncoder(w).Encode(out)
}

// WriteCostsCSV writes the cost summary of a pass. Undefined levelized
// costs are written as empty cells.
func WriteCostsCSV(w io.Writer, costs []dispatch.AssetCost) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"asset", "energy", "annual_cost", "levelized_cost"}); err != nil {
		return err
	}
	for _, c := range costs {
		annual, levelized := "", ""
		if c.HasAnnual {
			annual = formatFloat(c.AnnualCost)
		}
		if c.HasLevelized {
			levelized = formatFloat(c.LevelizedCost)
		}
		if err := cw.Write([]string{c.Name, formatFloat(c.Energy), annual, levelized}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResultJSON writes a run result. Undefined levelized costs are null.
func WriteResultJSON(w io.Writer, res coremetrics.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteRecordsCSV writes a ranked group table.
func WriteRecordsCSV(w io.Writer, category string, records []dispatch.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "rank", "asset", "technology", "criterion", "capacity", "firm_capacity"}); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{
			category,
			strconv.Itoa(r.Rank),
			r.Name,
			r.Technology,
			formatFloat(r.Criterion),
			formatFloat(r.Capacity),
			formatFloat(r.FirmCapacity),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
