package dispatch

// Report is the tabular view of a pass: one column per dispatched asset in
// dispatch order, plus demand and residual demand.
type Report struct {
	RunID    string
	Columns  []string
	Demand   []float64
	Residual []float64
	// Series[i] is the dispatch of Columns[i].
	Series [][]float64
}

// Row is one period of a Report.
type Row struct {
	Period   int
	Demand   float64
	Residual float64
	Dispatch []float64
}

// Report snapshots the current state of the log.
func (l *Log) Report() Report {
	r := Report{
		RunID:    l.RunID(),
		Columns:  l.Order(),
		Demand:   l.Demand(),
		Residual: l.ResidualDemand(),
	}
	r.Series = make([][]float64, len(r.Columns))
	for i, name := range r.Columns {
		r.Series[i], _ = l.Dispatch(name)
	}
	return r
}

// Rows returns the report period by period.
func (r Report) Rows() []Row {
	rows := make([]Row, len(r.Demand))
	for t := range rows {
		row := Row{Period: t, Demand: r.Demand[t], Residual: r.Residual[t], Dispatch: make([]float64, len(r.Series))}
		for i, s := range r.Series {
			row.Dispatch[i] = s[t]
		}
		rows[t] = row
	}
	return rows
}

// Unserved returns the total positive residual demand.
func (r Report) Unserved() float64 {
	var u float64
	for _, v := range r.Residual {
		if v > 0 {
			u += v
		}
	}
	return u
}
