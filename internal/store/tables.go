package store

import "github.com/gridline-analytics/sitecast/internal/model"

var evmHeader = []string{
	"ProjectID", "WorkElementID", "Period",
	"EV", "PV", "AC", "BAC", "CPI", "SPI", "EAC", "VAC", "CV", "SV",
}

// WriteEVMTimeseries persists the evm_timeseries table in canonical column
// order.
func (s *Store) WriteEVMTimeseries(rows []model.EVMRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.ProjectID, r.WorkElementID, r.Period,
			formatFloat(r.EV), formatFloat(r.PV), formatFloat(r.AC), formatFloat(r.BAC),
			formatFloat(r.CPI), formatFloat(r.SPI), formatFloat(r.EAC), formatFloat(r.VAC),
			formatFloat(r.CV), formatFloat(r.SV),
		})
	}
	return s.writeTable(EVMTimeseriesFile, evmHeader, records)
}

// ReadEVMTimeseries loads the evm_timeseries table.
func (s *Store) ReadEVMTimeseries() ([]model.EVMRow, error) {
	header, records, err := s.readTable(EVMTimeseriesFile)
	if err != nil {
		return nil, err
	}
	idx := indexOf(header)

	rows := make([]model.EVMRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, model.EVMRow{
			ProjectID:     cell(rec, idx.col("ProjectID")),
			WorkElementID: cell(rec, idx.col("WorkElementID")),
			Period:        cell(rec, idx.col("Period")),
			EV:            parseFloat(cell(rec, idx.col("EV"))),
			PV:            parseFloat(cell(rec, idx.col("PV"))),
			AC:            parseFloat(cell(rec, idx.col("AC"))),
			BAC:           parseFloat(cell(rec, idx.col("BAC"))),
			CPI:           parseFloat(cell(rec, idx.col("CPI"))),
			SPI:           parseFloat(cell(rec, idx.col("SPI"))),
			EAC:           parseFloat(cell(rec, idx.col("EAC"))),
			VAC:           parseFloat(cell(rec, idx.col("VAC"))),
			CV:            parseFloat(cell(rec, idx.col("CV"))),
			SV:            parseFloat(cell(rec, idx.col("SV"))),
		})
	}
	return rows, nil
}

// WriteRuns persists one row per simulated iteration per project.
func (s *Store) WriteRuns(runs []model.Run) error {
	records := make([][]string, 0, len(runs))
	for _, r := range runs {
		records = append(records, []string{
			r.ProjectID, formatFloat(r.EAC), formatFloat(r.FinishDaysOverBaseline),
		})
	}
	return s.writeTable(RunsFile, []string{"ProjectID", "EAC", "FinishDaysOverBaseline"}, records)
}

// ReadRuns loads the monte_carlo_runs table.
func (s *Store) ReadRuns() ([]model.Run, error) {
	header, records, err := s.readTable(RunsFile)
	if err != nil {
		return nil, err
	}
	idx := indexOf(header)

	runs := make([]model.Run, 0, len(records))
	for _, rec := range records {
		runs = append(runs, model.Run{
			ProjectID:              cell(rec, idx.col("ProjectID")),
			EAC:                    parseFloat(cell(rec, idx.col("EAC"))),
			FinishDaysOverBaseline: parseFloat(cell(rec, idx.col("FinishDaysOverBaseline"))),
		})
	}
	return runs, nil
}

var summaryHeader = []string{
	"ProjectID", "EAC_P10", "EAC_P50", "EAC_P80", "Finish_P10", "Finish_P50", "Finish_P80",
}

// WriteSummary persists the per-project percentile summary.
func (s *Store) WriteSummary(summaries []model.Summary) error {
	records := make([][]string, 0, len(summaries))
	for _, r := range summaries {
		records = append(records, []string{
			r.ProjectID,
			formatFloat(r.EACP10), formatFloat(r.EACP50), formatFloat(r.EACP80),
			formatFloat(r.FinishP10), formatFloat(r.FinishP50), formatFloat(r.FinishP80),
		})
	}
	return s.writeTable(SummaryFile, summaryHeader, records)
}

// ReadSummary loads the monte_carlo_summary table.
func (s *Store) ReadSummary() ([]model.Summary, error) {
	header, records, err := s.readTable(SummaryFile)
	if err != nil {
		return nil, err
	}
	idx := indexOf(header)

	summaries := make([]model.Summary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, model.Summary{
			ProjectID: cell(rec, idx.col("ProjectID")),
			EACP10:    parseFloat(cell(rec, idx.col("EAC_P10"))),
			EACP50:    parseFloat(cell(rec, idx.col("EAC_P50"))),
			EACP80:    parseFloat(cell(rec, idx.col("EAC_P80"))),
			FinishP10: parseFloat(cell(rec, idx.col("Finish_P10"))),
			FinishP50: parseFloat(cell(rec, idx.col("Finish_P50"))),
			FinishP80: parseFloat(cell(rec, idx.col("Finish_P80"))),
		})
	}
	return summaries, nil
}

// WriteCurve persists the forecast_s_curves table.
func (s *Store) WriteCurve(points []model.CurvePoint) error {
	records := make([][]string, 0, len(points))
	for _, p := range points {
		records = append(records, []string{
			p.ProjectID, p.Metric, formatFloat(p.Value), formatFloat(p.CDF),
		})
	}
	return s.writeTable(CurveFile, []string{"ProjectID", "Metric", "Value", "CDF"}, records)
}

// ReadCurve loads the forecast_s_curves table.
func (s *Store) ReadCurve() ([]model.CurvePoint, error) {
	header, records, err := s.readTable(CurveFile)
	if err != nil {
		return nil, err
	}
	idx := indexOf(header)

	points := make([]model.CurvePoint, 0, len(records))
	for _, rec := range records {
		points = append(points, model.CurvePoint{
			ProjectID: cell(rec, idx.col("ProjectID")),
			Metric:    cell(rec, idx.col("Metric")),
			Value:     parseFloat(cell(rec, idx.col("Value"))),
			CDF:       parseFloat(cell(rec, idx.col("CDF"))),
		})
	}
	return points, nil
}

// WriteScheduleFacts persists the ingested schedule facts for the EVM stage.
func (s *Store) WriteScheduleFacts(facts []model.ScheduleFact) error {
	records := make([][]string, 0, len(facts))
	for _, f := range facts {
		records = append(records, []string{
			f.ProjectID, f.WorkElementID,
			formatFloat(f.PercentComplete), formatFloat(f.BudgetAtCompletion),
		})
	}
	return s.writeTable(ScheduleFile,
		[]string{"ProjectID", "WorkElementID", "PercentComplete", "BudgetAtCompletion"}, records)
}

// ReadScheduleFacts loads the ingested schedule facts.
func (s *Store) ReadScheduleFacts() ([]model.ScheduleFact, error) {
	header, records, err := s.readTable(ScheduleFile)
	if err != nil {
		return nil, err
	}
	idx := indexOf(header)

	facts := make([]model.ScheduleFact, 0, len(records))
	for _, rec := range records {
		facts = append(facts, model.ScheduleFact{
			ProjectID:          cell(rec, idx.col("ProjectID")),
			WorkElementID:      cell(rec, idx.col("WorkElementID")),
			PercentComplete:    parseFloat(cell(rec, idx.col("PercentComplete"))),
			BudgetAtCompletion: parseFloat(cell(rec, idx.col("BudgetAtCompletion"))),
		})
	}
	return facts, nil
}

// WriteImpacts persists the aggregated procurement impacts.
func (s *Store) WriteImpacts(impacts []model.DelayImpact) error {
	records := make([][]string, 0, len(impacts))
	for _, im := range impacts {
		records = append(records, []string{
			im.WorkElementID, im.Vendor, formatFloat(im.DelayDays), formatFloat(im.DelayCost),
		})
	}
	return s.writeTable(ImpactsFile,
		[]string{"WorkElementID", "Vendor", "DelayDays", "DelayCost"}, records)
}

// indexOf maps header names to positions; names absent from the header map
// to -1, which cell() treats as an empty field.
func indexOf(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return idx
}

type headerIndex map[string]int

func (h headerIndex) col(name string) int {
	if i, ok := h[name]; ok {
		return i
	}
	return -1
}
