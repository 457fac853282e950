package model

// EVMRow is one row of the evm_timeseries table: the joined facts plus the
// derived KPIs for a (ProjectID, WorkElementID, Period) cell. Undefined
// ratios (zero denominators, unmatched joins) are NaN, never errors.
type EVMRow struct {
	ProjectID     string  `json:"project_id"`
	WorkElementID string  `json:"wbs"`
	Period        string  `json:"period"`
	EV            float64 `json:"ev"`
	PV            float64 `json:"pv"`
	AC            float64 `json:"ac"`
	BAC           float64 `json:"bac"`
	CPI           float64 `json:"cpi"`
	SPI           float64 `json:"spi"`
	EAC           float64 `json:"eac"`
	VAC           float64 `json:"vac"`
	CV            float64 `json:"cv"`
	SV            float64 `json:"sv"`
}

// Run is one simulated iteration for a project.
type Run struct {
	ProjectID              string  `json:"project_id"`
	EAC                    float64 `json:"eac"`
	FinishDaysOverBaseline float64 `json:"finish_days_over_baseline"`
}

// Summary is the per-project percentile reduction over its runs.
type Summary struct {
	ProjectID string  `json:"project_id"`
	EACP10    float64 `json:"eac_p10"`
	EACP50    float64 `json:"eac_p50"`
	EACP80    float64 `json:"eac_p80"`
	FinishP10 float64 `json:"finish_p10"`
	FinishP50 float64 `json:"finish_p50"`
	FinishP80 float64 `json:"finish_p80"`
}

// CurvePoint is one point of a project's cumulative distribution curve.
type CurvePoint struct {
	ProjectID string  `json:"project_id"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	CDF       float64 `json:"cdf"`
}

// DelayImpact is one aggregated procurement impact row per
// (WorkElementID, Vendor).
type DelayImpact struct {
	WorkElementID string  `json:"wbs"`
	Vendor        string  `json:"vendor"`
	DelayDays     float64 `json:"delay_days"`
	DelayCost     float64 `json:"delay_cost"`
}
