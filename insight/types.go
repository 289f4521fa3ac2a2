package insight

// Trend is the direction of a regional metric relative to the company.
type Trend string

const (
	Up     Trend = "up"
	Down   Trend = "down"
	Stable Trend = "stable"
)

// Direction is the direction of a metric over time.
type Direction string

const (
	Increasing  Direction = "increasing"
	Decreasing  Direction = "decreasing"
	Steady      Direction = "stable"
	Fluctuating Direction = "fluctuating"
)

// RegionalInsight compares one region's metric with the company-wide figure.
type RegionalInsight struct {
	Region           string  `json:"region"`
	Metric           string  `json:"metric"`
	Value            float64 `json:"value"`
	Trend            Trend   `json:"trend"`
	PercentageChange float64 `json:"percentageChange"`
	Comparison       string  `json:"comparison,omitempty"`
}

// TrendInsight describes how a metric moved over a period.
type TrendInsight struct {
	Metric           string    `json:"metric"`
	Period           string    `json:"period"`
	Direction        Direction `json:"direction"`
	PercentageChange float64   `json:"percentageChange"`
	Seasonality      string    `json:"seasonality,omitempty"`
	Forecast         string    `json:"forecast,omitempty"`
}

// AnomalyInsight flags an observation outside its expected range.
type AnomalyInsight struct {
	Metric        string     `json:"metric"`
	Value         float64    `json:"value"`
	ExpectedRange [2]float64 `json:"expectedRange"`
	Deviation     float64    `json:"deviation"`
	Period        string     `json:"period"`
	PossibleCause string     `json:"possibleCause,omitempty"`
}

// Insights groups the three finding types of a response.
type Insights struct {
	Regional  []RegionalInsight `json:"regional,omitempty"`
	Trends    []TrendInsight    `json:"trends,omitempty"`
	Anomalies []AnomalyInsight  `json:"anomalies,omitempty"`
}

// IsEmpty reports whether no findings are present.
func (in Insights) IsEmpty() bool {
	return len(in.Regional) == 0 && len(in.Trends) == 0 && len(in.Anomalies) == 0
}

// Clone returns a copy that shares no slices with in.
func (in Insights) Clone() Insights {
	return Insights{
		Regional:  append([]RegionalInsight(nil), in.Regional...),
		Trends:    append([]TrendInsight(nil), in.Trends...),
		Anomalies: append([]AnomalyInsight(nil), in.Anomalies...),
	}
}
