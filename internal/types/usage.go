package types

// TokenStats holds per-category token counts for an aggregated row.
type TokenStats struct {
	Input      int `json:"input"`
	Output     int `json:"output"`
	Reasoning  int `json:"reasoning"`
	CacheRead  int `json:"cache_read"`
	CacheWrite int `json:"cache_write"`
	Total      int `json:"total"`
}

// UsageRow is a single aggregated usage row returned by the store.
// Label is the grouping value (date, model, agent, provider or session
// title). Detail is only set for the agent grouping, where it carries
// the model that agent used.
type UsageRow struct {
	Label  string     `json:"label"`
	Calls  int        `json:"calls"`
	Tokens TokenStats `json:"tokens"`
	Cost   float64    `json:"cost"`
	Detail string     `json:"model,omitempty"`
}

// Report is the top-level JSON output document.
type Report struct {
	Period string      `json:"period"`
	Total  ReportRow   `json:"total"`
	Rows   []ReportRow `json:"rows"`
}

// ReportRow is a UsageRow serialized for JSON output, with cost
// rounded to four decimal places.
type ReportRow struct {
	Label  string     `json:"label"`
	Calls  int        `json:"calls"`
	Tokens TokenStats `json:"tokens"`
	Cost   float64    `json:"cost"`
	Model  string     `json:"model,omitempty"`
}

// Dimension is a grouping dimension for aggregation queries.
type Dimension string

const (
	GroupByDay      Dimension = "day"
	GroupByModel    Dimension = "model"
	GroupByAgent    Dimension = "agent"
	GroupByProvider Dimension = "provider"
	GroupBySession  Dimension = "session"
)

// Dimensions lists the valid grouping dimensions in display order.
func Dimensions() []Dimension {
	return []Dimension{GroupByDay, GroupByModel, GroupByAgent, GroupByProvider, GroupBySession}
}

// Valid reports whether d names a known grouping dimension.
func (d Dimension) Valid() bool {
	switch d {
	case GroupByDay, GroupByModel, GroupByAgent, GroupByProvider, GroupBySession:
		return true
	}
	return false
}
