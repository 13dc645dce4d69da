package storage

// Pipeline configuration edited from the admin panel. Stages carry the
// default probability a deal gets when moved into them.
type Pipeline struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	IsDefault bool            `json:"is_default"`
	Stages    []PipelineStage `json:"stages"`
}

type PipelineStage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Position    int    `json:"position"`
	Probability int    `json:"probability"`
	IsClosedWon bool   `json:"is_closed_won"`
}

type DashboardSummary struct {
	LeadCount     int                `json:"lead_count"`
	AccountCount  int                `json:"account_count"`
	ContactCount  int                `json:"contact_count"`
	OpenDeals     int                `json:"open_deals"`
	PipelineValue float64            `json:"pipeline_value"`
	WeightedValue float64            `json:"weighted_value"`
	DealsByStage  map[string]int     `json:"deals_by_stage"`
	ValueByStage  map[string]float64 `json:"value_by_stage"`
}
