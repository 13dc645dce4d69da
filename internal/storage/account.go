package storage

import "time"

type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Domain    *string   `json:"domain"`
	Industry  *string   `json:"industry"`
	Size      string    `json:"size"`
	Revenue   *float64  `json:"revenue"`
	Website   *string   `json:"website"`
	Phone     *string   `json:"phone"`
	Country   *string   `json:"country"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountEnrichment is the stored company-intelligence snapshot for one
// account. It is only ever written from data the CRM already holds;
// external enrichment providers would overwrite the same slot.
type AccountEnrichment struct {
	AccountID     string    `json:"account_id"`
	Website       *string   `json:"website"`
	LinkedinURL   *string   `json:"linkedin_url"`
	Industry      *string   `json:"industry"`
	Employees     *int      `json:"employees"`
	AnnualRevenue *float64  `json:"annual_revenue"`
	FoundedYear   *int      `json:"founded_year"`
	Headquarters  *string   `json:"headquarters"`
	Phone         *string   `json:"phone"`
	Description   *string   `json:"description"`
	Technologies  []string  `json:"technologies"`
	Competitors   []string  `json:"competitors"`
	FundingStage  string    `json:"funding_stage"`
	HealthScore   int       `json:"health_score"`
	DataSources   []string  `json:"data_sources"`
	Confidence    int       `json:"confidence"`
	LastEnriched  time.Time `json:"last_enriched"`
}

type Contact struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	Position   *string   `json:"position"`
	Department *string   `json:"department"`
	AccountID  *string   `json:"account_id"`
	OwnerID    string    `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
