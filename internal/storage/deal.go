package storage

import "time"

type Deal struct {
	ID         string `json:"id"`
	DealNumber int64  `json:"deal_number"`
	Name       string `json:"name"`

	OwnerID  string `json:"owner_id"`
	DealType string `json:"deal_type"`
	Country  string `json:"country"`

	PipelineID  string  `json:"pipeline_id"`
	AccountID   *string `json:"account_id"`
	ContactID   *string `json:"contact_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	ClosingDate *string `json:"closing_date"`
	StageID     string  `json:"stage_id"`
	Probability int     `json:"probability"`

	PlatformFee   float64 `json:"platform_fee"`
	CustomFee     float64 `json:"custom_fee"`
	LicenseFee    float64 `json:"license_fee"`
	OnboardingFee float64 `json:"onboarding_fee"`

	Products          []DealProduct     `json:"products"`
	PlannedActivities []PlannedActivity `json:"planned_activities"`

	Description string    `json:"description"`
	NextSteps   string    `json:"next_steps"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DealProduct is a line item. TotalPrice is frozen at append time and is
// never recomputed from later edits to UnitPrice/Discount.
type DealProduct struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Discount     float64 `json:"discount"`
	DiscountType string  `json:"discount_type"`
	TotalPrice   float64 `json:"total_price"`
}

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type PlannedActivity struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ScheduledAt *string `json:"scheduled_at"`
	AssignedTo  string  `json:"assigned_to"`
	Status      string  `json:"status"`
}

const ActivityStatusPlanned = "planned"

// DealRecord is the wizard aggregate: everything the create-deal form
// collects before submission. It is what the draft slot serializes and
// what POST /api/deals accepts.
type DealRecord struct {
	OwnerID  string `json:"owner_id"`
	DealType string `json:"deal_type"`
	Country  string `json:"country"`

	Name        string  `json:"name"`
	PipelineID  string  `json:"pipeline_id"`
	AccountID   string  `json:"account_id"`
	ContactID   string  `json:"contact_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	ClosingDate string  `json:"closing_date"`
	StageID     string  `json:"stage_id"`
	Probability int     `json:"probability"`

	PlatformFee   float64 `json:"platform_fee"`
	CustomFee     float64 `json:"custom_fee"`
	LicenseFee    float64 `json:"license_fee"`
	OnboardingFee float64 `json:"onboarding_fee"`

	Products          []DealProduct     `json:"products"`
	PlannedActivities []PlannedActivity `json:"planned_activities"`

	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	NextSteps   string   `json:"next_steps"`
}
