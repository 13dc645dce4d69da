package wizard

import "crm-golang/internal/storage"

// NewRecord returns an empty deal record with the same defaults the
// create-deal form starts from.
func NewRecord() *storage.DealRecord {
	return &storage.DealRecord{
		DealType:          "new-business",
		Country:           "US",
		PipelineID:        "default-pipeline",
		Currency:          "USD",
		StageID:           "qualification",
		Probability:       10,
		Products:          []storage.DealProduct{},
		PlannedActivities: []storage.PlannedActivity{},
		Tags:              []string{},
	}
}

// syncAmount keeps Amount equal to the sum of the four fee components.
// Amount stops being independently editable once fees are in play.
func syncAmount(r *storage.DealRecord) {
	r.Amount = r.PlatformFee + r.CustomFee + r.LicenseFee + r.OnboardingFee
}

// FeesTotal is the live fee sum, regardless of what Amount currently holds.
func FeesTotal(r *storage.DealRecord) float64 {
	return r.PlatformFee + r.CustomFee + r.LicenseFee + r.OnboardingFee
}

// ProductsTotal sums the append-time snapshots of all line items. It is a
// separate figure from Amount and is never folded into it.
func ProductsTotal(r *storage.DealRecord) float64 {
	var sum float64
	for _, p := range r.Products {
		sum += p.TotalPrice
	}
	return sum
}

// WeightedValue is the probability-weighted deal value, display only.
// It is never written back into the record.
func WeightedValue(r *storage.DealRecord) float64 {
	return r.Amount * float64(r.Probability) / 100
}

func cloneRecord(r *storage.DealRecord) storage.DealRecord {
	out := *r
	out.Products = append([]storage.DealProduct(nil), r.Products...)
	out.PlannedActivities = append([]storage.PlannedActivity(nil), r.PlannedActivities...)
	out.Tags = append([]string(nil), r.Tags...)
	return out
}
