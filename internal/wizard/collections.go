package wizard

import (
	"sort"

	"github.com/google/uuid"

	"crm-golang/internal/storage"
)

// ProductTotalPrice computes the append-time snapshot for a line item:
// unit price times quantity, reduced by the discount per its type.
func ProductTotalPrice(p storage.DealProduct) float64 {
	gross := p.UnitPrice * p.Quantity
	if p.DiscountType == storage.DiscountFixed {
		return gross - p.Discount
	}
	return gross * (1 - p.Discount/100)
}

// AppendProduct validates the candidate, freezes its total price and
// appends it with a fresh id. Invalid candidates are a no-op.
func AppendProduct(r *storage.DealRecord, candidate storage.DealProduct) (storage.DealProduct, bool) {
	if candidate.Name == "" || candidate.UnitPrice == 0 {
		return storage.DealProduct{}, false
	}
	if candidate.DiscountType == "" {
		candidate.DiscountType = storage.DiscountPercentage
	}
	candidate.ID = uuid.NewString()
	candidate.TotalPrice = ProductTotalPrice(candidate)
	r.Products = append(r.Products, candidate)
	return candidate, true
}

// RemoveProduct filters the collection by id. Removal never touches
// Amount: fees and products are tracked as separate totals.
func RemoveProduct(r *storage.DealRecord, id string) {
	kept := r.Products[:0]
	for _, p := range r.Products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	r.Products = kept
}

// AppendActivity appends a planned follow-up. Title and assignee are
// required; everything else is optional. Status defaults to "planned".
func AppendActivity(r *storage.DealRecord, candidate storage.PlannedActivity) (storage.PlannedActivity, bool) {
	if candidate.Title == "" || candidate.AssignedTo == "" {
		return storage.PlannedActivity{}, false
	}
	candidate.ID = uuid.NewString()
	candidate.Status = storage.ActivityStatusPlanned
	r.PlannedActivities = append(r.PlannedActivities, candidate)
	return candidate, true
}

func RemoveActivity(r *storage.DealRecord, id string) {
	kept := r.PlannedActivities[:0]
	for _, a := range r.PlannedActivities {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	r.PlannedActivities = kept
}

// ScheduledTimeline is the read-only timeline view: only activities with
// a scheduled timestamp, ascending.
func ScheduledTimeline(r *storage.DealRecord) []storage.PlannedActivity {
	var out []storage.PlannedActivity
	for _, a := range r.PlannedActivities {
		if a.ScheduledAt != nil && *a.ScheduledAt != "" {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].ScheduledAt < *out[j].ScheduledAt
	})
	return out
}
