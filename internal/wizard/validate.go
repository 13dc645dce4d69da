package wizard

import "crm-golang/internal/storage"

// ValidateStep maps a wizard step and the current record to field-level
// error messages. Empty map means the step is passable. The function is
// pure: no writes to the record, no accumulated state between calls.
func ValidateStep(step StepID, r *storage.DealRecord) map[string]string {
	errs := map[string]string{}

	switch step {
	case StepOwnership:
		if r.OwnerID == "" {
			errs["owner_id"] = "Deal owner is required"
		}
		if r.DealType == "" {
			errs["deal_type"] = "Deal type is required"
		}
		if r.Country == "" {
			errs["country"] = "Country is required"
		}
	case StepBasic:
		if r.Name == "" {
			errs["name"] = "Deal name is required"
		}
		if r.PipelineID == "" {
			errs["pipeline_id"] = "Pipeline is required"
		}
		if r.Amount <= 0 {
			errs["amount"] = "Amount must be greater than 0"
		}
	case StepFinancial:
		// The live calculator keeps these synced; a mismatch here is a
		// validation error, never an auto-correction.
		if r.Amount != FeesTotal(r) {
			errs["amount"] = "Total fees must equal deal amount"
		}
	}

	return errs
}
