package wizard

// StepID identifies one section of the create-deal wizard.
type StepID string

const (
	StepOwnership   StepID = "ownership"
	StepBasic       StepID = "basic"
	StepFinancial   StepID = "financial"
	StepActivities  StepID = "activities"
	StepAttachments StepID = "attachments"
)

type Step struct {
	ID       StepID
	Title    string
	Required bool
}

// Steps is the wizard order. It is process-wide configuration, not user
// data, and the controller never mutates it.
var Steps = []Step{
	{ID: StepOwnership, Title: "Ownership & Classification", Required: true},
	{ID: StepBasic, Title: "Basic Information", Required: true},
	{ID: StepFinancial, Title: "Financial Details", Required: true},
	{ID: StepActivities, Title: "Activity Planning", Required: false},
	{ID: StepAttachments, Title: "Attachments", Required: false},
}

func stepIndex(id StepID) int {
	for i, s := range Steps {
		if s.ID == id {
			return i
		}
	}
	return -1
}
