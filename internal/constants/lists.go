package constants

// Select options the create-deal form offers. Static configuration, the
// admin panel does not edit these.

var DealTypes = []string{
	"new-business",
	"existing-business",
	"upsell",
	"renewal",
	"cross-sell",
}

var Countries = []string{"US", "UK", "CA", "AU", "DE", "FR"}

var Currencies = []string{"USD", "EUR", "GBP", "CAD", "AUD"}

var Stages = []string{
	"qualification",
	"proposal",
	"negotiation",
	"closed-won",
	"closed-lost",
}

var ActivityTypes = []string{"call", "email", "meeting", "task", "note"}
