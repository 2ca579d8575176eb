package model

// ConsumerType identifies the internal customer of a collection request.
// Each consumer carries its own budget and cache-freshness defaults.
type ConsumerType string

const (
	ConsumerProfile              ConsumerType = "profile"
	ConsumerVendorContext        ConsumerType = "vendor_context"
	ConsumerCustomerIntelligence ConsumerType = "customer_intelligence"
	ConsumerResearch             ConsumerType = "research"
	ConsumerTest                 ConsumerType = "test"
)

// AllConsumers lists every known consumer type, in cost-attribution order.
var AllConsumers = []ConsumerType{
	ConsumerProfile,
	ConsumerVendorContext,
	ConsumerCustomerIntelligence,
	ConsumerResearch,
	ConsumerTest,
}
