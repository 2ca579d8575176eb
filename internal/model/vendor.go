package model

import "time"

// VendorContext is a structured profile of the user's own company, used to
// contextualize intelligence gathered about a prospect. A minimal context
// (name and timestamp only) is valid and signals vendor-lookup failure.
type VendorContext struct {
	CompanyName   string    `json:"company_name"`
	Industry      string    `json:"industry,omitempty"`
	Products      []string  `json:"products,omitempty"`
	TargetMarkets []string  `json:"target_markets,omitempty"`
	Competitors   []string  `json:"competitors,omitempty"`
	Positioning   string    `json:"positioning,omitempty"`
	LastUpdated   time.Time `json:"last_updated"`
}

// IsMinimal reports whether the context carries nothing beyond identity.
func (v *VendorContext) IsMinimal() bool {
	return v.Industry == "" && len(v.Products) == 0 &&
		len(v.TargetMarkets) == 0 && len(v.Competitors) == 0
}

// CustomerIntelligence is the facade's answer to a customer-intelligence
// request: the collected aggregate plus quality and next-step suggestions.
type CustomerIntelligence struct {
	Customer        string           `json:"customer"`
	Vendor          *VendorContext   `json:"vendor,omitempty"`
	Data            *MultiSourceData `json:"data"`
	QualityScore    float64          `json:"quality_score"`
	Recommendations []string         `json:"recommendations"`
}
