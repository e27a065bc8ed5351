package billing

import "strings"

// Plan describes one subscription tier.
type Plan struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Interval string   `json:"interval"`
	Features []string `json:"features"`
	PriceID  string   `json:"priceId,omitempty"`
}

const (
	PlanFree       = "free"
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"
)

// PriceIDs are the provider price references for the paid tiers.
type PriceIDs struct {
	Premium    string
	Enterprise string
}

var planOrder = []string{PlanFree, PlanPremium, PlanEnterprise}

// Catalog is the fixed plan table. It is not modified after construction.
type Catalog struct {
	plans map[string]Plan
}

func NewCatalog(ids PriceIDs) *Catalog {
	return &Catalog{plans: map[string]Plan{
		PlanFree: {
			Name:     "Free",
			Price:    0,
			Interval: "month",
			Features: []string{
				"Public profile",
				"Activity history (last 10 entries)",
				"In-app notifications",
			},
		},
		PlanPremium: {
			Name:     "Premium",
			Price:    19,
			Interval: "month",
			Features: []string{
				"Everything in Free",
				"Full activity history",
				"Certifications showcase",
				"Priority support",
			},
			PriceID: ids.Premium,
		},
		PlanEnterprise: {
			Name:     "Enterprise",
			Price:    99,
			Interval: "month",
			Features: []string{
				"Everything in Premium",
				"Team management",
				"Custom integrations",
				"Dedicated account manager",
			},
			PriceID: ids.Enterprise,
		},
	}}
}

// Lookup finds a plan by key, case-insensitively.
func (c *Catalog) Lookup(name string) (Plan, bool) {
	p, ok := c.plans[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Plan{}, false
	}
	return clonePlan(p), true
}

// Plans lists every tier from free to enterprise.
func (c *Catalog) Plans() []Plan {
	out := make([]Plan, 0, len(planOrder))
	for _, k := range planOrder {
		out = append(out, clonePlan(c.plans[k]))
	}
	return out
}

func clonePlan(p Plan) Plan {
	p.Features = append([]string(nil), p.Features...)
	return p
}
