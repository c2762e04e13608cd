// Package billing wraps the Stripe integration: the static plans catalog,
// checkout session creation and webhook parsing.
package billing

import "ayitichat/internal/domain/models"

// Plans is the static upgrade catalog. Prices are USD per month; the ids
// match the Stripe price lookup keys configured in the dashboard.
var Plans = []models.Plan{
	{
		ID:       "plus",
		Name:     "Plus",
		Price:    20,
		Interval: "month",
		Features: []string{
			"Solve complex problems",
			"More messages and uploads",
			"Access to advanced models",
			"Projects, tasks and custom instructions",
		},
		StripePriceID: "price_plus_monthly",
	},
	{
		ID:       "pro",
		Name:     "Pro",
		Price:    200,
		Interval: "month",
		Features: []string{
			"Everything in Plus",
			"Unlimited access to all models",
			"Extended context and memory",
			"Priority access at peak times",
		},
		StripePriceID: "price_pro_monthly",
	},
	{
		ID:       "team",
		Name:     "Team",
		Price:    30,
		Interval: "month",
		Features: []string{
			"Everything in Plus for your team",
			"Shared workspace and admin console",
			"Team data excluded from training",
		},
		StripePriceID: "price_team_monthly",
	},
}

// PlanByID returns the catalog entry for an id.
func PlanByID(id string) (models.Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return models.Plan{}, false
}
