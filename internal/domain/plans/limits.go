package plans

// Plan names as stored in user_subscriptions.plan.
const (
	Free      = "Free"
	Pro       = "Pro"
	Business  = "Business"
	Unlimited = "Unlimited"
)

// exportLimits maps a plan to its monthly export ceiling. A nil entry means
// the plan has no ceiling.
var exportLimits = map[string]*int{
	Free:      intPtr(3),
	Pro:       intPtr(10),
	Business:  intPtr(50),
	Unlimited: nil,
}

func intPtr(n int) *int { return &n }

// IsKnown reports whether name is one of the sellable plans.
func IsKnown(name string) bool {
	_, ok := exportLimits[name]
	return ok
}

// ExportLimit returns the export ceiling for a plan, nil for unlimited plans
// and for unknown plan names.
func ExportLimit(name string) *int {
	limit, ok := exportLimits[name]
	if !ok || limit == nil {
		return nil
	}
	v := *limit
	return &v
}

// Defaults returns the rows seeded into the plans table at startup. Prices are
// the pricing page's monthly prices in paise.
func Defaults() []Plan {
	return []Plan{
		{Name: Free, PricePaise: 0, Interval: "month", ExportsLimit: ExportLimit(Free)},
		{Name: Pro, PricePaise: 10 * 100, Interval: "month", ExportsLimit: ExportLimit(Pro)},
		{Name: Business, PricePaise: 40 * 100, Interval: "month", ExportsLimit: ExportLimit(Business)},
		{Name: Unlimited, PricePaise: 100 * 100, Interval: "month", ExportsLimit: nil},
	}
}
