package plans

// Plan is the display view of the single recurring price shops subscribe to.
type Plan struct {
	PriceID     string  `json:"price_id"`
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Currency    string  `json:"currency"`
	UnitAmount  float64 `json:"unit_amount"` // in major units
	Interval    string  `json:"interval"`    // month/year
	TrialDays   int64   `json:"trial_days,omitempty"`
	Description string  `json:"description,omitempty"`
}
