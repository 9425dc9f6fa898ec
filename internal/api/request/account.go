package request

type CreateAccountRequest struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Currency    string         `json:"currency,omitempty"`
	IsDefault   bool           `json:"isDefault,omitempty"`
	Config      *AccountConfig `json:"config,omitempty"`
}

type UpdateAccountRequest struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Currency    *string        `json:"currency,omitempty"`
	Config      *AccountConfig `json:"config,omitempty"`
}

// AccountConfig mirrors model.AccountConfig at the request boundary so the
// wire format stays decoupled from the persistence model.
type AccountConfig struct {
	OpeningDate         string  `json:"openingDate,omitempty"`
	GrossRate           float64 `json:"grossRate,omitempty"`
	CurrentRate         float64 `json:"currentRate,omitempty"`
	MonthlyContribution float64 `json:"monthlyContribution,omitempty"`
	LastAnnualYield     float64 `json:"lastAnnualYield,omitempty"`
	LockYears           int     `json:"lockYears,omitempty"`
}
