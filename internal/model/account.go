package model

// Account types supported by the savings tracker. PEA accounts carry a
// transaction ledger and are valued from live market prices; the other types
// are valued from balance snapshots or deposit records.
const (
	AccountTypePEA           = "pea"
	AccountTypeCompteCourant = "compte_courant"
	AccountTypeInteressement = "interessement"
	AccountTypePEL           = "pel"
	AccountTypeLivretA       = "livret_a"
	AccountTypeAssuranceVie  = "assurance_vie"
)

// ValidAccountType contains the allowed account type values.
var ValidAccountType = map[string]bool{
	AccountTypePEA:           true,
	AccountTypeCompteCourant: true,
	AccountTypeInteressement: true,
	AccountTypePEL:           true,
	AccountTypeLivretA:       true,
	AccountTypeAssuranceVie:  true,
}

// AccountConfig holds type-specific account parameters. Only the fields
// relevant to the account's type are populated; the rest stay zero.
type AccountConfig struct {
	OpeningDate         string  `json:"openingDate,omitempty"`         // PEL, AssuranceVie (YYYY-MM-DD)
	GrossRate           float64 `json:"grossRate,omitempty"`           // PEL, e.g. 0.025 for 2.5%
	CurrentRate         float64 `json:"currentRate,omitempty"`         // LivretA, already net of tax
	MonthlyContribution float64 `json:"monthlyContribution,omitempty"` // AssuranceVie
	LastAnnualYield     float64 `json:"lastAnnualYield,omitempty"`     // AssuranceVie
	LockYears           int     `json:"lockYears,omitempty"`           // Interessement, typically 5
}

// SavingsAccount represents a savings account aggregate. All transactions,
// annual values, balance records and deposits are scoped to exactly one
// account via its ID.
type SavingsAccount struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Currency    string         `json:"currency"`
	IsDefault   bool           `json:"isDefault"`
	Config      *AccountConfig `json:"config,omitempty"`
}
