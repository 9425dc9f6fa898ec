package request

type CreateDepositRequest struct {
	DepositDate   string  `json:"depositDate"`
	DepositAmount float64 `json:"depositAmount"`
	Strategy      string  `json:"strategy,omitempty"`
	CurrentValue  float64 `json:"currentValue,omitempty"`
	ValueDate     string  `json:"valueDate,omitempty"`
}

type UpdateDepositRequest struct {
	DepositDate   *string  `json:"depositDate,omitempty"`
	DepositAmount *float64 `json:"depositAmount,omitempty"`
	Strategy      *string  `json:"strategy,omitempty"`
	CurrentValue  *float64 `json:"currentValue,omitempty"`
	ValueDate     *string  `json:"valueDate,omitempty"`
}
