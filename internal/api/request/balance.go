package request

type UpsertBalanceRequest struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}
