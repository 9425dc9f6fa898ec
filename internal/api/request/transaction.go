package request

type CreateTransactionRequest struct {
	AccountID string  `json:"accountId"`
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	AssetName string  `json:"assetName,omitempty"`
	Isin      string  `json:"isin,omitempty"`
	Ticker    string  `json:"ticker,omitempty"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Fees      float64 `json:"fees,omitempty"`
}

type UpdateTransactionRequest struct {
	Date      *string  `json:"date,omitempty"`
	Type      *string  `json:"type,omitempty"`
	AssetName *string  `json:"assetName,omitempty"`
	Isin      *string  `json:"isin,omitempty"`
	Ticker    *string  `json:"ticker,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
	Fees      *float64 `json:"fees,omitempty"`
}
