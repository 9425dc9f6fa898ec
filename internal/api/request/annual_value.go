package request

type UpsertAnnualValueRequest struct {
	Year     int     `json:"year"`
	EndValue float64 `json:"endValue"`
}
