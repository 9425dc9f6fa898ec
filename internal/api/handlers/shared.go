package handlers

import (
	"encoding/json"
	"net/http"
)

// parseJSON decodes a request body into the given request type, rejecting
// unknown fields so typos surface as 400s instead of silently dropped input.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&req)
	return req, err
}
