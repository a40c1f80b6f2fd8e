package model

// ClassificationLabel is one scored vocabulary entry. Scores are independent
// per label, not a distribution.
type ClassificationLabel struct {
	Text  string  `json:"label"`
	Score float64 `json:"score"`
}
