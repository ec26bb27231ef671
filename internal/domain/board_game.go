package domain

import "time"

// Moderation statuses a catalog entry can be in.
const (
	BoardGameStatusPending  = "pending"
	BoardGameStatusApproved = "approved"
	BoardGameStatusRejected = "rejected"
)

// BoardGame is a row of the authoritative catalog. The recommendation
// pipeline only ever reads it; mutation belongs to the catalog service.
type BoardGame struct {
	ID          int64
	Name        string
	Description *string
	MinPlayers  *int
	MaxPlayers  *int
	PlayTimeMin *int
	PlayTimeMax *int
	Complexity  *float64
	ImageURL    *string
	Accessories *string
	Tutorials   *string
	CreatedBy   *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Status      string
}

// GameContext is a metadata snapshot returned by the vector index.
// Fields are optional because the index carries no schema guarantee;
// the prompt layer renders fixed sentinels for absent values. Names are
// not guaranteed to match the catalog exactly.
type GameContext struct {
	Name        *string
	Description *string
	MinPlayers  *int
	MaxPlayers  *int
	PlayTimeMin *int
	PlayTimeMax *int
	Complexity  *float64
	Score       float32
}

// LLMRecommendation is the validated structure extracted from the model
// output. The name list keeps the model's ordering and may be empty.
type LLMRecommendation struct {
	RecommendedGameNames []string
	Explanation          string
}
