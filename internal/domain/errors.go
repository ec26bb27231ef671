package domain

import "errors"

// Sentinel errors for the recommendation pipeline. Each stage wraps its
// failure with one of these so the HTTP layer can map categories with
// errors.Is without inspecting messages.
var (
	// ErrNotConfigured signals missing credentials for the completion
	// service. Server misconfiguration, not user-actionable.
	ErrNotConfigured = errors.New("recommendation service is not configured")

	// ErrRetrievalUnavailable signals the vector store or the embedding
	// endpoint could not be reached. Fatal for the request.
	ErrRetrievalUnavailable = errors.New("vector store unavailable")

	// ErrModelUnavailable signals the completion call failed. The client
	// may retry later; the service itself never retries.
	ErrModelUnavailable = errors.New("completion service unavailable")

	// ErrMalformedModelOutput signals the model text did not decode as JSON.
	ErrMalformedModelOutput = errors.New("malformed model output")

	// ErrInvalidRecommendationShape signals decoded JSON missing the
	// required recommendation fields.
	ErrInvalidRecommendationShape = errors.New("invalid recommendation structure")
)

// IsRetryableByClient reports whether the caller may reasonably retry
// the request later.
func IsRetryableByClient(err error) bool {
	return errors.Is(err, ErrModelUnavailable)
}
