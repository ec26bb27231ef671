package domain

import "context"

// VectorEncoder turns free text into embedding vectors compatible with
// the populated game index.
type VectorEncoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	Version() string
}
