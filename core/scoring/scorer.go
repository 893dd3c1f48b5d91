// Package scoring defines the contract with the external trust-scoring
// collaborator. The core only produces feature vectors; judging them is
// delegated entirely to implementations of Scorer, which carry their own
// retry and fallback policies.
package scoring

import (
	"context"

	"github.com/maelc07/gridsig/core/model"
)

// Result is the scorer's verdict on a single feature vector. The core does
// not validate or interpret it.
type Result struct {
	// TrustScore grades the reading in [0, 1], higher meaning more
	// trustworthy.
	TrustScore float64 `json:"trust_score"`
	// Reason is the scorer's human-readable rationale.
	Reason string `json:"reason"`
}

// Scorer scores a feature vector. Implementations live outside this module.
type Scorer interface {
	Score(ctx context.Context, fv model.FeatureVector) (Result, error)
}
