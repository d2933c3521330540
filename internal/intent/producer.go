package intent

import (
	"context"

	"github.com/kiyer/argoquery/internal/core/model"
)

// Producer proposes a first-draft structured intent for a question.
// Drafts are untrusted: whatever comes back goes through Sanitize
// before anything else may look at it.
type Producer interface {
	Draft(ctx context.Context, question string) (model.RawIntent, error)
}

// Narrator turns a deterministic results digest into a conversational
// answer. Optional; callers fall back to the digest itself.
type Narrator interface {
	Narrate(ctx context.Context, question, queryType, digest, sample string) (string, error)
}
