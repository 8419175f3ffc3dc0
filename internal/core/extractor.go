package core

import (
	"context"
)

// DocumentExtractor turns the bytes of one document into raw text.
// Implementations hold no per-call state and are safe for concurrent use.
type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}
