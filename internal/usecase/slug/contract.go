package slug

import "context"

// Checker reports whether a slug is already used by another item.
type Checker interface {
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
}
