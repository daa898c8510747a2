package card

import "context"

// Collection is a folder of items, e.g. one address book.
type Collection interface {
	// Path is the slash separated collection path without leading or
	// trailing slashes.
	Path() string

	// GetAll returns every item of the collection ordered by href.
	GetAll(ctx context.Context) ([]*Item, error)

	// Get returns the item stored under href.
	Get(ctx context.Context, href string) (*Item, error)

	// Upload stores item under href, replacing any existing item, and
	// returns the item as stored.
	Upload(ctx context.Context, href string, item *Item) (*Item, error)
}

// Storage gives access to the collections of the record store.
type Storage interface {
	// Discover returns the collection at path, or every collection of the
	// store when path is the root ("/" or ""). A missing collection yields
	// an empty slice, not an error.
	Discover(ctx context.Context, path string) ([]Collection, error)
}
