package notify

import (
	"context"

	"rssdigest/app/feed"
)

// Notifier delivers one item and its summary over a single transport.
// Implementations convert all transport failures into an error return; an
// error never propagates past the dispatcher.
type Notifier interface {
	Name() string
	Send(ctx context.Context, item feed.Item, summary string) error
}
