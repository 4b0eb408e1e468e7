package watcher

import "context"

// Watcher monitors a drop directory for URL list files and dispatches each
// URL it finds to the handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one video URL.
type Handler func(ctx context.Context, url string) error
