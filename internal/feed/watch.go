package feed

import (
	"context"
	"sync"
)

// Watcher remembers which items of a feed were already returned. Nothing
// is persisted; a new Watcher reports every item again.
type Watcher struct {
	reader *Reader
	url    string
	limit  int

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewWatcher creates a watcher for one feed URL
func NewWatcher(reader *Reader, url string, limit int) *Watcher {
	return &Watcher{
		reader: reader,
		url:    url,
		limit:  limit,
		seen:   make(map[string]struct{}),
	}
}

// Poll reads the feed and returns the items not returned by earlier polls
func (w *Watcher) Poll(ctx context.Context) ([]Item, error) {
	items, err := w.reader.Read(ctx, w.url, w.limit)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	fresh := items[:0]
	for _, item := range items {
		if _, ok := w.seen[item.GUID]; ok {
			continue
		}
		w.seen[item.GUID] = struct{}{}
		fresh = append(fresh, item)
	}
	return fresh, nil
}

// Seen returns how many distinct items have been reported
func (w *Watcher) Seen() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.seen)
}
