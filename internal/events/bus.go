// Package events carries "dependent views should refetch" signals emitted by
// the service layer after successful mutations. It replaces query-cache key
// invalidation from the previous frontend-driven design with an explicit
// in-process callback bus; the view layer subscribes to the keys it caches.
package events

import (
	"strings"
	"sync"
)

// Well-known invalidation keys.
const (
	KeyAdminProducts = "adminProducts"
	KeyAdminOrders   = "adminOrders"
	KeyOrderDetail   = "orderDetail" // published as orderDetail:<orderID>
)

type Bus struct {
	mu   sync.RWMutex
	subs map[string][]func(key string)
}

func NewBus() *Bus {
	return &Bus{subs: map[string][]func(key string){}}
}

// Subscribe registers fn for a key prefix. Publishing "orderDetail:42" fires
// subscribers of both "orderDetail:42" and "orderDetail".
func (b *Bus) Subscribe(key string, fn func(key string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[key] = append(b.subs[key], fn)
}

func (b *Bus) Invalidate(keys ...string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, k := range keys {
		for _, fn := range b.subs[k] {
			fn(k)
		}
		if i := strings.IndexByte(k, ':'); i > 0 {
			for _, fn := range b.subs[k[:i]] {
				fn(k)
			}
		}
	}
}
