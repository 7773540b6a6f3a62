package service

import (
	"fmt"
	"sync"
)

// PageRoute is one navigable custom route projected from a stored page.
type PageRoute struct {
	PageID uint
	Title  string
	Markup string
}

// PageRegistry maps normalized route keys to custom page content. It is
// rebuilt from the full record set: once at startup, again after any page
// write, and on explicit admin reload. Lookups between reloads see an
// immutable snapshot.
type PageRegistry struct {
	mu     sync.RWMutex
	routes map[string]PageRoute
	pages  *PageService
}

// NewPageRegistry returns an empty registry; call Reload to populate it.
func NewPageRegistry(pages *PageService) *PageRegistry {
	return &PageRegistry{
		routes: map[string]PageRoute{},
		pages:  pages,
	}
}

// Reload rebuilds the route table from the current page records. On a store
// failure the registry degrades to an empty table and reports the error;
// routing must keep working either way.
func (r *PageRegistry) Reload() error {
	pages, err := r.pages.List()
	if err != nil {
		r.swap(map[string]PageRoute{})
		return fmt.Errorf("reload page routes: %w", err)
	}

	routes := make(map[string]PageRoute, len(pages))
	// List 返回按创建时间倒序的记录，这里反向遍历，
	// 让后创建的页面在路由冲突时覆盖先创建的。
	for i := len(pages) - 1; i >= 0; i-- {
		page := pages[i]
		key := NormalizeRoute(page.Slug)
		if key == "" {
			continue
		}
		routes[key] = PageRoute{
			PageID: page.ID,
			Title:  page.Title,
			Markup: page.Markup,
		}
	}

	r.swap(routes)
	return nil
}

// Lookup resolves a request path against the route table.
func (r *PageRegistry) Lookup(path string) (PageRoute, bool) {
	key := NormalizeRoute(path)

	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.routes[key]
	return route, ok
}

// Len returns the number of registered custom routes.
func (r *PageRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}

func (r *PageRegistry) swap(routes map[string]PageRoute) {
	r.mu.Lock()
	r.routes = routes
	r.mu.Unlock()
}
