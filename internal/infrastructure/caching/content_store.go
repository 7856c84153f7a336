// Package caching provides the in-memory content cache backing repository
// reads. Entries expire after the configured TTL and are invalidated
// explicitly after every successful mutation.
package caching

import (
	"sync"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/PageCraftHQ/pagecraft-go/pkg/config"
)

type cachedSite struct {
	node     *content.SiteNode
	cachedAt time.Time
}

type cachedPage struct {
	node     *content.PageNode
	cachedAt time.Time
}

type cachedSections struct {
	sections []*content.SectionNode
	cachedAt time.Time
}

// ContentStore implements content caching operations
type ContentStore struct {
	sites        map[string]*cachedSite
	pages        map[string]*cachedPage
	pageSections map[string]*cachedSections
	ttl          time.Duration
	mu           sync.RWMutex
}

// NewContentStore creates a new content cache store
func NewContentStore() *ContentStore {
	return &ContentStore{
		sites:        make(map[string]*cachedSite),
		pages:        make(map[string]*cachedPage),
		pageSections: make(map[string]*cachedSections),
		ttl:          config.ContentCacheTTL,
	}
}

// GetSite retrieves a cached site node
func (cs *ContentStore) GetSite(siteID string) (*content.SiteNode, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, exists := cs.sites[siteID]
	if !exists || time.Since(entry.cachedAt) > cs.ttl {
		return nil, false
	}
	return entry.node, true
}

// SetSite stores a site node
func (cs *ContentStore) SetSite(node *content.SiteNode) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.sites[node.ID] = &cachedSite{node: node, cachedAt: time.Now().UTC()}
}

// GetPage retrieves a cached page node
func (cs *ContentStore) GetPage(pageID string) (*content.PageNode, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, exists := cs.pages[pageID]
	if !exists || time.Since(entry.cachedAt) > cs.ttl {
		return nil, false
	}
	return entry.node, true
}

// SetPage stores a page node
func (cs *ContentStore) SetPage(node *content.PageNode) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.pages[node.ID] = &cachedPage{node: node, cachedAt: time.Now().UTC()}
}

// GetPageSections retrieves the cached ordered section list for a page
func (cs *ContentStore) GetPageSections(pageID string) ([]*content.SectionNode, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, exists := cs.pageSections[pageID]
	if !exists || time.Since(entry.cachedAt) > cs.ttl {
		return nil, false
	}
	return entry.sections, true
}

// SetPageSections stores the ordered section list for a page
func (cs *ContentStore) SetPageSections(pageID string, sections []*content.SectionNode) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.pageSections[pageID] = &cachedSections{sections: sections, cachedAt: time.Now().UTC()}
}

// InvalidatePage drops the page node and its section list
func (cs *ContentStore) InvalidatePage(pageID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.pages, pageID)
	delete(cs.pageSections, pageID)
}

// InvalidateSite drops a site node and every cached page belonging to it
func (cs *ContentStore) InvalidateSite(siteID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.sites, siteID)
	for pageID, entry := range cs.pages {
		if entry.node.SiteID == siteID {
			delete(cs.pages, pageID)
			delete(cs.pageSections, pageID)
		}
	}
}
