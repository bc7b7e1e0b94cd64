// Package viewcache holds the lists each signed-in user last fetched, so the
// list views can filter and export without going back to the backend.
package viewcache

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"receiptweb/internal/models"
)

// Kind names a receipt list
type Kind string

const (
	// Reports is the signed-in user's full receipt list
	Reports Kind = "reports"
	// AdminReceipts is the admin view of every user's receipts
	AdminReceipts Kind = "admin_receipts"
)

type entry struct {
	receipts map[Kind][]models.Receipt
	users    []models.User
	hasUsers bool
	touched  time.Time
}

// Cache is keyed by session ID. Lists are replaced wholesale on fetch and
// shrink on delete; readers always get copies.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	idleTTL time.Duration
	now     func() time.Time
}

// New creates a cache that forgets sessions idle for longer than idleTTL.
// A zero idleTTL keeps entries until Drop.
func New(idleTTL time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// entryFor returns the entry for id, creating it. Caller holds the lock.
func (c *Cache) entryFor(id string) *entry {
	e, ok := c.entries[id]
	if !ok {
		e = &entry{receipts: make(map[Kind][]models.Receipt)}
		c.entries[id] = e
	}
	e.touched = c.now()
	return e
}

// PutReceipts replaces the cached list of the given kind
func (c *Cache) PutReceipts(sessionID string, kind Kind, receipts []models.Receipt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entryFor(sessionID).receipts[kind] = append([]models.Receipt(nil), receipts...)
}

// Receipts returns the cached list of the given kind
func (c *Cache) Receipts(sessionID string, kind Kind) (*models.ReceiptSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sessionID]
	if !ok {
		return nil, false
	}
	list, ok := e.receipts[kind]
	if !ok {
		return nil, false
	}
	e.touched = c.now()
	return models.NewReceiptSet(append([]models.Receipt(nil), list...)), true
}

// RemoveReceipt drops one receipt from the cached list. It reports whether
// the receipt was present.
func (c *Cache) RemoveReceipt(sessionID string, kind Kind, id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sessionID]
	if !ok {
		return false
	}
	set := models.NewReceiptSet(e.receipts[kind])
	if !set.Contains(id) {
		return false
	}
	e.receipts[kind] = set.Without(id).Receipts
	return true
}

// RemoveReceiptsOwnedBy drops every receipt of one owner from the cached
// list and returns how many went
func (c *Cache) RemoveReceiptsOwnedBy(sessionID string, kind Kind, ownerID int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sessionID]
	if !ok {
		return 0
	}
	list, ok := e.receipts[kind]
	if !ok {
		return 0
	}
	kept := models.NewReceiptSet(list).WithoutOwner(ownerID).Receipts
	e.receipts[kind] = kept
	return len(list) - len(kept)
}

// PutUsers replaces the cached user list
func (c *Cache) PutUsers(sessionID string, users []models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entryFor(sessionID)
	e.users = append([]models.User(nil), users...)
	e.hasUsers = true
}

// Users returns the cached user list
func (c *Cache) Users(sessionID string) (*models.UserSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sessionID]
	if !ok || !e.hasUsers {
		return nil, false
	}
	e.touched = c.now()
	return models.NewUserSet(append([]models.User(nil), e.users...)), true
}

// RemoveUser drops one user from the cached list
func (c *Cache) RemoveUser(sessionID string, id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sessionID]
	if !ok || !e.hasUsers {
		return false
	}
	before := len(e.users)
	e.users = models.NewUserSet(e.users).Without(id).Users
	return len(e.users) != before
}

// Drop forgets everything cached for a session
func (c *Cache) Drop(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sessionID)
}

// Len returns the number of sessions with cached data
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Sweep removes entries idle for longer than the TTL and returns how many went
func (c *Cache) Sweep() int {
	if c.idleTTL <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.idleTTL)
	removed := 0
	for id, e := range c.entries {
		if e.touched.Before(cutoff) {
			delete(c.entries, id)
			removed++
		}
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("viewcache: swept idle sessions")
	}
	return removed
}
