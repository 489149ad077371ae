package views

import (
	"fmt"
	"sync"
)

// DeleteConfirm implements two-step delete: the first click on a target
// arms it, the second click on the same target confirms. Clicking a
// different target re-arms onto that target instead. The caller owns any
// disarm timeout.
type DeleteConfirm struct {
	mu    sync.Mutex
	armed string
}

// NewDeleteConfirm creates an unarmed confirmation tracker
func NewDeleteConfirm() *DeleteConfirm {
	return &DeleteConfirm{}
}

// ConfirmKey builds the tracking key for a record kind and id, so task and
// event deletions with the same id never collide
func ConfirmKey(kind, id string) string {
	return fmt.Sprintf("%s-%s", kind, id)
}

// Click registers a click on key and reports whether the deletion is now
// confirmed. A confirming click disarms the tracker.
func (c *DeleteConfirm) Click(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.armed == key {
		c.armed = ""
		return true
	}
	c.armed = key
	return false
}

// Armed returns the currently armed key, or empty when unarmed
func (c *DeleteConfirm) Armed() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

// Reset disarms the tracker
func (c *DeleteConfirm) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed = ""
}
