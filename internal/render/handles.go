package render

import (
	"sync"

	"github.com/google/uuid"
)

// HandleRegistry hands out revocable preview handles for rendered images.
// A handle stays valid until revoked; revocation is the caller's job once
// the preview is no longer displayed.
type HandleRegistry struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewHandleRegistry constructs an empty registry.
func NewHandleRegistry() *HandleRegistry {
	return &HandleRegistry{data: make(map[string][]byte)}
}

// Register stores the image bytes and returns a fresh opaque handle.
func (h *HandleRegistry) Register(data []byte) string {
	id := uuid.NewString()
	h.mu.Lock()
	h.data[id] = data
	h.mu.Unlock()
	return id
}

// Open returns the bytes behind a handle, if it is still valid.
func (h *HandleRegistry) Open(handle string) ([]byte, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data, ok := h.data[handle]
	return data, ok
}

// Revoke invalidates a handle and releases its bytes.
func (h *HandleRegistry) Revoke(handle string) {
	h.mu.Lock()
	delete(h.data, handle)
	h.mu.Unlock()
}
