package preview

import (
	"sync"

	"github.com/yildizm/facemood/internal/media"
)

type entry struct {
	image  *media.Image
	thumbs map[[2]int]string
}

// Store resolves preview handles to image bytes and caches rendered
// thumbnails per handle. Released handles resolve to nothing.
type Store struct {
	mu      sync.Mutex
	entries map[uint64]*entry
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{entries: make(map[uint64]*entry)}
}

// Retain registers the image behind a handle
func (s *Store) Retain(seq uint64, img *media.Image) {
	if seq == 0 || img == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[seq] = &entry{image: img, thumbs: make(map[[2]int]string)}
}

// Release frees a handle and anything rendered from it
func (s *Store) Release(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, seq)
}

// Resolve returns the image behind a handle
func (s *Store) Resolve(seq uint64) (*media.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[seq]
	if !ok {
		return nil, false
	}
	return e.image, true
}

// Live returns the number of handles currently held
func (s *Store) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Thumbnail renders the image behind a handle into at most width columns
// and height rows. The second result is false when the handle is unknown.
func (s *Store) Thumbnail(seq uint64, width, height int) (string, bool) {
	s.mu.Lock()
	e, ok := s.entries[seq]
	if !ok {
		s.mu.Unlock()
		return "", false
	}
	key := [2]int{width, height}
	if cached, hit := e.thumbs[key]; hit {
		s.mu.Unlock()
		return cached, true
	}
	img := e.image
	s.mu.Unlock()

	rendered := Render(img.Data, width, height)

	s.mu.Lock()
	if current, still := s.entries[seq]; still && current == e {
		e.thumbs[key] = rendered
	}
	s.mu.Unlock()

	return rendered, true
}
