package till

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// IDSource produces identifiers for sales and debts. The strong source is a
// random UUID; the weak source is a timestamp plus pseudo-random suffix and
// gives no uniqueness guarantee beyond human-paced input in one session.
// The choice is explicit so tests can force the weak path.
type IDSource struct {
	weak bool
}

// NewIDSource returns the strong, UUID-backed source.
func NewIDSource() *IDSource {
	return &IDSource{}
}

// NewWeakIDSource returns the timestamp-composite fallback source.
func NewWeakIDSource() *IDSource {
	return &IDSource{weak: true}
}

// NewID returns a fresh identifier.
func (s *IDSource) NewID() string {
	if s.weak {
		return fmt.Sprintf("%d-%x", time.Now().UnixMilli(), rand.Uint64())
	}
	return uuid.NewString()
}
