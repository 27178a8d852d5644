// Package idx generates request identifiers. IDs are ULIDs: 26 characters of
// Crockford base32, sortable by creation time within a process.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// MaxInboundLength bounds caller-supplied request IDs that we echo back.
const MaxInboundLength = 128

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a fresh ULID stamped with the current UTC time.
func New() string {
	return NewAt(time.Now().UTC())
}

// NewAt returns a ULID stamped with t. Monotonic entropy is not safe for
// concurrent use, so generation is serialized.
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Time extracts the millisecond timestamp encoded in id.
func Time(id string) (time.Time, error) {
	u, err := ulid.ParseStrict(strings.TrimSpace(id))
	if err != nil {
		return time.Time{}, ErrInvalid
	}
	return ulid.Time(u.Time()).UTC(), nil
}

// FromInbound returns the caller's request ID when it is usable, otherwise
// a new one. Usable means non-empty, printable ASCII and not longer than
// MaxInboundLength.
func FromInbound(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > MaxInboundLength {
		return New()
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return New()
		}
	}
	return s
}
