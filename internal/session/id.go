// Package session generates submission session identifiers. An ID is a
// second-precision timestamp plus an 8-character random suffix, so IDs sort
// chronologically and stay unique across concurrent submissions without a
// central allocator.
package session

import (
	"time"

	"github.com/google/uuid"
)

const timeLayout = "20060102150405"

// Hooks for deterministic tests.
var (
	now     = time.Now
	newUUID = uuid.NewString
)

// NewID returns a fresh session identifier, e.g. "20260829174530-3f9c1b2a".
func NewID() string {
	return now().Format(timeLayout) + "-" + newUUID()[:8]
}
