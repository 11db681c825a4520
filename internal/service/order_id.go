package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newOrderID returns a date-prefixed order identifier such as
// ORD-20250901-3fa8c2. Order creation is not serialized across concurrent
// requests, so the suffix is drawn from a v4 UUID rather than a 3-digit
// random number; collisions remain possible but are not checked.
func newOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix)
}
