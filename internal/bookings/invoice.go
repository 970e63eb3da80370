package bookings

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newInvoiceNumber builds a human-facing invoice identifier from the current
// unix-millisecond timestamp and a high-entropy suffix. Uniqueness is still
// enforced by the database constraint; callers retry on conflict.
func newInvoiceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("INV-%d-%s", time.Now().UnixMilli(), suffix)
}
