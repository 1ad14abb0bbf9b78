package handoff

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateBookingReference builds the human-facing correlation token:
// BK-<first 4 of unit number>-<base36 ms timestamp>-<4 random base36>.
// Convenience only, never a security credential.
func GenerateBookingReference(unitNumber string, now time.Time) string {
	prefix := unitNumber
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}

	timestamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	random := make([]byte, 4)
	for i := range random {
		random[i] = base36Alphabet[rand.Intn(len(base36Alphabet))]
	}

	return fmt.Sprintf("BK-%s-%s-%s", prefix, timestamp, random)
}
