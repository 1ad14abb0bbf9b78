package handoff

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePattern = regexp.MustCompile(`^BK-[A-Z0-9]{1,4}-[0-9A-Z]+-[0-9A-Z]{4}$`)

func TestGenerateBookingReference(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("format", func(t *testing.T) {
		reference := GenerateBookingReference("MSKU1234567", now)
		assert.Regexp(t, referencePattern, reference)

		parts := strings.Split(reference, "-")
		require.Len(t, parts, 4)
		assert.Equal(t, "BK", parts[0])
		assert.Equal(t, "MSKU", parts[1])

		millis, err := strconv.ParseInt(strings.ToLower(parts[2]), 36, 64)
		require.NoError(t, err)
		assert.Equal(t, now.UnixMilli(), millis)
	})

	t.Run("short unit number is kept whole", func(t *testing.T) {
		reference := GenerateBookingReference("AB1", now)
		assert.True(t, strings.HasPrefix(reference, "BK-AB1-"))
	})

	t.Run("random suffix varies", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 32; i++ {
			seen[GenerateBookingReference("MSKU1234567", now)] = struct{}{}
		}
		assert.Greater(t, len(seen), 1)
	})
}
