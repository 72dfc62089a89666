//go:build unit

package booking_test

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"tablebook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPartySize(t *testing.T) {
	cases := []struct {
		name  string
		value int
		max   int
		errIs error
	}{
		{name: "valid", value: 4, max: 20},
		{name: "minimum of one", value: 1, max: 20},
		{name: "at maximum", value: 20, max: 20},
		{name: "zero", value: 0, max: 20, errIs: booking.ErrInvalidPartySize},
		{name: "negative", value: -3, max: 20, errIs: booking.ErrInvalidPartySize},
		{name: "above maximum", value: 21, max: 20, errIs: booking.ErrPartySizeTooLarge},
		{name: "no maximum enforced", value: 500, max: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			size, err := booking.NewPartySize(tc.value, tc.max)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.value, size.Value())
		})
	}
}

func TestNewNote(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		note, err := booking.NewNote("  no onions  ")
		require.NoError(t, err)
		assert.Equal(t, "no onions", note.String())
	})

	t.Run("empty is allowed", func(t *testing.T) {
		note, err := booking.NewNote("")
		require.NoError(t, err)
		assert.True(t, note.IsEmpty())
	})

	t.Run("rejects oversized note", func(t *testing.T) {
		_, err := booking.NewNote(strings.Repeat("a", booking.MaxNoteLength+1))
		assert.ErrorIs(t, err, booking.ErrNoteTooLong)
	})

	t.Run("accepts note at maximum length", func(t *testing.T) {
		_, err := booking.NewNote(strings.Repeat("a", booking.MaxNoteLength))
		assert.NoError(t, err)
	})
}

func TestNewRequiredNote(t *testing.T) {
	t.Run("rejects empty", func(t *testing.T) {
		_, err := booking.NewRequiredNote("")
		assert.ErrorIs(t, err, booking.ErrEmptyAdminNote)
	})

	t.Run("rejects whitespace only", func(t *testing.T) {
		_, err := booking.NewRequiredNote("   ")
		assert.ErrorIs(t, err, booking.ErrEmptyAdminNote)
	})

	t.Run("accepts non-empty", func(t *testing.T) {
		note, err := booking.NewRequiredNote("fully booked that evening")
		require.NoError(t, err)
		assert.Equal(t, "fully booked that evening", note.String())
	})
}

func TestNewReference(t *testing.T) {
	now := time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC)

	t.Run("format", func(t *testing.T) {
		ref := booking.NewReference(now).String()

		assert.True(t, strings.HasPrefix(ref, "BK"))
		assert.Regexp(t, regexp.MustCompile(`^BK[0-9A-Z]+$`), ref)

		// prefix + millis timestamp + 4 random characters
		ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
		assert.Len(t, ref, len("BK")+len(ts)+4)
		assert.Equal(t, ts, ref[2:2+len(ts)])
	})

	t.Run("same instant yields distinct references", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 50 {
			ref := booking.NewReference(now).String()
			seen[ref] = struct{}{}
		}
		// The random suffix makes same-millisecond collisions vanishingly rare.
		assert.Greater(t, len(seen), 1)
	})
}
