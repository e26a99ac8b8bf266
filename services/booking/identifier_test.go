package booking

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingID_Unique(t *testing.T) {
	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := GenerateBookingID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate booking id %s after %d calls", id, i)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestGenerateBookingID_SameMillisecond(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	var mu sync.Mutex
	seen := make(map[string]struct{})
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				id := newBookingID(now)
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 2000)
}

func TestGenerateBookingID_Shape(t *testing.T) {
	id := GenerateBookingID()
	assert.True(t, strings.HasPrefix(id, BookingIDPrefix))
	assert.Equal(t, strings.ToUpper(id), id)
	assert.True(t, ValidBookingID(id), id)
}

func TestGenerateBookingID_TimeOrdered(t *testing.T) {
	earlier := newBookingID(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	later := newBookingID(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	prefixLen := len(earlier) - randomSuffixLen
	assert.Less(t, earlier[:prefixLen], later[:prefixLen])
}

func TestValidBookingID(t *testing.T) {
	assert.False(t, ValidBookingID(""))
	assert.False(t, ValidBookingID("SC123"))
	assert.False(t, ValidBookingID("XX"+strings.Repeat("A", 16)))
	assert.False(t, ValidBookingID("sc"+strings.Repeat("a", 16)))
	assert.True(t, ValidBookingID("SC"+strings.Repeat("A", 16)))
}
