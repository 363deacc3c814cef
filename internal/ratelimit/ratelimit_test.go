package ratelimit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestLimiter_PerKeyBuckets(t *testing.T) {
	// Effectively no refill during the test.
	l := New(rate.Limit(0.0001), 2)

	assert.True(t, l.Allow("u1"))
	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"), "third event within the burst window")

	// Another key is unaffected.
	assert.True(t, l.Allow("u2"))
}

func TestLimiter_BoundedKeySet(t *testing.T) {
	l := New(rate.Limit(1), 1)
	l.maxKeys = 10

	for i := 0; i < 10; i++ {
		l.Allow(fmt.Sprintf("u%d", i))
	}
	assert.Len(t, l.buckets, 10)

	// The next new key trips the reset; the map never grows past the cap.
	l.Allow("overflow")
	assert.Len(t, l.buckets, 1)
}
