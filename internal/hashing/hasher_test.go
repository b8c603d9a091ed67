package hashing_test

import (
	"regexp"
	"strings"
	"testing"

	"warung/internal/hashing"

	"github.com/stretchr/testify/assert"
)

func TestHashIsDeterministic(t *testing.T) {
	assert.Equal(t, hashing.Hash("hunter2"), hashing.Hash("hunter2"))
}

func TestHashShape(t *testing.T) {
	digest := hashing.Hash("hunter2")

	assert.Len(t, digest, 64)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), digest)
	assert.NotEqual(t, "hunter2", digest)

	// Distinct inputs produce distinct digests.
	assert.NotEqual(t, digest, hashing.Hash("hunter3"))
	// Empty input still hashes to a full-length digest.
	assert.Len(t, hashing.Hash(""), 64)
}

func TestMatches(t *testing.T) {
	stored := hashing.Hash("hunter2")

	assert.True(t, hashing.Matches("hunter2", stored))
	assert.False(t, hashing.Matches("hunter3", stored))

	// Comparison is case-normalized on the stored side.
	assert.True(t, hashing.Matches("hunter2", strings.ToUpper(stored)))

	// A stored plaintext never matches: only digests compare equal.
	assert.False(t, hashing.Matches("hunter2", "hunter2"))
}
