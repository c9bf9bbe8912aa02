package provider_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mystick682/ExTremeData/internal/provider"
)

func TestNewRequestID_Unique(t *testing.T) {
	// Two attempts in the same instant must still carry distinct
	// provider-facing idempotency tokens.
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		id := provider.NewRequestID("AIRTIME")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate request id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewRequestID_Format(t *testing.T) {
	id := provider.NewRequestID("waec")

	assert.True(t, strings.HasPrefix(id, "XT_WAEC_"), "id %s should carry the uppercased tag", id)
	assert.Len(t, strings.Split(id, "_"), 4)
}
