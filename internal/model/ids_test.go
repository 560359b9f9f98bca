package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDRegistryAdd(t *testing.T) {
	r := newIDRegistry()
	d := NewDataNode("BRCA1", DataNodeTypeGeneProduct)

	require.NoError(t, r.add("a1f", d))
	assert.True(t, r.has("a1f"))

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := r.add("a1f", NewDataNode("TP53", DataNodeTypeGeneProduct))
		require.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("empty id rejected", func(t *testing.T) {
		err := r.add("", d)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("nil element rejected", func(t *testing.T) {
		err := r.add("b2e", nil)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestIDRegistryRemoveIdempotent(t *testing.T) {
	r := newIDRegistry()
	require.NoError(t, r.add("a1f", NewDataNode("BRCA1", DataNodeTypeGeneProduct)))

	r.remove("a1f")
	assert.False(t, r.has("a1f"))

	// Removing an absent id is a no-op.
	r.remove("a1f")
	r.remove("never-there")
	assert.Equal(t, 0, r.size())
}

func TestGenerateUniqueNeverCollides(t *testing.T) {
	r := newIDRegistry()
	// Pre-populate so the generator has something to collide with.
	for i := 0; i < 1000; i++ {
		id := r.generateUnique()
		require.NoError(t, r.add(id, NewDataNode(fmt.Sprintf("n%d", i), DataNodeTypeUndefined)))
	}

	for i := 0; i < 10000; i++ {
		id := r.generateUnique()
		assert.False(t, r.has(id), "generated id %q already present", id)
	}
}

func TestGenerateUniqueWidensWhenCrowded(t *testing.T) {
	r := newIDRegistry()
	// Push well past half the 3-hex-digit span so generation must widen to
	// keep terminating.
	for i := 0; i < 5000; i++ {
		require.NoError(t, r.add(fmt.Sprintf("node-%d", i), NewDataNode("n", DataNodeTypeUndefined)))
	}
	for i := 0; i < 1000; i++ {
		id := r.generateUnique()
		assert.False(t, r.has(id), "generated id %q already present", id)
	}
}

func TestModelElementIDsPairwiseDistinct(t *testing.T) {
	m := NewPathwayModel()
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		d := NewDataNode(fmt.Sprintf("n%d", i), DataNodeTypeUndefined)
		require.NoError(t, m.AddDataNode(d))
		require.NotEmpty(t, d.ElementID())
		assert.False(t, seen[d.ElementID()], "elementId %q assigned twice", d.ElementID())
		seen[d.ElementID()] = true
	}
}
