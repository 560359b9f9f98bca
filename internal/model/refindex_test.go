package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedNode(t *testing.T, id string) *DataNode {
	t.Helper()
	d := NewDataNode(id, DataNodeTypeUndefined)
	require.NoError(t, d.SetElementID(id))
	return d
}

func TestLinkIndexAddRemove(t *testing.T) {
	ix := newLinkIndex()
	l1 := namedNode(t, "l1")
	l2 := namedNode(t, "l2")

	ix.add("target", l1)
	ix.add("target", l2)
	assert.True(t, ix.has("target"))
	assert.Len(t, ix.linkers("target"), 2)

	require.NoError(t, ix.remove("target", l1))
	assert.Len(t, ix.linkers("target"), 1)

	// Last linker removed: the mapping itself goes away.
	require.NoError(t, ix.remove("target", l2))
	assert.False(t, ix.has("target"))
}

func TestLinkIndexRemoveUntracked(t *testing.T) {
	ix := newLinkIndex()
	err := ix.remove("ghost", namedNode(t, "l1"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLinkIndexSnapshot(t *testing.T) {
	ix := newLinkIndex()
	l1 := namedNode(t, "l1")
	l2 := namedNode(t, "l2")
	ix.add("target", l1)
	ix.add("target", l2)

	snapshot := ix.linkers("target")
	require.NoError(t, ix.remove("target", l1))
	require.NoError(t, ix.remove("target", l2))

	// The earlier snapshot is unaffected by index mutation.
	assert.Len(t, snapshot, 2)
	assert.Empty(t, ix.linkers("target"))
}
