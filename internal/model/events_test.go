package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathforge/gpml/internal/model"
)

// recorder captures every event fired at it.
type recorder struct {
	events []model.ModelEvent
}

func (r *recorder) PathwayChanged(e model.ModelEvent) {
	r.events = append(r.events, e)
}

func (r *recorder) ofKind(k model.EventKind) []model.ModelEvent {
	var out []model.ModelEvent
	for _, e := range r.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

func TestListenerReceivesMutationEvents(t *testing.T) {
	m := model.NewPathwayModel()
	rec := &recorder{}
	m.AddListener(rec)

	d := addDataNode(t, m, "BRCA1")
	d.SetTextLabel("TP53")
	require.NoError(t, m.RemoveDataNode(d))

	added := rec.ofKind(model.EventElementAdded)
	require.Len(t, added, 1)
	assert.Same(t, d, added[0].Source)

	props := rec.ofKind(model.EventPropertyChanged)
	require.NotEmpty(t, props)
	assert.Equal(t, "textLabel", props[0].Property)
	assert.Equal(t, "BRCA1", props[0].Old)
	assert.Equal(t, "TP53", props[0].New)

	removed := rec.ofKind(model.EventElementRemoved)
	require.Len(t, removed, 1)
}

func TestDirtyFlagTracksMutations(t *testing.T) {
	m := model.NewPathwayModel()
	m.ClearChanged()
	assert.False(t, m.Changed())

	addDataNode(t, m, "BRCA1")
	assert.True(t, m.Changed())

	m.ClearChanged()
	assert.False(t, m.Changed())
}

func TestRemovedListenerStopsReceiving(t *testing.T) {
	m := model.NewPathwayModel()
	rec := &recorder{}
	m.AddListener(rec)
	addDataNode(t, m, "D1")
	seen := len(rec.events)
	require.NotZero(t, seen)

	m.RemoveListener(rec)
	addDataNode(t, m, "D2")
	assert.Len(t, rec.events, seen)
}

func TestCoordinateChangeRefreshesLinkedPoints(t *testing.T) {
	m := model.NewPathwayModel()
	d := addDataNode(t, m, "BRCA1")
	require.NoError(t, d.SetRect(model.RectProperty{CenterX: 100, CenterY: 100, Width: 40, Height: 20}))

	it := addInteraction(t, m)
	require.NoError(t, it.EndPoint().LinkTo(d, 1, 0))
	x, y := it.EndPoint().XY()
	require.Equal(t, 120.0, x)
	require.Equal(t, 100.0, y)

	// Moving the target drags the linked point along.
	d.SetCenter(200, 50)
	x, y = it.EndPoint().XY()
	assert.Equal(t, 220.0, x)
	assert.Equal(t, 50.0, y)
}

func TestAnchorTracksItsLine(t *testing.T) {
	m := model.NewPathwayModel()
	it := addInteraction(t, m)
	it.StartPoint().SetXY(0, 0)
	it.EndPoint().SetXY(100, 0)
	a, err := it.AddAnchor(0.5, model.AnchorShapeNone)
	require.NoError(t, err)

	it2 := addInteraction(t, m)
	require.NoError(t, it2.StartPoint().LinkTo(a, 0, 0))
	x, y := it2.StartPoint().XY()
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 0.0, y)
}
