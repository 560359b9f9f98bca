package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathforge/gpml/internal/model"
	"github.com/pathforge/gpml/internal/xref"
)

func addDataNode(t *testing.T, m *model.PathwayModel, label string) *model.DataNode {
	t.Helper()
	d := model.NewDataNode(label, model.DataNodeTypeGeneProduct)
	require.NoError(t, m.AddDataNode(d))
	return d
}

func addGroup(t *testing.T, m *model.PathwayModel) *model.Group {
	t.Helper()
	g := model.NewGroup(model.GroupTypeGroup)
	require.NoError(t, m.AddGroup(g))
	return g
}

func addInteraction(t *testing.T, m *model.PathwayModel) *model.Interaction {
	t.Helper()
	it := model.NewInteraction()
	require.NoError(t, m.AddInteraction(it))
	return it
}

func TestDataNodeRemovalCascadesToStates(t *testing.T) {
	m := model.NewPathwayModel()
	d := addDataNode(t, m, "BRCA1")
	s, err := d.AddState("P", model.StateTypeProteinModification)
	require.NoError(t, err)

	dID, sID := d.ElementID(), s.ElementID()
	require.True(t, m.HasPathwayObject(dID))
	require.True(t, m.HasPathwayObject(sID))

	require.NoError(t, m.RemoveDataNode(d))

	assert.False(t, m.HasPathwayObject(dID))
	assert.False(t, m.HasPathwayObject(sID))
	assert.Nil(t, d.Model())
	assert.Nil(t, s.Model())
	assert.Empty(t, m.DataNodes())
}

func TestGroupAutoRemovedWhenLastMemberLeaves(t *testing.T) {
	m := model.NewPathwayModel()
	g := addGroup(t, m)
	m1 := addDataNode(t, m, "M1")
	m2 := addDataNode(t, m, "M2")
	require.NoError(t, m1.SetGroupRefTo(g))
	require.NoError(t, m2.SetGroupRefTo(g))
	require.Len(t, g.Members(), 2)

	require.NoError(t, m.RemoveDataNode(m1))
	assert.Len(t, m.Groups(), 1)
	require.Len(t, g.Members(), 1)
	assert.Equal(t, m2.ElementID(), g.Members()[0].ElementID())

	require.NoError(t, m.RemoveDataNode(m2))
	assert.Empty(t, m.Groups())
	assert.False(t, m.HasPathwayObject(g.ElementID()))
}

func TestRemovingLinkTargetUnlinksPoints(t *testing.T) {
	m := model.NewPathwayModel()
	d := addDataNode(t, m, "BRCA1")
	require.NoError(t, d.SetRect(model.RectProperty{CenterX: 100, CenterY: 100, Width: 40, Height: 20}))
	it := addInteraction(t, m)
	p2 := it.EndPoint()

	require.NoError(t, p2.LinkTo(d, 1, 0))
	require.Same(t, d, p2.ElementRef())
	x, y := p2.XY()
	assert.Equal(t, 120.0, x)
	assert.Equal(t, 100.0, y)

	require.NoError(t, m.RemoveDataNode(d))

	assert.Nil(t, p2.ElementRef())
	// The interaction itself survives its target's removal.
	assert.Len(t, m.Interactions(), 1)
}

func TestAnnotationDeduplication(t *testing.T) {
	m := model.NewPathwayModel()

	x, err := xref.New("GO:0006915", "go")
	require.NoError(t, err)

	a1, err := model.NewAnnotation("GO:1", model.AnnotationTypeOntology)
	require.NoError(t, err)
	a1.SetXref(&x)
	a2, err := model.NewAnnotation("GO:1", model.AnnotationTypeOntology)
	require.NoError(t, err)
	a2.SetXref(&x)

	stored1, err := m.AddAnnotation(a1)
	require.NoError(t, err)
	stored2, err := m.AddAnnotation(a2)
	require.NoError(t, err)

	assert.Same(t, stored1, stored2)
	assert.Len(t, m.Annotations(), 1)
}

func TestAnnotationLifecycleFollowsRefs(t *testing.T) {
	m := model.NewPathwayModel()
	d1 := addDataNode(t, m, "D1")
	d2 := addDataNode(t, m, "D2")

	a, err := model.NewAnnotation("apoptosis", model.AnnotationTypeOntology)
	require.NoError(t, err)

	r1, err := d1.AddAnnotationRef(a)
	require.NoError(t, err)

	// A value-equal annotation added through another element resolves to the
	// same stored instance.
	dup, err := model.NewAnnotation("apoptosis", model.AnnotationTypeOntology)
	require.NoError(t, err)
	r2, err := d2.AddAnnotationRef(dup)
	require.NoError(t, err)
	assert.Same(t, r1.Annotation(), r2.Annotation())
	assert.Len(t, m.Annotations(), 1)

	// The annotation survives losing one ref and dies with its last one.
	require.NoError(t, d1.RemoveAnnotationRef(r1))
	assert.Len(t, m.Annotations(), 1)
	require.NoError(t, d2.RemoveAnnotationRef(r2))
	assert.Empty(t, m.Annotations())
}

func TestAliasUnsetWhenGroupRemoved(t *testing.T) {
	m := model.NewPathwayModel()
	g := addGroup(t, m)
	member := addDataNode(t, m, "member")
	require.NoError(t, member.SetGroupRefTo(g))

	alias := addDataNode(t, m, "alias")
	require.NoError(t, alias.SetAliasRefTo(g))
	assert.Equal(t, model.DataNodeTypeAlias, alias.Type())
	require.Same(t, g, alias.AliasRef())

	require.NoError(t, m.RemoveGroup(g))

	assert.Nil(t, alias.AliasRef())
	assert.Nil(t, member.GroupRef())
	assert.False(t, m.HasPathwayObject(g.ElementID()))
	// The former member and the alias both survive.
	assert.Len(t, m.DataNodes(), 2)
}

func TestRemoveTwiceRejected(t *testing.T) {
	m := model.NewPathwayModel()
	d := addDataNode(t, m, "BRCA1")

	require.NoError(t, m.RemoveDataNode(d))
	err := m.RemoveDataNode(d)
	require.ErrorIs(t, err, model.ErrIllegalState)
}

func TestPathwayRecordProtectedFromRemoval(t *testing.T) {
	m := model.NewPathwayModel()
	err := m.RemovePathwayObject(m.Pathway())
	require.ErrorIs(t, err, model.ErrIllegalState)
	assert.True(t, m.HasPathwayObject(m.Pathway().ElementID()))
}

func TestElementCannotJoinTwoModels(t *testing.T) {
	m1 := model.NewPathwayModel()
	m2 := model.NewPathwayModel()
	d := addDataNode(t, m1, "BRCA1")

	err := m2.AddDataNode(d)
	require.ErrorIs(t, err, model.ErrIllegalState)
	assert.Same(t, m1, d.Model())
}

func TestDuplicateElementIDRejected(t *testing.T) {
	m := model.NewPathwayModel()
	d1 := model.NewDataNode("D1", model.DataNodeTypeGeneProduct)
	require.NoError(t, d1.SetElementID("abc"))
	require.NoError(t, m.AddDataNode(d1))

	d2 := model.NewDataNode("D2", model.DataNodeTypeGeneProduct)
	require.NoError(t, d2.SetElementID("abc"))
	err := m.AddDataNode(d2)
	require.ErrorIs(t, err, model.ErrDuplicateKey)
	assert.Nil(t, d2.Model())
}

func TestFailedDataNodeAddLeavesNoResidue(t *testing.T) {
	m := model.NewPathwayModel()
	first := model.NewDataNode("first", model.DataNodeTypeGeneProduct)
	require.NoError(t, first.SetElementID("abc"))
	require.NoError(t, m.AddDataNode(first))

	d := model.NewDataNode("BRCA1", model.DataNodeTypeGeneProduct)
	s, err := d.AddState("P", model.StateTypeProteinModification)
	require.NoError(t, err)
	require.NoError(t, s.SetElementID("abc"))

	err = m.AddDataNode(d)
	require.ErrorIs(t, err, model.ErrDuplicateKey)

	// The failed add is fully unwound: no half-attached parent, no registry
	// entries, collection unchanged.
	assert.Nil(t, d.Model())
	assert.Nil(t, s.Model())
	assert.False(t, m.HasPathwayObject(d.ElementID()))
	require.Len(t, m.DataNodes(), 1)

	// After clearing the collision the same node attaches cleanly.
	require.NoError(t, s.SetElementID("def"))
	require.NoError(t, m.AddDataNode(d))
	assert.Len(t, m.DataNodes(), 2)
}

func TestFailedInteractionAddLeavesNoResidue(t *testing.T) {
	m := model.NewPathwayModel()
	d := model.NewDataNode("D", model.DataNodeTypeGeneProduct)
	require.NoError(t, d.SetElementID("a1"))
	require.NoError(t, m.AddDataNode(d))

	it := model.NewInteraction()
	require.NoError(t, it.EndPoint().SetElementID("a1"))

	err := m.AddInteraction(it)
	require.ErrorIs(t, err, model.ErrDuplicateKey)
	assert.Nil(t, it.Model())
	assert.Nil(t, it.StartPoint().Model())
	assert.Empty(t, m.Interactions())

	require.NoError(t, it.EndPoint().SetElementID("b2"))
	require.NoError(t, m.AddInteraction(it))
	assert.Len(t, m.Interactions(), 1)
}

func TestInteractionRemovalDropsPointsAndAnchors(t *testing.T) {
	m := model.NewPathwayModel()
	it := addInteraction(t, m)
	a, err := it.AddAnchor(0.5, model.AnchorShapeCircle)
	require.NoError(t, err)

	// A second line hangs off the first line's anchor.
	it2 := addInteraction(t, m)
	require.NoError(t, it2.StartPoint().LinkTo(a, 0, 0))

	pID := it.StartPoint().ElementID()
	aID := a.ElementID()

	require.NoError(t, m.RemoveInteraction(it))

	assert.False(t, m.HasPathwayObject(pID))
	assert.False(t, m.HasPathwayObject(aID))
	// The dependent line lost its link but not its existence.
	assert.Nil(t, it2.StartPoint().ElementRef())
	assert.Len(t, m.Interactions(), 1)
}

func TestGroupRemovalKeepsNestedParentConsistent(t *testing.T) {
	m := model.NewPathwayModel()
	parent := addGroup(t, m)
	child := addGroup(t, m)
	require.NoError(t, child.SetGroupRefTo(parent))
	d := addDataNode(t, m, "D")
	require.NoError(t, d.SetGroupRefTo(child))

	// Removing the child: its member is released, and the parent group,
	// left memberless, is removed as well.
	require.NoError(t, m.RemoveGroup(child))
	assert.Nil(t, d.GroupRef())
	assert.Empty(t, m.Groups())
}

func TestFixDanglingRefsClearsCrossModelLink(t *testing.T) {
	other := model.NewPathwayModel()
	foreign := addDataNode(t, other, "foreign")

	m := model.NewPathwayModel()
	it := model.NewInteraction()
	// Linking while detached records the target without any model check.
	require.NoError(t, it.EndPoint().LinkTo(foreign, 0, 0))
	require.NoError(t, m.AddInteraction(it))

	assert.Equal(t, 1, m.FixDanglingRefs())
	assert.Nil(t, it.EndPoint().ElementRef())
	assert.Equal(t, 0, m.FixDanglingRefs())
}

func TestFixDanglingRefsFindsNothingOnConsistentModel(t *testing.T) {
	m := model.NewPathwayModel()
	d := addDataNode(t, m, "BRCA1")
	it := addInteraction(t, m)
	require.NoError(t, it.EndPoint().LinkTo(d, 0, 0))
	g := addGroup(t, m)
	require.NoError(t, d.SetGroupRefTo(g))

	assert.Equal(t, 0, m.FixDanglingRefs())
}
