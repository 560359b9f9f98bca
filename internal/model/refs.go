package model

import (
	"fmt"

	"github.com/pathforge/gpml/internal/xref"
)

// Annotation is a shared, de-duplicated metadata entity. It exists while at
// least one AnnotationRef points at it and is destroyed with its last ref.
type Annotation struct {
	elementCore
	value          string
	annotationType AnnotationType
	xref           *xref.Xref
	urlLink        string
	refs           []*AnnotationRef
}

// NewAnnotation builds a detached annotation. Value and type are mandatory.
func NewAnnotation(value string, annotationType AnnotationType) (*Annotation, error) {
	if value == "" {
		return nil, fmt.Errorf("annotation value: %w", ErrInvalidArgument)
	}
	if annotationType == "" {
		return nil, fmt.Errorf("annotation type: %w", ErrInvalidArgument)
	}
	a := &Annotation{value: value, annotationType: annotationType}
	a.self = a
	return a, nil
}

func (a *Annotation) Value() string                  { return a.value }
func (a *Annotation) AnnotationType() AnnotationType { return a.annotationType }
func (a *Annotation) Xref() *xref.Xref               { return a.xref }
func (a *Annotation) SetXref(x *xref.Xref)           { a.xref = x }
func (a *Annotation) URLLink() string                { return a.urlLink }
func (a *Annotation) SetURLLink(u string)            { a.urlLink = u }

// AnnotationRefs returns a copy of the refs currently pointing at this annotation.
func (a *Annotation) AnnotationRefs() []*AnnotationRef {
	out := make([]*AnnotationRef, len(a.refs))
	copy(out, a.refs)
	return out
}

// equalsContent compares all content fields, ignoring back-references.
func (a *Annotation) equalsContent(b *Annotation) bool {
	return a.value == b.value &&
		a.annotationType == b.annotationType &&
		a.urlLink == b.urlLink &&
		equalXref(a.xref, b.xref)
}

func (a *Annotation) terminate() {
	for _, r := range a.AnnotationRefs() {
		r.owner.info().detachAnnotationRef(r)
	}
	a.refs = nil
}

// AnnotationRef joins an owning element to a shared Annotation.
type AnnotationRef struct {
	annotation *Annotation
	owner      Annotatable
}

func (r *AnnotationRef) Annotation() *Annotation { return r.annotation }
func (r *AnnotationRef) Owner() Annotatable      { return r.owner }

// Citation is a shared, de-duplicated literature reference.
type Citation struct {
	elementCore
	xref    *xref.Xref
	urlLink string
	refs    []*CitationRef
}

// NewCitation builds a detached citation. At least one of xref or urlLink is required.
func NewCitation(x *xref.Xref, urlLink string) (*Citation, error) {
	if x == nil && urlLink == "" {
		return nil, fmt.Errorf("citation requires xref or urlLink: %w", ErrInvalidArgument)
	}
	c := &Citation{xref: x, urlLink: urlLink}
	c.self = c
	return c, nil
}

func (c *Citation) Xref() *xref.Xref { return c.xref }
func (c *Citation) URLLink() string  { return c.urlLink }

func (c *Citation) CitationRefs() []*CitationRef {
	out := make([]*CitationRef, len(c.refs))
	copy(out, c.refs)
	return out
}

func (c *Citation) equalsContent(b *Citation) bool {
	return c.urlLink == b.urlLink && equalXref(c.xref, b.xref)
}

func (c *Citation) terminate() {
	for _, r := range c.CitationRefs() {
		r.owner.info().detachCitationRef(r)
	}
	c.refs = nil
}

// CitationRef joins an owning element to a shared Citation.
type CitationRef struct {
	citation *Citation
	owner    Annotatable
}

func (r *CitationRef) Citation() *Citation { return r.citation }
func (r *CitationRef) Owner() Annotatable  { return r.owner }

// Evidence is a shared, de-duplicated experimental-evidence entity.
type Evidence struct {
	elementCore
	value   string
	xref    *xref.Xref
	urlLink string
	refs    []*EvidenceRef
}

// NewEvidence builds a detached evidence entity. The xref is mandatory.
func NewEvidence(value string, x *xref.Xref, urlLink string) (*Evidence, error) {
	if x == nil {
		return nil, fmt.Errorf("evidence xref: %w", ErrInvalidArgument)
	}
	e := &Evidence{value: value, xref: x, urlLink: urlLink}
	e.self = e
	return e, nil
}

func (e *Evidence) Value() string    { return e.value }
func (e *Evidence) Xref() *xref.Xref { return e.xref }
func (e *Evidence) URLLink() string  { return e.urlLink }

func (e *Evidence) EvidenceRefs() []*EvidenceRef {
	out := make([]*EvidenceRef, len(e.refs))
	copy(out, e.refs)
	return out
}

func (e *Evidence) equalsContent(b *Evidence) bool {
	return e.value == b.value && e.urlLink == b.urlLink && equalXref(e.xref, b.xref)
}

func (e *Evidence) terminate() {
	for _, r := range e.EvidenceRefs() {
		r.owner.info().detachEvidenceRef(r)
	}
	e.refs = nil
}

// EvidenceRef joins an owning element to a shared Evidence.
type EvidenceRef struct {
	evidence *Evidence
	owner    Annotatable
}

func (r *EvidenceRef) Evidence() *Evidence { return r.evidence }
func (r *EvidenceRef) Owner() Annotatable  { return r.owner }

// ---------------------------------------------------------------------------
// elementInfo metadata-ref management
// ---------------------------------------------------------------------------

// AnnotationRefs returns a copy of this element's annotation refs.
func (i *elementInfo) AnnotationRefs() []*AnnotationRef {
	out := make([]*AnnotationRef, len(i.annotationRefs))
	copy(out, i.annotationRefs)
	return out
}

// AddAnnotationRef links this element to a, de-duplicating through the model.
// The element must be attached. The ref returned points at the surviving
// instance, which may differ from a.
func (i *elementInfo) AddAnnotationRef(a *Annotation) (*AnnotationRef, error) {
	if a == nil {
		return nil, fmt.Errorf("annotationRef: %w", ErrInvalidArgument)
	}
	if i.model == nil {
		return nil, fmt.Errorf("annotationRef on detached element: %w", ErrIllegalState)
	}
	stored, err := i.model.AddAnnotation(a)
	if err != nil {
		return nil, err
	}
	r := &AnnotationRef{annotation: stored, owner: i.self.(Annotatable)}
	stored.refs = append(stored.refs, r)
	i.annotationRefs = append(i.annotationRefs, r)
	i.fireProperty("annotationRef", nil, r)
	return r, nil
}

// RemoveAnnotationRef unlinks r from this element. If r was the annotation's
// last ref, the annotation itself is removed from the model.
func (i *elementInfo) RemoveAnnotationRef(r *AnnotationRef) error {
	if r == nil {
		return fmt.Errorf("annotationRef: %w", ErrInvalidArgument)
	}
	a := r.annotation
	i.detachAnnotationRef(r)
	a.refs = removeRef(a.refs, r)
	if len(a.refs) == 0 && a.Model() != nil {
		return a.Model().RemoveAnnotation(a)
	}
	return nil
}

// detachAnnotationRef removes r from the owner side only.
func (i *elementInfo) detachAnnotationRef(r *AnnotationRef) {
	i.annotationRefs = removeRef(i.annotationRefs, r)
	i.fireProperty("annotationRef", r, nil)
}

// CitationRefs returns a copy of this element's citation refs.
func (i *elementInfo) CitationRefs() []*CitationRef {
	out := make([]*CitationRef, len(i.citationRefs))
	copy(out, i.citationRefs)
	return out
}

// AddCitationRef links this element to c, de-duplicating through the model.
func (i *elementInfo) AddCitationRef(c *Citation) (*CitationRef, error) {
	if c == nil {
		return nil, fmt.Errorf("citationRef: %w", ErrInvalidArgument)
	}
	if i.model == nil {
		return nil, fmt.Errorf("citationRef on detached element: %w", ErrIllegalState)
	}
	stored, err := i.model.AddCitation(c)
	if err != nil {
		return nil, err
	}
	r := &CitationRef{citation: stored, owner: i.self.(Annotatable)}
	stored.refs = append(stored.refs, r)
	i.citationRefs = append(i.citationRefs, r)
	i.fireProperty("citationRef", nil, r)
	return r, nil
}

// RemoveCitationRef unlinks r, removing the citation on its last ref.
func (i *elementInfo) RemoveCitationRef(r *CitationRef) error {
	if r == nil {
		return fmt.Errorf("citationRef: %w", ErrInvalidArgument)
	}
	c := r.citation
	i.detachCitationRef(r)
	c.refs = removeRef(c.refs, r)
	if len(c.refs) == 0 && c.Model() != nil {
		return c.Model().RemoveCitation(c)
	}
	return nil
}

func (i *elementInfo) detachCitationRef(r *CitationRef) {
	i.citationRefs = removeRef(i.citationRefs, r)
	i.fireProperty("citationRef", r, nil)
}

// EvidenceRefs returns a copy of this element's evidence refs.
func (i *elementInfo) EvidenceRefs() []*EvidenceRef {
	out := make([]*EvidenceRef, len(i.evidenceRefs))
	copy(out, i.evidenceRefs)
	return out
}

// AddEvidenceRef links this element to ev, de-duplicating through the model.
func (i *elementInfo) AddEvidenceRef(ev *Evidence) (*EvidenceRef, error) {
	if ev == nil {
		return nil, fmt.Errorf("evidenceRef: %w", ErrInvalidArgument)
	}
	if i.model == nil {
		return nil, fmt.Errorf("evidenceRef on detached element: %w", ErrIllegalState)
	}
	stored, err := i.model.AddEvidence(ev)
	if err != nil {
		return nil, err
	}
	r := &EvidenceRef{evidence: stored, owner: i.self.(Annotatable)}
	stored.refs = append(stored.refs, r)
	i.evidenceRefs = append(i.evidenceRefs, r)
	i.fireProperty("evidenceRef", nil, r)
	return r, nil
}

// RemoveEvidenceRef unlinks r, removing the evidence on its last ref.
func (i *elementInfo) RemoveEvidenceRef(r *EvidenceRef) error {
	if r == nil {
		return fmt.Errorf("evidenceRef: %w", ErrInvalidArgument)
	}
	ev := r.evidence
	i.detachEvidenceRef(r)
	ev.refs = removeRef(ev.refs, r)
	if len(ev.refs) == 0 && ev.Model() != nil {
		return ev.Model().RemoveEvidence(ev)
	}
	return nil
}

func (i *elementInfo) detachEvidenceRef(r *EvidenceRef) {
	i.evidenceRefs = removeRef(i.evidenceRefs, r)
	i.fireProperty("evidenceRef", r, nil)
}

// removeRef deletes the first occurrence of r from refs.
func removeRef[T comparable](refs []T, r T) []T {
	for n, have := range refs {
		if have == r {
			return append(refs[:n], refs[n+1:]...)
		}
	}
	return refs
}
