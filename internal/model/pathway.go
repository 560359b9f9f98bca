package model

import (
	"fmt"

	"github.com/pathforge/gpml/internal/xref"
)

// Pathway is the mandatory metadata record of a model: one per model, created
// with it, never removable.
type Pathway struct {
	elementInfo
	title       string
	organism    string
	source      string
	version     string
	license     string
	description string
	boardWidth  float64
	boardHeight float64
	xref        *xref.Xref
}

func newPathway() *Pathway {
	p := &Pathway{title: "Untitled Pathway", boardWidth: 500, boardHeight: 500}
	p.self = p
	return p
}

func (p *Pathway) Title() string { return p.title }

// SetTitle replaces the pathway title, which is mandatory.
func (p *Pathway) SetTitle(s string) error {
	if s == "" {
		return fmt.Errorf("pathway title: %w", ErrInvalidArgument)
	}
	old := p.title
	p.title = s
	p.fireProperty("title", old, s)
	return nil
}

func (p *Pathway) Organism() string { return p.organism }
func (p *Pathway) SetOrganism(s string) {
	old := p.organism
	p.organism = s
	p.fireProperty("organism", old, s)
}

func (p *Pathway) Source() string { return p.source }
func (p *Pathway) SetSource(s string) {
	old := p.source
	p.source = s
	p.fireProperty("source", old, s)
}

func (p *Pathway) Version() string { return p.version }
func (p *Pathway) SetVersion(s string) {
	old := p.version
	p.version = s
	p.fireProperty("version", old, s)
}

func (p *Pathway) License() string { return p.license }
func (p *Pathway) SetLicense(s string) {
	old := p.license
	p.license = s
	p.fireProperty("license", old, s)
}

func (p *Pathway) Description() string { return p.description }
func (p *Pathway) SetDescription(s string) {
	old := p.description
	p.description = s
	p.fireProperty("description", old, s)
}

// BoardSize returns the drawing board dimensions.
func (p *Pathway) BoardSize() (w, h float64) { return p.boardWidth, p.boardHeight }

// SetBoardSize resizes the drawing board.
func (p *Pathway) SetBoardSize(w, h float64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("board size: %w", ErrInvalidArgument)
	}
	p.boardWidth, p.boardHeight = w, h
	p.fireCoords()
	return nil
}

func (p *Pathway) Xref() *xref.Xref { return p.xref }
func (p *Pathway) SetXref(x *xref.Xref) {
	old := p.xref
	p.xref = x
	p.fireProperty("xref", old, x)
}

// terminate is never reached: the model refuses to remove its pathway record.
func (p *Pathway) terminate() { p.terminateInfo() }
