// Package truss generates parametric planar truss geometry from an upper
// chord line, a depth, and a division count. Generation is a pure function:
// baking the members into a host document is the caller's concern.
package truss

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Tag is the user-text value attached to every generated member so a later
// generation pass can find and delete exactly the previous output.
const Tag = "truss_member"

// Topology is the web-member placement pattern.
type Topology string

const (
	Pratt      Topology = "Pratt"
	Warren     Topology = "Warren"
	Vierendeel Topology = "Vierendeel"
	Howe       Topology = "Howe"
	Brown      Topology = "Brown"
	Onedir     Topology = "Onedir"
)

// ParseTopology resolves a case-insensitive topology name. Unknown names fall
// back to Pratt; the second return reports whether the name was recognized.
func ParseTopology(name string) (Topology, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pratt":
		return Pratt, true
	case "warren":
		return Warren, true
	case "vierendeel":
		return Vierendeel, true
	case "howe":
		return Howe, true
	case "brown":
		return Brown, true
	case "onedir":
		return Onedir, true
	default:
		return Pratt, false
	}
}

// MemberKind classifies a generated member.
type MemberKind string

const (
	TopChord    MemberKind = "top_chord"
	BottomChord MemberKind = "bottom_chord"
	Vertical    MemberKind = "vertical"
	Diagonal    MemberKind = "diagonal"
)

// Point is a 3D coordinate in the wire format ([x, y, z]).
type Point [3]float64

func (p Point) vec() r3.Vec {
	return r3.Vec{X: p[0], Y: p[1], Z: p[2]}
}

func fromVec(v r3.Vec) Point {
	return Point{v.X, v.Y, v.Z}
}

// Member is one generated structural segment.
type Member struct {
	Kind  MemberKind `json:"type"`
	Start Point      `json:"start"`
	End   Point      `json:"end"`
}

// Spec describes one truss generation request.
type Spec struct {
	Start     Point
	End       Point
	Depth     float64
	Divisions int
	Topology  Topology
}

// Generate computes the full member set for the given spec.
//
// The lower chord is derived by offsetting every upper point along global -Z.
// The offset is deliberately not the true perpendicular of the chord within a
// caller-supplied plane: the original behavior assumes horizontal trusses, and
// that behavior is preserved pending confirmation for non-horizontal chords.
func Generate(s Spec) ([]Member, error) {
	if s.Divisions < 1 {
		return nil, fmt.Errorf("divisions must be >= 1, got %d", s.Divisions)
	}

	topology := s.Topology
	if _, known := ParseTopology(string(topology)); topology == "" || !known {
		topology = Pratt
	}

	start := s.Start.vec()
	chord := r3.Sub(s.End.vec(), start)
	depthOffset := r3.Vec{Z: -s.Depth}

	// divisions+1 evenly spaced points along each chord
	top := make([]r3.Vec, s.Divisions+1)
	bottom := make([]r3.Vec, s.Divisions+1)
	for i := 0; i <= s.Divisions; i++ {
		t := float64(i) / float64(s.Divisions)
		top[i] = r3.Add(start, r3.Scale(t, chord))
		bottom[i] = r3.Add(top[i], depthOffset)
	}

	var members []Member
	segment := func(kind MemberKind, a, b r3.Vec) {
		members = append(members, Member{Kind: kind, Start: fromVec(a), End: fromVec(b)})
	}

	for i := 0; i < s.Divisions; i++ {
		segment(TopChord, top[i], top[i+1])
	}
	for i := 0; i < s.Divisions; i++ {
		segment(BottomChord, bottom[i], bottom[i+1])
	}

	verticals := func() {
		for i := 0; i <= s.Divisions; i++ {
			segment(Vertical, top[i], bottom[i])
		}
	}

	switch topology {
	case Vierendeel:
		// moment frame: verticals only
		verticals()

	case Pratt:
		verticals()
		for i := 0; i < s.Divisions; i++ {
			if i%2 == 0 {
				segment(Diagonal, bottom[i], top[i+1])
			} else {
				segment(Diagonal, top[i], bottom[i+1])
			}
		}

	case Howe:
		// mirrored alternation of Pratt
		verticals()
		for i := 0; i < s.Divisions; i++ {
			if i%2 == 0 {
				segment(Diagonal, top[i], bottom[i+1])
			} else {
				segment(Diagonal, bottom[i], top[i+1])
			}
		}

	case Warren:
		for i := 0; i < s.Divisions; i++ {
			if i%2 == 0 {
				segment(Diagonal, bottom[i], top[i+1])
			} else {
				segment(Diagonal, top[i], bottom[i+1])
			}
		}

	case Brown:
		// both diagonals in every bay
		verticals()
		for i := 0; i < s.Divisions; i++ {
			segment(Diagonal, bottom[i], top[i+1])
			segment(Diagonal, top[i], bottom[i+1])
		}

	case Onedir:
		for i := 0; i < s.Divisions; i++ {
			segment(Diagonal, bottom[i], top[i+1])
		}
	}

	return members, nil
}

// Count tallies members by kind.
func Count(members []Member, kind MemberKind) int {
	n := 0
	for _, m := range members {
		if m.Kind == kind {
			n++
		}
	}
	return n
}
