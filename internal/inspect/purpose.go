// Package inspect guesses what a slider controls from its name, its group,
// and nearby text panels. This is presentation sugar layered on top of the
// canvas snapshot: none of the dispatch contract depends on it, and callers
// must treat the guesses as hints, not facts.
package inspect

import (
	"math"
	"strings"

	"github.com/hzargar/rhino-gh-bridge/internal/host"
)

// proximityRadius is the canvas distance within which a panel is considered
// an annotation for a slider.
const proximityRadius = 150.0

// Guess is one heuristic purpose estimate for a slider.
type Guess struct {
	Slider     string   `json:"slider"`
	Purpose    string   `json:"purpose"`
	Confidence string   `json:"confidence"` // high, medium, low
	Evidence   []string `json:"evidence,omitempty"`
}

// purposeKeywords maps name fragments to purpose labels, checked in order.
var purposeKeywords = []struct {
	fragment string
	purpose  string
}{
	{"width", "horizontal dimension"},
	{"height", "vertical dimension"},
	{"depth", "depth dimension"},
	{"length", "linear dimension"},
	{"radius", "radial dimension"},
	{"count", "repetition count"},
	{"num", "repetition count"},
	{"div", "subdivision count"},
	{"angle", "rotation angle"},
	{"rot", "rotation angle"},
	{"scale", "scale factor"},
	{"offset", "offset distance"},
	{"thick", "thickness"},
	{"span", "span dimension"},
}

// SliderPurpose estimates the purpose of one slider against the canvas's
// panels. Evidence accumulates from name keywords, group membership, and
// panel proximity; confidence scales with how much evidence was found.
func SliderPurpose(slider host.Slider, panels []host.Panel) Guess {
	g := Guess{Slider: slider.Name, Purpose: "unknown", Confidence: "low"}

	lower := strings.ToLower(slider.Name)
	for _, kw := range purposeKeywords {
		if strings.Contains(lower, kw.fragment) {
			g.Purpose = kw.purpose
			g.Evidence = append(g.Evidence, "name contains '"+kw.fragment+"'")
			break
		}
	}

	if slider.Group != "" {
		g.Evidence = append(g.Evidence, "grouped under '"+slider.Group+"'")
	}

	for _, p := range panels {
		if canvasDistance(slider.Position, p.Position) <= proximityRadius {
			g.Evidence = append(g.Evidence, "annotated nearby: "+truncate(p.Text, 60))
			if g.Purpose == "unknown" && p.Text != "" {
				g.Purpose = "described by annotation"
			}
		}
	}

	switch {
	case len(g.Evidence) >= 2 && g.Purpose != "unknown":
		g.Confidence = "high"
	case len(g.Evidence) >= 1 && g.Purpose != "unknown":
		g.Confidence = "medium"
	}
	return g
}

// CanvasPurposes estimates the purpose of every slider on the canvas.
func CanvasPurposes(canvas host.Canvas) []Guess {
	panels := canvas.Panels()
	sliders := canvas.Sliders()
	guesses := make([]Guess, len(sliders))
	for i, s := range sliders {
		guesses[i] = SliderPurpose(s, panels)
	}
	return guesses
}

func canvasDistance(a, b [2]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Sqrt(dx*dx + dy*dy)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
