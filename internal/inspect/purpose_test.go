package inspect

import (
	"testing"

	"github.com/hzargar/rhino-gh-bridge/internal/host"
)

func TestSliderPurpose_NameKeyword(t *testing.T) {
	cases := []struct {
		name    string
		purpose string
	}{
		{"Width", "horizontal dimension"},
		{"building_height", "vertical dimension"},
		{"NumDivisions", "repetition count"},
		{"rafter span", "span dimension"},
		{"Mystery", "unknown"},
	}

	for _, tc := range cases {
		g := SliderPurpose(host.Slider{Name: tc.name}, nil)
		if g.Purpose != tc.purpose {
			t.Errorf("%s: got %q, want %q", tc.name, g.Purpose, tc.purpose)
		}
	}
}

func TestSliderPurpose_PanelProximity(t *testing.T) {
	slider := host.Slider{Name: "X", Position: [2]float64{100, 100}}
	near := host.Panel{Text: "overall building width (m)", Position: [2]float64{150, 120}}
	far := host.Panel{Text: "unrelated notes", Position: [2]float64{900, 900}}

	g := SliderPurpose(slider, []host.Panel{near, far})
	if g.Purpose != "described by annotation" {
		t.Errorf("expected annotation purpose, got %q", g.Purpose)
	}
	if len(g.Evidence) != 1 {
		t.Errorf("expected 1 evidence entry, got %v", g.Evidence)
	}
}

func TestSliderPurpose_Confidence(t *testing.T) {
	// Keyword plus nearby panel lifts confidence to high.
	slider := host.Slider{Name: "Width", Position: [2]float64{0, 0}}
	panel := host.Panel{Text: "width in meters", Position: [2]float64{50, 0}}

	g := SliderPurpose(slider, []host.Panel{panel})
	if g.Confidence != "high" {
		t.Errorf("expected high confidence, got %q", g.Confidence)
	}

	g = SliderPurpose(host.Slider{Name: "Width"}, nil)
	if g.Confidence != "medium" {
		t.Errorf("expected medium confidence, got %q", g.Confidence)
	}

	g = SliderPurpose(host.Slider{Name: "Mystery"}, nil)
	if g.Confidence != "low" {
		t.Errorf("expected low confidence, got %q", g.Confidence)
	}
}

func TestCanvasPurposes(t *testing.T) {
	canvas := host.NewSimCanvas()

	guesses := CanvasPurposes(canvas)
	if len(guesses) != len(canvas.Sliders()) {
		t.Fatalf("expected one guess per slider, got %d for %d sliders", len(guesses), len(canvas.Sliders()))
	}
	for _, g := range guesses {
		if g.Slider == "" || g.Confidence == "" {
			t.Errorf("incomplete guess: %+v", g)
		}
	}
}
