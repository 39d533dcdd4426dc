package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider is a horizontal value picker
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	X, Y     float64
	W, H     float64

	last float64 // value seen by the previous Changed call
}

// NewSlider creates a slider of width w, clamping value into [min, max]
func NewSlider(x, y, w float64, label string, min, max, value float64) *Slider {
	s := &Slider{
		Label: label,
		Min:   min,
		Max:   max,
		X:     x,
		Y:     y,
		W:     w,
		H:     12,
	}
	s.Value = s.clamp(value)
	s.last = s.Value
	return s
}

func (s *Slider) clamp(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// valueAt maps a cursor x coordinate to a slider value
func (s *Slider) valueAt(mx float64) float64 {
	if s.W <= 0 {
		return s.Min
	}
	p := (mx - s.X) / s.W
	return s.clamp(s.Min + p*(s.Max-s.Min))
}

// Changed reports whether Value moved since the previous call
func (s *Slider) Changed() bool {
	if s.Value == s.last {
		return false
	}
	s.last = s.Value
	return true
}

// Update checks for mouse interaction
func (s *Slider) Update() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if within(float64(mx), float64(my), s.X, s.Y, s.W, s.H) {
		s.Value = s.valueAt(float64(mx))
	}
}

// Draw renders the slider
func (s *Slider) Draw(screen *ebiten.Image) {
	// Draw Background (Dark Gray)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	// Draw Value Bar (Honey)
	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H), color.RGBA{R: 240, G: 190, B: 60, A: 255}, true)
}

// within reports whether (px, py) is inside the rectangle at (x, y) of size w x h
func within(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}
