package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	labelHeight   = 15.0
)

// Widget is implemented by everything a Panel can hold
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
	MoveTo(y float64)
}

type sliderWidget struct{ *Slider }

func (s sliderWidget) Height() float64  { return s.H + 25 }
func (s sliderWidget) MoveTo(y float64) { s.Y = y }

type checkboxWidget struct{ *Checkbox }

func (c checkboxWidget) Height() float64  { return c.Size + 5 }
func (c checkboxWidget) MoveTo(y float64) { c.Y = y }

type buttonWidget struct{ *Button }

func (b buttonWidget) Height() float64  { return b.Button.Height + 25 }
func (b buttonWidget) MoveTo(y float64) { b.Y = y }

type section struct {
	title string
	start int // first widget index
	end   int // widget index past the last one, -1 while open
}

// Panel stacks labelled widgets in scrollable sections
type Panel struct {
	Title         string
	X, Y          float64
	Width, Height float64
	Hidden        bool
	ScrollOffset  float64

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA

	widgets  []Widget
	labels   []string
	sections []section
}

// NewPanel creates an empty panel
func NewPanel(title string, x, y, width, height float64) *Panel {
	return &Panel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection starts a new section; following widgets belong to it
func (p *Panel) AddSection(title string) {
	p.closeSection()
	p.sections = append(p.sections, section{title: title, start: len(p.widgets), end: -1})
}

// EndSection closes the current section
func (p *Panel) EndSection() {
	p.closeSection()
}

func (p *Panel) closeSection() {
	if n := len(p.sections); n > 0 && p.sections[n-1].end < 0 {
		p.sections[n-1].end = len(p.widgets)
	}
}

// AddSlider adds a slider widget to the panel
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+10, p.Y+p.nextOffset()+labelHeight, p.Width-20, label, min, max, value)
	p.add(sliderWidget{s}, label)
	return s
}

// AddCheckbox adds a checkbox widget to the panel
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, p.Y+p.nextOffset()+labelHeight, label, value)
	p.add(checkboxWidget{c}, label)
	return c
}

// AddButton adds a full width button to the panel
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+10, p.Y+p.nextOffset()+labelHeight, p.Width-20, 18, label, onClick)
	p.add(buttonWidget{b}, "")
	return b
}

func (p *Panel) add(w Widget, label string) {
	p.widgets = append(p.widgets, w)
	p.labels = append(p.labels, label)
}

func (p *Panel) sectionEnd(s section) int {
	if s.end < 0 || s.end > len(p.widgets) {
		return len(p.widgets)
	}
	return s.end
}

// nextOffset is the y offset, relative to the panel, of the next widget
func (p *Panel) nextOffset() float64 {
	offset := titleHeight + float64(len(p.sections))*sectionHeight
	for _, w := range p.widgets {
		offset += w.Height()
	}
	return offset
}

// ContentHeight is the height of everything in the panel, unscrolled
func (p *Panel) ContentHeight() float64 {
	return p.nextOffset()
}

// Contains reports whether (x, y) falls on the visible panel
func (p *Panel) Contains(x, y float64) bool {
	return !p.Hidden && within(x, y, p.X, p.Y, p.Width, p.Height)
}

// Scroll moves the content by dy wheel notches, clamped to the content
func (p *Panel) Scroll(dy float64) {
	p.ScrollOffset -= dy * 20
	maxScroll := max(0, p.ContentHeight()-p.Height+40)
	p.ScrollOffset = min(max(p.ScrollOffset, 0), maxScroll)
}

// Update handles input for all widgets
func (p *Panel) Update() {
	if p.Hidden {
		return
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		mx, my := ebiten.CursorPosition()
		if p.Contains(float64(mx), float64(my)) {
			p.Scroll(dy)
		}
	}
	p.layout()
	for _, w := range p.widgets {
		w.Update()
	}
}

// layout places every widget at its scrolled position
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	for _, s := range p.sections {
		y += sectionHeight
		for i := s.start; i < p.sectionEnd(s); i++ {
			p.widgets[i].MoveTo(y + labelHeight)
			y += p.widgets[i].Height()
		}
	}
}

// Draw renders the panel and all widgets
func (p *Panel) Draw(screen *ebiten.Image) {
	if p.Hidden {
		return
	}
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	visible := func(y float64) bool { return y >= p.Y+titleHeight-5 && y <= p.Y+p.Height-20 }
	sectionBG := color.RGBA{R: 60, G: 60, B: 70, A: 255}

	y := p.Y + titleHeight - p.ScrollOffset
	for _, s := range p.sections {
		if visible(y) {
			vector.FillRect(screen, float32(p.X+5), float32(y), float32(p.Width-10), 20, sectionBG, true)
			ebitenutil.DebugPrintAt(screen, s.title, int(p.X+10), int(y+3))
		}
		y += sectionHeight
		for i := s.start; i < p.sectionEnd(s); i++ {
			w := p.widgets[i]
			if visible(y) {
				if p.labels[i] != "" {
					ebitenutil.DebugPrintAt(screen, p.labels[i], int(p.X+10), int(y))
				}
				w.MoveTo(y + labelHeight)
				w.Draw(screen)
			}
			y += w.Height()
		}
	}
}
