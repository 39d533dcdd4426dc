package ui

import "testing"

func TestSlider_ValueAt(t *testing.T) {
	s := NewSlider(10, 0, 100, "vision", 0, 1000, 50)
	tests := []struct {
		name string
		mx   float64
		want float64
	}{
		{"Left edge", 10, 0},
		{"Middle", 60, 500},
		{"Right edge", 110, 1000},
		{"Past the right edge", 500, 1000},
		{"Past the left edge", -20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.valueAt(tt.mx); got != tt.want {
				t.Errorf("valueAt(%v) = %v; want %v", tt.mx, got, tt.want)
			}
		})
	}
}

func TestSlider_ClampsInitialValue(t *testing.T) {
	if s := NewSlider(0, 0, 10, "w", 0, 1, 3); s.Value != 1 {
		t.Errorf("Value = %v; want 1", s.Value)
	}
}

func TestSlider_Changed(t *testing.T) {
	s := NewSlider(0, 0, 100, "speed", 0, 200, 40)
	if s.Changed() {
		t.Error("fresh slider reports a change")
	}
	s.Value = s.valueAt(50)
	if !s.Changed() {
		t.Error("moved slider does not report a change")
	}
	if s.Changed() {
		t.Error("change reported twice")
	}
}

func TestCheckbox_Toggle(t *testing.T) {
	c := NewCheckbox(10, 10, "quadtree", false)
	if c.Toggle(0, 0) || c.Value {
		t.Error("click outside toggled the checkbox")
	}
	if !c.Toggle(15, 15) || !c.Value {
		t.Error("click inside did not toggle the checkbox")
	}
}

func TestButton_Press(t *testing.T) {
	clicks := 0
	b := NewButton(0, 0, 50, 20, "spawn", func() { clicks++ })
	b.Press(25, 10)
	b.Press(80, 10)
	if clicks != 1 {
		t.Errorf("clicks = %d; want 1", clicks)
	}
}

func TestPanel_Layout(t *testing.T) {
	p := NewPanel("Hive", 10, 10, 200, 120)
	p.AddSection("Flocking")
	a := p.AddSlider("separation", 0, 1, 0.3)
	b := p.AddSlider("alignment", 0, 1, 0.4)
	p.EndSection()
	p.AddSection("Debug")
	c := p.AddCheckbox("regions", true)
	p.EndSection()

	if !(a.Y < b.Y && b.Y < c.Y) {
		t.Errorf("widgets not stacked: %v, %v, %v", a.Y, b.Y, c.Y)
	}

	p.layout()
	wantA := p.Y + titleHeight + sectionHeight + labelHeight
	if a.Y != wantA {
		t.Errorf("layout put the first slider at %v; want %v", a.Y, wantA)
	}

	p.Scroll(-100)
	if p.ScrollOffset != p.ContentHeight()-p.Height+40 {
		t.Errorf("ScrollOffset = %v; want clamped to content", p.ScrollOffset)
	}
	p.Scroll(100)
	if p.ScrollOffset != 0 {
		t.Errorf("ScrollOffset = %v; want 0", p.ScrollOffset)
	}
}

func TestPanel_Contains(t *testing.T) {
	p := NewPanel("Hive", 10, 10, 200, 100)
	if !p.Contains(50, 50) || p.Contains(300, 50) {
		t.Error("Contains does not match the panel rectangle")
	}
	p.Hidden = true
	if p.Contains(50, 50) {
		t.Error("hidden panel still catches the cursor")
	}
}
