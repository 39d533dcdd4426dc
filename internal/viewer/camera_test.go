package viewer

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestCamera_FitsAndFlips(t *testing.T) {
	cam := newCamera(geometry.Rect(0, 0, 3840, 2160), 1280, 720)
	if !floatEquals(cam.scale, 1.0/3) {
		t.Fatalf("scale = %v; want 1/3", cam.scale)
	}

	tests := []struct {
		name   string
		world  geometry.Coord
		sx, sy float64
	}{
		{"Bottom left", geometry.Coord{X: 0, Y: 0}, 0, 720},
		{"Top right", geometry.Coord{X: 3840, Y: 2160}, 1280, 0},
		{"Center", geometry.Coord{X: 1920, Y: 1080}, 640, 360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := cam.toScreen(tt.world)
			if !floatEquals(x, tt.sx) || !floatEquals(y, tt.sy) {
				t.Errorf("toScreen(%v) = (%v, %v); want (%v, %v)", tt.world, x, y, tt.sx, tt.sy)
			}
			back := cam.toWorld(x, y)
			if !floatEquals(back.X, tt.world.X) || !floatEquals(back.Y, tt.world.Y) {
				t.Errorf("toWorld(toScreen(%v)) = %v", tt.world, back)
			}
		})
	}
}

func TestCamera_Letterbox(t *testing.T) {
	cam := newCamera(geometry.Rect(0, 0, 100, 100), 300, 200)
	x, y := cam.toScreen(geometry.Coord{X: 0, Y: 100})
	if !floatEquals(x, 50) || !floatEquals(y, 0) {
		t.Errorf("top left corner at (%v, %v); want (50, 0)", x, y)
	}
	rx, ry, rw, rh := cam.rect(geometry.Rect(0, 0, 50, 50))
	if !floatEquals(rx, 50) || !floatEquals(ry, 100) || !floatEquals(rw, 100) || !floatEquals(rh, 100) {
		t.Errorf("rect = (%v, %v, %v, %v); want (50, 100, 100, 100)", rx, ry, rw, rh)
	}
}

func TestFacing(t *testing.T) {
	tests := []struct {
		name   string
		dir    geometry.Vector3
		fx, fy float64
	}{
		{"Up is screen up", geometry.NewVector(0, 1, 0), 0, -1},
		{"Right stays right", geometry.NewVector(1, 0, 0), 1, 0},
		{"Down is screen down", geometry.NewVector(0, -1, 0), 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx, fy := facing(tt.dir.Heading())
			if !floatEquals(fx, tt.fx) || !floatEquals(fy, tt.fy) {
				t.Errorf("facing(%v) = (%v, %v); want (%v, %v)", tt.dir, fx, fy, tt.fx, tt.fy)
			}
		})
	}
}
