// Package viewer draws hive snapshots with ebiten and turns mouse and
// keyboard input into messages for the hive actor.
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"google.golang.org/protobuf/proto"

	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/flock"
	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/hive"
	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/simulation"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/quadtree"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/ui"
)

const (
	// bees spawned by the space bar
	swarmSize = 1000
	// cursor pick radius in screen pixels
	pickPixels = 8
	boidSize   = 6.0
)

var (
	whiteImage      = ebiten.NewImage(3, 3)
	backgroundColor = color.RGBA{R: 20, G: 24, B: 18, A: 255}
	regionColor     = color.RGBA{R: 90, G: 200, B: 90, A: 120}
	visionColor     = color.RGBA{R: 80, G: 140, B: 255, A: 60}
	pickedColor     = color.RGBA{R: 255, G: 80, B: 80, A: 255}
)

func init() {
	whiteImage.Fill(color.White)
}

// Mailbox delivers messages to the hive actor.
type Mailbox interface {
	Tell(ctx context.Context, msg proto.Message) error
}

type Game struct {
	ctx       context.Context
	hive      Mailbox
	snapshots <-chan *hive.Snapshot
	lastState *hive.Snapshot

	screenW, screenH int
	cam              camera

	// UI Controls
	panel       *ui.Panel
	sliders     map[string]*ui.Slider
	showRegions *ui.Checkbox
	showVision  *ui.Checkbox

	// picking
	pickIndex *quadtree.Tree[uint32]
	pickedAt  uint64
	picked    map[uint32]bool

	vertices []ebiten.Vertex
	indices  []uint16

	lastErr error

	// Timing instrumentation
	drawAvg float64 // Rolling average in ms
}

// NewGame builds the viewer for a world of the given bounds. settings seeds
// the tuning sliders.
func NewGame(ctx context.Context, mailbox Mailbox, snapshots <-chan *hive.Snapshot, world geometry.Region, settings flock.Settings, screenW, screenH int) *Game {
	g := &Game{
		ctx:       ctx,
		hive:      mailbox,
		snapshots: snapshots,
		lastState: &hive.Snapshot{}, // Avoid nil pointer
		screenW:   screenW,
		screenH:   screenH,
		sliders:   make(map[string]*ui.Slider),
		picked:    make(map[uint32]bool),
		cam:       newCamera(world, float64(screenW), float64(screenH)),
	}

	// Ranges follow the group inspector: weights 0-1, speed 0-200, vision 0-1000
	g.panel = ui.NewPanel("Boid Group", 10, 10, 220, float64(screenH)-20)
	g.panel.AddSection("Flocking")
	for _, name := range []string{"separation", "alignment", "cohesion"} {
		v, _ := settings.Value(name)
		g.sliders[name] = g.panel.AddSlider(name, 0, 1, v)
	}
	g.sliders["speed"] = g.panel.AddSlider("speed", 0, 200, settings.Speed)
	g.sliders["vision"] = g.panel.AddSlider("vision", 0, 1000, settings.Vision)
	g.panel.EndSection()

	g.panel.AddSection("Debug")
	g.showRegions = g.panel.AddCheckbox("quadtree regions", false)
	g.showVision = g.panel.AddCheckbox("vision", false)
	g.panel.EndSection()

	g.panel.AddSection("Spawn")
	g.panel.AddButton(fmt.Sprintf("%d bees", swarmSize), g.spawnSwarm)
	g.panel.EndSection()

	return g
}

func (g *Game) Update() error {
	select {
	case snap := <-g.snapshots:
		g.lastState = snap
		if snap.Bounds != g.cam.world {
			g.cam = newCamera(snap.Bounds, float64(g.screenW), float64(g.screenH))
		}
	default:
		// Use previous state if new one isn't ready
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.panel.Hidden = !g.panel.Hidden
	}
	g.panel.Update()
	g.sendTuning()

	mx, my := ebiten.CursorPosition()
	overPanel := g.panel.Contains(float64(mx), float64(my))

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.spawnSwarm()
	}
	if !overPanel && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.tell(simulation.NewSpawnAt(g.cam.toWorld(float64(mx), float64(my))))
	}

	g.updatePicked(float64(mx), float64(my), overPanel)
	return nil
}

func (g *Game) tell(msg proto.Message) {
	if err := g.hive.Tell(g.ctx, msg); err != nil {
		g.lastErr = err
	}
}

func (g *Game) spawnSwarm() {
	g.tell(simulation.NewSpawn(swarmSize))
}

func (g *Game) sendTuning() {
	changed := make(map[string]float64)
	for name, s := range g.sliders {
		if s.Changed() {
			changed[name] = s.Value
		}
	}
	if len(changed) > 0 {
		g.tell(simulation.NewTuning(changed))
	}
}

// updatePicked highlights the boids under the cursor, indexing the current
// snapshot at most once.
func (g *Game) updatePicked(mx, my float64, overPanel bool) {
	clear(g.picked)
	if overPanel || g.cam.scale == 0 || len(g.lastState.Boids) == 0 {
		return
	}
	if g.pickIndex == nil {
		g.pickIndex = quadtree.New[uint32](g.lastState.Bounds)
	}
	if g.pickedAt != g.lastState.Tick || g.pickIndex.Len() == 0 {
		g.pickIndex.Clear()
		radius := (boidSize / 2) / g.cam.scale
		for _, b := range g.lastState.Boids {
			g.pickIndex.Insert(geometry.Around(geometry.Coord{X: b.X, Y: b.Y}, radius), b.ID)
		}
		g.pickedAt = g.lastState.Tick
	}
	window := geometry.Around(g.cam.toWorld(mx, my), pickPixels/g.cam.scale)
	g.pickIndex.Visit(window, func(id uint32) { g.picked[id] = true })
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)
	snap := g.lastState

	// 1. Debug overlays
	if g.showRegions.Value {
		for _, r := range snap.Regions {
			x, y, w, h := g.cam.rect(r)
			vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, regionColor, false)
		}
	}
	if g.showVision.Value {
		radius := float32(snap.Vision * g.cam.scale)
		for _, b := range snap.Boids {
			x, y := g.cam.toScreen(geometry.Coord{X: b.X, Y: b.Y})
			vector.StrokeCircle(screen, float32(x), float32(y), radius, 1, visionColor, true)
		}
	}

	// 2. Boids, batched in one triangle list
	g.drawBoids(screen, snap.Boids)

	// 3. UI Panel and stats
	g.panel.Draw(screen)
	msg := fmt.Sprintf("Bees: %d\nTick: %d\nPicked: %d\nFPS: %.1f\nTPS: %.1f\nDraw: %.2fms",
		len(snap.Boids), snap.Tick, len(g.picked), ebiten.ActualFPS(), ebiten.ActualTPS(), g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, g.screenW-140, 10)
	ebitenutil.DebugPrintAt(screen, "space: +1000 bees  right click: +1 bee  tab: panel", 250, g.screenH-20)
	if g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "hive unreachable: "+g.lastErr.Error(), 250, g.screenH-40)
	}
}

func (g *Game) drawBoids(screen *ebiten.Image, boids []hive.BoidState) {
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]

	for _, b := range boids {
		// uint16 indices: flush before overflowing
		if len(g.vertices)+3 > 65535 {
			screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
			g.vertices = g.vertices[:0]
			g.indices = g.indices[:0]
		}

		x, y := g.cam.toScreen(geometry.Coord{X: b.X, Y: b.Y})
		fx, fy := facing(b.Rotation)
		// side vector, perpendicular to the facing
		sx, sy := -fy, fx

		r, gr, bl := float32(1.0), float32(0.8), float32(0.2)
		if g.picked[b.ID] {
			r, gr, bl = float32(pickedColor.R)/255, float32(pickedColor.G)/255, float32(pickedColor.B)/255
		}

		base := uint16(len(g.vertices))
		g.vertices = append(g.vertices,
			vertex(x+fx*boidSize, y+fy*boidSize, r, gr, bl),
			vertex(x-fx*boidSize/2+sx*boidSize/2, y-fy*boidSize/2+sy*boidSize/2, r, gr, bl),
			vertex(x-fx*boidSize/2-sx*boidSize/2, y-fy*boidSize/2-sy*boidSize/2, r, gr, bl),
		)
		g.indices = append(g.indices, base, base+1, base+2)
	}
	if len(g.vertices) > 0 {
		screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
	}
}

func vertex(x, y float64, r, g, b float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 1, SrcY: 1,
		ColorR: r, ColorG: g, ColorB: b, ColorA: 1,
	}
}

func (g *Game) Layout(w, h int) (int, int) { return g.screenW, g.screenH }
