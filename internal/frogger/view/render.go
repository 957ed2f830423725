// Package view draws world snapshots onto a core.Screen. It is a pure
// function of the snapshot: nothing here feeds back into the engine.
package view

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-frogger/internal/core"
	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
)

// Highlight colours for progress state.
const (
	MarkedColor   core.Color = "#ff0000"
	CapturedColor core.Color = "#800080"
	HUDColor                 = core.ColorBright
	WarningColor             = core.ColorOrange
	GameOverColor            = core.ColorRed
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// Options tune optional HUD elements.
type Options struct {
	FishWarning bool
}

// Frame allocates a screen of the given size and renders w into it.
func Frame(w world.World, width, height int, opts Options) *core.Screen {
	s := core.NewScreen(width, height)
	Render(s, w, opts)
	return s
}

// Render clears dst and draws w: lanes first, then everything that moves,
// then the player on top, then the HUD and any overlay.
func Render(dst *core.Screen, w world.World, opts Options) {
	dst.Clear()
	p := newProjection(dst)

	for _, group := range [][]world.Entity{w.Water, w.SafeZone} {
		for _, e := range group {
			p.fill(dst, e, ' ', core.ColorDefault, core.Color(e.Visual.Fill))
		}
	}
	for _, e := range w.LandingSlots {
		p.draw(dst, e, core.Color(e.Visual.Fill))
	}
	for _, e := range w.CapturedSlots {
		p.draw(dst, e, CapturedColor)
	}
	for _, e := range w.Turtles {
		switch {
		case containsID(w.DespawnedTurtles, e.ID):
			continue
		case containsID(w.MarkedTurtles, e.ID):
			p.draw(dst, e, MarkedColor)
		default:
			p.draw(dst, e, core.Color(e.Visual.Fill))
		}
	}
	for _, group := range [][]world.Entity{w.Logs, w.Fish, w.Cars, w.Trucks} {
		for _, e := range group {
			p.draw(dst, e, core.Color(e.Visual.Fill))
		}
	}
	p.draw(dst, w.Player, core.Color(w.Player.Visual.Fill))

	drawHUD(dst, w, opts)
	if w.GameOver {
		drawGameOver(dst, w)
	}
}

func drawHUD(dst *core.Screen, w world.World, opts Options) {
	hud := fmt.Sprintf(" Score: %d  High Score: %d  Level: %d  Time: %d",
		w.Score, w.HighScore, w.Level, int(w.ElapsedTime))
	dst.DrawTextColor(0, 0, hud, HUDColor)

	if opts.FishWarning && !w.GameOver && world.FishWarning(w.ElapsedTime) {
		msg := "fish about to vanish! "
		dst.DrawTextColor(dst.Width()-len(msg), 0, msg, WarningColor)
	}
}

func drawGameOver(dst *core.Screen, w world.World) {
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score: %d", w.Score),
		"press r to play again",
	}
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len(l))
	}
	boxW += 4
	boxH := len(lines) + 2

	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.FillRect(r, core.Cell{Rune: ' '})
	dst.DrawBox(r, GameOverColor)
	for i, l := range lines {
		color := HUDColor
		if i == 0 {
			color = GameOverColor
		}
		dst.DrawTextColor(r.X+(boxW-len(l))/2, r.Y+1+i, l, color)
	}
}

// projection maps canvas units onto the playfield rows of a screen.
type projection struct {
	sx, sy float64
	top    int
}

func newProjection(dst *core.Screen) projection {
	rows := max(dst.Height()-hudRows, 0)
	return projection{
		sx:  float64(dst.Width()) / world.CanvasSize,
		sy:  float64(rows) / world.CanvasSize,
		top: hudRows,
	}
}

// cells returns the screen rectangle covered by an entity. Anything with
// area covers at least one cell.
func (p projection) cells(e world.Entity) (core.Rect, bool) {
	if e.Hidden() {
		return core.Rect{}, false
	}
	x0 := int(math.Floor(e.Position.X * p.sx))
	y0 := int(math.Floor(e.Position.Y * p.sy))
	x1 := max(int(math.Ceil((e.Position.X+e.Size.W)*p.sx)), x0+1)
	y1 := max(int(math.Ceil((e.Position.Y+e.Size.H)*p.sy)), y0+1)
	// Rows above the canvas would land on the HUD.
	y0 = max(y0, 0)
	if y1 <= y0 {
		return core.Rect{}, false
	}
	return core.NewRect(x0, y0+p.top, x1-x0, y1-y0), true
}

// fill paints an entity's cells with one rune.
func (p projection) fill(dst *core.Screen, e world.Entity, r rune, fg, bg core.Color) {
	rect, ok := p.cells(e)
	if !ok {
		return
	}
	dst.FillRect(rect, core.Cell{Rune: r, Fg: fg, Bg: bg})
}

// draw paints a solid entity over whatever lane it is on. Rounded entities
// get half-disc end caps.
func (p projection) draw(dst *core.Screen, e world.Entity, fg core.Color) {
	rect, ok := p.cells(e)
	if !ok {
		return
	}
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			r := '█'
			if e.Visual.Rounded {
				switch {
				case rect.W == 1:
					r = '●'
				case x == rect.X:
					r = '◖'
				case x == rect.Right()-1:
					r = '◗'
				}
			}
			bg := dst.GetCell(x, y).Bg
			dst.SetCell(x, y, core.Cell{Rune: r, Fg: fg, Bg: bg})
		}
	}
}

func containsID(set []world.Entity, id string) bool {
	for _, e := range set {
		if e.ID == id {
			return true
		}
	}
	return false
}
