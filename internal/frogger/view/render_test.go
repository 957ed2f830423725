package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-frogger/internal/core"
	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
)

// 60x31 gives exactly 10 canvas units per column and 20 per row.
const testW, testH = 60, 31

func TestRenderHUD(t *testing.T) {
	w := world.NewWorld()
	w.Score, w.HighScore, w.Level = 12, 300, 4

	s := Frame(w, testW, testH, Options{})
	hud := s.Row(0)

	assert.Contains(t, hud, "Score: 12")
	assert.Contains(t, hud, "High Score: 300")
	assert.Contains(t, hud, "Level: 4")
}

func TestRenderPlayerOnTop(t *testing.T) {
	s := Frame(world.NewWorld(), testW, testH, Options{})

	// Spawn (300, 540) lands on column 30, row 27 of the playfield.
	left := s.GetCell(30, 28)
	right := s.GetCell(31, 28)
	assert.Equal(t, '◖', left.Rune)
	assert.Equal(t, '◗', right.Rune)
	assert.Equal(t, core.Color("#008000"), left.Fg)
}

func TestRenderLanes(t *testing.T) {
	s := Frame(world.NewWorld(), testW, testH, Options{})

	water := s.GetCell(0, 1)
	assert.Equal(t, ' ', water.Rune)
	assert.Equal(t, core.Color("#196dbd"), water.Bg)

	safe := s.GetCell(0, 13)
	assert.Equal(t, core.Color("#800080"), safe.Bg)

	// car0 at (200, 470) sits on no lane background.
	car := s.GetCell(20, 24)
	assert.Equal(t, '█', car.Rune)
	assert.Equal(t, core.Color("#808080"), car.Fg)
}

func TestRenderProgressHighlights(t *testing.T) {
	w := world.NewWorld()
	w.MarkedTurtles = []world.Entity{w.Turtles[0]}
	w.DespawnedTurtles = []world.Entity{w.Turtles[1]}
	w.CapturedSlots = []world.Entity{w.LandingSlots[0]}
	w.LandingSlots = w.LandingSlots[1:]

	s := Frame(w, testW, testH, Options{})

	assert.Equal(t, MarkedColor, s.GetCell(1, 7).Fg, "marked turtle")
	assert.Equal(t, ' ', s.GetCell(7, 7).Rune, "despawned turtle is not drawn")
	assert.Equal(t, CapturedColor, s.GetCell(3, 2).Fg, "captured slot")
	assert.Equal(t, core.Color("#f005c9"), s.GetCell(15, 2).Fg, "open slot")
}

func TestRenderSkipsHiddenFish(t *testing.T) {
	w := world.NewWorld()
	w = world.Reduce(w, world.Tick{Elapsed: 1000})
	for _, f := range w.Fish {
		assert.True(t, f.Hidden())
	}

	s := Frame(w, testW, testH, Options{})
	for x := range testW {
		assert.NotEqual(t, core.Color("#789491"), s.GetCell(x, 9).Fg)
	}
}

func TestRenderFishWarning(t *testing.T) {
	w := world.NewWorld()
	w.ElapsedTime = 750

	on := Frame(w, testW, testH, Options{FishWarning: true})
	assert.Contains(t, on.Row(0), "fish about to vanish!")

	off := Frame(w, testW, testH, Options{FishWarning: false})
	assert.NotContains(t, off.Row(0), "fish about to vanish!")

	w.ElapsedTime = 100
	early := Frame(w, testW, testH, Options{FishWarning: true})
	assert.NotContains(t, early.Row(0), "fish about to vanish!")
}

func TestRenderGameOver(t *testing.T) {
	w := world.NewWorld()
	w.Score = 42
	w.GameOver = true

	out := Frame(w, testW, testH, Options{}).String()
	assert.Contains(t, out, "GAME OVER")
	assert.Contains(t, out, "Score: 42")
	assert.Contains(t, out, "press r to play again")

	w.GameOver = false
	assert.NotContains(t, Frame(w, testW, testH, Options{}).String(), "GAME OVER")
}

func TestRenderTinyScreens(t *testing.T) {
	w := world.NewWorld()
	w.GameOver = true

	for _, size := range [][2]int{{0, 0}, {1, 1}, {5, 2}, {200, 3}} {
		s := Frame(w, size[0], size[1], Options{FishWarning: true})
		assert.Equal(t, size[1], s.Height())
	}
}

func TestRenderIsPure(t *testing.T) {
	w := world.NewWorld()
	a := Frame(w, testW, testH, Options{}).String()
	b := Frame(w, testW, testH, Options{}).String()

	assert.Equal(t, a, b)
	assert.True(t, strings.Contains(a, "Score: 0"))
}
