package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mitchelldurbincs/GridTactics/internal/ui/input"
)

type polledFrame struct {
	input.Frame
	Quit bool
}

// readFrame samples ebiten's input state for this tick
func readFrame() polledFrame {
	x, y := ebiten.CursorPosition()
	return polledFrame{
		Frame: input.Frame{
			CursorX:   x,
			CursorY:   y,
			LeftClick: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
			Cancel: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) ||
				inpututil.IsKeyJustPressed(ebiten.KeyEscape),
			Wait: inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
				inpututil.IsKeyJustPressed(ebiten.KeyW),
		},
		Quit: inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
}
