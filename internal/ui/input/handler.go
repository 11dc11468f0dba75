// Package input turns one frame of pointer and key state into battle
// input events.
package input

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

// Battle is the input surface of a battle
type Battle interface {
	ClickTile(c core.Coordinate) bool
	Wait() bool
	SelectedUnit() *units.Unit
}

// Handler turns mouse and keyboard state into battle input events
type Handler struct {
	battle Battle

	// Mouse state
	mouseX, mouseY int

	// UI state
	tileSize int

	lastMessage string
}

func NewHandler(battle Battle, tileSize int) *Handler {
	return &Handler{battle: battle, tileSize: tileSize}
}

// Frame is the input sampled for one tick
type Frame struct {
	CursorX, CursorY int
	LeftClick        bool
	// Cancel is a right click or Escape
	Cancel bool
	// Wait is Space or W
	Wait bool
}

// Update applies one frame of input. It must run on the game loop.
func (h *Handler) Update(f Frame) {
	h.mouseX, h.mouseY = f.CursorX, f.CursorY

	if f.LeftClick {
		h.Click(h.mouseX, h.mouseY)
	}
	if f.Cancel {
		h.Cancel()
	}
	if f.Wait {
		h.Wait()
	}
}

// Click sends a click at screen position (x, y) to the battle
func (h *Handler) Click(x, y int) bool {
	if !h.inBoard(x, y) {
		return false
	}
	c := h.screenToTile(x, y)
	if !h.battle.ClickTile(c) {
		h.lastMessage = "Not now"
		return false
	}
	h.lastMessage = ""
	return true
}

// Cancel drops the current selection by clicking the selected unit again
func (h *Handler) Cancel() bool {
	u := h.battle.SelectedUnit()
	if u == nil {
		return false
	}
	return h.battle.ClickTile(u.Position())
}

// Wait ends the acting unit's action, forfeiting its AP
func (h *Handler) Wait() bool {
	if !h.battle.Wait() {
		return false
	}
	h.lastMessage = "Waiting"
	return true
}

func (h *Handler) inBoard(x, y int) bool {
	return x >= 0 && y >= 0
}

func (h *Handler) screenToTile(x, y int) core.Coordinate {
	return core.NewCoordinate(x/h.tileSize, y/h.tileSize)
}

// HoveredTile returns the cell under the cursor as of the last Update
func (h *Handler) HoveredTile() (core.Coordinate, bool) {
	if !h.inBoard(h.mouseX, h.mouseY) {
		return core.Coordinate{}, false
	}
	return h.screenToTile(h.mouseX, h.mouseY), true
}

// LastMessage returns and clears the last feedback message
func (h *Handler) LastMessage() string {
	msg := h.lastMessage
	h.lastMessage = ""
	return msg
}
