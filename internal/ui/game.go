// Package ui is the Ebitengine client: it drives a battle from the game
// loop, animates it and turns mouse input into battle input events.
package ui

import (
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/GridTactics/internal/config"
	"github.com/mitchelldurbincs/GridTactics/internal/game/battle"
	"github.com/mitchelldurbincs/GridTactics/internal/ui/anim"
	"github.com/mitchelldurbincs/GridTactics/internal/ui/hud"
	"github.com/mitchelldurbincs/GridTactics/internal/ui/input"
	"github.com/mitchelldurbincs/GridTactics/internal/ui/renderer"
)

var BackgroundColor = color.RGBA{R: 50, G: 50, B: 50, A: 255} // Dark gray background

// Game holds the battle and the UI-specific state around it
type Game struct {
	battle        *battle.Battle
	presenter     *anim.Presenter
	boardRenderer *renderer.BoardRenderer
	inputHandler  *input.Handler
	panel         *hud.Panel
	defaultFont   font.Face
	cfg           config.UIConfig
	logger        zerolog.Logger

	// UI state
	statusMessage string
	messageTimer  int
}

// NewGame wraps a battle whose units are animated by presenter. The battle
// must not be started yet; the first Update starts it.
func NewGame(b *battle.Battle, presenter *anim.Presenter, cfg config.UIConfig, logger zerolog.Logger) *Game {
	g := &Game{
		battle:      b,
		presenter:   presenter,
		panel:       hud.NewPanel("ui-panel", hud.DefaultLogSize),
		defaultFont: basicfont.Face7x13,
		cfg:         cfg,
		logger:      logger.With().Str("component", "UIGame").Logger(),
	}

	g.boardRenderer = renderer.NewBoardRenderer(cfg.TileSize, g.defaultFont)
	g.inputHandler = input.NewHandler(b, cfg.TileSize)
	b.Bus().Subscribe(g.panel)

	return g
}

// Run opens the window and blocks until it is closed
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Window.Title)
	ebiten.SetTPS(g.cfg.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update proceeds the game state.
func (g *Game) Update() error {
	if _, started := g.battle.Phase(); !started {
		g.battle.Start()
	}

	frame := readFrame()
	if frame.Quit {
		return ebiten.Termination
	}

	dt := time.Second / time.Duration(ebiten.TPS())

	g.inputHandler.Update(frame.Frame)
	hover, ok := g.inputHandler.HoveredTile()
	g.boardRenderer.SetHover(hover, ok && !g.presenter.Busy())

	if msg := g.inputHandler.LastMessage(); msg != "" {
		g.showMessage(msg, g.cfg.TPS)
	}
	if g.messageTimer > 0 {
		g.messageTimer--
	}

	g.presenter.Update(dt)
	g.battle.Update(dt)

	return nil
}

func (g *Game) showMessage(msg string, duration int) {
	g.statusMessage = msg
	g.messageTimer = duration
}

func (g *Game) gameOver() bool {
	phase, ok := g.battle.Phase()
	return ok && phase.IsTerminal()
}

// Draw renders the game screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(BackgroundColor)

	if g.boardRenderer != nil {
		g.boardRenderer.Draw(screen, g.battle, g.presenter)
	}

	g.drawUI(screen)
}

// Layout defines the Ebitengine screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
