package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game/battle"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/ui/hud"
)

// DefaultTick is how often the battle is advanced and redrawn
const DefaultTick = 50 * time.Millisecond

// Client runs a battle in the terminal. Terminal events are read on a
// separate goroutine and handed to the loop over a channel; the battle
// itself is only touched by Run.
type Client struct {
	screen   tcell.Screen
	battle   *battle.Battle
	panel    *hud.Panel
	renderer *Renderer
	tick     time.Duration
	logger   zerolog.Logger

	buttons tcell.ButtonMask
	running bool
}

// NewClient wraps an unstarted battle
func NewClient(screen tcell.Screen, b *battle.Battle, tick time.Duration, logger zerolog.Logger) *Client {
	if tick <= 0 {
		tick = DefaultTick
	}
	panel := hud.NewPanel("term-panel", hud.DefaultLogSize)
	b.Bus().Subscribe(panel)

	return &Client{
		screen:   screen,
		battle:   b,
		panel:    panel,
		renderer: NewRenderer(screen, panel),
		tick:     tick,
		logger:   logger.With().Str("component", "TermClient").Logger(),
		running:  true,
	}
}

// Run starts the battle and loops until the player quits or ctx is done.
// The screen is finalized on return.
func (c *Client) Run(ctx context.Context) error {
	defer c.screen.Fini()

	evCh := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go c.screen.ChannelEvents(evCh, quit)

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	c.battle.Start()
	c.renderer.Render(c.battle)

	for c.running {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("Context cancelled, leaving battle")
			return ctx.Err()
		case <-ticker.C:
			c.battle.Update(c.tick)
		case ev, ok := <-evCh:
			if !ok {
				return nil
			}
			c.HandleEvent(ev)
		}
		c.renderer.Render(c.battle)
	}
	return nil
}

// HandleEvent applies one terminal event to the battle
func (c *Client) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		c.handleKey(ev)
	case *tcell.EventMouse:
		c.handleMouse(ev)
	case *tcell.EventResize:
		c.screen.Sync()
	}
}

func (c *Client) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		c.running = false
	case tcell.KeyEscape:
		c.cancel()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			c.running = false
		case 'w', 'W', ' ':
			if c.battle.Wait() {
				c.logger.Debug().Msg("Player waited")
			}
		}
	}
}

func (c *Client) cancel() {
	if u := c.battle.SelectedUnit(); u != nil {
		c.battle.ClickTile(u.Position())
	}
}

// handleMouse acts on button presses only; tcell repeats the button mask
// while it is held.
func (c *Client) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons &^ c.buttons
	c.buttons = buttons

	switch {
	case pressed&tcell.Button1 != 0:
		x, y := ev.Position()
		cell := core.NewCoordinate(x/CellWidth, y)
		if !c.battle.ClickTile(cell) {
			c.logger.Debug().Stringer("cell", cell).Msg("Click ignored")
		}
	case pressed&tcell.Button2 != 0, pressed&tcell.Button3 != 0:
		c.cancel()
	}
}
