// Package term is the terminal client: it draws a battle with tcell and
// turns mouse clicks and keys into battle input events.
package term

import "github.com/gdamore/tcell/v2"

// NewScreen creates and initializes a terminal screen with mouse support.
func NewScreen() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := initScreen(s); err != nil {
		return nil, err
	}
	return s, nil
}

func initScreen(s tcell.Screen) error {
	if err := s.Init(); err != nil {
		return err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse()
	s.Clear()
	return nil
}
