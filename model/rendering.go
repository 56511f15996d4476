package model

import (
	"bufio"
	"context"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	// ansiClear erases the screen above the cursor and ansiHome moves the cursor to the top-left
	ansiClear = "\x1b[1J"
	ansiHome  = "\x1b[;H"
)

// Renderer draws a generation to some display surface
type Renderer interface {
	Display(g *Grid, status string) error
	Close() error
}

// Glyphs controls how alive and dead cells are drawn
type Glyphs struct {
	Alive string
	Dead  string
}

// DefaultGlyphs draws each cell two columns wide so the board looks square
func DefaultGlyphs() Glyphs {
	return Glyphs{Alive: gridPosBlock, Dead: gridPosEmpty}
}

// TextRenderer writes frames to a plain writer using ANSI escapes
type TextRenderer struct {
	w      *bufio.Writer
	glyphs Glyphs
}

// NewTextRenderer creates a renderer writing to w
func NewTextRenderer(w io.Writer, glyphs Glyphs) *TextRenderer {
	return &TextRenderer{w: bufio.NewWriter(w), glyphs: glyphs}
}

// Display clears the terminal and prints the grid followed by the status line
func (r *TextRenderer) Display(g *Grid, status string) error {
	r.w.WriteString(ansiClear)
	r.w.WriteString(ansiHome)
	for row := range g.GetRows() {
		for column := range g.GetColumns() {
			if g.Get(row, column) {
				r.w.WriteString(r.glyphs.Alive)
			} else {
				r.w.WriteString(r.glyphs.Dead)
			}
		}
		r.w.WriteByte('\n')
	}
	if status != "" {
		r.w.WriteString(status)
		r.w.WriteByte('\n')
	}
	return errors.Wrap(r.w.Flush(), "[TextRenderer.Display] failed to flush frame")
}

// Close flushes any buffered output
func (r *TextRenderer) Close() error {
	return errors.Wrap(r.w.Flush(), "[TextRenderer.Close] failed to flush")
}

// ScreenRenderer draws frames on a tcell screen
type ScreenRenderer struct {
	screen    tcell.Screen
	glyphs    Glyphs
	aliveRune []rune
	deadRune  []rune
	style     tcell.Style
}

// NewScreenRenderer wraps an already initialised tcell screen
func NewScreenRenderer(screen tcell.Screen, glyphs Glyphs) *ScreenRenderer {
	return &ScreenRenderer{
		screen:    screen,
		glyphs:    glyphs,
		aliveRune: []rune(glyphs.Alive),
		deadRune:  []rune(glyphs.Dead),
		style:     tcell.StyleDefault,
	}
}

// NewTerminalScreenRenderer opens the controlling terminal with tcell
func NewTerminalScreenRenderer(glyphs Glyphs) (*ScreenRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "[NewTerminalScreenRenderer] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[NewTerminalScreenRenderer] failed to initialise screen")
	}
	screen.HideCursor()
	screen.Clear()
	return NewScreenRenderer(screen, glyphs), nil
}

// Display draws the grid from the top-left corner with the status line underneath
func (r *ScreenRenderer) Display(g *Grid, status string) error {
	r.screen.Clear()
	for row := range g.GetRows() {
		x := 0
		for column := range g.GetColumns() {
			glyph := r.deadRune
			if g.Get(row, column) {
				glyph = r.aliveRune
			}
			for _, ch := range glyph {
				r.screen.SetContent(x, row, ch, nil, r.style)
				x++
			}
		}
	}
	x := 0
	for _, ch := range status {
		r.screen.SetContent(x, g.GetRows(), ch, nil, r.style.Bold(true))
		x++
	}
	r.screen.Show()
	return nil
}

// PollQuit blocks until the user presses q, Esc or Ctrl-C, or ctx is done.
// It reports whether a quit key was pressed.
func (r *ScreenRenderer) PollQuit(ctx context.Context) bool {
	go func() {
		<-ctx.Done()
		// Wakes PollEvent so the loop below can observe the cancellation.
		r.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		if ctx.Err() != nil {
			return false
		}
		switch ev := r.screen.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return true
			}
		case *tcell.EventResize:
			r.screen.Sync()
		}
	}
}

// Close restores the terminal
func (r *ScreenRenderer) Close() error {
	r.screen.Fini()
	return nil
}
