package tui

import (
	"context"
	"ctchen222/minimax-tictactoe/internal/game"
	"ctchen222/minimax-tictactoe/internal/match"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
)

const (
	cellWidth  = 7
	cellHeight = 3

	// Top-left corner of the grid border.
	originX = 1
	originY = 1
)

var (
	styleX      = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite).Bold(true)
	styleO      = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite).Bold(true)
	styleEmpty  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus = tcell.StyleDefault
)

// Game is the part of a match the UI drives.
type Game interface {
	Play(ctx context.Context, row, col int) (*match.Update, error)
	Reset(ctx context.Context) *match.Update
	Snapshot() *match.Update
}

// UI renders the board as a grid of clickable cells and forwards input to the game.
type UI struct {
	screen  tcell.Screen
	game    Game
	state   *match.Update
	status  string
	pressed bool
}

// New creates a UI on an initialized screen.
func New(screen tcell.Screen, g Game) *UI {
	return &UI{screen: screen, game: g}
}

// Run draws the board and processes input until the player quits or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	u.screen.EnableMouse()
	u.state = u.game.Snapshot()
	u.status = promptFor(u.state.Outcome)
	u.draw()

	stop := context.AfterFunc(ctx, func() {
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if u.handle(ctx, ev) {
			return nil
		}
		u.draw()
	}
}

// handle reacts to a single event and reports whether the UI should exit.
func (u *UI) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		return true
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		return u.handleKey(ctx, ev)
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !u.pressed {
			if row, col, ok := cellAt(ev.Position()); ok {
				u.play(ctx, row, col)
			}
		}
		u.pressed = down
	}
	return false
}

func (u *UI) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	r := ev.Rune()
	switch {
	case r == 'q':
		return true
	case r == 'r':
		u.reset(ctx)
	case u.state.Outcome.IsTerminal() && r == 'y':
		u.reset(ctx)
	case u.state.Outcome.IsTerminal() && r == 'n':
		return true
	case r >= '1' && r <= '9':
		idx := int(r - '1')
		u.play(ctx, idx/game.Size, idx%game.Size)
	}
	return false
}

func (u *UI) play(ctx context.Context, row, col int) {
	if u.state.Outcome.IsTerminal() {
		return
	}

	update, err := u.game.Play(ctx, row, col)
	switch {
	case errors.Is(err, game.ErrInvalidMove):
		u.status = "That cell is taken, pick another one."
		return
	case err != nil:
		slog.ErrorContext(ctx, "move failed", "row", row, "col", col, "error", err)
		u.status = fmt.Sprintf("Move failed: %v (press r to restart)", err)
		if update != nil {
			u.state = update
		}
		return
	}

	u.state = update
	u.status = promptFor(update.Outcome)
}

func (u *UI) reset(ctx context.Context) {
	u.state = u.game.Reset(ctx)
	u.status = promptFor(u.state.Outcome)
}

func promptFor(outcome game.Outcome) string {
	switch outcome {
	case game.XWins:
		return "Player X wins! Play again? (y/n)"
	case game.OWins:
		return "Player O wins! Play again? (y/n)"
	case game.Draw:
		return "Tie! Play again? (y/n)"
	default:
		return "Your move (X): click a cell or press 1-9. q quits."
	}
}

func (u *UI) draw() {
	u.screen.Clear()

	// Borders
	gridW := game.Size*(cellWidth+1) + 1
	gridH := game.Size*(cellHeight+1) + 1
	for y := range gridH {
		for x := range gridW {
			onCol := x%(cellWidth+1) == 0
			onRow := y%(cellHeight+1) == 0
			switch {
			case onCol && onRow:
				u.screen.SetContent(originX+x, originY+y, '+', nil, styleBorder)
			case onRow:
				u.screen.SetContent(originX+x, originY+y, '-', nil, styleBorder)
			case onCol:
				u.screen.SetContent(originX+x, originY+y, '|', nil, styleBorder)
			}
		}
	}

	// Cells
	for r := range game.Size {
		for c := range game.Size {
			mark := u.state.Board[r][c]
			style := styleEmpty
			switch mark {
			case game.PlayerX:
				style = styleX
			case game.PlayerO:
				style = styleO
			}

			x0, y0 := cellOrigin(r, c)
			for dy := range cellHeight {
				for dx := range cellWidth {
					u.screen.SetContent(x0+dx, y0+dy, ' ', nil, style)
				}
			}
			if mark != game.Empty {
				u.screen.SetContent(x0+cellWidth/2, y0+cellHeight/2, []rune(mark.String())[0], nil, style)
			}
		}
	}

	u.drawText(originX, statusLine(), u.status)
	u.screen.Show()
}

func (u *UI) drawText(x, y int, text string) {
	for i, r := range []rune(text) {
		u.screen.SetContent(x+i, y, r, nil, styleStatus)
	}
}

// cellOrigin returns the top-left interior position of a cell.
func cellOrigin(row, col int) (x, y int) {
	return originX + col*(cellWidth+1) + 1, originY + row*(cellHeight+1) + 1
}

// cellAt maps a screen position to a board cell. Borders map to no cell.
func cellAt(x, y int) (row, col int, ok bool) {
	relX, relY := x-originX, y-originY
	if relX < 0 || relY < 0 {
		return -1, -1, false
	}
	if relX%(cellWidth+1) == 0 || relY%(cellHeight+1) == 0 {
		return -1, -1, false
	}
	col, row = relX/(cellWidth+1), relY/(cellHeight+1)
	if row >= game.Size || col >= game.Size {
		return -1, -1, false
	}
	return row, col, true
}

func statusLine() int {
	return originY + game.Size*(cellHeight+1) + 1
}
