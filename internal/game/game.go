package game

import (
	"errors"
	"fmt"
)

// Cell is the content of a single board square.
type Cell uint8

// Outcome is the state of a board as derived by Evaluate.
type Outcome uint8

// Turn tracks which side moves next.
type Turn uint8

const (
	// Cell values
	Empty Cell = iota
	PlayerX
	PlayerO
)

const (
	InProgress Outcome = iota
	XWins
	OWins
	Draw
)

const (
	TurnX Turn = iota
	TurnO
)

const (
	// Size is the number of rows and columns of the board.
	Size = 3

	// Board boundaries
	BorderMin = 0
	BorderMax = Size - 1
)

var (
	// ErrInvalidMove is returned for out-of-range coordinates, occupied cells or an empty mark.
	ErrInvalidMove = errors.New("invalid move")
	// ErrGameOver is returned when a move is played on a finished game.
	ErrGameOver = errors.New("game already finished")
)

// Board is a 3x3 grid stored row-major.
type Board [Size][Size]Cell

// Position addresses a single cell.
type Position struct {
	Row int
	Col int
}

// ApplyMove places mark at (row, col). The board is left untouched on error.
func (b *Board) ApplyMove(row, col int, mark Cell) error {
	if row < BorderMin || row > BorderMax || col < BorderMin || col > BorderMax {
		return fmt.Errorf("%w: (%d, %d) is out of range", ErrInvalidMove, row, col)
	}
	if mark != PlayerX && mark != PlayerO {
		return fmt.Errorf("%w: mark %d cannot be placed", ErrInvalidMove, mark)
	}
	if b[row][col] != Empty {
		return fmt.Errorf("%w: cell (%d, %d) already occupied", ErrInvalidMove, row, col)
	}

	b[row][col] = mark
	return nil
}

// Evaluate reports the outcome of the board. Rows are checked first, then
// columns, then both diagonals; the first complete line decides the winner.
func (b *Board) Evaluate() Outcome {
	switch b.Winner() {
	case PlayerX:
		return XWins
	case PlayerO:
		return OWins
	}
	if b.IsFull() {
		return Draw
	}
	return InProgress
}

// Winner returns the mark owning a complete line, or Empty.
func (b *Board) Winner() Cell {
	// Check rows
	for i := range Size {
		if b[i][0] != Empty && b[i][0] == b[i][1] && b[i][1] == b[i][2] {
			return b[i][0]
		}
	}

	// Check columns
	for i := range Size {
		if b[0][i] != Empty && b[0][i] == b[1][i] && b[1][i] == b[2][i] {
			return b[0][i]
		}
	}

	// Check diagonals
	if b[0][0] != Empty && b[0][0] == b[1][1] && b[1][1] == b[2][2] {
		return b[0][0]
	}
	if b[0][2] != Empty && b[0][2] == b[1][1] && b[1][1] == b[2][0] {
		return b[0][2]
	}

	return Empty
}

// Reset clears every cell.
func (b *Board) Reset() {
	*b = Board{}
}

// Game couples a board with the side to move.
type Game struct {
	Board Board
	Turn  Turn
}

// NewGame returns an empty board with X to move.
func NewGame() *Game {
	return &Game{Turn: TurnX}
}

// Play places the current side's mark at (row, col) and hands the turn over.
func (g *Game) Play(row, col int) error {
	if g.Board.Evaluate().IsTerminal() {
		return ErrGameOver
	}
	if err := g.Board.ApplyMove(row, col, g.Turn.Mark()); err != nil {
		return err
	}
	g.Turn = g.Turn.Next()
	return nil
}

// Outcome evaluates the current board.
func (g *Game) Outcome() Outcome {
	return g.Board.Evaluate()
}

// Reset restores the initial state: empty board, X to move.
func (g *Game) Reset() {
	g.Board.Reset()
	g.Turn = TurnX
}
