package bot

import (
	"ctchen222/minimax-tictactoe/internal/game"
	"errors"
	"math"
)

const (
	// Terminal scores from the computer's (O) point of view. Depth is not
	// taken into account, so any winning line scores the same.
	WinScore  = 10
	LossScore = -10
	DrawScore = 0

	// Computer is the maximizing side.
	Computer = game.PlayerO
	// Opponent is the minimizing side.
	Opponent = game.PlayerX
)

// ErrNoLegalMove is returned when the search is asked to move on a finished board.
var ErrNoLegalMove = errors.New("no legal move")

// Result is the outcome of a root search.
type Result struct {
	Row   int
	Col   int
	Score int
	Nodes int
}

// Score rates a terminal board. Boards still in progress score as a draw.
func Score(board *game.Board) int {
	switch board.Evaluate() {
	case game.OWins:
		return WinScore
	case game.XWins:
		return LossScore
	default:
		return DrawScore
	}
}

// Minimax returns the value of board with the given side to move, searching
// the whole remaining game tree. The board is restored before returning.
func Minimax(board *game.Board, maximizing bool) int {
	var s searcher
	return s.minimax(board, maximizing)
}

// FindBestMove picks the computer's move. Ties keep the first cell in
// row-major order.
func FindBestMove(board *game.Board) (row, col int, err error) {
	res, err := Search(board)
	if err != nil {
		return -1, -1, err
	}
	return res.Row, res.Col, nil
}

// Search runs the root of the minimax search for the computer and reports
// the chosen cell together with its score and the number of visited nodes.
func Search(board *game.Board) (Result, error) {
	if board.Evaluate().IsTerminal() {
		return Result{Row: -1, Col: -1}, ErrNoLegalMove
	}

	var s searcher
	best := Result{Row: -1, Col: -1, Score: math.MinInt}
	for r := range game.Size {
		for c := range game.Size {
			if board[r][c] != game.Empty {
				continue
			}
			board[r][c] = Computer
			score := s.minimax(board, false)
			board[r][c] = game.Empty

			if score > best.Score {
				best.Row, best.Col, best.Score = r, c, score
			}
		}
	}
	best.Nodes = s.nodes
	return best, nil
}

type searcher struct {
	nodes int
}

func (s *searcher) minimax(board *game.Board, maximizing bool) int {
	s.nodes++
	if board.Evaluate().IsTerminal() {
		return Score(board)
	}

	if maximizing {
		best := math.MinInt
		for r := range game.Size {
			for c := range game.Size {
				if board[r][c] != game.Empty {
					continue
				}
				board[r][c] = Computer
				best = max(best, s.minimax(board, false))
				board[r][c] = game.Empty
			}
		}
		return best
	}

	best := math.MaxInt
	for r := range game.Size {
		for c := range game.Size {
			if board[r][c] != game.Empty {
				continue
			}
			board[r][c] = Opponent
			best = min(best, s.minimax(board, true))
			board[r][c] = game.Empty
		}
	}
	return best
}
