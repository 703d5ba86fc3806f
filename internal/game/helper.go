package game

// String returns "X", "O" or "" for an empty cell.
func (c Cell) String() string {
	switch c {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other player's mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

func (t Turn) Mark() Cell {
	if t == TurnO {
		return PlayerO
	}
	return PlayerX
}

func (t Turn) Next() Turn {
	if t == TurnX {
		return TurnO
	}
	return TurnX
}

func (t Turn) String() string {
	return t.Mark().String()
}

// IsTerminal reports whether no further moves may be played.
func (o Outcome) IsTerminal() bool {
	return o != InProgress
}

func (o Outcome) String() string {
	switch o {
	case XWins:
		return "x_wins"
	case OWins:
		return "o_wins"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// IsFull reports whether every cell holds a mark.
func (b *Board) IsFull() bool {
	for r := range Size {
		for c := range Size {
			if b[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

// EmptyCells lists the empty cells in row-major order.
func (b *Board) EmptyCells() []Position {
	cells := make([]Position, 0, Size*Size)
	for r := range Size {
		for c := range Size {
			if b[r][c] == Empty {
				cells = append(cells, Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Rows converts the board to a slice of slices of strings.
func (b *Board) Rows() [][]string {
	rows := make([][]string, Size)
	for i := range Size {
		rows[i] = make([]string, Size)
		for j := range Size {
			rows[i][j] = b[i][j].String()
		}
	}
	return rows
}
