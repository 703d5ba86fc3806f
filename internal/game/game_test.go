package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  Outcome
	}{
		{
			name:  "Empty board in progress",
			board: Board{},
			want:  InProgress,
		},
		{
			name: "Partial board in progress",
			board: Board{
				{PlayerX, Empty, Empty},
				{Empty, PlayerO, Empty},
				{Empty, Empty, Empty},
			},
			want: InProgress,
		},
		{
			name: "X wins - first row",
			board: Board{
				{PlayerX, PlayerX, PlayerX},
				{Empty, PlayerO, Empty},
				{Empty, Empty, PlayerO},
			},
			want: XWins,
		},
		{
			name: "O wins - second row",
			board: Board{
				{PlayerX, PlayerX, Empty},
				{PlayerO, PlayerO, PlayerO},
				{PlayerX, Empty, Empty},
			},
			want: OWins,
		},
		{
			name: "O wins - second column",
			board: Board{
				{PlayerX, PlayerO, Empty},
				{PlayerX, PlayerO, Empty},
				{Empty, PlayerO, PlayerX},
			},
			want: OWins,
		},
		{
			name: "X wins - third column",
			board: Board{
				{PlayerO, PlayerO, PlayerX},
				{Empty, Empty, PlayerX},
				{Empty, Empty, PlayerX},
			},
			want: XWins,
		},
		{
			name: "X wins - main diagonal",
			board: Board{
				{PlayerX, Empty, Empty},
				{PlayerO, PlayerX, Empty},
				{PlayerO, Empty, PlayerX},
			},
			want: XWins,
		},
		{
			name: "O wins - anti-diagonal",
			board: Board{
				{PlayerX, PlayerX, PlayerO},
				{Empty, PlayerO, Empty},
				{PlayerO, Empty, PlayerX},
			},
			want: OWins,
		},
		{
			name: "X wins on the last cell",
			board: Board{
				{PlayerX, PlayerO, PlayerX},
				{PlayerO, PlayerX, PlayerO},
				{PlayerO, PlayerX, PlayerX},
			},
			want: XWins,
		},
		{
			name: "Full board without a line is a draw",
			board: Board{
				{PlayerX, PlayerO, PlayerX},
				{PlayerX, PlayerO, PlayerO},
				{PlayerO, PlayerX, PlayerX},
			},
			want: Draw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.board
			got := tt.board.Evaluate()
			assert.Equal(t, tt.want, got)
			// Evaluating again must not change the answer or the board.
			assert.Equal(t, got, tt.board.Evaluate())
			assert.Equal(t, before, tt.board)
		})
	}
}

func TestEvaluate_FirstLineWins(t *testing.T) {
	// Unreachable in play, but the scan order must stay deterministic.
	b := Board{
		{PlayerO, PlayerO, PlayerO},
		{Empty, Empty, Empty},
		{PlayerX, PlayerX, PlayerX},
	}
	assert.Equal(t, OWins, b.Evaluate())

	b[0], b[2] = b[2], b[0]
	assert.Equal(t, XWins, b.Evaluate())
}

func TestApplyMove(t *testing.T) {
	t.Run("Places the mark on an empty cell", func(t *testing.T) {
		var b Board
		require.NoError(t, b.ApplyMove(1, 2, PlayerO))
		assert.Equal(t, PlayerO, b[1][2])
	})

	t.Run("Rejects an occupied cell and leaves the board unchanged", func(t *testing.T) {
		b := Board{
			{PlayerX, Empty, Empty},
			{Empty, Empty, Empty},
			{Empty, Empty, Empty},
		}
		before := b

		err := b.ApplyMove(0, 0, PlayerO)

		assert.ErrorIs(t, err, ErrInvalidMove)
		assert.Equal(t, before, b)
	})

	t.Run("Rejects out of range coordinates", func(t *testing.T) {
		cases := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}}
		for _, m := range cases {
			var b Board
			err := b.ApplyMove(m[0], m[1], PlayerX)
			assert.ErrorIs(t, err, ErrInvalidMove, "move %v", m)
			assert.Equal(t, Board{}, b)
		}
	})

	t.Run("Rejects the empty mark", func(t *testing.T) {
		var b Board
		assert.ErrorIs(t, b.ApplyMove(1, 1, Empty), ErrInvalidMove)
	})
}

func TestIsBoardFull(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  bool
	}{
		{
			name:  "Empty board is not full",
			board: Board{},
			want:  false,
		},
		{
			name: "Partial board is not full",
			board: Board{
				{PlayerX, Empty, Empty},
				{Empty, PlayerO, Empty},
				{Empty, Empty, Empty},
			},
			want: false,
		},
		{
			name: "Full board is full",
			board: Board{
				{PlayerX, PlayerO, PlayerX},
				{PlayerX, PlayerO, PlayerO},
				{PlayerO, PlayerX, PlayerX},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.board.IsFull())
		})
	}
}

func TestEmptyCells_RowMajor(t *testing.T) {
	b := Board{
		{PlayerX, Empty, PlayerO},
		{Empty, PlayerX, Empty},
		{PlayerO, Empty, PlayerX},
	}

	want := []Position{{0, 1}, {1, 0}, {1, 2}, {2, 1}}
	assert.Equal(t, want, b.EmptyCells())
}

func TestGame_Play(t *testing.T) {
	g := NewGame()
	require.Equal(t, TurnX, g.Turn)

	require.NoError(t, g.Play(1, 1))
	assert.Equal(t, PlayerX, g.Board[1][1])
	assert.Equal(t, TurnO, g.Turn)

	require.NoError(t, g.Play(0, 0))
	assert.Equal(t, PlayerO, g.Board[0][0])
	assert.Equal(t, TurnX, g.Turn)

	// A rejected move does not hand the turn over.
	assert.ErrorIs(t, g.Play(1, 1), ErrInvalidMove)
	assert.Equal(t, TurnX, g.Turn)
}

func TestGame_PlayAfterGameOver(t *testing.T) {
	g := NewGame()
	moves := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}}
	for _, m := range moves {
		require.NoError(t, g.Play(m[0], m[1]))
	}
	require.Equal(t, XWins, g.Outcome())

	assert.ErrorIs(t, g.Play(2, 2), ErrGameOver)
	assert.Equal(t, Empty, g.Board[2][2])
}

func TestGame_Reset(t *testing.T) {
	g := NewGame()
	require.NoError(t, g.Play(0, 0))
	require.NoError(t, g.Play(2, 2))

	g.Reset()
	assert.Equal(t, Board{}, g.Board)
	assert.Equal(t, TurnX, g.Turn)
	assert.Equal(t, InProgress, g.Outcome())

	// Idempotent.
	g.Reset()
	assert.Equal(t, Board{}, g.Board)
	assert.Equal(t, TurnX, g.Turn)
}

func TestCellAndTurnStrings(t *testing.T) {
	assert.Equal(t, "X", PlayerX.String())
	assert.Equal(t, "O", PlayerO.String())
	assert.Equal(t, "", Empty.String())
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
	assert.Equal(t, "O", TurnO.String())
	assert.Equal(t, TurnX, TurnO.Next())
	assert.Equal(t, "draw", Draw.String())
	assert.False(t, InProgress.IsTerminal())
}

func TestRows(t *testing.T) {
	b := Board{
		{PlayerX, Empty, Empty},
		{Empty, PlayerO, Empty},
		{Empty, Empty, Empty},
	}
	assert.Equal(t, [][]string{{"X", "", ""}, {"", "O", ""}, {"", "", ""}}, b.Rows())
}
