package match

//go:generate mockgen -source=match.go -destination=mocks/mock_move_calculator.go -package=mocks

import (
	"context"
	"ctchen222/minimax-tictactoe/internal/game"
	"ctchen222/minimax-tictactoe/internal/validator"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("match")
	meter  = otel.Meter("match")
)

// ErrNotYourTurn is returned when the human moves while the computer is to play.
var ErrNotYourTurn = errors.New("not player's turn")

const (
	// HumanTurn is the side driven by user input; the computer plays the other.
	HumanTurn = game.TurnX
)

// MoveCalculator defines an interface for an agent that can calculate a game move.
type MoveCalculator interface {
	CalculateNextMove(ctx context.Context, board game.Board) (row, col int, err error)
}

// MoveRequest is a human move as received from the presentation layer.
type MoveRequest struct {
	Row int `validate:"min=0,max=2"`
	Col int `validate:"min=0,max=2"`
}

// Update is the state of the match after an operation.
type Update struct {
	Board        game.Board
	Turn         game.Turn
	Outcome      game.Outcome
	ComputerMove *game.Position
}

// Match is a single human (X) versus computer (O) game that can be replayed.
type Match struct {
	ID            string
	game          *game.Game
	calculator    MoveCalculator
	gamesFinished metric.Int64Counter
}

// NewMatch creates a match with an empty board and X to move.
func NewMatch(calculator MoveCalculator) (*Match, error) {
	finished, err := meter.Int64Counter("match.games.finished",
		metric.WithDescription("Games played to a terminal outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create games finished counter: %w", err)
	}

	return &Match{
		ID:            uuid.New().String(),
		game:          game.NewGame(),
		calculator:    calculator,
		gamesFinished: finished,
	}, nil
}

// Play applies the human move at (row, col) and, if the game goes on, the
// computer's reply.
func (m *Match) Play(ctx context.Context, row, col int) (*Update, error) {
	ctx, span := tracer.Start(ctx, "match.Play", trace.WithAttributes(
		attribute.String("match.id", m.ID),
		attribute.Int("move.row", row),
		attribute.Int("move.col", col),
	))
	defer span.End()

	if err := validator.Check(MoveRequest{Row: row, Col: col}); err != nil {
		err = fmt.Errorf("%w: %v", game.ErrInvalidMove, err)
		slog.WarnContext(ctx, "rejected move", "match.id", m.ID, "row", row, "col", col, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid move")
		return nil, err
	}

	if m.game.Outcome().IsTerminal() {
		span.SetStatus(codes.Error, "Game already finished")
		return nil, game.ErrGameOver
	}
	if m.game.Turn != HumanTurn {
		span.SetStatus(codes.Error, "Not player's turn")
		return nil, ErrNotYourTurn
	}

	if err := m.game.Play(row, col); err != nil {
		slog.WarnContext(ctx, "rejected move", "match.id", m.ID, "row", row, "col", col, "error", err)
		span.SetAttributes(attribute.Bool("move.valid", false))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid move")
		return nil, err
	}
	span.SetAttributes(attribute.Bool("move.valid", true))
	slog.InfoContext(ctx, "player moved", "match.id", m.ID, "row", row, "col", col)

	update := m.snapshot()
	if update.Outcome.IsTerminal() {
		m.finish(ctx, update.Outcome)
		return update, nil
	}

	botRow, botCol, err := m.calculator.CalculateNextMove(ctx, m.game.Board)
	if err != nil {
		err = fmt.Errorf("computer failed to choose a move: %w", err)
		slog.ErrorContext(ctx, "computer move failed", "match.id", m.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Computer move failed")
		return update, err
	}
	if err := m.game.Play(botRow, botCol); err != nil {
		err = fmt.Errorf("computer chose an illegal move: %w", err)
		slog.ErrorContext(ctx, "computer move rejected", "match.id", m.ID, "row", botRow, "col", botCol, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Computer move rejected")
		return update, err
	}
	slog.InfoContext(ctx, "computer moved", "match.id", m.ID, "row", botRow, "col", botCol)

	update = m.snapshot()
	update.ComputerMove = &game.Position{Row: botRow, Col: botCol}
	if update.Outcome.IsTerminal() {
		m.finish(ctx, update.Outcome)
	}
	return update, nil
}

// Reset starts a new game in the same match.
func (m *Match) Reset(ctx context.Context) *Update {
	_, span := tracer.Start(ctx, "match.Reset", trace.WithAttributes(
		attribute.String("match.id", m.ID),
	))
	defer span.End()

	m.game.Reset()
	slog.InfoContext(ctx, "game reset", "match.id", m.ID)
	return m.snapshot()
}

// Snapshot returns a copy of the current state.
func (m *Match) Snapshot() *Update {
	return m.snapshot()
}

func (m *Match) snapshot() *Update {
	return &Update{
		Board:   m.game.Board,
		Turn:    m.game.Turn,
		Outcome: m.game.Outcome(),
	}
}

func (m *Match) finish(ctx context.Context, outcome game.Outcome) {
	m.gamesFinished.Add(ctx, 1, metric.WithAttributes(attribute.String("game.outcome", outcome.String())))
	slog.InfoContext(ctx, "game over", "match.id", m.ID, "outcome", outcome.String())
}
