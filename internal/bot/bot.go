package bot

import (
	"context"
	"ctchen222/minimax-tictactoe/internal/game"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

// BotMoveCalculator implements the match.MoveCalculator interface.
type BotMoveCalculator struct {
	searchNodes metric.Int64Histogram
}

// NewBotMoveCalculator creates a calculator backed by the global meter provider.
func NewBotMoveCalculator() (*BotMoveCalculator, error) {
	nodes, err := meter.Int64Histogram("bot.search.nodes",
		metric.WithDescription("Minimax nodes visited per computer move"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create search nodes histogram: %w", err)
	}
	return &BotMoveCalculator{searchNodes: nodes}, nil
}

// CalculateNextMove searches a copy of board and returns the computer's move.
func (c *BotMoveCalculator) CalculateNextMove(ctx context.Context, board game.Board) (row, col int, err error) {
	ctx, span := tracer.Start(ctx, "bot.CalculateNextMove", trace.WithAttributes(
		attribute.Int("board.empty_cells", len(board.EmptyCells())),
	))
	defer span.End()

	res, err := Search(&board)
	if err != nil {
		slog.WarnContext(ctx, "computer asked to move on a finished board", "outcome", board.Evaluate().String())
		span.RecordError(err)
		span.SetStatus(codes.Error, "No legal move")
		return -1, -1, err
	}

	span.SetAttributes(
		attribute.Int("move.row", res.Row),
		attribute.Int("move.col", res.Col),
		attribute.Int("move.score", res.Score),
		attribute.Int("search.nodes", res.Nodes),
	)
	if c.searchNodes != nil {
		c.searchNodes.Record(ctx, int64(res.Nodes))
	}
	slog.DebugContext(ctx, "computer chose move", "row", res.Row, "col", res.Col, "score", res.Score, "nodes", res.Nodes)

	return res.Row, res.Col, nil
}
