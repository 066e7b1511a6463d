package history

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

// PostgresSink stores hands and summaries in PostgreSQL.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and creates the history tables if needed.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	sink := &PostgresSink{pool: pool}
	if err := sink.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return sink, nil
}

func (p *PostgresSink) migrate(ctx context.Context) error {
	ddl, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, string(ddl)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (p *PostgresSink) WriteHand(ctx context.Context, h Hand) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO hands(match_id, hand_number, game, history, played_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (match_id, hand_number) DO UPDATE
		   SET history = EXCLUDED.history
	`, h.MatchID, h.Number, h.Game, h.Text, h.Played)
	if err != nil {
		return fmt.Errorf("failed to insert hand %d: %w", h.Number, err)
	}
	return nil
}

// WriteSummary records the match and its standings in one transaction.
func (p *PostgresSink) WriteSummary(ctx context.Context, s Summary) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		var winner any
		if s.Winner != "" {
			winner = s.Winner
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO matches(id, game, hands, winner, started_at, finished_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE
			   SET hands = EXCLUDED.hands,
			       winner = EXCLUDED.winner,
			       finished_at = EXCLUDED.finished_at
		`, s.MatchID, s.Game, s.Hands, winner, s.Started, s.Finished); err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}

		batch := &pgx.Batch{}
		for _, st := range s.Standings {
			batch.Queue(`
				INSERT INTO standings(match_id, agent, finish, stack, gain_loss, timeouts)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (match_id, agent) DO UPDATE
				   SET finish = EXCLUDED.finish,
				       stack = EXCLUDED.stack,
				       gain_loss = EXCLUDED.gain_loss,
				       timeouts = EXCLUDED.timeouts
			`, s.MatchID, st.Name, st.Finish, st.Stack, st.GainLoss, st.Timeouts)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert standings: %w", err)
		}
		return nil
	})
}

func (p *PostgresSink) Close() error {
	p.pool.Close()
	return nil
}
