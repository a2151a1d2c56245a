package convlog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresAppender writes log rows to the conversation_logs table.
type PostgresAppender struct {
	pool execer
}

// NewPostgresAppender initializes an appender backed by pgxpool.
func NewPostgresAppender(pool *pgxpool.Pool) *PostgresAppender {
	if pool == nil {
		panic("convlog: pgx pool required")
	}
	return &PostgresAppender{pool: pool}
}

func newPostgresAppenderWithExecer(e execer) *PostgresAppender {
	if e == nil {
		panic("convlog: execer required")
	}
	return &PostgresAppender{pool: e}
}

// Append inserts one row.
func (a *PostgresAppender) Append(ctx context.Context, row Row) error {
	query := `
		INSERT INTO conversation_logs
			(ts, phone, chat_id, direction, msg_type, message, intent, ai_model, tokens_in, tokens_out)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err := a.pool.Exec(ctx, query,
		row.Timestamp.UTC(),
		row.Phone,
		row.ChatID,
		string(row.Direction),
		row.MsgType,
		row.Message,
		row.Intent,
		row.AIModel,
		row.TokensIn,
		row.TokensOut,
	); err != nil {
		return fmt.Errorf("convlog: insert failed: %w", err)
	}
	return nil
}
