package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// resultRow is the single (code, message) row every market function returns.
type resultRow struct {
	Code    int    `db:"code"`
	Message string `db:"message"`
}

func (r resultRow) toDomain() transfer.Result {
	return transfer.Result{Code: r.Code, Message: r.Message}
}

func int64SliceToAny(items []int64) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
