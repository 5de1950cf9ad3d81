package m_user

import (
	"time"

	"cloud.google.com/go/spanner"
)

type Row struct {
	UserID       string    `spanner:"user_id"`
	Name         string    `spanner:"name"`
	Email        string    `spanner:"email"`
	PasswordHash string    `spanner:"password_hash"`
	Role         string    `spanner:"role"`
	CreatedAt    time.Time `spanner:"created_at"`
	UpdatedAt    time.Time `spanner:"updated_at"`
}

func BuildInsertMap(r Row) map[string]interface{} {
	return map[string]interface{}{
		ColUserID:       r.UserID,
		ColName:         r.Name,
		ColEmail:        r.Email,
		ColPasswordHash: r.PasswordHash,
		ColRole:         r.Role,
		ColCreatedAt:    r.CreatedAt,
		ColUpdatedAt:    r.UpdatedAt,
	}
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for c, v := range values {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}
