package database

import "context"

// insertReturningID executes an INSERT and returns the new row id, using
// RETURNING on Postgres and LastInsertId on SQLite.
func insertReturningID(ctx context.Context, query string, args ...interface{}) (int64, error) {
	if dbType == "postgres" {
		var id int64
		err := DB.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	result, err := DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
