package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// detectarColumna comprueba una sola vez, al arrancar, si la tabla expone la
// columna indicada. El resultado se conserva como bandera de esquema en lugar
// de consultar information_schema en cada petición.
func detectarColumna(ctx context.Context, pool *pgxpool.Pool, tabla, columna string) (bool, error) {
	const sql = `SELECT EXISTS (
		SELECT 1 FROM information_schema.columns
		WHERE table_name = $1 AND column_name = $2
	)`

	var existe bool
	if err := pool.QueryRow(ctx, sql, tabla, columna).Scan(&existe); err != nil {
		return false, err
	}
	return existe, nil
}
