package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

var _ repository.WeekRepository = (*WeekRepo)(nil)

// WeekRepo implementación del puerto WeekRepository sobre PostgreSQL.
type WeekRepo struct {
	q Querier
}

// NewWeekRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWeekRepository(q Querier) *WeekRepo {
	return &WeekRepo{q: q}
}

// Create persiste la semana en borrador.
func (r *WeekRepo) Create(week *entity.Week) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO weeks (id, status, created_at) VALUES ($1, $2, $3)`,
		week.ID, week.Status, week.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert week: %w", err)
	}
	return nil
}

// GetByID obtiene una semana por clave de período.
func (r *WeekRepo) GetByID(id string) (*entity.Week, error) {
	query := `SELECT id, status, created_at, finalized_at, COALESCE(finalized_by, '') FROM weeks WHERE id = $1`
	var wk entity.Week
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&wk.ID, &wk.Status, &wk.CreatedAt, &wk.FinalizedAt, &wk.FinalizedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get week: %w", err)
	}
	return &wk, nil
}

// Finalize marca la semana como finalizada. El WHERE status = 'draft' hace la
// transición irreversible también a nivel SQL: si otro commit ganó la carrera,
// RowsAffected es 0 y se devuelve conflicto.
func (r *WeekRepo) Finalize(week *entity.Week) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE weeks SET status = $2, finalized_at = $3, finalized_by = $4 WHERE id = $1 AND status = $5`,
		week.ID, entity.WeekStatusFinalized, week.FinalizedAt, week.FinalizedBy, entity.WeekStatusDraft,
	)
	if err != nil {
		return fmt.Errorf("finalize week: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyFinalized
	}
	return nil
}

// List lista semanas de la más reciente a la más antigua.
func (r *WeekRepo) List(limit, offset int) ([]*entity.Week, error) {
	query := `SELECT id, status, created_at, finalized_at, COALESCE(finalized_by, '')
		FROM weeks ORDER BY id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Week
	for rows.Next() {
		var wk entity.Week
		if err := rows.Scan(&wk.ID, &wk.Status, &wk.CreatedAt, &wk.FinalizedAt, &wk.FinalizedBy); err != nil {
			return nil, fmt.Errorf("scan week: %w", err)
		}
		list = append(list, &wk)
	}
	return list, rows.Err()
}
