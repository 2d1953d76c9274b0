package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo actividades agendadas y mensajes de seguimiento sobre PostgreSQL.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

const activityColumns = `id, company_id, res_model, res_id, activity_type, summary, note, user_id, date_deadline, created_at`

// Create agenda una actividad.
func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	_, err := r.q.Exec(ctx, `INSERT INTO activities (`+activityColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.CompanyID, a.ResModel, a.ResID, a.ActivityType, a.Summary, a.Note, a.UserID, a.DateDeadline, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByResource actividades del documento en orden de creación.
func (r *ActivityRepo) ListByResource(ctx context.Context, resModel, resID string) ([]*entity.Activity, error) {
	rows, err := r.q.Query(ctx, `SELECT `+activityColumns+` FROM activities
		WHERE res_model = $1 AND res_id = $2 ORDER BY pos`, resModel, resID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	out, err := collect(rows, func(row pgx.Row) (*entity.Activity, error) {
		var a entity.Activity
		err := row.Scan(&a.ID, &a.CompanyID, &a.ResModel, &a.ResID, &a.ActivityType, &a.Summary, &a.Note, &a.UserID, &a.DateDeadline, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		return &a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan activities: %w", err)
	}
	return out, nil
}

// CreateMessage publica un mensaje en el documento.
func (r *ActivityRepo) CreateMessage(ctx context.Context, m *entity.Message) error {
	_, err := r.q.Exec(ctx, `INSERT INTO messages (id, res_model, res_id, body, created_at) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.ResModel, m.ResID, m.Body, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListMessages mensajes del documento en orden de publicación.
func (r *ActivityRepo) ListMessages(ctx context.Context, resModel, resID string) ([]*entity.Message, error) {
	rows, err := r.q.Query(ctx, `SELECT id, res_model, res_id, body, created_at FROM messages
		WHERE res_model = $1 AND res_id = $2 ORDER BY pos`, resModel, resID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	out, err := collect(rows, func(row pgx.Row) (*entity.Message, error) {
		var m entity.Message
		if err := row.Scan(&m.ID, &m.ResModel, &m.ResID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		return &m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan messages: %w", err)
	}
	return out, nil
}
