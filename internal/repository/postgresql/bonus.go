package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type bonusRepository struct {
	db *database.DB
}

func NewBonusRepository(db *database.DB) bonus.BonusRepository {
	return &bonusRepository{db: db}
}

const bonusColumns = `id::text, user_id, driver_id::text, bonus_type, amount, week_start, bonus_date, note, created_at`

func scanBonus(row pgx.Row) (bonus.Bonus, error) {
	var b bonus.Bonus
	err := row.Scan(&b.ID, &b.UserID, &b.DriverID, &b.Type, &b.Amount, &b.WeekStart, &b.Date, &b.Note, &b.CreatedAt)
	return b, err
}

func (r *bonusRepository) query(ctx context.Context, where string, args ...interface{}) ([]bonus.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + bonusColumns + ` FROM bonuses WHERE ` + where + ` ORDER BY created_at, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonuses: %w", err)
	}
	defer rows.Close()

	var bonuses []bonus.Bonus
	for rows.Next() {
		b, err := scanBonus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bonus: %w", err)
		}
		bonuses = append(bonuses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bonuses: %w", err)
	}

	return bonuses, nil
}

func (r *bonusRepository) List(ctx context.Context, userID string) ([]bonus.Bonus, error) {
	return r.query(ctx, `user_id = $1`, userID)
}

func (r *bonusRepository) ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]bonus.Bonus, error) {
	return r.query(ctx, `user_id = $1 AND bonus_date BETWEEN $2::date AND $3::date`,
		userID, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (r *bonusRepository) ListAutomaticByWeek(ctx context.Context, userID string, weekStart time.Time) ([]bonus.Bonus, error) {
	return r.query(ctx, `user_id = $1 AND bonus_type = 'automatic' AND week_start = $2::date`,
		userID, weekStart.Format("2006-01-02"))
}

func (r *bonusRepository) GetByID(ctx context.Context, id string, userID string) (bonus.Bonus, error) {
	if uuid.Validate(id) != nil {
		return bonus.Bonus{}, bonus.ErrBonusNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + bonusColumns + ` FROM bonuses WHERE id = $1 AND user_id = $2`

	b, err := scanBonus(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return bonus.Bonus{}, bonus.ErrBonusNotFound
		}
		return bonus.Bonus{}, fmt.Errorf("failed to get bonus: %w", err)
	}
	return b, nil
}

func (r *bonusRepository) Create(ctx context.Context, newBonus bonus.Bonus) (bonus.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO bonuses (user_id, driver_id, bonus_type, amount, week_start, bonus_date, note)
		VALUES ($1, $2::uuid, $3, $4, $5::date, $6::date, $7)
		RETURNING ` + bonusColumns

	b, err := scanBonus(q.QueryRow(ctx, query,
		newBonus.UserID, newBonus.DriverID, string(newBonus.Type), newBonus.Amount,
		newBonus.WeekStart.Format("2006-01-02"), newBonus.Date.Format("2006-01-02"), newBonus.Note,
	))
	if err != nil {
		return bonus.Bonus{}, fmt.Errorf("failed to create bonus: %w", err)
	}
	return b, nil
}

// UpsertAutomatic relies on the partial unique index over
// (user_id, driver_id, week_start) for automatic rows.
func (r *bonusRepository) UpsertAutomatic(ctx context.Context, newBonus bonus.Bonus) (bonus.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO bonuses (user_id, driver_id, bonus_type, amount, week_start, bonus_date, note)
		VALUES ($1, $2::uuid, 'automatic', $3, $4::date, $5::date, $6)
		ON CONFLICT (user_id, driver_id, week_start) WHERE bonus_type = 'automatic'
		DO UPDATE SET
			amount = EXCLUDED.amount,
			bonus_date = EXCLUDED.bonus_date,
			note = EXCLUDED.note
		RETURNING ` + bonusColumns

	b, err := scanBonus(q.QueryRow(ctx, query,
		newBonus.UserID, newBonus.DriverID, newBonus.Amount,
		newBonus.WeekStart.Format("2006-01-02"), newBonus.Date.Format("2006-01-02"), newBonus.Note,
	))
	if err != nil {
		return bonus.Bonus{}, fmt.Errorf("failed to upsert automatic bonus: %w", err)
	}
	return b, nil
}

func (r *bonusRepository) Update(ctx context.Context, userID string, req bonus.UpdateBonusRequest) error {
	if uuid.Validate(req.ID) != nil {
		return bonus.ErrBonusNotFound
	}
	q := GetQuerier(ctx, r.db)

	var setParts []string
	args := []interface{}{req.ID, userID}
	argIdx := 3

	if req.DriverID != nil {
		setParts = append(setParts, fmt.Sprintf("driver_id = NULLIF($%d, '')::uuid", argIdx))
		args = append(args, *req.DriverID)
		argIdx++
	}
	if req.Amount != nil {
		setParts = append(setParts, fmt.Sprintf("amount = $%d", argIdx))
		args = append(args, *req.Amount)
		argIdx++
	}
	if req.WeekStart != nil {
		setParts = append(setParts, fmt.Sprintf("week_start = $%d::date", argIdx))
		args = append(args, *req.WeekStart)
		argIdx++
	}
	if req.Date != nil {
		setParts = append(setParts, fmt.Sprintf("bonus_date = $%d::date", argIdx))
		args = append(args, *req.Date)
		argIdx++
	}
	if req.Note != nil {
		setParts = append(setParts, fmt.Sprintf("note = $%d", argIdx))
		args = append(args, *req.Note)
	}

	if len(setParts) == 0 {
		_, err := r.GetByID(ctx, req.ID, userID)
		return err
	}

	query := fmt.Sprintf(`
		UPDATE bonuses
		SET %s
		WHERE id = $1 AND user_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return bonus.ErrBonusNotFound
		}
		return fmt.Errorf("failed to update bonus: %w", err)
	}

	return nil
}

func (r *bonusRepository) Delete(ctx context.Context, id string, userID string) error {
	if uuid.Validate(id) != nil {
		return bonus.ErrBonusNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM bonuses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bonus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return bonus.ErrBonusNotFound
	}
	return nil
}
