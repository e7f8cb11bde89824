package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type loadRepository struct {
	db *database.DB
}

func NewLoadRepository(db *database.DB) load.LoadRepository {
	return &loadRepository{db: db}
}

const loadColumns = `id::text, user_id, load_id, pickup_date, delivery_date, origin, destination,
	rate, load_type, driver_id::text, parent_load_id, created_at, updated_at`

func scanLoad(row pgx.Row) (load.Load, error) {
	var l load.Load
	err := row.Scan(
		&l.ID, &l.UserID, &l.LoadID, &l.PickupDate, &l.DeliveryDate, &l.Origin, &l.Destination,
		&l.Rate, &l.Type, &l.DriverID, &l.ParentLoadID, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func (r *loadRepository) query(ctx context.Context, where string, args ...interface{}) ([]load.Load, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + loadColumns + ` FROM loads WHERE ` + where + ` ORDER BY pickup_date DESC, created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list loads: %w", err)
	}
	defer rows.Close()

	var loads []load.Load
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan load: %w", err)
		}
		loads = append(loads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loads: %w", err)
	}

	return loads, nil
}

func (r *loadRepository) List(ctx context.Context, userID string) ([]load.Load, error) {
	return r.query(ctx, `user_id = $1`, userID)
}

func (r *loadRepository) ListByPickupRange(ctx context.Context, userID string, start, end time.Time) ([]load.Load, error) {
	return r.query(ctx, `user_id = $1 AND pickup_date BETWEEN $2::date AND $3::date`,
		userID, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (r *loadRepository) ListByType(ctx context.Context, userID string, loadType load.LoadType) ([]load.Load, error) {
	return r.query(ctx, `user_id = $1 AND load_type = $2`, userID, string(loadType))
}

func (r *loadRepository) GetByID(ctx context.Context, id string, userID string) (load.Load, error) {
	if uuid.Validate(id) != nil {
		return load.Load{}, load.ErrLoadNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + loadColumns + ` FROM loads WHERE id = $1 AND user_id = $2`

	l, err := scanLoad(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return load.Load{}, load.ErrLoadNotFound
		}
		return load.Load{}, fmt.Errorf("failed to get load: %w", err)
	}
	return l, nil
}

func (r *loadRepository) GetByLoadID(ctx context.Context, userID string, loadID string) (load.Load, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + loadColumns + ` FROM loads WHERE user_id = $1 AND load_id = $2`

	l, err := scanLoad(q.QueryRow(ctx, query, userID, loadID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return load.Load{}, load.ErrLoadNotFound
		}
		return load.Load{}, fmt.Errorf("failed to get load by load id: %w", err)
	}
	return l, nil
}

func (r *loadRepository) ExistsByLoadID(ctx context.Context, userID string, loadID string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM loads WHERE user_id = $1 AND load_id = $2 AND ($3::text IS NULL OR id::text <> $3))`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, loadID, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check load id: %w", err)
	}
	return exists, nil
}

func (r *loadRepository) CountPartials(ctx context.Context, userID string, parentLoadID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM loads WHERE user_id = $1 AND parent_load_id = $2`,
		userID, parentLoadID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count partial loads: %w", err)
	}
	return count, nil
}

func (r *loadRepository) Create(ctx context.Context, newLoad load.Load) (load.Load, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO loads (
			user_id, load_id, pickup_date, delivery_date, origin, destination,
			rate, load_type, driver_id, parent_load_id
		) VALUES ($1, $2, $3::date, $4::date, $5, $6, $7, $8, $9::uuid, $10)
		RETURNING ` + loadColumns

	l, err := scanLoad(q.QueryRow(ctx, query,
		newLoad.UserID, newLoad.LoadID,
		newLoad.PickupDate.Format("2006-01-02"), newLoad.DeliveryDate.Format("2006-01-02"),
		newLoad.Origin, newLoad.Destination, newLoad.Rate, string(newLoad.Type),
		newLoad.DriverID, newLoad.ParentLoadID,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uq_loads_user_load_id") {
			return load.Load{}, load.ErrLoadIDExists
		}
		return load.Load{}, fmt.Errorf("failed to create load: %w", err)
	}
	return l, nil
}

func (r *loadRepository) Update(ctx context.Context, userID string, req load.UpdateLoadRequest) error {
	if uuid.Validate(req.ID) != nil {
		return load.ErrLoadNotFound
	}
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, userID}
	argIdx := 3

	set := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.LoadID != nil {
		set("load_id", *req.LoadID)
	}
	if req.PickupDate != nil {
		set("pickup_date", *req.PickupDate)
	}
	if req.DeliveryDate != nil {
		set("delivery_date", *req.DeliveryDate)
	}
	if req.Origin != nil {
		set("origin", *req.Origin)
	}
	if req.Destination != nil {
		set("destination", *req.Destination)
	}
	if req.Rate != nil {
		set("rate", *req.Rate)
	}
	if req.LoadType != nil {
		set("load_type", *req.LoadType)
	}
	if req.DriverID != nil {
		setParts = append(setParts, fmt.Sprintf("driver_id = NULLIF($%d, '')::uuid", argIdx))
		args = append(args, *req.DriverID)
		argIdx++
	}
	if req.ClearParent {
		setParts = append(setParts, "parent_load_id = NULL")
	} else if req.ParentLoadID != nil {
		set("parent_load_id", *req.ParentLoadID)
	}

	query := fmt.Sprintf(`
		UPDATE loads
		SET %s
		WHERE id = $1 AND user_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return load.ErrLoadNotFound
		}
		if strings.Contains(err.Error(), "uq_loads_user_load_id") {
			return load.ErrLoadIDExists
		}
		if strings.Contains(err.Error(), "chk_loads_delivery") {
			return load.ErrDeliveryBeforePickup
		}
		return fmt.Errorf("failed to update load: %w", err)
	}

	return nil
}

func (r *loadRepository) RenameParent(ctx context.Context, userID string, oldLoadID, newLoadID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE loads
		SET parent_load_id = $3, updated_at = NOW()
		WHERE user_id = $1 AND parent_load_id = $2
	`, userID, oldLoadID, newLoadID)
	if err != nil {
		return fmt.Errorf("failed to rename parent load references: %w", err)
	}
	return nil
}

func (r *loadRepository) Delete(ctx context.Context, id string, userID string) error {
	if uuid.Validate(id) != nil {
		return load.ErrLoadNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM loads WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete load: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return load.ErrLoadNotFound
	}
	return nil
}
