package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type driverRepository struct {
	db *database.DB
}

func NewDriverRepository(db *database.DB) driver.DriverRepository {
	return &driverRepository{db: db}
}

const driverColumns = `id::text, user_id, driver_name, driver_type, truck_number, status, created_at, updated_at`

func scanDriver(row pgx.Row) (driver.Driver, error) {
	var d driver.Driver
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Type, &d.TruckNumber, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *driverRepository) List(ctx context.Context, userID string) ([]driver.Driver, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + driverColumns + ` FROM drivers WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	var drivers []driver.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drivers: %w", err)
	}

	return drivers, nil
}

func (r *driverRepository) GetByID(ctx context.Context, id string, userID string) (driver.Driver, error) {
	if uuid.Validate(id) != nil {
		return driver.Driver{}, driver.ErrDriverNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1 AND user_id = $2`

	d, err := scanDriver(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return driver.Driver{}, driver.ErrDriverNotFound
		}
		return driver.Driver{}, fmt.Errorf("failed to get driver: %w", err)
	}
	return d, nil
}

func (r *driverRepository) Create(ctx context.Context, newDriver driver.Driver) (driver.Driver, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO drivers (user_id, driver_name, driver_type, truck_number, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + driverColumns

	d, err := scanDriver(q.QueryRow(ctx, query,
		newDriver.UserID, newDriver.Name, newDriver.Type, newDriver.TruckNumber, newDriver.Status,
	))
	if err != nil {
		return driver.Driver{}, fmt.Errorf("failed to create driver: %w", err)
	}
	return d, nil
}

func (r *driverRepository) Update(ctx context.Context, userID string, req driver.UpdateDriverRequest) error {
	if uuid.Validate(req.ID) != nil {
		return driver.ErrDriverNotFound
	}
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, userID}
	argIdx := 3

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("driver_name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Type != nil {
		setParts = append(setParts, fmt.Sprintf("driver_type = $%d", argIdx))
		args = append(args, *req.Type)
		argIdx++
	}
	if req.TruckNumber != nil {
		setParts = append(setParts, fmt.Sprintf("truck_number = NULLIF($%d, '')", argIdx))
		args = append(args, *req.TruckNumber)
		argIdx++
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *req.Status)
	}

	query := fmt.Sprintf(`
		UPDATE drivers
		SET %s
		WHERE id = $1 AND user_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return driver.ErrDriverNotFound
		}
		return fmt.Errorf("failed to update driver: %w", err)
	}

	return nil
}

func (r *driverRepository) Delete(ctx context.Context, id string, userID string) error {
	if uuid.Validate(id) != nil {
		return driver.ErrDriverNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM drivers WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return driver.ErrDriverNotFound
	}
	return nil
}

func (r *driverRepository) ListOwners(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT user_id FROM drivers ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	defer rows.Close()

	owners, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan owners: %w", err)
	}
	return owners, nil
}
