package provider

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
	"github.com/m04kA/WorkSlot-BookingService/pkg/dbmetrics"
	"github.com/m04kA/WorkSlot-BookingService/pkg/psqlbuilder"
)

const providersTable = "providers"

var providerColumns = []string{
	"id",
	"slug",
	"business_name",
	"country",
	"availability_config",
	"booking_rules",
	"created_at",
	"updated_at",
}

// Repository репозиторий профилей провайдеров.
// Конфигурация доступности и правила хранятся в JSONB как есть, старый формат не переписывается.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория провайдеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает провайдера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetBySlug получает провайдера по публичному slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Provider, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(providerColumns...).
		From(providersTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		p            domain.Provider
		country      sql.NullString
		availability []byte
		rules        []byte
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Slug,
		&p.BusinessName,
		&country,
		&availability,
		&rules,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan provider: %v", ErrScanRow, op, err)
	}

	if country.Valid {
		p.Country = &country.String
	}
	if err := decodeJSON(availability, &p.Availability); err != nil {
		return nil, fmt.Errorf("%w: %s - availability_config of provider %d: %v", ErrEncode, op, p.ID, err)
	}
	if err := decodeJSON(rules, &p.Rules); err != nil {
		return nil, fmt.Errorf("%w: %s - booking_rules of provider %d: %v", ErrEncode, op, p.ID, err)
	}

	return &p, nil
}

// UpdateSettings сохраняет конфигурацию доступности и/или правила бронирования.
// nil означает "не менять".
func (r *Repository) UpdateSettings(ctx context.Context, id int64, availability *domain.AvailabilityConfig, rules *domain.BookingRules, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(providersTable).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id})

	if availability != nil {
		payload, err := json.Marshal(availability)
		if err != nil {
			return fmt.Errorf("%w: UpdateSettings - availability_config: %v", ErrEncode, err)
		}
		updateBuilder = updateBuilder.Set("availability_config", payload)
	}
	if rules != nil {
		payload, err := json.Marshal(rules)
		if err != nil {
			return fmt.Errorf("%w: UpdateSettings - booking_rules: %v", ErrEncode, err)
		}
		updateBuilder = updateBuilder.Set("booking_rules", payload)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrProviderNotFound
	}

	return nil
}

// decodeJSON пустое или NULL значение оставляет нулевую структуру
func decodeJSON(data []byte, dst interface{}) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, dst)
}
