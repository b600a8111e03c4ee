package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"assay-backend/internal/apperr"
	"assay-backend/internal/db"
	"assay-backend/internal/models"
)

const globalColumns = `id, key, value, created_date, last_modified_date, deleted_at`

const (
	msgGlobalNotFound = "Global setting not found"
	msgGlobalKeyTaken = "Key already exists"
)

// GlobalSettingRepository stores key/value settings addressed by key.
type GlobalSettingRepository struct {
	DB db.Querier
}

func NewGlobalSettingRepository(q db.Querier) *GlobalSettingRepository {
	return &GlobalSettingRepository{DB: q}
}

func scanGlobal(row pgx.Row) (models.GlobalSetting, error) {
	var g models.GlobalSetting
	err := row.Scan(&g.ID, &g.Key, &g.Value, &g.CreatedDate, &g.LastModifiedDate, &g.DeletedAt)
	return g, err
}

func (r *GlobalSettingRepository) Create(ctx context.Context, g *models.GlobalSetting) error {
	query := `
		INSERT INTO globals (id, key, value)
		VALUES ($1, $2, $3)
		RETURNING created_date, last_modified_date
	`
	err := r.DB.QueryRow(ctx, query, g.ID, g.Key, g.Value).Scan(&g.CreatedDate, &g.LastModifiedDate)
	return apperr.FromDB(err, "", msgGlobalKeyTaken)
}

func (r *GlobalSettingRepository) GetByKey(ctx context.Context, key string) (*models.GlobalSetting, error) {
	g, err := scanGlobal(r.DB.QueryRow(ctx,
		`SELECT `+globalColumns+` FROM globals WHERE key = $1 AND deleted_at IS NULL`, key))
	if err != nil {
		return nil, apperr.FromDB(err, msgGlobalNotFound, "")
	}
	return &g, nil
}

func (r *GlobalSettingRepository) List(ctx context.Context, p models.PageRequest) ([]models.GlobalSetting, int64, error) {
	items, total, err := listPage(ctx, r.DB,
		`SELECT COUNT(*) FROM globals WHERE deleted_at IS NULL`,
		`SELECT `+globalColumns+` FROM globals WHERE deleted_at IS NULL ORDER BY key`,
		nil, p, scanGlobal)
	if err != nil {
		return nil, 0, apperr.Internal("list globals", err)
	}
	return items, total, nil
}

func (r *GlobalSettingRepository) UpdateValue(ctx context.Context, key string, value *string) (*models.GlobalSetting, error) {
	var set setList
	set.add("value", value)
	query, args := set.update("globals", "key", key, globalColumns)

	g, err := scanGlobal(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, apperr.FromDB(err, msgGlobalNotFound, "")
	}
	return &g, nil
}

func (r *GlobalSettingRepository) SoftDeleteByKey(ctx context.Context, key string) (bool, error) {
	ok, err := softDelete(ctx, r.DB, "globals", "key", key)
	if err != nil {
		return false, apperr.Internal("delete global", err)
	}
	return ok, nil
}
