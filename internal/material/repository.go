package material

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	CreateCategory(ctx context.Context, cat *Category) error
	ListCategories(ctx context.Context) ([]*Category, error)
	DeleteCategory(ctx context.Context, id string) error

	Create(ctx context.Context, m *Material) error
	GetByID(ctx context.Context, id string) (*Material, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*Material, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) CreateCategory(ctx context.Context, cat *Category) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.material_categories").
		Columns("name").
		Values(cat.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create category query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&cat.ID, &cat.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("create category failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "created_at").
		From("public.material_categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories failed: %w", err)
	}
	defer rows.Close()

	var cats []*Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category failed: %w", err)
		}
		cats = append(cats, &cat)
	}
	return cats, nil
}

func (r *pgxRepository) DeleteCategory(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.material_categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete category query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrCategoryInUse
		}
		return fmt.Errorf("delete category failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, m *Material) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.materials").
		Columns("category_id", "title", "file_name", "storage_path", "thumbnail_path", "content_type", "size", "uploader_id").
		Values(m.CategoryID, m.Title, m.FileName, m.StoragePath, m.ThumbnailPath, m.ContentType, m.Size, m.UploaderID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create material query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("create material failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Material, error) {
	query, args, err := r.selectMaterials().
		Where(squirrel.Eq{"m.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get material query failed: %w", err)
	}

	var m Material
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&m.ID, &m.CategoryID, &m.Title, &m.FileName, &m.StoragePath,
		&m.ThumbnailPath, &m.ContentType, &m.Size,
		&m.UploaderID, &m.UploaderName, &m.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get material failed: %w", err)
	}
	return &m, nil
}

func (r *pgxRepository) ListByCategory(ctx context.Context, categoryID string) ([]*Material, error) {
	query, args, err := r.selectMaterials().
		Where(squirrel.Eq{"m.category_id": categoryID}).
		OrderBy("m.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list materials query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials failed: %w", err)
	}
	defer rows.Close()

	var items []*Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(
			&m.ID, &m.CategoryID, &m.Title, &m.FileName, &m.StoragePath,
			&m.ThumbnailPath, &m.ContentType, &m.Size,
			&m.UploaderID, &m.UploaderName, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material failed: %w", err)
		}
		items = append(items, &m)
	}
	return items, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.materials").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete material query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete material failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) selectMaterials() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"m.id", "m.category_id", "m.title", "m.file_name", "m.storage_path",
		"m.thumbnail_path", "m.content_type", "m.size",
		"m.uploader_id", "u.name", "m.created_at",
	).
		From("public.materials m").
		Join("public.users u ON m.uploader_id = u.id")
}
