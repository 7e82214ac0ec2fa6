package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog-backend/internal/domains/category"
)

// postgresRepository implements category.Repository on pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	query := `
        INSERT INTO categories (name, slug)
        VALUES ($1, $2)
        RETURNING id, name, slug, created_at, updated_at
    `

	var created category.Category
	err := r.pool.QueryRow(ctx, query, c.Name, c.Slug).Scan(
		&created.ID,
		&created.Name,
		&created.Slug,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, category.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	query := `
        SELECT id, name, slug, created_at, updated_at
        FROM categories
        WHERE slug = $1
    `

	var c category.Category
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]category.Category, error) {
	query := `
        SELECT id, name, slug, created_at, updated_at
        FROM categories
        ORDER BY name ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category rows: %w", err)
	}

	return categories, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *category.Category) (*category.Category, error) {
	query := `
        UPDATE categories
        SET name = $2, slug = $3, updated_at = NOW()
        WHERE id = $1
        RETURNING id, name, slug, created_at, updated_at
    `

	var updated category.Category
	err := r.pool.QueryRow(ctx, query, c.ID, c.Name, c.Slug).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Slug,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		if isUniqueViolation(err) {
			return nil, category.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) GetBookCount(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM book_categories WHERE category_id = $1", categoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books for category: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
