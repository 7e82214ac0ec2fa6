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

	"bookcatalog-backend/internal/domains/book"
)

// postgresRepository implements book.RepositoryInterface on pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book, categoryIDs []uuid.UUID) (*book.Book, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO books (title, author_id, description, price, published_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at
    `

	created := *b
	err = tx.QueryRow(ctx, query,
		b.Title, b.AuthorID, b.Description, b.Price, b.PublishedDate,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, mapBookWriteError(err)
	}

	if err := insertCategoryLinks(ctx, tx, created.ID, categoryIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit book create: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	query := `
        SELECT b.id, b.title, b.author_id, a.name AS author_name,
               b.description, b.price, b.published_date, b.cover_url,
               b.created_at, b.updated_at
        FROM books b
        JOIN authors a ON a.id = b.author_id
        WHERE b.id = $1
    `

	var b book.Book
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.AuthorID, &b.AuthorName,
		&b.Description, &b.Price, &b.PublishedDate, &b.CoverURL,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context, filter *book.BookFilter) ([]book.Book, int64, error) {
	whereClause, args := buildWhereClause(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, buildCountQuery(whereClause), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	query := buildListQuery(whereClause, len(args))
	args = append(args, book.PageSize, (page-1)*book.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]book.Book, 0, book.PageSize)
	for rows.Next() {
		var b book.Book
		err := rows.Scan(
			&b.ID, &b.Title, &b.AuthorID, &b.AuthorName,
			&b.Description, &b.Price, &b.PublishedDate, &b.CoverURL,
			&b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate book rows: %w", err)
	}

	return books, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book, categoryIDs *[]uuid.UUID) (*book.Book, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        UPDATE books
        SET title = $2, author_id = $3, description = $4, price = $5,
            published_date = $6, updated_at = NOW()
        WHERE id = $1
        RETURNING created_at, updated_at
    `

	updated := *b
	err = tx.QueryRow(ctx, query,
		b.ID, b.Title, b.AuthorID, b.Description, b.Price, b.PublishedDate,
	).Scan(&updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, mapBookWriteError(err)
	}

	if categoryIDs != nil {
		if _, err := tx.Exec(ctx, "DELETE FROM book_categories WHERE book_id = $1", b.ID); err != nil {
			return nil, fmt.Errorf("failed to clear category links: %w", err)
		}
		if err := insertCategoryLinks(ctx, tx, b.ID, *categoryIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit book update: %w", err)
	}

	return &updated, nil
}

func (r *postgresRepository) UpdateCoverURL(ctx context.Context, id uuid.UUID, coverURL string) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE books SET cover_url = $2, updated_at = NOW() WHERE id = $1", id, coverURL)
	if err != nil {
		return fmt.Errorf("failed to update cover url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) GetCategories(ctx context.Context, bookID uuid.UUID) ([]book.CategoryRef, error) {
	query := `
        SELECT c.id, c.name, c.slug
        FROM categories c
        JOIN book_categories bc ON bc.category_id = c.id
        WHERE bc.book_id = $1
        ORDER BY c.name ASC
    `

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get book categories: %w", err)
	}
	defer rows.Close()

	categories := make([]book.CategoryRef, 0)
	for rows.Next() {
		var c book.CategoryRef
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepository) GetApprovedReviews(ctx context.Context, bookID uuid.UUID) ([]book.ReviewItem, error) {
	query := `
        SELECT r.id, r.rating, r.comment, p.display_name, r.created_at
        FROM reviews r
        JOIN user_profiles p ON p.user_id = r.user_id
        WHERE r.book_id = $1 AND r.approved = TRUE
        ORDER BY r.created_at DESC
    `

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]book.ReviewItem, 0)
	for rows.Next() {
		var item book.ReviewItem
		if err := rows.Scan(&item.ID, &item.Rating, &item.Comment, &item.ReviewerName, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, item)
	}
	return reviews, rows.Err()
}

func (r *postgresRepository) GetApprovedRatingAverage(ctx context.Context, bookID uuid.UUID) (*float64, error) {
	// AVG over an empty set is NULL, which maps onto the nil pointer
	var avg *float64
	err := r.pool.QueryRow(ctx,
		"SELECT AVG(rating) FROM reviews WHERE book_id = $1 AND approved = TRUE", bookID,
	).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}
	return avg, nil
}

func (r *postgresRepository) HasUserReviewed(ctx context.Context, bookID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM reviews WHERE book_id = $1 AND user_id = $2)", bookID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}
	return exists, nil
}

func insertCategoryLinks(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, categoryIDs []uuid.UUID) error {
	for _, categoryID := range categoryIDs {
		_, err := tx.Exec(ctx,
			"INSERT INTO book_categories (book_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			bookID, categoryID)
		if err != nil {
			return mapBookWriteError(err)
		}
	}
	return nil
}

// mapBookWriteError turns FK violations into domain sentinels
func mapBookWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		switch pgErr.ConstraintName {
		case "books_author_id_fkey":
			return book.ErrAuthorNotFound
		case "book_categories_category_id_fkey":
			return book.ErrCategoryNotFound
		}
	}
	return fmt.Errorf("failed to write book: %w", err)
}
