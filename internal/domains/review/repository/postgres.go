package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog-backend/internal/domains/review/model"
)

// postgresRepository implements Repository on pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, rev *model.Review) (*model.Review, error) {
	query := `
        INSERT INTO reviews (book_id, user_id, rating, comment, approved)
        VALUES ($1, $2, $3, $4, FALSE)
        RETURNING id, book_id, user_id, rating, comment, approved, created_at, updated_at
    `

	var created model.Review
	err := r.pool.QueryRow(ctx, query,
		rev.BookID, rev.UserID, rev.Rating, rev.Comment,
	).Scan(
		&created.ID, &created.BookID, &created.UserID,
		&created.Rating, &created.Comment, &created.Approved,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return nil, model.ErrAlreadyReviewed
			case pgerrcode.ForeignKeyViolation:
				if pgErr.ConstraintName == "reviews_book_id_fkey" {
					return nil, model.ErrBookNotFound
				}
			}
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `
        SELECT id, book_id, user_id, rating, comment, approved, created_at, updated_at
        FROM reviews
        WHERE id = $1
    `

	var rev model.Review
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rev.ID, &rev.BookID, &rev.UserID,
		&rev.Rating, &rev.Comment, &rev.Approved,
		&rev.CreatedAt, &rev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review by id: %w", err)
	}

	return &rev, nil
}

func (r *postgresRepository) Update(ctx context.Context, rev *model.Review) (*model.Review, error) {
	query := `
        UPDATE reviews
        SET rating = $2, comment = $3, approved = $4, updated_at = NOW()
        WHERE id = $1
        RETURNING id, book_id, user_id, rating, comment, approved, created_at, updated_at
    `

	var updated model.Review
	err := r.pool.QueryRow(ctx, query, rev.ID, rev.Rating, rev.Comment, rev.Approved).Scan(
		&updated.ID, &updated.BookID, &updated.UserID,
		&updated.Rating, &updated.Comment, &updated.Approved,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return &updated, nil
}

func (r *postgresRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) (*model.Review, bool, error) {
	// the prior flag is locked and returned in the same statement, so
	// two concurrent approvals cannot both observe it as false
	query := `
        UPDATE reviews r
        SET approved = $2
        FROM (SELECT id, approved AS was_approved FROM reviews WHERE id = $1 FOR UPDATE) prior
        WHERE r.id = prior.id
        RETURNING r.id, r.book_id, r.user_id, r.rating, r.comment, r.approved,
                  r.created_at, r.updated_at, prior.was_approved
    `

	var updated model.Review
	var wasApproved bool
	err := r.pool.QueryRow(ctx, query, id, approved).Scan(
		&updated.ID, &updated.BookID, &updated.UserID,
		&updated.Rating, &updated.Comment, &updated.Approved,
		&updated.CreatedAt, &updated.UpdatedAt,
		&wasApproved,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, model.ErrReviewNotFound
		}
		return nil, false, fmt.Errorf("failed to set review approval: %w", err)
	}

	return &updated, wasApproved, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

func (r *postgresRepository) ListApprovedForBook(ctx context.Context, bookID uuid.UUID, page int) ([]model.BookReviewItem, int64, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)", bookID).Scan(&exists)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to check book: %w", err)
	}
	if !exists {
		return nil, 0, model.ErrBookNotFound
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM reviews WHERE book_id = $1 AND approved = TRUE"
	if err := r.pool.QueryRow(ctx, countQuery, bookID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count approved reviews: %w", err)
	}

	if page < 1 {
		page = 1
	}
	query := `
        SELECT r.id, r.rating, r.comment, p.display_name, r.created_at
        FROM reviews r
        JOIN user_profiles p ON p.user_id = r.user_id
        WHERE r.book_id = $1 AND r.approved = TRUE
        ORDER BY r.created_at DESC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.pool.Query(ctx, query, bookID, model.PageSize, (page-1)*model.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list approved reviews: %w", err)
	}
	defer rows.Close()

	items := make([]model.BookReviewItem, 0, model.PageSize)
	for rows.Next() {
		var item model.BookReviewItem
		if err := rows.Scan(&item.ID, &item.Rating, &item.Comment, &item.ReviewerName, &item.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan review row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate review rows: %w", err)
	}

	return items, total, nil
}

const moderationSelect = `
    SELECT r.id, r.book_id, r.user_id, r.rating, r.comment, r.approved,
           r.created_at, r.updated_at,
           b.title AS book_title, a.name AS book_author,
           p.display_name AS reviewer_name, u.email AS reviewer_email
    FROM reviews r
    JOIN books b ON b.id = r.book_id
    JOIN authors a ON a.id = b.author_id
    JOIN users u ON u.id = r.user_id
    JOIN user_profiles p ON p.user_id = r.user_id
`

func (r *postgresRepository) ListForModeration(ctx context.Context, filter model.ModerationFilter) ([]model.ModerationItem, int64, error) {
	conditions := []string{}
	args := []any{}
	if filter.Approved != nil {
		conditions = append(conditions, "r.approved = $1")
		args = append(args, *filter.Approved)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM reviews r " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	query := fmt.Sprintf("%s %s ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d",
		moderationSelect, where, len(args)+1, len(args)+2)
	args = append(args, model.PageSize, (page-1)*model.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	items := make([]model.ModerationItem, 0, model.PageSize)
	for rows.Next() {
		var item model.ModerationItem
		err := rows.Scan(
			&item.ID, &item.BookID, &item.UserID,
			&item.Rating, &item.Comment, &item.Approved,
			&item.CreatedAt, &item.UpdatedAt,
			&item.BookTitle, &item.BookAuthor,
			&item.ReviewerName, &item.ReviewerEmail,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate review rows: %w", err)
	}

	return items, total, nil
}

func (r *postgresRepository) GetModerationItem(ctx context.Context, id uuid.UUID) (*model.ModerationItem, error) {
	query := moderationSelect + " WHERE r.id = $1"

	var item model.ModerationItem
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.BookID, &item.UserID,
		&item.Rating, &item.Comment, &item.Approved,
		&item.CreatedAt, &item.UpdatedAt,
		&item.BookTitle, &item.BookAuthor,
		&item.ReviewerName, &item.ReviewerEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review context: %w", err)
	}

	return &item, nil
}
