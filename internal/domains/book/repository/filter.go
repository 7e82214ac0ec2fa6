package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/book"
)

// buildWhereClause constructs the WHERE clause for catalog listing.
// Free text matches title, author name, or any linked category name in
// one OR group; author and category restrictions are conjunctive.
// EXISTS subqueries keep the result free of join duplicates.
func buildWhereClause(filter *book.BookFilter) (string, []any) {
	conditions := []string{}
	args := []any{}
	argIndex := 1

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		conditions = append(conditions, fmt.Sprintf(
			`(b.title ILIKE $%d OR a.name ILIKE $%d OR EXISTS (
                SELECT 1 FROM book_categories bc
                JOIN categories c ON c.id = bc.category_id
                WHERE bc.book_id = b.id AND c.name ILIKE $%d
            ))`, argIndex, argIndex, argIndex))
		args = append(args, pattern)
		argIndex++
	}

	if filter.AuthorID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("b.author_id = $%d", argIndex))
		args = append(args, filter.AuthorID)
		argIndex++
	}

	if filter.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (
                SELECT 1 FROM book_categories bc
                JOIN categories c ON c.id = bc.category_id
                WHERE bc.book_id = b.id AND c.slug = $%d
            )`, argIndex))
		args = append(args, filter.CategorySlug)
		argIndex++
	}

	if len(conditions) == 0 {
		return "TRUE", args
	}
	return strings.Join(conditions, " AND "), args
}

// buildListQuery assembles the page query around a WHERE clause.
func buildListQuery(whereClause string, paramCount int) string {
	return fmt.Sprintf(`
        SELECT b.id, b.title, b.author_id, a.name AS author_name,
               b.description, b.price, b.published_date, b.cover_url,
               b.created_at, b.updated_at
        FROM books b
        JOIN authors a ON a.id = b.author_id
        WHERE %s
        ORDER BY b.title ASC
        LIMIT $%d OFFSET $%d
    `, whereClause, paramCount+1, paramCount+2)
}

// buildCountQuery assembles the total count query for pagination.
func buildCountQuery(whereClause string) string {
	return fmt.Sprintf(`
        SELECT COUNT(*)
        FROM books b
        JOIN authors a ON a.id = b.author_id
        WHERE %s
    `, whereClause)
}
