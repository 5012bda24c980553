package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"readerpeak-backend/internal/domains/book/model"
)

const bookColumns = "id, author_id, title, category, summary, content, pdf_url, cover_url, tags, featured, top, created_at"

// postgresRepository implements RepositoryInterface on pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Insert(ctx context.Context, b *model.Book) error {
	query := `
        INSERT INTO books (id, author_id, title, category, summary, content, pdf_url, cover_url, tags)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at
    `

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	err := r.pool.QueryRow(
		ctx,
		query,
		b.ID,
		b.AuthorID,
		b.Title,
		b.Category,
		b.Summary,
		b.Content,
		b.PDFURL,
		b.CoverURL,
		b.Tags,
	).Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BookDetail, error) {
	query := `
        SELECT b.id, b.author_id, b.title, b.category, b.summary, b.content,
               b.pdf_url, b.cover_url, b.tags, b.featured, b.top, b.created_at,
               COALESCE(a.name, '')
        FROM books b
        LEFT JOIN authors a ON a.user_id = b.author_id
        WHERE b.id = $1
    `

	var d model.BookDetail
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.AuthorID,
		&d.Title,
		&d.Category,
		&d.Summary,
		&d.Content,
		&d.PDFURL,
		&d.CoverURL,
		&d.Tags,
		&d.Featured,
		&d.Top,
		&d.CreatedAt,
		&d.AuthorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return &d, nil
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorUserID uuid.UUID) ([]model.Book, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM books
        WHERE author_id = $1
        ORDER BY created_at DESC
    `, bookColumns)

	return r.queryBooks(ctx, query, authorUserID)
}

func (r *postgresRepository) ListByCategory(ctx context.Context, category string) ([]model.Book, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM books
        WHERE category = $1
        ORDER BY created_at DESC
    `, bookColumns)

	return r.queryBooks(ctx, query, category)
}

func (r *postgresRepository) ListFeatured(ctx context.Context, limit int) ([]model.Book, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM books
        WHERE featured = true
        LIMIT $1
    `, bookColumns)

	return r.queryBooks(ctx, query, limit)
}

func (r *postgresRepository) ListTop(ctx context.Context, limit int) ([]model.Book, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM books
        WHERE top = true
        LIMIT $1
    `, bookColumns)

	return r.queryBooks(ctx, query, limit)
}

func (r *postgresRepository) ListLatest(ctx context.Context, limit int) ([]model.Book, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM books
        ORDER BY created_at DESC
        LIMIT $1
    `, bookColumns)

	return r.queryBooks(ctx, query, limit)
}

func (r *postgresRepository) ListOldest(ctx context.Context, limit int) ([]model.Book, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM books
        ORDER BY created_at ASC
        LIMIT $1
    `, bookColumns)

	return r.queryBooks(ctx, query, limit)
}

func (r *postgresRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	query := `
        SELECT DISTINCT category
        FROM books
        WHERE category IS NOT NULL
        ORDER BY category ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *postgresRepository) SearchByTitle(ctx context.Context, query string) ([]model.Book, error) {
	sql := fmt.Sprintf(`
        SELECT %s FROM books
        WHERE title ILIKE $1
        ORDER BY created_at DESC
    `, bookColumns)

	return r.queryBooks(ctx, sql, "%"+query+"%")
}

func (r *postgresRepository) ReferencedAssetURLs(ctx context.Context) (map[string]struct{}, error) {
	query := `SELECT pdf_url, cover_url FROM books`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset urls: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]struct{})
	for rows.Next() {
		var pdfURL string
		var coverURL *string
		if err := rows.Scan(&pdfURL, &coverURL); err != nil {
			return nil, fmt.Errorf("failed to scan asset urls: %w", err)
		}
		urls[pdfURL] = struct{}{}
		if coverURL != nil {
			urls[*coverURL] = struct{}{}
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset urls: %w", err)
	}

	return urls, nil
}

func (r *postgresRepository) queryBooks(ctx context.Context, query string, args ...interface{}) ([]model.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID,
			&b.AuthorID,
			&b.Title,
			&b.Category,
			&b.Summary,
			&b.Content,
			&b.PDFURL,
			&b.CoverURL,
			&b.Tags,
			&b.Featured,
			&b.Top,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}
