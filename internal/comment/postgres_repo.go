package comment

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/page"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgForeignKeyViolation = "23503"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterArgs returns the shared WHERE arguments: book id, escaped LIKE
// pattern (empty when unfiltered) and the optional lower time bound.
func filterArgs(f Filter) (int64, string, *time.Time) {
	var pattern string
	if f.HasAuthor() {
		pattern = "%" + likeEscaper.Replace(f.Author) + "%"
	}
	var since *time.Time
	if !f.Since.IsZero() {
		s := f.Since
		since = &s
	}
	return f.BookID, pattern, since
}

const filterWhere = `
	WHERE c.book_id = $1
	  AND ($2::text = '' OR c.author LIKE $2)
	  AND ($3::timestamptz IS NULL OR c.created_at >= $3)`

func (r *PostgresRepo) List(ctx context.Context, f Filter, req page.Request) ([]Comment, int, error) {
	const countQuery = `SELECT COUNT(*) FROM comments c` + filterWhere
	const query = `
		SELECT c.id, c.book_id, c.author, c.text, c.created_at, b.title
		FROM comments c
		JOIN books b ON b.id = c.book_id` + filterWhere + `
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $4 OFFSET $5`

	bookID, pattern, since := filterArgs(f)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.QueryRow(timeoutCtx, countQuery, bookID, pattern, since).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 || req.Offset() >= total {
		return []Comment{}, total, nil
	}

	rows, err := r.db.Query(timeoutCtx, query, bookID, pattern, since, req.Size, req.Offset())
	if err != nil {
		return nil, 0, err
	}
	items, err := scanComments(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepo) Get(ctx context.Context, bookID, commentID int64) (Comment, error) {
	const query = `
		SELECT c.id, c.book_id, c.author, c.text, c.created_at, b.title
		FROM comments c
		JOIN books b ON b.id = c.book_id
		WHERE c.book_id = $1 AND c.id = $2`

	var c Comment
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, bookID, commentID).
		Scan(&c.ID, &c.BookID, &c.Author, &c.Text, &c.CreatedAt, &c.BookTitle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Comment{}, ErrNotFound
		}
		return Comment{}, err
	}
	return c, nil
}

func (r *PostgresRepo) Add(ctx context.Context, bookID int64, author, text string) (Comment, error) {
	const query = `
		WITH ins AS (
			INSERT INTO comments (book_id, author, text, created_at)
			VALUES ($1, $2, $3, NOW())
			RETURNING id, book_id, author, text, created_at
		)
		SELECT ins.id, ins.book_id, ins.author, ins.text, ins.created_at, b.title
		FROM ins
		JOIN books b ON b.id = ins.book_id`

	var c Comment
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, bookID, author, text).
		Scan(&c.ID, &c.BookID, &c.Author, &c.Text, &c.CreatedAt, &c.BookTitle)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return Comment{}, book.ErrNotFound
		}
		return Comment{}, err
	}
	return c, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, bookID, commentID int64) error {
	const query = `DELETE FROM comments WHERE book_id = $1 AND id = $2`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, bookID, commentID)
	return err
}

func (r *PostgresRepo) ListByAuthor(ctx context.Context, author string) ([]Comment, error) {
	const query = `
		SELECT c.id, c.book_id, c.author, c.text, c.created_at, b.title
		FROM comments c
		JOIN books b ON b.id = c.book_id
		WHERE c.author = $1
		ORDER BY c.created_at DESC, c.id DESC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, author)
	if err != nil {
		return nil, err
	}
	return scanComments(rows)
}

func scanComments(rows pgx.Rows) ([]Comment, error) {
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.BookID, &c.Author, &c.Text, &c.CreatedAt, &c.BookTitle); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
