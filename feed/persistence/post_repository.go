package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dfryer1193/bghfeed/feed/domain"
	"github.com/dfryer1193/bghfeed/shared/db"
)

var _ domain.PostRepository = (*SQLitePostRepository)(nil)

// SQLitePostRepository implements domain.PostRepository using SQL database (SQLite)
type SQLitePostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new SQLitePostRepository from a standard sql.DB
func NewPostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{
		db: db,
	}
}

const listCachedPostsQuery = `
	SELECT id, title, content, date, image_url, author_name
	FROM cached_posts
	ORDER BY date DESC, id DESC
`

// GetAll returns the current cache generation, newest first
func (r *SQLitePostRepository) GetAll(ctx context.Context) ([]*domain.Post, error) {
	rows, err := db.GetExecutor(ctx, r.db).QueryContext(ctx, listCachedPostsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list cached posts: %w", domain.ErrCache, err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		var row postRow
		err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.Content,
			&row.Date,
			&row.ImageURL,
			&row.AuthorName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan cached post row: %w", domain.ErrCache, err)
		}
		posts = append(posts, row.toDomain())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating cached post rows: %w", domain.ErrCache, err)
	}

	return posts, nil
}

const clearCachedPostsQuery = `DELETE FROM cached_posts`

const insertCachedPostQuery = `
	INSERT INTO cached_posts (id, title, content, date, image_url, author_name)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		content = excluded.content,
		date = excluded.date,
		image_url = excluded.image_url,
		author_name = excluded.author_name
`

// ReplaceAll clears the table and inserts posts within a single transaction.
// On any failure the previous generation is left in place.
func (r *SQLitePostRepository) ReplaceAll(ctx context.Context, posts []*domain.Post) error {
	for i, p := range posts {
		if p == nil {
			return fmt.Errorf("%w: post %d cannot be nil", domain.ErrCache, i)
		}
		if p.ID <= 0 {
			return fmt.Errorf("%w: post %d has invalid ID %d", domain.ErrCache, i, p.ID)
		}
	}

	err := db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		if _, err := executor.ExecContext(txCtx, clearCachedPostsQuery); err != nil {
			return fmt.Errorf("failed to clear cached posts: %w", err)
		}

		for _, p := range posts {
			var imageURL any
			if p.ImageURL != "" {
				imageURL = p.ImageURL
			}

			authorName := p.AuthorName
			if authorName == "" {
				authorName = domain.DefaultAuthorName
			}

			_, err := executor.ExecContext(txCtx, insertCachedPostQuery,
				p.ID,
				p.Title,
				p.Content,
				p.Date,
				imageURL,
				authorName,
			)
			if err != nil {
				return fmt.Errorf("failed to insert cached post %d: %w", p.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCache, err)
	}

	return nil
}

// postRow is a private struct used to scan database rows
type postRow struct {
	ID         int            `db:"id"`
	Title      string         `db:"title"`
	Content    string         `db:"content"`
	Date       string         `db:"date"`
	ImageURL   sql.NullString `db:"image_url"`
	AuthorName string         `db:"author_name"`
}

// toDomain converts a postRow to a domain.Post, handling the nullable image
func (pr *postRow) toDomain() *domain.Post {
	post := &domain.Post{
		ID:         pr.ID,
		Title:      pr.Title,
		Content:    pr.Content,
		Date:       pr.Date,
		AuthorName: pr.AuthorName,
	}

	if pr.ImageURL.Valid {
		post.ImageURL = pr.ImageURL.String
	}

	return post
}
