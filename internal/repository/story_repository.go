package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shikkhaloy/school-backend/internal/model"
)

// StoryRepository handles story data access.
type StoryRepository struct {
	pool *pgxpool.Pool
}

// NewStoryRepository creates a new StoryRepository.
func NewStoryRepository(pool *pgxpool.Pool) *StoryRepository {
	return &StoryRepository{pool: pool}
}

// GetByID retrieves a story by its ID.
func (r *StoryRepository) GetByID(ctx context.Context, id int) (*model.Story, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, title, content, image_url, author_name, created_at, updated_at
		 FROM stories WHERE id = $1`, id)
	return scanStory(row)
}

// List retrieves all stories, newest first.
func (r *StoryRepository) List(ctx context.Context) ([]model.Story, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, content, image_url, author_name, created_at, updated_at
		 FROM stories ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []model.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, *s)
	}
	return stories, rows.Err()
}

// Count returns the total number of stories.
func (r *StoryRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stories`).Scan(&n)
	return n, err
}

// Create inserts a new story.
func (r *StoryRepository) Create(ctx context.Context, s *model.Story) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO stories (title, content, image_url, author_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.Title, s.Content, s.ImageURL, s.AuthorName,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies an existing story. Returns pgx.ErrNoRows if absent.
func (r *StoryRepository) Update(ctx context.Context, s *model.Story) error {
	return r.pool.QueryRow(ctx,
		`UPDATE stories SET title = $2, content = $3, image_url = $4, author_name = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		s.ID, s.Title, s.Content, s.ImageURL, s.AuthorName,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// Delete removes a story. Returns the number of rows deleted.
func (r *StoryRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanStory(row pgx.Row) (*model.Story, error) {
	s := &model.Story{}
	var imageURL, authorName *string
	err := row.Scan(&s.ID, &s.Title, &s.Content, &imageURL, &authorName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if imageURL != nil {
		s.ImageURL = *imageURL
	}
	if authorName != nil {
		s.AuthorName = *authorName
	}
	return s, nil
}
