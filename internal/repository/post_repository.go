package repository

import (
	"context"
	"database/sql"
	"errors"

	"blog-service/internal/model"

	"github.com/jmoiron/sqlx"
)

type PostRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	FindAll(ctx context.Context) ([]model.Post, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]model.Post, error)
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id int64) error
}

type postgresPostRepository struct {
	db *sqlx.DB
}

func NewPostgresPostRepository(db *sqlx.DB) PostRepository {
	return &postgresPostRepository{db: db}
}

const selectPostsWithOwner = `
	SELECT p.id, p.title, p.content, p.created_at, COALESCE(p.user_id, 0) AS user_id,
		u.email AS owner_email, u.first_name AS owner_first_name, u.last_name AS owner_last_name
	FROM posts p
	LEFT JOIN users u ON p.user_id = u.id
`

type postRow struct {
	model.Post
	OwnerEmail     sql.NullString `db:"owner_email"`
	OwnerFirstName sql.NullString `db:"owner_first_name"`
	OwnerLastName  sql.NullString `db:"owner_last_name"`
}

func (r postRow) toPost() model.Post {
	post := r.Post
	if post.OwnerID != 0 && r.OwnerEmail.Valid {
		post.Owner = &model.User{
			ID:        post.OwnerID,
			Email:     r.OwnerEmail.String,
			FirstName: r.OwnerFirstName.String,
			LastName:  r.OwnerLastName.String,
		}
	}
	return post
}

func toPosts(rows []postRow) []model.Post {
	posts := make([]model.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toPost())
	}
	return posts
}

func (r *postgresPostRepository) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	var row postRow
	err := r.db.GetContext(ctx, &row, selectPostsWithOwner+` WHERE p.id = $1`, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	post := row.toPost()
	return &post, nil
}

func (r *postgresPostRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	var rows []postRow
	err := r.db.SelectContext(ctx, &rows, selectPostsWithOwner+` ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	return toPosts(rows), nil
}

func (r *postgresPostRepository) FindByOwner(ctx context.Context, ownerID int64) ([]model.Post, error) {
	var rows []postRow
	err := r.db.SelectContext(ctx, &rows, selectPostsWithOwner+` WHERE p.user_id = $1 ORDER BY p.id`, ownerID)
	if err != nil {
		return nil, err
	}
	return toPosts(rows), nil
}

func (r *postgresPostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	query := `
		INSERT INTO posts (title, content, created_at, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query, post.Title, post.Content, post.CreatedAt, post.OwnerID).Scan(&post.ID)
	if err != nil {
		return nil, err
	}

	return post, nil
}

// Update writes title and content only; owner and created_at are never
// changed after creation.
func (r *postgresPostRepository) Update(ctx context.Context, post *model.Post) error {
	query := `UPDATE posts SET title = $1, content = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, post.Title, post.Content, post.ID)
	return err
}

func (r *postgresPostRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
