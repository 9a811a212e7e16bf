package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"blog-service/internal/model"
	repo "blog-service/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var postColumns = []string{"id", "title", "content", "created_at", "user_id", "owner_email", "owner_first_name", "owner_last_name"}

func newPostRepo(t *testing.T) (repo.PostRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return repo.NewPostgresPostRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPostgresPostRepository_FindByID(t *testing.T) {
	r, mock := newPostRepo(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM posts p\s+LEFT JOIN users u ON p.user_id = u.id\s+WHERE p.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(postColumns).AddRow(5, "Title", "Body", created, 7, "a@b.com", "Alice", "Martin"))

	post, err := r.FindByID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, post)
	require.Equal(t, int64(5), post.ID)
	require.Equal(t, created, post.CreatedAt)
	require.Equal(t, int64(7), post.OwnerID)
	require.NotNil(t, post.Owner)
	require.Equal(t, "Alice", post.Owner.FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_FindByID_NoRows(t *testing.T) {
	r, mock := newPostRepo(t)

	mock.ExpectQuery(`WHERE p.id = \$1`).WithArgs(sqlmock.AnyArg()).WillReturnRows(sqlmock.NewRows(postColumns))

	post, err := r.FindByID(context.Background(), 404)
	require.NoError(t, err)
	require.Nil(t, post)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_FindByOwner(t *testing.T) {
	r, mock := newPostRepo(t)
	now := time.Now()

	mock.ExpectQuery(`WHERE p.user_id = \$1 ORDER BY p.id`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(2, "Second", "B", now, 7, "a@b.com", "Alice", "Martin").
			AddRow(9, "Ninth", "C", now, 7, "a@b.com", "Alice", "Martin"))

	posts, err := r.FindByOwner(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, int64(2), posts[0].ID)
	require.Equal(t, int64(9), posts[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_FindAll_OrphanPost(t *testing.T) {
	r, mock := newPostRepo(t)

	mock.ExpectQuery(`FROM posts p\s+LEFT JOIN users u ON p.user_id = u.id\s+ORDER BY p.id`).
		WillReturnRows(sqlmock.NewRows(postColumns).AddRow(1, "Orphan", "B", time.Now(), 0, nil, nil, nil))

	posts, err := r.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Nil(t, posts[0].Owner)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_Create(t *testing.T) {
	r, mock := newPostRepo(t)
	created := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts (title, content, created_at, user_id)`)).
		WithArgs("Valid Title", "Body text", created, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	post, err := r.Create(context.Background(), &model.Post{Title: "Valid Title", Content: "Body text", CreatedAt: created, OwnerID: 7})
	require.NoError(t, err)
	require.Equal(t, int64(11), post.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_Create_Error(t *testing.T) {
	r, mock := newPostRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts`)).WillReturnError(errors.New("boom"))

	_, err := r.Create(context.Background(), &model.Post{Title: "Valid Title", Content: "Body", OwnerID: 7})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_UpdateAndDelete(t *testing.T) {
	r, mock := newPostRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE posts SET title = $1, content = $2 WHERE id = $3`)).
		WithArgs("New", "Body", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Update(context.Background(), &model.Post{ID: 3, Title: "New", Content: "Body", OwnerID: 99}))
	require.NoError(t, r.Delete(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}
