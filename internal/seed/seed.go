// Package seed fills an empty database with demo users and posts.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"blog-service/internal/model"
	"blog-service/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultPassword = "password"
	AdminEmail      = "admin@blog.local"

	userCount = 10
	postCount = 50
	maxAge    = 6 * 30 * 24 * time.Hour
)

var (
	firstNames = []string{"Alice", "Bruno", "Camille", "David", "Elodie", "Farid", "Gaelle", "Hugo", "Ines", "Julien", "Karim", "Lea"}
	lastNames  = []string{"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Leroy", "Moreau"}
	words      = strings.Fields("lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor incididunt ut labore et dolore magna aliqua enim minim veniam quis nostrud exercitation ullamco laboris nisi aliquip")
)

type Seeder struct {
	users repository.UserRepository
	posts repository.PostRepository
	rnd   *rand.Rand
	now   func() time.Time
	cost  int
}

func NewSeeder(users repository.UserRepository, posts repository.PostRepository, seed int64) *Seeder {
	return &Seeder{
		users: users,
		posts: posts,
		rnd:   rand.New(rand.NewSource(seed)),
		now:   time.Now,
		cost:  bcrypt.DefaultCost,
	}
}

// Run creates the admin, the demo users and their posts. Users that already
// exist are reused.
func (s *Seeder) Run(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	admin := &model.User{
		Email:        AdminEmail,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "Blog",
		Roles:        model.Roles{model.RoleUser, model.RoleAdmin},
	}
	if _, err := s.ensureUser(ctx, admin); err != nil {
		return err
	}

	ownerIDs := make([]int64, 0, userCount)
	for i := 1; i <= userCount; i++ {
		user := &model.User{
			Email:        fmt.Sprintf("user%d@blog.local", i),
			PasswordHash: string(hash),
			FirstName:    pick(s.rnd, firstNames),
			LastName:     pick(s.rnd, lastNames),
			Roles:        model.Roles{model.RoleUser},
		}
		id, err := s.ensureUser(ctx, user)
		if err != nil {
			return err
		}
		ownerIDs = append(ownerIDs, id)
	}

	for i := 0; i < postCount; i++ {
		post := &model.Post{
			Title:     s.sentence(5),
			Content:   s.paragraphs(4),
			CreatedAt: s.now().Add(-time.Duration(s.rnd.Int63n(int64(maxAge)))),
			OwnerID:   ownerIDs[s.rnd.Intn(len(ownerIDs))],
		}
		if _, err := s.posts.Create(ctx, post); err != nil {
			return fmt.Errorf("create seed post: %w", err)
		}
	}

	slog.InfoContext(ctx, "Seed completed", slog.Int("users", userCount+1), slog.Int("posts", postCount))
	return nil
}

func (s *Seeder) ensureUser(ctx context.Context, user *model.User) (int64, error) {
	id, err := s.users.Create(ctx, user)
	if err == nil {
		return id, nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return 0, fmt.Errorf("create seed user %s: %w", user.Email, err)
	}

	existing, err := s.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return 0, fmt.Errorf("load existing user %s: %w", user.Email, err)
	}
	if existing == nil {
		return 0, fmt.Errorf("user %s reported as duplicate but not found", user.Email)
	}
	slog.DebugContext(ctx, "Seed user already exists", slog.String("email", user.Email))
	return existing.ID, nil
}

func (s *Seeder) sentence(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = pick(s.rnd, words)
	}
	sentence := strings.Join(parts, " ")
	return strings.ToUpper(sentence[:1]) + sentence[1:] + "."
}

func (s *Seeder) paragraphs(n int) string {
	paras := make([]string, n)
	for i := range paras {
		sentences := make([]string, 3+s.rnd.Intn(3))
		for j := range sentences {
			sentences[j] = s.sentence(6 + s.rnd.Intn(6))
		}
		paras[i] = strings.Join(sentences, " ")
	}
	return strings.Join(paras, "\n\n")
}

func pick(rnd *rand.Rand, values []string) string {
	return values[rnd.Intn(len(values))]
}
