package service

import (
	"context"
	"errors"
	"sync"

	"blog-service/internal/model"
)

// =============================================================================
// Mock repositories
// =============================================================================

type mockPostRepository struct {
	findByIDFunc    func(ctx context.Context, id int64) (*model.Post, error)
	findAllFunc     func(ctx context.Context) ([]model.Post, error)
	findByOwnerFunc func(ctx context.Context, ownerID int64) ([]model.Post, error)
	createFunc      func(ctx context.Context, post *model.Post) (*model.Post, error)
	updateFunc      func(ctx context.Context, post *model.Post) error
	deleteFunc      func(ctx context.Context, id int64) error
}

func (m *mockPostRepository) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPostRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPostRepository) FindByOwner(ctx context.Context, ownerID int64) ([]model.Post, error) {
	if m.findByOwnerFunc != nil {
		return m.findByOwnerFunc(ctx, ownerID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, post)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPostRepository) Update(ctx context.Context, post *model.Post) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, post)
	}
	return errors.New("not implemented")
}

func (m *mockPostRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

type mockUserRepository struct {
	createFunc      func(ctx context.Context, user *model.User) (int64, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	findByIDFunc    func(ctx context.Context, id int64) (*model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) (int64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return 0, errors.New("not implemented")
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

type mockTokenRepository struct {
	mu     sync.Mutex
	hashes map[string]model.RefreshToken
}

func newMockTokenRepository() *mockTokenRepository {
	return &mockTokenRepository{hashes: map[string]model.RefreshToken{}}
}

func (m *mockTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hashes[token.TokenHash] = *token
	return nil
}

func (m *mockTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.hashes[tokenHash]
	if !ok {
		return nil, errors.New("not found")
	}
	return &t, nil
}

func (m *mockTokenRepository) Delete(ctx context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.hashes, tokenHash)
	return nil
}

// =============================================================================
// Recording publisher
// =============================================================================

type recordingPublisher struct {
	mu      sync.Mutex
	created []int64
	done    chan struct{}
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{done: make(chan struct{}, 8)}
}

func (p *recordingPublisher) PublishPostCreated(post *model.Post) error {
	p.mu.Lock()
	p.created = append(p.created, post.ID)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func (p *recordingPublisher) PublishPostUpdated(post *model.Post, actorID int64) error {
	p.done <- struct{}{}
	return nil
}

func (p *recordingPublisher) PublishPostDeleted(postID, actorID int64) error {
	p.done <- struct{}{}
	return nil
}
