package access_test

import (
	"context"
	"errors"
	"testing"

	"blog-service/internal/access"
	"blog-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostLister struct {
	posts []model.Post
}

func (f *fakePostLister) FindAll(ctx context.Context) ([]model.Post, error) {
	return f.posts, nil
}

func (f *fakePostLister) FindByOwner(ctx context.Context, ownerID int64) ([]model.Post, error) {
	var out []model.Post
	for _, p := range f.posts {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func store() *fakePostLister {
	return &fakePostLister{posts: []model.Post{
		{ID: 1, OwnerID: 10},
		{ID: 2, OwnerID: 20},
		{ID: 3, OwnerID: 10},
	}}
}

var (
	alice = model.Principal{UserID: 10, Roles: []model.Role{model.RoleUser}}
	bob   = model.Principal{UserID: 20}
	admin = model.Principal{UserID: 99, Roles: []model.Role{model.RoleUser, model.RoleAdmin}}
)

func TestListVisible_NonAdminSeesOnlyOwnPosts(t *testing.T) {
	g := access.NewGate(store(), access.PolicyOwnerOrAdmin)

	posts, err := g.ListVisible(context.Background(), alice)
	require.NoError(t, err)

	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, alice.UserID, p.OwnerID)
	}
}

func TestListVisible_AdminSeesEverything(t *testing.T) {
	g := access.NewGate(store(), access.PolicyOwnerOrAdmin)

	posts, err := g.ListVisible(context.Background(), admin)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3}, ids(posts))
}

func TestAuthorizeMutation_OwnerOrAdmin(t *testing.T) {
	g := access.NewGate(store(), access.PolicyOwnerOrAdmin)
	target := &model.Post{ID: 1, OwnerID: alice.UserID}

	tests := []struct {
		name      string
		principal model.Principal
		op        access.Operation
		denied    bool
	}{
		{"owner updates", alice, access.OpUpdate, false},
		{"owner deletes", alice, access.OpDelete, false},
		{"stranger updates", bob, access.OpUpdate, true},
		{"stranger deletes", bob, access.OpDelete, true},
		{"admin updates", admin, access.OpUpdate, false},
		{"admin deletes", admin, access.OpDelete, false},
		{"anyone creates", bob, access.OpCreate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AuthorizeMutation(tt.principal, target, tt.op)
			if tt.denied {
				assert.ErrorIs(t, err, access.ErrDenied)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizeMutation_AnyAuthenticated(t *testing.T) {
	g := access.NewGate(store(), access.PolicyAnyAuthenticated)
	target := &model.Post{ID: 1, OwnerID: alice.UserID}

	assert.NoError(t, g.AuthorizeMutation(bob, target, access.OpUpdate))
	assert.NoError(t, g.AuthorizeMutation(bob, target, access.OpDelete))
}

func TestAuthorizeMutation_UnknownOperation(t *testing.T) {
	g := access.NewGate(store(), access.PolicyAnyAuthenticated)

	err := g.AuthorizeMutation(admin, &model.Post{}, access.Operation("publish"))
	assert.True(t, errors.Is(err, access.ErrDenied))
}

func TestParsePolicy(t *testing.T) {
	p, err := access.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, access.PolicyOwnerOrAdmin, p)

	p, err = access.ParsePolicy("any_authenticated")
	require.NoError(t, err)
	assert.Equal(t, access.PolicyAnyAuthenticated, p)

	_, err = access.ParsePolicy("everyone")
	assert.Error(t, err)
}

func TestAssignOwner_OverridesExistingOwner(t *testing.T) {
	post := &model.Post{Title: "Valid Title", OwnerID: bob.UserID, Owner: &model.User{ID: bob.UserID}}

	access.AssignOwner(post, alice)

	assert.Equal(t, alice.UserID, post.OwnerID)
	assert.Nil(t, post.Owner)
}

func ids(posts []model.Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}
