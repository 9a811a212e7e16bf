// Package access decides which posts a principal may see or change, and
// stamps ownership on newly created posts.
package access

import (
	"context"
	"errors"
	"fmt"

	"blog-service/internal/model"
)

var ErrDenied = errors.New("access denied")

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// MutationPolicy controls who may update or delete an existing post.
type MutationPolicy string

const (
	PolicyOwnerOrAdmin     MutationPolicy = "owner_or_admin"
	PolicyAnyAuthenticated MutationPolicy = "any_authenticated"
)

func ParsePolicy(s string) (MutationPolicy, error) {
	switch MutationPolicy(s) {
	case "", PolicyOwnerOrAdmin:
		return PolicyOwnerOrAdmin, nil
	case PolicyAnyAuthenticated:
		return PolicyAnyAuthenticated, nil
	default:
		return "", fmt.Errorf("unknown mutation policy %q", s)
	}
}

type PostLister interface {
	FindAll(ctx context.Context) ([]model.Post, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]model.Post, error)
}

type Gate struct {
	posts  PostLister
	policy MutationPolicy
}

func NewGate(posts PostLister, policy MutationPolicy) *Gate {
	return &Gate{posts: posts, policy: policy}
}

func (g *Gate) Policy() MutationPolicy {
	return g.policy
}

// ListVisible returns every post for admins and only the principal's own
// posts otherwise, in storage order.
func (g *Gate) ListVisible(ctx context.Context, principal model.Principal) ([]model.Post, error) {
	if principal.IsAdmin() {
		return g.posts.FindAll(ctx)
	}
	return g.posts.FindByOwner(ctx, principal.UserID)
}

// AuthorizeMutation returns ErrDenied when principal may not apply op to
// target. Creation is always allowed; the owner is forced by AssignOwner.
func (g *Gate) AuthorizeMutation(principal model.Principal, target *model.Post, op Operation) error {
	switch op {
	case OpCreate:
		return nil
	case OpUpdate, OpDelete:
		if g.policy == PolicyAnyAuthenticated {
			return nil
		}
		if principal.IsAdmin() || (target != nil && target.OwnerID == principal.UserID) {
			return nil
		}
		return ErrDenied
	default:
		return fmt.Errorf("%w: unknown operation %q", ErrDenied, op)
	}
}
