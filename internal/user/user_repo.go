package user

import (
	"context"

	"go-leavehub/internal/shared/jsonstore"
)

// Repository is a read-only directory of approver/user records. Accounts are
// provisioned by an external identity system; this service only resolves them.
type Repository interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id int) (*User, error)
}

type repository struct {
	col *jsonstore.Collection[User]
}

func NewRepository(col *jsonstore.Collection[User]) Repository {
	return &repository{col: col}
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	return r.col.Snapshot(), nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	for _, item := range r.col.Snapshot() {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}
