package employee

import (
	"context"
	"sort"

	employeeerrors "go-leavehub/internal/employee/errors"
	"go-leavehub/internal/shared/jsonstore"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id int) (*Employee, error)
	Insert(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id int) error
}

type repository struct {
	col *jsonstore.Collection[Employee]

	// Guarded by the collection lock; only read or written inside Mutate.
	nextID int
}

func NewRepository(col *jsonstore.Collection[Employee]) Repository {
	nextID := 1
	for _, e := range col.Snapshot() {
		if e.ID >= nextID {
			nextID = e.ID + 1
		}
	}
	return &repository{col: col, nextID: nextID}
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	items := r.col.Snapshot()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Employee, error) {
	for _, item := range r.col.Snapshot() {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (r *repository) Insert(ctx context.Context, e *Employee) error {
	return r.col.Mutate(func(items []Employee) ([]Employee, error) {
		e.ID = r.nextID
		r.nextID++
		return append(items, *e), nil
	})
}

func (r *repository) Delete(ctx context.Context, id int) error {
	return r.col.Mutate(func(items []Employee) ([]Employee, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, employeeerrors.ErrEmployeeNotFound
	})
}
