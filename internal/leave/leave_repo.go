package leave

import (
	"context"
	"sort"

	leaveerrors "go-leavehub/internal/leave/errors"
	"go-leavehub/internal/shared/jsonstore"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type RequestRepository interface {
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id int) (*LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID int) ([]LeaveRequest, error)
	FindPending(ctx context.Context) ([]LeaveRequest, error)
	Insert(ctx context.Context, req *LeaveRequest) error
	Update(ctx context.Context, req *LeaveRequest) error
	Delete(ctx context.Context, id int) error
}

type BalanceRepository interface {
	Find(ctx context.Context, employeeID, year int) (*LeaveBalance, error)
	Insert(ctx context.Context, balance LeaveBalance) error
	Update(ctx context.Context, balance LeaveBalance) error
}

type requestRepository struct {
	col *jsonstore.Collection[LeaveRequest]

	// Next id to hand out. Only touched inside col.Mutate closures, so the
	// collection lock covers it. Monotonic for the life of the process.
	nextID int
}

func NewRequestRepository(col *jsonstore.Collection[LeaveRequest]) RequestRepository {
	nextID := 1
	for _, r := range col.Snapshot() {
		if r.ID >= nextID {
			nextID = r.ID + 1
		}
	}
	return &requestRepository{col: col, nextID: nextID}
}

func (r *requestRepository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	items := r.col.Snapshot()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RequestedDate.After(items[j].RequestedDate)
	})
	return items, nil
}

func (r *requestRepository) FindByID(ctx context.Context, id int) (*LeaveRequest, error) {
	for _, item := range r.col.Snapshot() {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (r *requestRepository) FindByEmployee(ctx context.Context, employeeID int) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, item := range r.col.Snapshot() {
		if item.EmployeeID == employeeID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RequestedDate.After(out[j].RequestedDate)
	})
	return out, nil
}

func (r *requestRepository) FindPending(ctx context.Context) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, item := range r.col.Snapshot() {
		if item.Status == StatusPending {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out, nil
}

func (r *requestRepository) Insert(ctx context.Context, req *LeaveRequest) error {
	return r.col.Mutate(func(items []LeaveRequest) ([]LeaveRequest, error) {
		req.ID = r.nextID
		r.nextID++
		return append(items, *req), nil
	})
}

func (r *requestRepository) Update(ctx context.Context, req *LeaveRequest) error {
	return r.col.Mutate(func(items []LeaveRequest) ([]LeaveRequest, error) {
		for i := range items {
			if items[i].ID == req.ID {
				items[i] = *req
				return items, nil
			}
		}
		return nil, leaveerrors.ErrLeaveNotFound
	})
}

func (r *requestRepository) Delete(ctx context.Context, id int) error {
	return r.col.Mutate(func(items []LeaveRequest) ([]LeaveRequest, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, leaveerrors.ErrLeaveNotFound
	})
}

type balanceRepository struct {
	col *jsonstore.Collection[LeaveBalance]
}

func NewBalanceRepository(col *jsonstore.Collection[LeaveBalance]) BalanceRepository {
	return &balanceRepository{col: col}
}

func (r *balanceRepository) Find(ctx context.Context, employeeID, year int) (*LeaveBalance, error) {
	for _, item := range r.col.Snapshot() {
		if item.EmployeeID == employeeID && item.Year == year {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (r *balanceRepository) Insert(ctx context.Context, balance LeaveBalance) error {
	return r.col.Mutate(func(items []LeaveBalance) ([]LeaveBalance, error) {
		return append(items, balance), nil
	})
}

func (r *balanceRepository) Update(ctx context.Context, balance LeaveBalance) error {
	return r.col.Mutate(func(items []LeaveBalance) ([]LeaveBalance, error) {
		for i := range items {
			if items[i].EmployeeID == balance.EmployeeID && items[i].Year == balance.Year {
				items[i] = balance
				return items, nil
			}
		}
		return nil, leaveerrors.ErrBalanceNotFound
	})
}
