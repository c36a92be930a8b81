package employee

import (
	"context"
	"errors"
	"time"

	employeeerrors "go-leavehub/internal/employee/errors"
	"go-leavehub/internal/shared/apperror"

	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id int) (EmployeeResponse, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		s.logger.Warn("create employee validation failed", zap.String("join_date", req.JoinDate))
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoinDate
	}

	e := &Employee{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Department:  req.Department,
		Designation: req.Designation,
		JoinDate:    joinDate,
	}

	if err := s.repo.Insert(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, asServiceError(err)
	}
	s.logger.Info("create employee success", zap.Int("employee_id", e.ID))

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, asServiceError(err)
	}

	out := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		out[i] = mapToResponse(e)
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id int) (EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, asServiceError(err)
	}
	if e == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Int("employee_id", id), zap.Error(err))
		return asServiceError(err)
	}
	s.logger.Info("delete employee success", zap.Int("employee_id", id))
	return nil
}

// asServiceError passes AppErrors through and labels anything else a
// persistence failure.
func asServiceError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Persistence(err)
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		DisplayName: e.DisplayName(),
		Email:       e.Email,
		Department:  e.Department,
		Designation: e.Designation,
		JoinDate:    e.JoinDate.Format("2006-01-02"),
	}
}
