package leave

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go-leavehub/internal/employee"
	"go-leavehub/internal/events"
	leaveerrors "go-leavehub/internal/leave/errors"
	"go-leavehub/internal/messaging/kafka"
	"go-leavehub/internal/shared/apperror"
	"go-leavehub/internal/shared/contextutil"
	"go-leavehub/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Default annual allocations, in days.
var (
	defaultVacationDays = decimal.NewFromInt(20)
	defaultSickDays     = decimal.NewFromInt(10)
	defaultPersonalDays = decimal.NewFromInt(5)
)

// EmployeeDirectory resolves employee references owned by the employee module.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id int) (*employee.Employee, error)
}

// UserDirectory resolves approver references owned by the user module.
type UserDirectory interface {
	FindByID(ctx context.Context, id int) (*user.User, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID int, req CreateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, id, approverID int, req DecisionRequest) (LeaveResponse, error)
	Reject(ctx context.Context, id, approverID int, req DecisionRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, id, employeeID int) (LeaveResponse, error)
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id int) (LeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeID int) ([]LeaveResponse, error)
	GetPending(ctx context.Context) ([]LeaveResponse, error)
	GetBalance(ctx context.Context, employeeID, year int) (BalanceResponse, error)
	Statistics(ctx context.Context) (LeaveStatistics, error)
}

type service struct {
	requests  RequestRepository
	balances  BalanceRepository
	employees EmployeeDirectory
	users     UserDirectory
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

// NewService wires the leave lifecycle engine. outbox may be nil, in which
// case lifecycle events are not recorded.
func NewService(
	requests RequestRepository,
	balances BalanceRepository,
	employees EmployeeDirectory,
	users UserDirectory,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		requests:  requests,
		balances:  balances,
		employees: employees,
		users:     users,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, employeeID int, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.Int("employee_id", employeeID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	today := truncateToDate(time.Now().UTC())
	if startDate.Before(today) {
		s.logger.Warn("create leave validation failed",
			zap.Int("employee_id", employeeID),
			zap.String("reason", "start date in the past"),
		)
		return LeaveResponse{}, leaveerrors.ErrStartDateInPast
	}
	if endDate.Before(startDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return LeaveResponse{}, asServiceError(err)
	}
	if emp == nil {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	days := CountBusinessDays(startDate, endDate)
	leaveType := LeaveType(req.Type)

	// Lazy-init the balance for the year the leave starts in, and check
	// sufficiency for the paid types against that same year.
	balance, err := s.initializeBalance(ctx, employeeID, startDate.Year())
	if err != nil {
		return LeaveResponse{}, err
	}

	requested := decimal.NewFromInt(int64(days))
	switch leaveType {
	case TypeVacation:
		if balance.VacationRemaining().LessThan(requested) {
			return LeaveResponse{}, leaveerrors.InsufficientBalance("vacation", balance.VacationRemaining(), days)
		}
	case TypeSick:
		if balance.SickRemaining().LessThan(requested) {
			return LeaveResponse{}, leaveerrors.InsufficientBalance("sick", balance.SickRemaining(), days)
		}
	case TypePersonal:
		if balance.PersonalRemaining().LessThan(requested) {
			return LeaveResponse{}, leaveerrors.InsufficientBalance("personal", balance.PersonalRemaining(), days)
		}
	}

	l := &LeaveRequest{
		EmployeeID:    employeeID,
		Type:          leaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		Days:          days,
		Reason:        req.Reason,
		Status:        StatusPending,
		RequestedDate: time.Now().UTC(),
	}

	if err := s.requests.Insert(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, asServiceError(err)
	}
	s.logger.Info("create leave success",
		zap.Int("leave_id", l.ID),
		zap.Int("employee_id", employeeID),
		zap.Int("days", days),
	)

	s.recordEvent(ctx, l.ID, events.LeaveRequestedEventType, events.LeaveRequestedEvent{
		EventType:  events.LeaveRequestedEventType,
		LeaveID:    l.ID,
		EmployeeID: l.EmployeeID,
		LeaveType:  string(l.Type),
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Days:       l.Days,
		OccurredAt: time.Now().UTC(),
	})

	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, id, approverID int, req DecisionRequest) (LeaveResponse, error) {
	return s.decide(ctx, id, approverID, StatusApproved, req.Notes)
}

func (s *service) Reject(ctx context.Context, id, approverID int, req DecisionRequest) (LeaveResponse, error) {
	return s.decide(ctx, id, approverID, StatusRejected, req.Notes)
}

func (s *service) decide(ctx context.Context, id, approverID int, targetStatus, notes string) (LeaveResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.Int("leave_id", id),
		zap.Int("approver_id", approverID),
		zap.String("target_status", targetStatus),
	)

	l, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, asServiceError(err)
	}
	if l == nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if l.Status != StatusPending {
		s.logger.Warn("decide leave invalid state",
			zap.Int("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.NotPending(l.Status)
	}

	now := time.Now().UTC()
	l.Status = targetStatus
	l.ApprovedBy = &approverID
	l.ApprovedDate = &now
	if notes != "" {
		l.ApproverNotes = &notes
	}

	eventType := events.LeaveRejectedEventType
	if targetStatus == StatusApproved {
		eventType = events.LeaveApprovedEventType
		// Debit the balance of the year the leave starts in. The balance was
		// checked against that year at creation; debiting the wall-clock year
		// instead (as some HR systems do) silently corrupts cross-year leave.
		if err := s.adjustUsage(ctx, l.EmployeeID, l.StartDate.Year(), l.Type, l.Days, true); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := s.requests.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed",
			zap.Int("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, asServiceError(err)
	}
	s.logger.Info("decide leave success",
		zap.Int("leave_id", id),
		zap.String("status", targetStatus),
	)

	s.recordEvent(ctx, l.ID, eventType, events.LeaveDecidedEvent{
		EventType:  eventType,
		LeaveID:    l.ID,
		EmployeeID: l.EmployeeID,
		LeaveType:  string(l.Type),
		ApproverID: approverID,
		OccurredAt: now,
	})

	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, id, employeeID int) (LeaveResponse, error) {
	l, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, asServiceError(err)
	}
	if l == nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if l.EmployeeID != employeeID {
		s.logger.Warn("cancel leave ownership check failed",
			zap.Int("leave_id", id),
			zap.Int("owner_id", l.EmployeeID),
			zap.Int("caller_id", employeeID),
		)
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.NotPending(l.Status)
	}

	l.Status = StatusCancelled
	if err := s.requests.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.Int("leave_id", id), zap.Error(err))
		return LeaveResponse{}, asServiceError(err)
	}
	s.logger.Info("cancel leave success", zap.Int("leave_id", id))

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	l, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return asServiceError(err)
	}
	if l == nil {
		return leaveerrors.ErrLeaveNotFound
	}

	// Deleting an approved request gives the days back.
	if l.Status == StatusApproved {
		if err := s.adjustUsage(ctx, l.EmployeeID, l.StartDate.Year(), l.Type, l.Days, false); err != nil {
			return err
		}
	}

	if err := s.requests.Delete(ctx, id); err != nil {
		s.logger.Error("delete leave persist failed", zap.Int("leave_id", id), zap.Error(err))
		return asServiceError(err)
	}
	s.logger.Info("delete leave success", zap.Int("leave_id", id), zap.String("status", l.Status))
	return nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.requests.FindAll(ctx)
	if err != nil {
		return nil, asServiceError(err)
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id int) (LeaveResponse, error) {
	l, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, asServiceError(err)
	}
	if l == nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*l), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID int) ([]LeaveResponse, error) {
	leaves, err := s.requests.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, asServiceError(err)
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetPending(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.requests.FindPending(ctx)
	if err != nil {
		return nil, asServiceError(err)
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetBalance(ctx context.Context, employeeID, year int) (BalanceResponse, error) {
	balance, err := s.initializeBalance(ctx, employeeID, year)
	if err != nil {
		return BalanceResponse{}, err
	}
	return mapToBalanceResponse(*balance), nil
}

func (s *service) Statistics(ctx context.Context) (LeaveStatistics, error) {
	leaves, err := s.requests.FindAll(ctx)
	if err != nil {
		return LeaveStatistics{}, asServiceError(err)
	}

	stats := LeaveStatistics{
		RequestsByType: make(map[LeaveType]int, len(AllLeaveTypes)),
		RecentRequests: []LeaveRequestWithEmployee{},
	}
	for _, t := range AllLeaveTypes {
		stats.RequestsByType[t] = 0
	}

	for _, l := range leaves {
		stats.TotalRequests++
		switch l.Status {
		case StatusPending:
			stats.PendingRequests++
		case StatusApproved:
			stats.ApprovedRequests++
		case StatusRejected:
			stats.RejectedRequests++
		}
		stats.RequestsByType[l.Type]++
	}

	// FindAll is already most-recent-first. Rows whose employee cannot be
	// resolved are dropped from the recent list but still counted above.
	recent := leaves
	if len(recent) > 10 {
		recent = recent[:10]
	}
	for _, l := range recent {
		emp, err := s.employees.FindByID(ctx, l.EmployeeID)
		if err != nil {
			return LeaveStatistics{}, asServiceError(err)
		}
		if emp == nil {
			continue
		}

		var approver *user.User
		if l.ApprovedBy != nil {
			approver, err = s.users.FindByID(ctx, *l.ApprovedBy)
			if err != nil {
				return LeaveStatistics{}, asServiceError(err)
			}
		}

		stats.RecentRequests = append(stats.RecentRequests, LeaveRequestWithEmployee{
			LeaveRequest: mapToResponse(l),
			Employee:     *emp,
			Approver:     approver,
		})
	}

	return stats, nil
}

// initializeBalance returns the balance for (employeeID, year), creating it
// with default allocations when absent. Idempotent.
func (s *service) initializeBalance(ctx context.Context, employeeID, year int) (*LeaveBalance, error) {
	balance, err := s.balances.Find(ctx, employeeID, year)
	if err != nil {
		return nil, asServiceError(err)
	}
	if balance != nil {
		return balance, nil
	}

	created := LeaveBalance{
		EmployeeID:   employeeID,
		Year:         year,
		VacationDays: defaultVacationDays,
		SickDays:     defaultSickDays,
		PersonalDays: defaultPersonalDays,
		VacationUsed: decimal.Zero,
		SickUsed:     decimal.Zero,
		PersonalUsed: decimal.Zero,
	}
	if err := s.balances.Insert(ctx, created); err != nil {
		s.logger.Error("initialize balance persist failed",
			zap.Int("employee_id", employeeID),
			zap.Int("year", year),
			zap.Error(err),
		)
		return nil, asServiceError(err)
	}
	s.logger.Info("initialize balance success",
		zap.Int("employee_id", employeeID),
		zap.Int("year", year),
	)
	return &created, nil
}

// adjustUsage moves the *Used counter for the paid leave types. Unpaid,
// maternity, paternity, bereavement and study leave never touch the balance.
// No negative/overflow guard lives here; sufficiency is enforced at creation.
func (s *service) adjustUsage(ctx context.Context, employeeID, year int, leaveType LeaveType, days int, increase bool) error {
	switch leaveType {
	case TypeVacation, TypeSick, TypePersonal:
	default:
		return nil
	}

	balance, err := s.initializeBalance(ctx, employeeID, year)
	if err != nil {
		return err
	}

	delta := decimal.NewFromInt(int64(days))
	if !increase {
		delta = delta.Neg()
	}

	switch leaveType {
	case TypeVacation:
		balance.VacationUsed = balance.VacationUsed.Add(delta)
	case TypeSick:
		balance.SickUsed = balance.SickUsed.Add(delta)
	case TypePersonal:
		balance.PersonalUsed = balance.PersonalUsed.Add(delta)
	}

	if err := s.balances.Update(ctx, *balance); err != nil {
		s.logger.Error("adjust balance persist failed",
			zap.Int("employee_id", employeeID),
			zap.Int("year", year),
			zap.String("type", string(leaveType)),
			zap.Error(err),
		)
		return asServiceError(err)
	}
	return nil
}

// recordEvent appends a lifecycle event to the outbox for the producer worker.
// Event recording is best effort; a failure is logged, never surfaced.
func (s *service) recordEvent(ctx context.Context, leaveID int, eventType string, payload any) {
	if s.outbox == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("encode lifecycle event failed", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   strconv.Itoa(leaveID),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       data,
	}
	if err := s.outbox.Append(ctx, event); err != nil {
		s.logger.Error("append lifecycle event failed",
			zap.String("event_type", eventType),
			zap.Int("leave_id", leaveID),
			zap.Error(err),
		)
	}
}

func asServiceError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Persistence(err)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
