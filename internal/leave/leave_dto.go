package leave

import (
	"time"

	"go-leavehub/internal/employee"
	"go-leavehub/internal/user"
)

type CreateLeaveRequest struct {
	Type      string `json:"type" binding:"required,oneof=VACATION SICK UNPAID PERSONAL MATERNITY PATERNITY BEREAVEMENT STUDY"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

// DecisionRequest carries approver notes for approve/reject calls.
type DecisionRequest struct {
	Notes string `json:"notes"`
}

type LeaveResponse struct {
	ID            int       `json:"id"`
	EmployeeID    int       `json:"employee_id"`
	Type          LeaveType `json:"type"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Days          int       `json:"days"`
	Reason        string    `json:"reason"`
	Status        string    `json:"status"`
	ApprovedBy    *int      `json:"approved_by,omitempty"`
	ApprovedDate  *string   `json:"approved_date,omitempty"`
	ApproverNotes *string   `json:"approver_notes,omitempty"`
	RequestedDate string    `json:"requested_date"`
}

type BalanceResponse struct {
	EmployeeID        int    `json:"employee_id"`
	Year              int    `json:"year"`
	VacationDays      string `json:"vacation_days"`
	VacationUsed      string `json:"vacation_used"`
	VacationRemaining string `json:"vacation_remaining"`
	SickDays          string `json:"sick_days"`
	SickUsed          string `json:"sick_used"`
	SickRemaining     string `json:"sick_remaining"`
	PersonalDays      string `json:"personal_days"`
	PersonalUsed      string `json:"personal_used"`
	PersonalRemaining string `json:"personal_remaining"`
}

// LeaveRequestWithEmployee is a statistics row joining a recent request with
// its employee record and, when resolvable, the deciding user.
type LeaveRequestWithEmployee struct {
	LeaveRequest LeaveResponse     `json:"leave_request"`
	Employee     employee.Employee `json:"employee"`
	Approver     *user.User        `json:"approver,omitempty"`
}

// LeaveStatistics is a fixed-shape report; RequestsByType always carries all
// eight leave types, zero-filled.
type LeaveStatistics struct {
	TotalRequests    int                        `json:"total_requests"`
	PendingRequests  int                        `json:"pending_requests"`
	ApprovedRequests int                        `json:"approved_requests"`
	RejectedRequests int                        `json:"rejected_requests"`
	RequestsByType   map[LeaveType]int          `json:"requests_by_type"`
	RecentRequests   []LeaveRequestWithEmployee `json:"recent_requests"`
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID,
		EmployeeID:    l.EmployeeID,
		Type:          l.Type,
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		Days:          l.Days,
		Reason:        l.Reason,
		Status:        l.Status,
		ApprovedBy:    l.ApprovedBy,
		ApproverNotes: l.ApproverNotes,
		RequestedDate: l.RequestedDate.Format(time.RFC3339),
	}
	if l.ApprovedDate != nil {
		v := l.ApprovedDate.Format(time.RFC3339)
		resp.ApprovedDate = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func mapToBalanceResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:        b.EmployeeID,
		Year:              b.Year,
		VacationDays:      b.VacationDays.String(),
		VacationUsed:      b.VacationUsed.String(),
		VacationRemaining: b.VacationRemaining().String(),
		SickDays:          b.SickDays.String(),
		SickUsed:          b.SickUsed.String(),
		SickRemaining:     b.SickRemaining().String(),
		PersonalDays:      b.PersonalDays.String(),
		PersonalUsed:      b.PersonalUsed.String(),
		PersonalRemaining: b.PersonalRemaining().String(),
	}
}
