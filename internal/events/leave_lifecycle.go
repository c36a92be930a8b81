package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveRequestedEventType = "leave.requested"
	LeaveApprovedEventType  = "leave.approved"
	LeaveRejectedEventType  = "leave.rejected"
)

type LeaveRequestedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    int       `json:"leave_id"`
	EmployeeID int       `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Days       int       `json:"days"`
	OccurredAt time.Time `json:"occurred_at"`
}

type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    int       `json:"leave_id"`
	EmployeeID int       `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	ApproverID int       `json:"approver_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
