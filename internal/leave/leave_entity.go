package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

type LeaveType string

const (
	TypeVacation    LeaveType = "VACATION"
	TypeSick        LeaveType = "SICK"
	TypeUnpaid      LeaveType = "UNPAID"
	TypePersonal    LeaveType = "PERSONAL"
	TypeMaternity   LeaveType = "MATERNITY"
	TypePaternity   LeaveType = "PATERNITY"
	TypeBereavement LeaveType = "BEREAVEMENT"
	TypeStudy       LeaveType = "STUDY"
)

// AllLeaveTypes is the closed set of leave types, used to zero-fill
// per-type breakdowns so every type is always present in reports.
var AllLeaveTypes = []LeaveType{
	TypeVacation,
	TypeSick,
	TypeUnpaid,
	TypePersonal,
	TypeMaternity,
	TypePaternity,
	TypeBereavement,
	TypeStudy,
}

// LeaveRequest is a single time-off request. IDs are sequential integers,
// assigned at creation and never reassigned within a process.
type LeaveRequest struct {
	ID            int        `json:"id"`
	EmployeeID    int        `json:"employee_id"`
	Type          LeaveType  `json:"type"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	Days          int        `json:"days"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	ApprovedBy    *int       `json:"approved_by,omitempty"`
	ApprovedDate  *time.Time `json:"approved_date,omitempty"`
	ApproverNotes *string    `json:"approver_notes,omitempty"`
	RequestedDate time.Time  `json:"requested_date"`
}

// LeaveBalance is the per-employee, per-year allocation/usage ledger for the
// three paid leave types. At most one balance exists per (employee, year).
type LeaveBalance struct {
	EmployeeID   int             `json:"employee_id"`
	Year         int             `json:"year"`
	VacationDays decimal.Decimal `json:"vacation_days"`
	SickDays     decimal.Decimal `json:"sick_days"`
	PersonalDays decimal.Decimal `json:"personal_days"`
	VacationUsed decimal.Decimal `json:"vacation_used"`
	SickUsed     decimal.Decimal `json:"sick_used"`
	PersonalUsed decimal.Decimal `json:"personal_used"`
}

func (b LeaveBalance) VacationRemaining() decimal.Decimal {
	return b.VacationDays.Sub(b.VacationUsed)
}

func (b LeaveBalance) SickRemaining() decimal.Decimal {
	return b.SickDays.Sub(b.SickUsed)
}

func (b LeaveBalance) PersonalRemaining() decimal.Decimal {
	return b.PersonalDays.Sub(b.PersonalUsed)
}
