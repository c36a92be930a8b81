package employee

import "time"

type Employee struct {
	ID          int       `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Department  string    `json:"department"`
	Designation string    `json:"designation"`
	JoinDate    time.Time `json:"join_date"`
}

func (e Employee) DisplayName() string {
	return e.FirstName + " " + e.LastName
}
