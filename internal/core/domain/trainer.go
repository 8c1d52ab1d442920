package domain

import (
	"fmt"
	"time"
)

type Trainer struct {
	ID             int64     `db:"id"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	Specialization *string   `db:"specialization"`
	HireDate       time.Time `db:"hire_date"`
	Salary         float64   `db:"salary"`
	Certification  *string   `db:"certification"`
}

func (t *Trainer) FullName() string {
	return fmt.Sprintf("%s %s", t.LastName, t.FirstName)
}
