package domain

import (
	"fmt"
	"time"
)

type Client struct {
	ID           int64      `db:"id"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Phone        string     `db:"phone"`
	Email        *string    `db:"email"`
	BirthDate    *time.Time `db:"birth_date"`
	JoinDate     time.Time  `db:"join_date"` // stamped at registration, never updated
	MembershipID int64      `db:"membership_id"`
	HealthInfo   *string    `db:"health_info"`
}

func NewClient(firstName, lastName, phone string, membershipID int64) *Client {
	return &Client{
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		MembershipID: membershipID,
	}
}

// FullName renders the client in "Last First" order, the form used in listings.
func (c *Client) FullName() string {
	return fmt.Sprintf("%s %s", c.LastName, c.FirstName)
}
