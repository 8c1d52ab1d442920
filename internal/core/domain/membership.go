package domain

type Membership struct {
	ID           int64   `db:"id"`
	Type         string  `db:"type"`
	DurationDays int     `db:"duration_days"`
	Price        float64 `db:"price"`
	Description  *string `db:"description"`
	AccessLevel  int     `db:"access_level"` // 1-3
	IsActive     bool    `db:"is_active"`
}

func NewMembership(membershipType string, durationDays, accessLevel int) *Membership {
	return &Membership{
		Type:         membershipType,
		DurationDays: durationDays,
		AccessLevel:  accessLevel,
		IsActive:     true,
	}
}
