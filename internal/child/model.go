package child

import "time"

// Child is an enrolled individual. PayerID is nil until a billing
// responsible is assigned; billing refuses children without one.
type Child struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	BirthDate      time.Time `json:"birth_date"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	Active         bool      `json:"active"`
	PayerID        *int      `json:"payer_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Payer is the billing-responsible party for one or more children.
type Payer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
