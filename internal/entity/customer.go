package entity

import "time"

// Role is the access level of a user account.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User represents the users table. Customers are users with RoleCustomer.
type User struct {
	ID        int       `db:"id"`
	Email     string    `db:"email"`
	Role      Role      `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

// CustomerFilter narrows customer counts. A nil window counts all customers.
type CustomerFilter struct {
	Window *TimeRange
}
