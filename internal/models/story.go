package models

import "time"

// Story is a teacher submission describing their use of AI, plus the contact
// details collected alongside it. Records are insert-only: no update or
// delete path exists anywhere in the system.
type Story struct {
	ID        int64     `db:"id" json:"id"`
	Story     string    `db:"story" json:"story"`
	Name      string    `db:"name" json:"name"`
	Email     *string   `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone"`
	School    *string   `db:"school" json:"school"`
	Grades    *string   `db:"grades" json:"grades"`
	Role      *string   `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
