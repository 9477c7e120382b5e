package domain

import "time"

// User represents one platform account.
//
// Social is stored inline on the users row (social_* columns); it has no
// identity of its own. The schema itself is owned by the SQL migrations in
// internal/platform/postgres/migrations.
type User struct {
	ID        int64     `json:"id"        gorm:"primaryKey"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Social    Social    `json:"social"    gorm:"embedded;embeddedPrefix:social_"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName pins the table name used by the ORM.
func (User) TableName() string { return "users" }

// Social holds optional external profile links. An empty string means the
// link is not set.
type Social struct {
	Facebook string `json:"facebook,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty"  gorm:"column:github"`
	Website  string `json:"website,omitempty"`
}

// UserPatch is a validated, normalized user payload. A nil field was not
// supplied by the caller.
type UserPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
	Social    *Social
}

// IsEmpty reports whether the patch carries no fields at all.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil && p.Social == nil
}

// Apply merges the supplied fields into u. Social is replaced as a whole
// when present.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Social != nil {
		u.Social = *p.Social
	}
}

// NewUser builds an unsaved User from a create patch. The ID and timestamps
// are left for the store to assign.
func NewUser(p UserPatch) User {
	var u User
	p.Apply(&u)
	return u
}
