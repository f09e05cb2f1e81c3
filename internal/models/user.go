package models

import "time"

// Valid user roles.
const (
	RoleAdmin     = "admin"
	RoleSuperUser = "super-user"
	RoleUser      = "user"
)

// User represents a user of the store.
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string     `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string     `json:"-" gorm:"column:password_hash;type:varchar(255);not null"`
	FullName  string     `json:"fullName" gorm:"not null"`
	IsActive  bool       `json:"isActive" gorm:"not null;default:true"`
	Roles     StringList `json:"roles" gorm:"not null"`
	Products  []Product  `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// HasRole reports whether the user holds any of the given roles.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Roles.Contains(r) {
			return true
		}
	}
	return false
}

// Field returns the value of the field with the given JSON name.
func (u *User) Field(name string) (interface{}, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "email":
		return u.Email, true
	case "fullName":
		return u.FullName, true
	case "isActive":
		return u.IsActive, true
	case "roles":
		return u.Roles, true
	}
	return nil, false
}
