package entity

// User is the aggregate root managed by the admin API.
// Email is stored trimmed; uniqueness is enforced case-insensitively among non-deleted users.
// IsDeleted only hides the row from reads, deletes are physical.
type User struct {
	Audit
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Active    bool   `gorm:"not null"`
	IsDeleted bool   `gorm:"not null;default:false"`

	UserRoles []UserRole `gorm:"foreignKey:UserID"`
}

// Column names used by query filters and orders.
const (
	ColID          = "id"
	ColCreatedBy   = "created_by"
	ColCreatedDate = "created_date"
	ColUpdatedDate = "updated_date"

	UserColFirstName = "first_name"
	UserColLastName  = "last_name"
	UserColEmail     = "email"
	UserColActive    = "active"
	UserColIsDeleted = "is_deleted"

	// UserRelRoles eager-loads the join rows together with their Role.
	UserRelRoles = "UserRoles.Role"
)
