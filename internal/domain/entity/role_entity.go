package entity

// Role represents an authorization role.
// Many-to-many with User via user_roles. Roles are seeded, never edited through the API.
type Role struct {
	Audit
	Name string `gorm:"not null"`

	UserRoles []UserRole `gorm:"foreignKey:RoleID"`
}

const RoleColName = "name"

// DefaultRoleNames are ensured by the seeder and by the in-memory driver.
var DefaultRoleNames = []string{
	"Super Admin",
	"Admin",
	"User",
	"Viewer",
	"Tester",
}
