package model

// Audience selects who sees a notification.
type Audience string

const (
	AudienceAll      Audience = "ALL"
	AudienceStudents Audience = "STUDENTS"
	AudienceAdmins   Audience = "ADMINS"
)

// Notification is an admin announcement shown in the store app. Category
// optionally narrows it to buyers of one product category (e.g. a recall
// notice for "Snacks").
type Notification struct {
	BaseModel
	Title    string   `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Body     string   `gorm:"type:text" json:"body"`
	Audience Audience `gorm:"type:varchar(10);not null;default:'ALL'" json:"audience" validate:"required,oneof=ALL STUDENTS ADMINS"`
	Category *string  `gorm:"type:varchar(100)" json:"category,omitempty"`
}

// VisibleTo reports whether a user with the given role code should see
// this notification.
func (n *Notification) VisibleTo(roleCode string) bool {
	switch n.Audience {
	case AudienceAll:
		return true
	case AudienceStudents:
		return roleCode == RoleStudent
	case AudienceAdmins:
		return roleCode == RoleAdmin || roleCode == RoleMasterAdmin
	}
	return false
}
