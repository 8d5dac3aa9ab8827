package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Product"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Product catalog
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:archive", Name: "Archive Product"},
	// Stock reconciliation
	{Code: "stock:view", Name: "View Stock Sheet"},
	{Code: "stock:save", Name: "Save Stock Sheet"},
	// Orders
	{Code: "order:create", Name: "Place Order"},
	{Code: "order:view", Name: "View Own Orders"},
	{Code: "order:view_all", Name: "View All Orders"},
	{Code: "order:confirm", Name: "Confirm Order Payment"},
	{Code: "order:cancel", Name: "Cancel Order"},
	// Notifications
	{Code: "notification:view", Name: "View Notifications"},
	{Code: "notification:create", Name: "Create Notification"},
	// Dashboard & gamification
	{Code: "dashboard:view", Name: "View Dashboard"},
	{Code: "leaderboard:view", Name: "View Leaderboard"},
}

// StudentPrivilegeCodes are granted to the STUDENT role at seed time.
var StudentPrivilegeCodes = []string{
	"product:view",
	"order:create",
	"order:view",
	"notification:view",
	"leaderboard:view",
}
