package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationVisibility(t *testing.T) {
	all := Notification{Title: "Store closed Friday", Audience: AudienceAll}
	students := Notification{Title: "New snacks in stock", Audience: AudienceStudents}
	admins := Notification{Title: "Stock sheet due", Audience: AudienceAdmins}

	assert.True(t, all.VisibleTo(RoleStudent))
	assert.True(t, all.VisibleTo(RoleAdmin))
	assert.True(t, all.VisibleTo(RoleMasterAdmin))

	assert.True(t, students.VisibleTo(RoleStudent))
	assert.False(t, students.VisibleTo(RoleAdmin))

	assert.False(t, admins.VisibleTo(RoleStudent))
	assert.True(t, admins.VisibleTo(RoleAdmin))
	assert.True(t, admins.VisibleTo(RoleMasterAdmin))
}

func TestNotificationUnknownAudienceHidden(t *testing.T) {
	n := Notification{Title: "x", Audience: Audience("EVERYONE")}
	assert.False(t, n.VisibleTo(RoleStudent))
	assert.False(t, n.VisibleTo(RoleMasterAdmin))
}
