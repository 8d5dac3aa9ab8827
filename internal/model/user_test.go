package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPasswordHashing(t *testing.T) {
	u := User{Email: "s123@example.edu"}
	require.NoError(t, u.SetPassword("hunter2"))

	assert.NotEqual(t, "hunter2", u.Password)
	assert.True(t, u.CheckPassword("hunter2"))
	assert.False(t, u.CheckPassword("hunter3"))
}

func TestUserHasPrivilege(t *testing.T) {
	u := User{
		Privileges: []Privilege{
			{Code: "order:create"},
			{Code: "product:view"},
		},
	}

	assert.True(t, u.HasPrivilege("order:create"))
	assert.False(t, u.HasPrivilege("stock:save"))
	assert.ElementsMatch(t, []string{"order:create", "product:view"}, u.GetPrivilegeCodes())
}
