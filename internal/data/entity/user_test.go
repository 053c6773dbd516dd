package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole("user")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, r)

	_, err = ParseRole("superuser")
	assert.Error(t, err)

	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestRoleScan(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan("admin"))
	assert.Equal(t, RoleAdmin, r)

	require.NoError(t, r.Scan([]byte("user")))
	assert.Equal(t, RoleUser, r)

	assert.Error(t, r.Scan("root"))
	assert.Error(t, r.Scan(42))
}

func TestRoleValue(t *testing.T) {
	v, err := RoleAdmin.Value()
	require.NoError(t, err)
	assert.Equal(t, "admin", v)

	_, err = Role("guest").Value()
	assert.Error(t, err)
}

func TestRoleJSON(t *testing.T) {
	var body struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"admin"}`), &body))
	assert.Equal(t, RoleAdmin, body.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"owner"}`), &body))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "foo@x.com", NormalizeEmail("Foo@X.com"))
	assert.Equal(t, "foo@x.com", NormalizeEmail("  foo@x.com "))
	assert.Equal(t, NormalizeEmail("Foo@X.com"), NormalizeEmail("foo@x.com"))
}

func TestUserUpdateIsEmpty(t *testing.T) {
	assert.True(t, UserUpdate{}.IsEmpty())

	name := "Ada"
	assert.False(t, UserUpdate{FirstName: &name}.IsEmpty())
}
