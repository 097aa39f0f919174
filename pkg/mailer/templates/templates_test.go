package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AccountCreated(t *testing.T) {
	d := NewEmailData(Branding{AppName: "user-admin", SupportURL: "https://help.example.com"},
		AccountCreated, "Jane Doe", "jane@x.io",
		WithRoles([]string{"Admin", "Viewer"}),
		WithActive(true),
		WithTime(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)),
	)

	subject, text, html, err := Render(AccountCreated, d)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to user-admin", subject)
	assert.Contains(t, text, "Hi Jane Doe")
	assert.Contains(t, text, "by an administrator on 01 March 2024, 09:30")
	assert.Contains(t, text, "Assigned roles: Admin, Viewer")
	assert.NotContains(t, text, "not active")
	assert.Contains(t, html, "<li>Admin</li>")
	assert.Contains(t, html, `href="https://help.example.com"`)
}

func TestRender_AccountUpdatedEscapesHTML(t *testing.T) {
	d := NewEmailData(Branding{CompanyName: "Acme"}, AccountUpdated, "<b>Eve</b>", "eve@x.io", WithActor("ops"))

	subject, text, html, err := Render(AccountUpdated, d)
	require.NoError(t, err)
	assert.Equal(t, "Your Acme account was updated", subject)
	assert.Contains(t, text, "Status: inactive")
	assert.Contains(t, text, "Roles: none")
	assert.Contains(t, text, "updated by ops")
	assert.NotContains(t, html, "<b>Eve</b>")
	assert.Contains(t, html, "&lt;b&gt;Eve&lt;/b&gt;")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", EmailData{})
	assert.Error(t, err)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "x", defaultFn("x", "  "))
	assert.Equal(t, "x", defaultFn("x", nil))
	assert.Equal(t, "x", defaultFn("x", 0))
	assert.Equal(t, 3, defaultFn("x", 3))
	assert.Equal(t, "v", defaultFn("x", "v"))
}
