package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuiltinNames(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"gwmme", "password-sync"}, BuiltinNames())
}

func TestBuiltinProfilesValidate(t *testing.T) {
	t.Parallel()

	for _, name := range BuiltinNames() {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			profile, err := Builtin(name)
			require.NoError(t, err)
			require.NotEmpty(t, profile.Scopes)
			require.Equal(t, "admin.googleapis.com", profile.PrimaryAPI())
		})
	}
}

func TestPasswordSyncProfile(t *testing.T) {
	t.Parallel()

	profile, err := Builtin("password-sync")
	require.NoError(t, err)

	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	require.Equal(t, "PasswordSync_create_service_account_v2", profile.UserAgent())
	require.Equal(t, "passwordsync-service-account-key-2024-03-09-14-05-07.json", profile.KeyFileName(now))
	require.Equal(t, "PasswordSync-20240309-140507", profile.ProjectName(now))
	require.Equal(t, "passwordsync-1709993107000", profile.ProjectID(now))
	require.Equal(t, "passwordsync-service-account", profile.ServiceAccountName())
	require.Equal(t, "PasswordSync Service Account", profile.ServiceAccountDisplayName())
	require.Empty(t, profile.RemainingAPIs())
	require.Equal(t, "PasswordSync_create_service_account.log", profile.LogFile)
}

func TestGWMMEProfile(t *testing.T) {
	t.Parallel()

	profile, err := Builtin("gwmme")
	require.NoError(t, err)

	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	require.Equal(t, "gwmme-service-account-key-2024-03-09-14-05-07.json", profile.KeyFileName(now))
	require.Equal(t, "create_service_account.log", profile.LogFile)
	require.Len(t, profile.Scopes, 7)
	require.Equal(t, []string{
		"calendar-json.googleapis.com",
		"contacts.googleapis.com",
		"gmail.googleapis.com",
		"groupsmigration.googleapis.com",
	}, profile.RemainingAPIs())

	probed := profile.ProbedAPIs()
	require.Len(t, probed, 4)
	require.Equal(t, "admin.googleapis.com", probed[0].API)
	require.Equal(t,
		"https://content-admin.googleapis.com/admin/directory/v1/users/admin@example.com?fields=isAdmin",
		probed[0].Probe.ProbeURL("admin@example.com"))
	require.Equal(t, "Calendar", probed[1].Probe.ServiceName)
	require.Empty(t, probed[2].Probe.ServiceName)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	profile, err := Load("", "")
	require.NoError(t, err)
	require.Equal(t, "PasswordSync", profile.Name)

	_, err = Load("nope", "")
	require.ErrorContains(t, err, "available: gwmme, password-sync")

	path := writeTempProfile(t, `name: Custom
friendly_name: Custom Tool
version: "1"
help_url: https://example.com/help
scopes:
  - https://www.googleapis.com/auth/drive
`)
	profile, err = Load("gwmme", path)
	require.NoError(t, err)
	require.Equal(t, "Custom", profile.Name)
	require.Empty(t, profile.PrimaryAPI())
}

func TestGetValidatorIsShared(t *testing.T) {
	t.Parallel()

	require.Same(t, GetValidator(), GetValidator())
	v := GetValidator()
	require.NoError(t, v.Var("https://www.google.com/m8/feeds", "scope_url"))
	require.Error(t, v.Var("http://www.google.com/m8/feeds", "scope_url"))
	require.Error(t, v.Var("https://a.com/x,https://b.com/y", "scope_url"))
	require.NoError(t, v.Var("calendar-json.googleapis.com", "api_name"))
	require.Error(t, v.Var("Calendar API", "api_name"))
}

func TestTimestampLayoutsPerName(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	tests := []struct {
		profile string
		project string
		keyFile string
	}{
		{"password-sync", "PasswordSync-20240309-140507", "passwordsync-service-account-key-2024-03-09-14-05-07.json"},
		{"gwmme", "GWMME-2024-03-09-14-05-07", "gwmme-service-account-key-2024-03-09-14-05-07.json"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.profile, func(t *testing.T) {
			t.Parallel()
			profile, err := Builtin(tt.profile)
			require.NoError(t, err)
			require.Equal(t, tt.project, profile.ProjectName(now))
			require.Equal(t, tt.keyFile, profile.KeyFileName(now))
		})
	}
}
