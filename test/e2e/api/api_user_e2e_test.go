package api_test

import (
	"testing"

	"github.com/LauchlanT/brickshowcase/pkg/apisdk"
	"github.com/stretchr/testify/require"
)

// TestAccountLifecycle walks one account from registration to deletion.
func TestAccountLifecycle(t *testing.T) {
	client, mail := setupServer(t)
	ctx := t.Context()

	msg, err := client.Register(ctx, "builder", "builder@example.com", "hunter2", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "Registration successful, verification email sent to builder@example.com", msg)

	// Logging in before activation is refused
	_, err = client.Login(ctx, "builder@example.com", "hunter2")
	var apiErr *apisdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "This account is not currently activated", apiErr.Message)

	msg, err = client.VerifyRegistration(ctx, mail.lastCode(t))
	require.NoError(t, err)
	require.Equal(t, "Account verified successfully, you can now log in!", msg)

	session, err := client.Login(ctx, "builder@example.com", "hunter2")
	require.NoError(t, err)

	// Wrong password blocks deletion, right one anonymizes the account
	_, err = session.DeleteAccount(ctx, "wrong")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "The password is not correct", apiErr.Message)

	msg, err = session.DeleteAccount(ctx, "hunter2")
	require.NoError(t, err)
	require.Equal(t, "Account successfully deleted", msg)

	// The credentials are dead and the address is free again
	_, err = client.Login(ctx, "builder@example.com", "hunter2")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "This user could not be found", apiErr.Message)

	_, err = client.Register(ctx, "builder", "builder@example.com", "hunter2", "hunter2")
	require.NoError(t, err)

	// The reborn account can itself be deleted
	_, err = client.VerifyRegistration(ctx, mail.lastCode(t))
	require.NoError(t, err)
	session, err = client.Login(ctx, "builder@example.com", "hunter2")
	require.NoError(t, err)

	msg, err = session.DeleteAccount(ctx, "hunter2")
	require.NoError(t, err)
	require.Equal(t, "Account successfully deleted", msg)
}

// TestPasswordReset covers the emailed reset flow end to end.
func TestPasswordReset(t *testing.T) {
	client, mail := setupServer(t)
	ctx := t.Context()

	session := registerAndLogin(t, client, mail, "builder", "builder@example.com", "old-password")
	require.NoError(t, session.Logout(ctx))

	_, err := client.RequestPasswordReset(ctx, "builder@example.com")
	require.NoError(t, err)

	_, err = client.VerifyPasswordReset(ctx, mail.lastCode(t), "new-password", "new-password")
	require.NoError(t, err)

	_, err = client.Login(ctx, "builder@example.com", "old-password")
	var apiErr *apisdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Incorrect password", apiErr.Message)

	_, err = client.Login(ctx, "builder@example.com", "new-password")
	require.NoError(t, err)
}

// TestChangeEmail covers the two-phase email change.
func TestChangeEmail(t *testing.T) {
	client, mail := setupServer(t)
	ctx := t.Context()

	session := registerAndLogin(t, client, mail, "builder", "builder@example.com", "hunter2")

	_, err := session.ChangeEmail(ctx, "hunter2", "fresh@example.com")
	require.NoError(t, err)

	msg, err := client.VerifyChangeEmail(ctx, mail.lastCode(t), "hunter2")
	require.NoError(t, err)
	require.Equal(t, "Email updated successfully!", msg)

	require.NoError(t, session.Logout(ctx))
	_, err = client.Login(ctx, "fresh@example.com", "hunter2")
	require.NoError(t, err)
}

// TestProfilesAndSearch exercises getUser and searchUsers through the SDK.
func TestProfilesAndSearch(t *testing.T) {
	client, mail := setupServer(t)
	ctx := t.Context()

	registerAndLogin(t, client, mail, "alpha", "alpha@example.com", "hunter2")
	registerAndLogin(t, client, mail, "beta", "beta@example.com", "hunter2")

	profiles, err := client.SearchUsers(ctx, "name", "all", "asc", "", 0)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.Equal(t, "alpha", profiles[0].Username)
	require.Equal(t, "beta", profiles[1].Username)

	profile, note, err := client.GetUser(ctx, profiles[0].UserID)
	require.NoError(t, err)
	require.Empty(t, note)
	require.Equal(t, "alpha", profile.Username)
	require.Equal(t, "default.jpg", profile.Icon)

	_, _, err = client.GetUser(ctx, "no-such-user")
	var apiErr *apisdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "This user could not be found", apiErr.Message)
}
