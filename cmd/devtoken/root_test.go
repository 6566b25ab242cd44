package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/focuszen/internal/config"
	"github.com/magabrotheeeer/focuszen/internal/lib/jwt"
)

func testConfig(secret string) func() *config.Config {
	return func() *config.Config {
		return &config.Config{Auth: config.Auth{JWTSecretKey: secret, Issuer: "focuszen-local", Audience: "focuszen"}}
	}
}

func TestRootCmd_IssuesVerifiableToken(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(testConfig("dev-secret"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--sub", "google|7", "--email", "kim@example.com", "--name", "Kim"})

	require.NoError(t, cmd.Execute())

	id, err := jwt.NewHMACVerifier("dev-secret", "focuszen-local", "focuszen").Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "google|7", id.Subject)
	assert.Equal(t, "kim@example.com", id.Email)
	assert.Equal(t, "Kim", id.FirstName)
}

func TestRootCmd_RequiresSecret(t *testing.T) {
	cmd := newRootCmd(testConfig(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)

	assert.ErrorIs(t, cmd.Execute(), errNoSecret)
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd(testConfig("dev-secret"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	assert.Error(t, cmd.Execute())
}
