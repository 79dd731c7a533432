package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSignerRoundTrip(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)

	token, expiresAt, err := signer.Sign("attendance-report-2026-08.csv")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	name, _, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "attendance-report-2026-08.csv", name)
}

func TestTokenSignerRejectsTamperedToken(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)

	token, _, err := signer.Sign("report.pdf")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	parts[2] = strings.Repeat("0", len(parts[2]))
	_, _, err = signer.Verify(strings.Join(parts, "."))
	assert.Error(t, err)
}

func TestTokenSignerRejectsExpiredToken(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)
	signer.ttl = -time.Minute

	token, _, err := signer.Sign("report.csv")
	require.NoError(t, err)

	_, _, err = signer.Verify(token)
	assert.ErrorContains(t, err, "expired")
}

func TestTokenSignerRequiresSecret(t *testing.T) {
	signer := NewTokenSigner("", time.Hour)

	_, _, err := signer.Sign("report.csv")
	assert.Error(t, err)
}
