package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueVerify(t *testing.T) {
	svc := &Service{Secret: []byte("test-secret")}

	raw, err := svc.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	subject, err := svc.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "alice", subject)
}

func TestVerifyExpired(t *testing.T) {
	svc := &Service{Secret: []byte("test-secret"), TTL: -time.Minute}

	raw, err := svc.Issue("alice")
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	require.ErrorIs(t, err, ErrExpired)
	require.NotErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := &Service{Secret: []byte("issuer-secret")}
	verifier := &Service{Secret: []byte("other-secret")}

	raw, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	svc := &Service{Secret: []byte("test-secret")}

	_, err := svc.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
