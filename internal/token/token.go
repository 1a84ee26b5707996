// Package token issues and validates the signed bearer tokens used by the
// API. Tokens are self-contained HS256 JWTs; validity is proven by signature
// and expiry alone, with no server-side record.
package token

import (
	"errors"
	"fmt"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/google/uuid"
)

// Kind distinguishes access tokens from refresh tokens inside the signed
// payload.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// ErrInvalidToken is returned for every decode failure: bad signature,
// structural corruption, expiry, or wrong kind. Callers cannot tell these
// apart, and no finer detail is ever surfaced.
var ErrInvalidToken = errors.New("invalid token")

// HS256 keys must be at least as long as the hash output; go-jose enforces
// this at sign/verify time, so a shorter secret is rejected up front.
const minSecretBytes = 32

type tokenClaims struct {
	Kind Kind `json:"type"`
}

// Issuer signs and verifies bearer tokens with a single symmetric key.
type Issuer struct {
	secret     []byte
	signer     jose.Signer
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer builds an Issuer from the shared signing secret and token
// lifetimes.
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) (*Issuer, error) {
	if len(secret) < minSecretBytes {
		return nil, fmt.Errorf("token secret must be at least %d bytes", minSecretBytes)
	}
	key := []byte(secret)
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, err
	}
	return &Issuer{
		secret:     key,
		signer:     signer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssueAccess mints a short-lived access token for subject.
func (i *Issuer) IssueAccess(subject string) (string, error) {
	return i.issue(subject, KindAccess, i.accessTTL)
}

// IssueRefresh mints a long-lived refresh token for subject.
func (i *Issuer) IssueRefresh(subject string) (string, error) {
	return i.issue(subject, KindRefresh, i.refreshTTL)
}

func (i *Issuer) issue(subject string, kind Kind, ttl time.Duration) (string, error) {
	now := time.Now()
	std := jwt.Claims{
		Subject:  subject,
		ID:       uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.Signed(i.signer).Claims(std).Claims(tokenClaims{Kind: kind}).Serialize()
}

// DecodeAccess verifies an access token and returns its subject. Any failure
// collapses to ErrInvalidToken.
func (i *Issuer) DecodeAccess(raw string) (string, error) {
	return i.decode(raw, KindAccess)
}

// RotateFromRefresh verifies a refresh token and mints a new access token for
// the same subject. The presented refresh token stays valid until its own
// expiry.
func (i *Issuer) RotateFromRefresh(raw string) (string, error) {
	subject, err := i.decode(raw, KindRefresh)
	if err != nil {
		return "", err
	}
	return i.IssueAccess(subject)
}

func (i *Issuer) decode(raw string, kind Kind) (string, error) {
	tok, err := jwt.ParseSigned(raw, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return "", ErrInvalidToken
	}

	var std jwt.Claims
	var custom tokenClaims
	if err := tok.Claims(i.secret, &std, &custom); err != nil {
		return "", ErrInvalidToken
	}
	if err := std.ValidateWithLeeway(jwt.Expected{Time: time.Now()}, 0); err != nil {
		return "", ErrInvalidToken
	}
	if custom.Kind != kind || std.Subject == "" {
		return "", ErrInvalidToken
	}

	return std.Subject, nil
}
