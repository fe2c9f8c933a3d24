package core

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTPurpose string
type VerifyTokenFunc func(claim *jwt.RegisteredClaims) error

var (
	nopVerifyFunc VerifyTokenFunc = func(claim *jwt.RegisteredClaims) error {
		return nil
	}

	ErrJWTUnexpectedClaimsType = errors.New("unexpected claims type")
	ErrJWTUnexpectedIssuer     = errors.New("unexpected issuer")
	ErrJWTUnexpectedPurpose    = errors.New("unexpected token purpose")
	ErrJWTInvalid              = errors.New("invalid JWT")
)

const (
	JWTPurposeAccess  JWTPurpose = "access"
	JWTPurposeRefresh JWTPurpose = "refresh"
	JWTPurposeNone    JWTPurpose = ""
)

const (
	AccessTokenDuration  = 24 * time.Hour
	RefreshTokenDuration = 30 * 24 * time.Hour
)

// TokenPair is the credential pair issued on login: a short-lived access
// token and a long-lived refresh token carrying a unique JTI so it can be
// individually revoked.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func JWTGenerateTokenPair(domain string, privateKey ed25519.PrivateKey, userID uint) (TokenPair, error) {
	access, err := JWTGenerateToken(domain, privateKey, userID, AccessTokenDuration, JWTPurposeAccess)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := JWTGenerateToken(domain, privateKey, userID, RefreshTokenDuration, JWTPurposeRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

func JWTGenerateToken(domain string, privateKey ed25519.PrivateKey, userID uint, duration time.Duration, purpose JWTPurpose) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    domain,
		Subject:   strconv.Itoa(int(userID)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Audience:  []string{string(purpose)},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)

	tokenString, err := token.SignedString(privateKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func JWTVerifyToken(token string, domain string, privateKey ed25519.PrivateKey, verifyFunc VerifyTokenFunc) (*jwt.RegisteredClaims, error) {
	validatedToken, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return privateKey.Public(), nil
	})

	if err != nil {
		return nil, err
	}

	if verifyFunc == nil {
		verifyFunc = nopVerifyFunc
	}

	claim, ok := validatedToken.Claims.(*jwt.RegisteredClaims)

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJWTUnexpectedClaimsType, validatedToken.Claims)
	}

	if domain != claim.Issuer {
		return nil, fmt.Errorf("%w: %s", ErrJWTUnexpectedIssuer, claim.Issuer)
	}

	err = verifyFunc(claim)

	return claim, err
}

// JWTVerifyPurpose wraps JWTVerifyToken with an audience check for the
// expected token purpose.
func JWTVerifyPurpose(token string, domain string, privateKey ed25519.PrivateKey, purpose JWTPurpose) (*jwt.RegisteredClaims, error) {
	return JWTVerifyToken(token, domain, privateKey, func(claim *jwt.RegisteredClaims) error {
		aud, _ := claim.GetAudience()

		if purpose != JWTPurposeNone && !JWTPurposeEqual(aud, purpose) {
			return ErrJWTUnexpectedPurpose
		}

		return nil
	})
}

func JWTPurposeEqual(aud jwt.ClaimStrings, purpose JWTPurpose) bool {
	for _, a := range aud {
		if a == string(purpose) {
			return true
		}
	}

	return false
}

// JWTUserID parses the subject claim as an account ID.
func JWTUserID(claim *jwt.RegisteredClaims) (uint, error) {
	id, err := strconv.ParseUint(claim.Subject, 10, 64)
	if err != nil {
		return 0, ErrJWTInvalid
	}

	return uint(id), nil
}
