package service

import (
	"time"

	"github.com/uplink-social/uplink/config"
	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db"
	"github.com/uplink-social/uplink/db/models"
	"github.com/uplink-social/uplink/event"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var _ core.AuthService = (*AuthServiceDefault)(nil)

func init() {
	core.RegisterService(core.ServiceInfo{
		ID: core.AUTH_SERVICE,
		Factory: func() (core.Service, []core.ContextBuilderOption, error) {
			return NewAuthService()
		},
		Depends: []string{core.USER_SERVICE},
	})
}

type AuthServiceDefault struct {
	ctx    core.Context
	config config.Manager
	db     *gorm.DB
	user   core.UserService
	logger *core.Logger
}

func NewAuthService() (*AuthServiceDefault, []core.ContextBuilderOption, error) {
	auth := &AuthServiceDefault{}

	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			auth.ctx = ctx
			auth.config = ctx.Config()
			auth.db = ctx.DB()
			auth.logger = ctx.ServiceLogger(auth)
			auth.user = core.GetService[core.UserService](ctx, core.USER_SERVICE)
			return nil
		}),
	)

	return auth, opts, nil
}

func (a AuthServiceDefault) ID() string {
	return core.AUTH_SERVICE
}

func (a AuthServiceDefault) ValidLoginByUserObj(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// LoginIdentifier collapses every failure mode into InvalidCredentials so
// callers cannot probe which accounts exist.
func (a AuthServiceDefault) LoginIdentifier(identifier string, password string) (core.TokenPair, *models.User, error) {
	user, err := a.user.ResolveIdentifier(identifier)
	if err != nil {
		if core.IsErrorKey(err, core.ErrKeyAmbiguousIdentifier) {
			return core.TokenPair{}, nil, err
		}

		return core.TokenPair{}, nil, core.NewDomainError(core.ErrKeyInvalidCredentials, nil)
	}

	if !user.IsActive || !a.ValidLoginByUserObj(user, password) {
		return core.TokenPair{}, nil, core.NewDomainError(core.ErrKeyInvalidCredentials, nil)
	}

	pair, err := core.JWTGenerateTokenPair(a.config.Config().Core.Domain, a.config.Config().Core.Identity.PrivateKey(), user.ID)
	if err != nil {
		return core.TokenPair{}, nil, core.NewDomainError(core.ErrKeyTokenGenerationFailed, err)
	}

	now := time.Now()
	if err = a.user.UpdateAccountInfo(user.ID, map[string]any{"last_login": &now}); err != nil {
		a.logger.Error("failed to record login time", zap.Error(err))
	}

	if err = event.FireUserLoginEvent(a.ctx, user); err != nil {
		a.logger.Error("failed to fire user login event", zap.Error(err))
	}

	return pair, user, nil
}

func (a AuthServiceDefault) verifyRefreshToken(refreshToken string) (*jwt.RegisteredClaims, error) {
	claims, err := core.JWTVerifyPurpose(refreshToken,
		a.config.Config().Core.Domain,
		a.config.Config().Core.Identity.PrivateKey(),
		core.JWTPurposeRefresh,
	)
	if err != nil {
		return nil, core.NewDomainError(core.ErrKeyInvalidToken, err)
	}

	if claims.ID == "" {
		return nil, core.NewDomainError(core.ErrKeyInvalidToken, nil)
	}

	return claims, nil
}

func (a AuthServiceDefault) isRevoked(jti string) (bool, error) {
	var count int64

	if err := db.RetryOnLock(a.db, func(db *gorm.DB) *gorm.DB {
		return db.Model(&models.TokenBlacklist{}).Where(&models.TokenBlacklist{JTI: jti}).Count(&count)
	}); err != nil {
		return false, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return count > 0, nil
}

// Logout revokes the refresh token by blacklisting its JTI. Revoking an
// already revoked token fails the same way a malformed one does.
func (a AuthServiceDefault) Logout(refreshToken string) error {
	claims, err := a.verifyRefreshToken(refreshToken)
	if err != nil {
		return err
	}

	userID, err := core.JWTUserID(claims)
	if err != nil {
		return core.NewDomainError(core.ErrKeyInvalidToken, err)
	}

	entry := models.TokenBlacklist{
		JTI:       claims.ID,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	if err = db.RetryOnLock(a.db, func(db *gorm.DB) *gorm.DB {
		return db.Create(&entry)
	}); err != nil {
		if db.IsDuplicateKeyError(err) {
			return core.NewDomainError(core.ErrKeyInvalidToken, nil)
		}

		return core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return nil
}

// Refresh exchanges a live refresh token for a fresh access token. The
// refresh token itself is left untouched.
func (a AuthServiceDefault) Refresh(refreshToken string) (string, error) {
	claims, err := a.verifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	revoked, err := a.isRevoked(claims.ID)
	if err != nil {
		return "", err
	}

	if revoked {
		return "", core.NewDomainError(core.ErrKeyInvalidToken, nil)
	}

	userID, err := core.JWTUserID(claims)
	if err != nil {
		return "", core.NewDomainError(core.ErrKeyInvalidToken, err)
	}

	exists, user, err := a.user.AccountExists(userID)
	if err != nil {
		return "", err
	}

	if !exists || !user.IsActive {
		return "", core.NewDomainError(core.ErrKeyInvalidToken, nil)
	}

	access, err := core.JWTGenerateToken(a.config.Config().Core.Domain,
		a.config.Config().Core.Identity.PrivateKey(),
		user.ID, core.AccessTokenDuration, core.JWTPurposeAccess)
	if err != nil {
		return "", core.NewDomainError(core.ErrKeyTokenGenerationFailed, err)
	}

	return access, nil
}
