package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/uplink-social/uplink/config"
	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db"
	"github.com/uplink-social/uplink/db/models"
	"github.com/uplink-social/uplink/event"

	emailverifier "github.com/AfterShip/email-verifier"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var _ core.UserService = (*UserServiceDefault)(nil)

// maxUsernameAttempts bounds the suffix retry loop in CreateAccount.
const maxUsernameAttempts = 10

func init() {
	core.RegisterService(core.ServiceInfo{
		ID: core.USER_SERVICE,
		Factory: func() (core.Service, []core.ContextBuilderOption, error) {
			return NewUserService()
		},
		Depends: []string{core.MAILER_SERVICE},
	})
}

type UserServiceDefault struct {
	ctx      core.Context
	config   config.Manager
	db       *gorm.DB
	mailer   core.MailerService
	logger   *core.Logger
	verifier *emailverifier.Verifier
	allocate func(base string) (string, error)
	suffix   func() string
}

func NewUserService() (*UserServiceDefault, []core.ContextBuilderOption, error) {
	user := &UserServiceDefault{}
	// Bound lazily so the receiver sees fields set during startup.
	user.allocate = func(base string) (string, error) {
		return user.allocateUsername(base)
	}
	user.suffix = func() string {
		return fmt.Sprintf("%d", rand.Intn(9000)+1000)
	}

	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			user.ctx = ctx
			user.config = ctx.Config()
			user.db = ctx.DB()
			user.logger = ctx.ServiceLogger(user)
			user.mailer = core.GetService[core.MailerService](ctx, core.MAILER_SERVICE)
			user.verifier = emailverifier.NewVerifier()
			return nil
		}),
	)

	return user, opts, nil
}

func (u UserServiceDefault) ID() string {
	return core.USER_SERVICE
}

func (u UserServiceDefault) Exists(model any, conditions map[string]any) (bool, any, error) {
	err := db.RetryOnLock(u.db, func(db *gorm.DB) *gorm.DB {
		return db.Model(model).Where(conditions).First(model)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, nil
		}

		return false, nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return true, model, nil
}

func (u UserServiceDefault) EmailExists(email string) (bool, *models.User, error) {
	user := &models.User{}
	exists, model, err := u.Exists(user, map[string]any{"email": strings.ToLower(email)})
	if !exists || err != nil {
		return false, nil, err
	}
	return true, model.(*models.User), nil
}

func (u UserServiceDefault) UsernameExists(username string) (bool, *models.User, error) {
	user := &models.User{}
	exists, model, err := u.Exists(user, map[string]any{"username": strings.ToLower(username)})
	if !exists || err != nil {
		return false, nil, err
	}
	return true, model.(*models.User), nil
}

func (u UserServiceDefault) PhoneExists(phone string) (bool, *models.User, error) {
	user := &models.User{}
	exists, model, err := u.Exists(user, map[string]any{"phone_number": phone})
	if !exists || err != nil {
		return false, nil, err
	}
	return true, model.(*models.User), nil
}

func (u UserServiceDefault) AccountExists(id uint) (bool, *models.User, error) {
	user := &models.User{}
	exists, model, err := u.Exists(user, map[string]any{"id": id})
	if !exists || err != nil {
		return false, nil, err
	}
	return true, model.(*models.User), nil
}

// ResolveIdentifier tries email, then phone number, then username. The
// match must be unique across the three namespaces; two different
// accounts matching the same identifier is an error, the same account
// matching twice is not.
func (u UserServiceDefault) ResolveIdentifier(identifier string) (*models.User, error) {
	var matches []*models.User

	exists, user, err := u.EmailExists(identifier)
	if err != nil {
		return nil, err
	}
	if exists {
		matches = append(matches, user)
	}

	exists, user, err = u.PhoneExists(identifier)
	if err != nil {
		return nil, err
	}
	if exists {
		matches = append(matches, user)
	}

	exists, user, err = u.UsernameExists(identifier)
	if err != nil {
		return nil, err
	}
	if exists {
		matches = append(matches, user)
	}

	if len(matches) == 0 {
		return nil, core.NewDomainError(core.ErrKeyUserNotFound, nil)
	}

	first := matches[0]
	for _, m := range matches[1:] {
		if m.ID != first.ID {
			return nil, core.NewDomainError(core.ErrKeyAmbiguousIdentifier, nil)
		}
	}

	return first, nil
}

func (u UserServiceDefault) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", core.NewDomainError(core.ErrKeyHashingFailed, err)
	}
	return string(bytes), nil
}

func (u UserServiceDefault) validateRegistration(params core.RegisterParams) error {
	var missing []string

	if params.Name == "" {
		missing = append(missing, "name")
	}
	if params.Email == "" {
		missing = append(missing, "email")
	}
	if params.Password == "" {
		missing = append(missing, "password")
	}
	if params.ConfirmPassword == "" {
		missing = append(missing, "confirm_password")
	}

	if len(missing) > 0 {
		return core.NewDomainError(core.ErrKeyValidationFailed, nil,
			fmt.Sprintf("Missing required fields: %s.", strings.Join(missing, ", ")))
	}

	// Syntax check only; no network lookups on the registration path.
	if syntax := u.verifier.ParseAddress(params.Email); !syntax.Valid {
		return core.NewDomainError(core.ErrKeyValidationFailed, nil, "The email address is invalid.")
	}

	if params.Password != params.ConfirmPassword {
		return core.NewDomainError(core.ErrKeyPasswordMismatch, nil)
	}

	if violated := core.ValidatePassword(params.Password); len(violated) > 0 {
		return core.NewWeakPasswordError(violated)
	}

	return nil
}

// allocateUsername returns a free username derived from base, appending
// a random 4-digit suffix on conflict. The caller still races with
// concurrent registrations; the unique index is the final arbiter.
func (u UserServiceDefault) allocateUsername(base string) (string, error) {
	if base == "" {
		base = "user"
	}

	candidate := base

	for i := 0; i < maxUsernameAttempts; i++ {
		exists, _, err := u.UsernameExists(candidate)
		if err != nil {
			return "", err
		}

		if !exists {
			return candidate, nil
		}

		candidate = fmt.Sprintf("%s-%s", base, u.suffix())
	}

	return "", core.NewDomainError(core.ErrKeyAllocationExhausted, nil)
}

func (u UserServiceDefault) CreateAccount(params core.RegisterParams) (*models.User, error) {
	if err := u.validateRegistration(params); err != nil {
		return nil, err
	}

	if exists, _, err := u.EmailExists(params.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, core.NewDomainError(core.ErrKeyDuplicateEmail, nil)
	}

	if params.PhoneNumber != "" {
		if exists, _, err := u.PhoneExists(params.PhoneNumber); err != nil {
			return nil, err
		} else if exists {
			return nil, core.NewDomainError(core.ErrKeyDuplicatePhone, nil)
		}
	}

	base := strings.ToLower(params.Username)
	if base == "" {
		base = core.Slugify(params.Name)
	}

	passwordHash, err := u.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         params.Name,
		Email:        strings.ToLower(params.Email),
		PasswordHash: passwordHash,
		Image:        params.Image,
		IsActive:     true,
	}

	if params.PhoneNumber != "" {
		phone := params.PhoneNumber
		user.PhoneNumber = &phone
	}

	// The allocator and the insert race with concurrent registrations.
	// A duplicate-key failure on a constraint we already pre-checked
	// means the other side won; only a username collision is retried
	// with a fresh allocation.
	created := false

	for i := 0; i < maxUsernameAttempts && !created; i++ {
		username, err := u.allocate(base)
		if err != nil {
			return nil, err
		}
		user.Username = &username

		err = db.RetryOnLock(u.db, func(db *gorm.DB) *gorm.DB {
			return db.Create(&user)
		})
		if err == nil {
			created = true
			continue
		}

		if !db.IsDuplicateKeyError(err) {
			return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
		}

		if exists, _, err := u.EmailExists(params.Email); err != nil {
			return nil, err
		} else if exists {
			return nil, core.NewDomainError(core.ErrKeyDuplicateEmail, nil)
		}

		if params.PhoneNumber != "" {
			if exists, _, err := u.PhoneExists(params.PhoneNumber); err != nil {
				return nil, err
			} else if exists {
				return nil, core.NewDomainError(core.ErrKeyDuplicatePhone, nil)
			}
		}
	}

	if !created {
		return nil, core.NewDomainError(core.ErrKeyAllocationExhausted, nil)
	}

	if err = event.FireUserCreatedEvent(u.ctx, &user); err != nil {
		u.logger.Error("failed to fire user created event", zap.Error(err))
	}

	if err = u.mailer.TemplateSend(core.MAILER_TPL_WELCOME,
		core.MailerTemplateData{"AppName": u.config.Config().Core.AppName},
		core.MailerTemplateData{"Name": user.Name, "AppName": u.config.Config().Core.AppName},
		user.Email,
	); err != nil {
		// Registration already succeeded; a lost welcome mail is not fatal.
		u.logger.Error("failed to send welcome email", zap.Error(err))
	}

	return &user, nil
}

func (u UserServiceDefault) UpdateAccountInfo(userId uint, info map[string]any) error {
	var user models.User
	user.ID = userId

	if err := db.RetryOnLock(u.db, func(db *gorm.DB) *gorm.DB {
		return db.Model(&user).Updates(info)
	}); err != nil {
		return core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return nil
}

func (u UserServiceDefault) UpdateProfile(userId uint, update core.ProfileUpdate) (*models.User, error) {
	exists, user, err := u.AccountExists(userId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, core.NewDomainError(core.ErrKeyUserNotFound, nil)
	}

	info := make(map[string]any)

	if update.Name != nil {
		info["name"] = *update.Name
	}

	if update.Username != nil {
		username := strings.ToLower(*update.Username)
		if taken, other, err := u.UsernameExists(username); err != nil {
			return nil, err
		} else if taken && other.ID != userId {
			return nil, core.NewDomainError(core.ErrKeyDuplicateUsername, nil)
		}
		info["username"] = username
	}

	if update.PhoneNumber != nil {
		if taken, other, err := u.PhoneExists(*update.PhoneNumber); err != nil {
			return nil, err
		} else if taken && other.ID != userId {
			return nil, core.NewDomainError(core.ErrKeyDuplicatePhone, nil)
		}
		info["phone_number"] = *update.PhoneNumber
	}

	if update.Image != nil {
		info["image"] = *update.Image
	}

	if len(info) == 0 {
		return user, nil
	}

	if err = u.UpdateAccountInfo(userId, info); err != nil {
		return nil, err
	}

	_, user, err = u.AccountExists(userId)
	if err != nil {
		return nil, err
	}

	return user, nil
}
