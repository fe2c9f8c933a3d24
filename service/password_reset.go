package service

import (
	"crypto/subtle"
	"time"

	"github.com/uplink-social/uplink/config"
	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/event"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ core.PasswordResetService = (*PasswordResetServiceDefault)(nil)

func init() {
	core.RegisterService(core.ServiceInfo{
		ID: core.PASSWORD_RESET_SERVICE,
		Factory: func() (core.Service, []core.ContextBuilderOption, error) {
			return NewPasswordResetService()
		},
		Depends: []string{core.USER_SERVICE, core.MAILER_SERVICE},
	})
}

type PasswordResetServiceDefault struct {
	ctx    core.Context
	config config.Manager
	db     *gorm.DB
	user   core.UserService
	mailer core.MailerService
	logger *core.Logger
}

func NewPasswordResetService() (*PasswordResetServiceDefault, []core.ContextBuilderOption, error) {
	reset := &PasswordResetServiceDefault{}

	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			reset.ctx = ctx
			reset.config = ctx.Config()
			reset.db = ctx.DB()
			reset.logger = ctx.ServiceLogger(reset)
			reset.user = core.GetService[core.UserService](ctx, core.USER_SERVICE)
			reset.mailer = core.GetService[core.MailerService](ctx, core.MAILER_SERVICE)
			return nil
		}),
	)

	return reset, opts, nil
}

func (p PasswordResetServiceDefault) ID() string {
	return core.PASSWORD_RESET_SERVICE
}

// SendPasswordReset issues a fresh code, overwriting any prior one. Each
// request restarts the validity window.
func (p PasswordResetServiceDefault) SendPasswordReset(email string) error {
	exists, user, err := p.user.EmailExists(email)
	if err != nil {
		return err
	}

	if !exists {
		return core.NewDomainError(core.ErrKeyUserNotFound, nil)
	}

	otp := core.GenerateResetOTP()
	now := time.Now()

	if err = p.user.UpdateAccountInfo(user.ID, map[string]any{
		"reset_otp":      otp,
		"otp_created_at": &now,
	}); err != nil {
		return err
	}

	if err = event.FirePasswordResetRequestedEvent(p.ctx, user); err != nil {
		p.logger.Error("failed to fire password reset requested event", zap.Error(err))
	}

	return p.mailer.TemplateSend(core.MAILER_TPL_PASSWORD_RESET_OTP,
		core.MailerTemplateData{"AppName": p.config.Config().Core.AppName},
		core.MailerTemplateData{
			"Name":          user.Name,
			"OTP":           otp,
			"ValidityHuman": "10 minutes",
		},
		user.Email,
	)
}

// ResetPassword validates the code before touching the password; no
// mutation happens on any failure path. A consumed code is cleared so it
// cannot be replayed.
func (p PasswordResetServiceDefault) ResetPassword(email string, otp string, password string, confirmPassword string) error {
	exists, user, err := p.user.EmailExists(email)
	if err != nil {
		return err
	}

	if !exists {
		return core.NewDomainError(core.ErrKeyUserNotFound, nil)
	}

	if user.ResetOTP == "" || user.OTPCreatedAt == nil {
		return core.NewDomainError(core.ErrKeyOTPNotIssued, nil)
	}

	if time.Since(*user.OTPCreatedAt) > core.ResetOTPValidity {
		return core.NewDomainError(core.ErrKeyOTPExpired, nil)
	}

	if subtle.ConstantTimeCompare([]byte(user.ResetOTP), []byte(otp)) != 1 {
		return core.NewDomainError(core.ErrKeyInvalidOTP, nil)
	}

	if password != confirmPassword {
		return core.NewDomainError(core.ErrKeyPasswordMismatch, nil)
	}

	if violated := core.ValidatePassword(password); len(violated) > 0 {
		return core.NewWeakPasswordError(violated)
	}

	passwordHash, err := p.user.HashPassword(password)
	if err != nil {
		return err
	}

	if err = p.user.UpdateAccountInfo(user.ID, map[string]any{
		"password_hash":  passwordHash,
		"reset_otp":      "",
		"otp_created_at": nil,
	}); err != nil {
		return err
	}

	if err = event.FirePasswordResetCompletedEvent(p.ctx, user); err != nil {
		p.logger.Error("failed to fire password reset completed event", zap.Error(err))
	}

	if err = p.mailer.TemplateSend(core.MAILER_TPL_PASSWORD_CHANGED,
		core.MailerTemplateData{"AppName": p.config.Config().Core.AppName},
		core.MailerTemplateData{"Name": user.Name},
		user.Email,
	); err != nil {
		p.logger.Error("failed to send password changed email", zap.Error(err))
	}

	return nil
}
