package service

import (
	"text/template"

	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/service/internal/mailer"
)

var welcomeSubject = template.Must(template.New("welcome_subject").Parse(
	`Welcome to {{.AppName}}!`))

var welcomeBody = template.Must(template.New("welcome_body").Parse(
	`Hi {{.Name}},

Welcome to {{.AppName}}! Your account has been created and you can sign in right away.

The {{.AppName}} Team`))

var passwordResetOTPSubject = template.Must(template.New("password_reset_otp_subject").Parse(
	`{{.AppName}} password reset code`))

var passwordResetOTPBody = template.Must(template.New("password_reset_otp_body").Parse(
	`Hi {{.Name}},

Your password reset code is {{.OTP}}. It is valid for {{.ValidityHuman}}.

If you did not request a password reset, you can ignore this email.`))

var passwordChangedSubject = template.Must(template.New("password_changed_subject").Parse(
	`Your {{.AppName}} password was changed`))

var passwordChangedBody = template.Must(template.New("password_changed_body").Parse(
	`Hi {{.Name}},

Your password was just changed. If this was not you, request a password reset immediately.`))

func registerDefaultTemplates(registry *mailer.TemplateRegistry) {
	registry.RegisterTemplate(core.MAILER_TPL_WELCOME,
		mailer.NewMailerTemplate(welcomeSubject, welcomeBody))
	registry.RegisterTemplate(core.MAILER_TPL_PASSWORD_RESET_OTP,
		mailer.NewMailerTemplate(passwordResetOTPSubject, passwordResetOTPBody))
	registry.RegisterTemplate(core.MAILER_TPL_PASSWORD_CHANGED,
		mailer.NewMailerTemplate(passwordChangedSubject, passwordChangedBody))
}
