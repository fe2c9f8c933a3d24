package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/uplink-social/uplink/config"
	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db"

	"github.com/stretchr/testify/require"
)

const testIdentitySeed = "8d9f1a0b3c4d5e6f8d9f1a0b3c4d5e6f8d9f1a0b3c4d5e6f8d9f1a0b3c4d5e6f"

type sentMail struct {
	Template    string
	SubjectVars core.MailerTemplateData
	BodyVars    core.MailerTemplateData
	To          string
}

// stubMailer records outgoing mail instead of dialing an SMTP server.
type stubMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (s *stubMailer) TemplateSend(template string, subjectVars core.MailerTemplateData, bodyVars core.MailerTemplateData, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, sentMail{
		Template:    template,
		SubjectVars: subjectVars,
		BodyVars:    bodyVars,
		To:          to,
	})

	return nil
}

func (s *stubMailer) TemplateRegister(string, core.MailerTemplate) error {
	return nil
}

func (s *stubMailer) Sent() []sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]sentMail, len(s.sent))
	copy(out, s.sent)

	return out
}

func (s *stubMailer) LastTo(to string) *sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.sent) - 1; i >= 0; i-- {
		if s.sent[i].To == to {
			return &s.sent[i]
		}
	}

	return nil
}

type testEnv struct {
	ctx    core.Context
	mailer *stubMailer
	user   *UserServiceDefault
	auth   *AuthServiceDefault
	reset  *PasswordResetServiceDefault
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Core: config.CoreConfig{
			Domain:   "uplink.test",
			AppName:  "UpLink",
			Port:     8080,
			Identity: *config.NewIdentityFromSeed(testIdentitySeed),
			DB: config.DatabaseConfig{
				Type: "sqlite",
				File: filepath.Join(t.TempDir(), "uplink.db"),
			},
			Mail: config.MailConfig{
				Host: "localhost",
				From: "noreply@uplink.test",
			},
			Log: config.LogConfig{Level: "error"},
		},
	}

	cm := config.NewManagerFromConfig(cfg)
	require.NoError(t, cm.Init())

	logger := core.NewLogger(cm)

	dbInst, err := db.NewDatabase(cm, logger.Logger)
	require.NoError(t, err)

	mailSvc := &stubMailer{}

	userSvc, userOpts, err := NewUserService()
	require.NoError(t, err)

	authSvc, authOpts, err := NewAuthService()
	require.NoError(t, err)

	resetSvc, resetOpts, err := NewPasswordResetService()
	require.NoError(t, err)

	categorySvc, categoryOpts, err := NewCategoryService()
	require.NoError(t, err)

	postSvc, postOpts, err := NewPostService()
	require.NoError(t, err)

	socialSvc, socialOpts, err := NewSocialService()
	require.NoError(t, err)

	messageSvc, messageOpts, err := NewMessageService()
	require.NoError(t, err)

	opts := core.ContextOptions(
		core.ContextWithDB(dbInst),
		core.ContextWithService(core.MAILER_SERVICE, mailSvc),
		core.ContextWithService(core.USER_SERVICE, userSvc),
		core.ContextWithService(core.AUTH_SERVICE, authSvc),
		core.ContextWithService(core.PASSWORD_RESET_SERVICE, resetSvc),
		core.ContextWithService(core.CATEGORY_SERVICE, categorySvc),
		core.ContextWithService(core.POST_SERVICE, postSvc),
		core.ContextWithService(core.SOCIAL_SERVICE, socialSvc),
		core.ContextWithService(core.MESSAGE_SERVICE, messageSvc),
		core.ContextWithEvents(core.GetEvents()...),
	)

	opts = append(opts, userOpts...)
	opts = append(opts, authOpts...)
	opts = append(opts, resetOpts...)
	opts = append(opts, categoryOpts...)
	opts = append(opts, postOpts...)
	opts = append(opts, socialOpts...)
	opts = append(opts, messageOpts...)

	ctx, err := core.NewContext(cm, logger, opts...)
	require.NoError(t, err)

	for _, startup := range ctx.StartupFuncs() {
		require.NoError(t, startup(ctx))
	}

	return &testEnv{
		ctx:    ctx,
		mailer: mailSvc,
		user:   userSvc,
		auth:   authSvc,
		reset:  resetSvc,
	}
}

func (e *testEnv) category() *CategoryServiceDefault {
	return core.GetService[*CategoryServiceDefault](e.ctx, core.CATEGORY_SERVICE)
}

func (e *testEnv) post() *PostServiceDefault {
	return core.GetService[*PostServiceDefault](e.ctx, core.POST_SERVICE)
}

func (e *testEnv) social() *SocialServiceDefault {
	return core.GetService[*SocialServiceDefault](e.ctx, core.SOCIAL_SERVICE)
}

func (e *testEnv) message() *MessageServiceDefault {
	return core.GetService[*MessageServiceDefault](e.ctx, core.MESSAGE_SERVICE)
}

var testUserCounter int

// registerTestUser creates an account with a unique email.
func registerTestUser(t *testing.T, env *testEnv, name string) uint {
	t.Helper()

	testUserCounter++
	email := fmt.Sprintf("%s%d@uplink.test", strings.ReplaceAll(strings.ToLower(name), " ", "."), testUserCounter)

	user, err := env.user.CreateAccount(core.RegisterParams{
		Name:            name,
		Email:           email,
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	})
	require.NoError(t, err)

	return user.ID
}
