package event

import (
	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db/models"
)

const (
	EVENT_PASSWORD_RESET_REQUESTED = "password.reset.requested"
	EVENT_PASSWORD_RESET_COMPLETED = "password.reset.completed"
)

func init() {
	core.RegisterEvent(EVENT_PASSWORD_RESET_REQUESTED, &PasswordResetRequestedEvent{})
	core.RegisterEvent(EVENT_PASSWORD_RESET_COMPLETED, &PasswordResetCompletedEvent{})
}

type PasswordResetRequestedEvent struct {
	core.Event
}

func (e *PasswordResetRequestedEvent) SetUser(user *models.User) {
	e.Set("user", user)
}

func (e PasswordResetRequestedEvent) User() *models.User {
	return e.Get("user").(*models.User)
}

type PasswordResetCompletedEvent struct {
	core.Event
}

func (e *PasswordResetCompletedEvent) SetUser(user *models.User) {
	e.Set("user", user)
}

func (e PasswordResetCompletedEvent) User() *models.User {
	return e.Get("user").(*models.User)
}

func FirePasswordResetRequestedEvent(ctx core.Context, user *models.User) error {
	return Fire[*PasswordResetRequestedEvent](ctx, EVENT_PASSWORD_RESET_REQUESTED, func(evt *PasswordResetRequestedEvent) error {
		evt.SetUser(user)
		return nil
	})
}

func FirePasswordResetCompletedEvent(ctx core.Context, user *models.User) error {
	return Fire[*PasswordResetCompletedEvent](ctx, EVENT_PASSWORD_RESET_COMPLETED, func(evt *PasswordResetCompletedEvent) error {
		evt.SetUser(user)
		return nil
	})
}
