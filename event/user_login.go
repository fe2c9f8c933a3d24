package event

import (
	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db/models"
)

const (
	EVENT_USER_LOGIN = "user.login"
)

func init() {
	core.RegisterEvent(EVENT_USER_LOGIN, &UserLoginEvent{})
}

type UserLoginEvent struct {
	core.Event
}

func (e *UserLoginEvent) SetUser(user *models.User) {
	e.Set("user", user)
}

func (e UserLoginEvent) User() *models.User {
	return e.Get("user").(*models.User)
}

func FireUserLoginEvent(ctx core.Context, user *models.User) error {
	return Fire[*UserLoginEvent](ctx, EVENT_USER_LOGIN, func(evt *UserLoginEvent) error {
		evt.SetUser(user)
		return nil
	})
}
