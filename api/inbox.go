package api

import (
	"net/http"

	"github.com/uplink-social/uplink/db/models"
	"github.com/uplink-social/uplink/middleware"

	"github.com/samber/lo"
	"go.lumeweb.com/httputil"
)

func (a *API) sendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	var request SendMessageRequest
	if ctx.Decode(&request) != nil {
		return
	}

	message, err := a.message.SendMessage(userID, request.ReceiverID, request.Body)
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	ctx.Encode(newMessageResponse(message))
}

func (a *API) getMessage(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	message, err := a.message.GetMessage(userID, pathID(r, "id"))
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(newMessageResponse(message))
}

func (a *API) inbox(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	messages, err := a.message.Inbox(userID)
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(lo.Map(messages, func(message models.Message, _ int) MessageResponse {
		return newMessageResponse(&message)
	}))
}

func (a *API) history(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	messages, err := a.message.History(userID, pathID(r, "peer"))
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(lo.Map(messages, func(message models.Message, _ int) MessageResponse {
		return newMessageResponse(&message)
	}))
}
