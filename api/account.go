package api

import (
	"net/http"

	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/middleware"

	"go.lumeweb.com/httputil"
)

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request RegisterRequest
	if ctx.Decode(&request) != nil {
		return
	}

	user, err := a.user.CreateAccount(core.RegisterParams{
		Name:            request.Name,
		Email:           request.Email,
		Username:        request.Username,
		PhoneNumber:     request.PhoneNumber,
		Password:        request.Password,
		ConfirmPassword: request.ConfirmPassword,
		Image:           request.Image,
	})
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	ctx.Encode(newUserResponse(user))
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request LoginRequest
	if ctx.Decode(&request) != nil {
		return
	}

	pair, user, err := a.auth.LoginIdentifier(request.Identifier, request.Password)
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	w.Header().Set("Authorization", "Bearer "+pair.Access)
	ctx.Encode(LoginResponse{
		Token: pair,
		User:  newUserResponse(user),
	})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request LogoutRequest
	if ctx.Decode(&request) != nil {
		return
	}

	if err := a.auth.Logout(request.Refresh); err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request RefreshRequest
	if ctx.Decode(&request) != nil {
		return
	}

	access, err := a.auth.Refresh(request.Refresh)
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(RefreshResponse{Access: access})
}

func (a *API) passwordResetRequest(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request PasswordResetRequest
	if ctx.Decode(&request) != nil {
		return
	}

	if err := a.reset.SendPasswordReset(request.Email); err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) passwordResetConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request PasswordResetConfirmRequest
	if ctx.Decode(&request) != nil {
		return
	}

	if err := a.reset.ResetPassword(request.Email, request.OTP, request.Password, request.ConfirmPassword); err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) getAccount(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	exists, user, err := a.user.AccountExists(userID)
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	if !exists {
		err = core.NewDomainError(core.ErrKeyUserNotFound, nil)
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(newUserResponse(user))
}

func (a *API) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	var request UpdateProfileRequest
	if ctx.Decode(&request) != nil {
		return
	}

	user, err := a.user.UpdateProfile(userID, core.ProfileUpdate{
		Name:        request.Name,
		Username:    request.Username,
		PhoneNumber: request.PhoneNumber,
		Image:       request.Image,
	})
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(newUserResponse(user))
}
