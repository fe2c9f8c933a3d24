package api

import (
	"net/http"

	"github.com/uplink-social/uplink/db/models"
	"github.com/uplink-social/uplink/middleware"

	"github.com/samber/lo"
	"go.lumeweb.com/httputil"
)

func (a *API) toggleFollow(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	following, err := a.social.ToggleFollow(userID, pathID(r, "id"))
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(FollowResponse{Following: following})
}

func (a *API) listFollowers(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	follows, err := a.social.Followers(pathID(r, "id"))
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(lo.Map(follows, func(follow models.Follow, _ int) FollowUserResponse {
		return FollowUserResponse{User: newUserResponse(&follow.Follower)}
	}))
}

func (a *API) listFollowing(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	follows, err := a.social.Following(pathID(r, "id"))
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(lo.Map(follows, func(follow models.Follow, _ int) FollowUserResponse {
		return FollowUserResponse{User: newUserResponse(&follow.Following)}
	}))
}
