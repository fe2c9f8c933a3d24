package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uplink-social/uplink/core"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ core.API = (*namedAPI)(nil)

type namedAPI struct {
	name string
}

func (a *namedAPI) Name() string {
	return a.name
}

func (a *namedAPI) Configure(*mux.Router) error {
	return nil
}

func TestApiMetaHandlerListsAPINames(t *testing.T) {
	env := newTestEnv(t)

	core.RegisterAPI("meta-test", &namedAPI{name: "uplink"})

	httpSvc, _, err := NewHTTPService()
	require.NoError(t, err)

	httpSvc.ctx = env.ctx
	httpSvc.logger = env.ctx.Logger()

	req := httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	rec := httptest.NewRecorder()

	httpSvc.apiMetaHandler(rec, req)

	var meta struct {
		App    string   `json:"app"`
		Domain string   `json:"domain"`
		APIs   []string `json:"apis"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&meta))

	assert.Equal(t, "UpLink", meta.App)
	assert.Equal(t, "uplink.test", meta.Domain)

	// Names, not opaque empty objects.
	assert.Contains(t, meta.APIs, "uplink")
}
