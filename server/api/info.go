package api

import (
	"net/http"

	"github.com/zlang-project/zsema/internal/version"
	"github.com/zlang-project/zsema/server/middle"
	"github.com/zlang-project/zsema/server/result"
)

// HTTPGetInfo returns a HandlerFunc that reports the zlangd server version
// and whether the requesting client is authenticated.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	loggedIn, _ := req.Context().Value(middle.AuthLoggedIn).(bool)

	resp := InfoModel{
		Version:  version.Current,
		LoggedIn: loggedIn,
	}
	return result.OK(resp, "info requested (logged in: %v)", loggedIn)
}
