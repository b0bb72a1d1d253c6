package api

import (
	"errors"
	"net/http"

	"github.com/zlang-project/zsema/server/result"
	"github.com/zlang-project/zsema/server/serr"
)

// HTTPLogin returns a HandlerFunc that authenticates the operator account
// and returns a bearer token for use against the rest of the API.
func (api API) HTTPLogin() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epLogin)
}

func (api API) epLogin(req *http.Request) result.Result {
	loginData := LoginRequest{}
	if err := parseJSON(req, &loginData); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	if loginData.Username == "" {
		return result.BadRequest("username: property is empty or missing from request", "empty username")
	}
	if loginData.Password == "" {
		return result.BadRequest("password: property is empty or missing from request", "empty password")
	}

	err := api.Backend.Login(req.Context(), loginData.Username, loginData.Password)
	if err != nil {
		if errors.Is(err, serr.ErrBadCredentials) {
			return result.Unauthorized(serr.ErrBadCredentials.Error(), "user '%s': %s", loginData.Username, err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	tok, err := generateToken(api.Secret)
	if err != nil {
		return result.InternalServerError("could not generate JWT: " + err.Error())
	}

	resp := LoginResponse{Token: tok}
	return result.Created(resp, "operator '"+loginData.Username+"' successfully logged in")
}
