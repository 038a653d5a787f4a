package httpkit

import (
	"net/http"

	perr "eshoppers/internal/platform/errors"
	pnet "eshoppers/internal/platform/net"
)

// User is the login Auth resolved for r
func User(r *http.Request) (string, error) {
	if uid := pnet.UserID(r.Context()); uid != "" {
		return uid, nil
	}
	return "", perr.Unauthorizedf("not logged in")
}

// Session is the session token Auth resolved for r
func Session(r *http.Request) (string, error) {
	if sid := pnet.SessionID(r.Context()); sid != "" {
		return sid, nil
	}
	return "", perr.Unauthorizedf("missing session")
}
