package app

import (
	"net/url"

	"andaman_vendor/internal/domain"
)

type SessionStatus int

const (
	SessionResolving SessionStatus = iota
	SessionAnonymous
	SessionAuthenticated
)

// Session is the resolved "current user", threaded explicitly through the flow.
type Session struct {
	Status SessionStatus
	UserID int64
	Role   string
	Token  string
}

func (s Session) Principal() domain.Principal {
	return domain.Principal{UserID: s.UserID, Role: s.Role, Token: s.Token}
}

const SignInPath = "/signin"

const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonVendorRequired  = "vendor_required"
)

type GuardDecision struct {
	Redirect bool
	Target   string
}

// GuardVendor decides whether the session may enter vendor pages.
// A session that is still resolving is never redirected.
func GuardVendor(s Session) GuardDecision {
	switch {
	case s.Status == SessionResolving:
		return GuardDecision{}
	case s.Status != SessionAuthenticated:
		return GuardDecision{Redirect: true, Target: signIn(ReasonUnauthenticated)}
	case s.Role != domain.RoleVendor:
		return GuardDecision{Redirect: true, Target: signIn(ReasonVendorRequired)}
	}
	return GuardDecision{}
}

func signIn(reason string) string {
	return SignInPath + "?" + url.Values{"reason": {reason}}.Encode()
}
