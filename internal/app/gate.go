package app

import (
	"errors"

	"andaman_vendor/internal/domain"
)

type GateOutcome int

const (
	GateError GateOutcome = iota
	GateProfileMissing
	GateUnverified
	GateWrongType
	GatePassed
)

func (g GateOutcome) String() string {
	switch g {
	case GateError:
		return "error"
	case GateProfileMissing:
		return "profile_missing"
	case GateUnverified:
		return "unverified"
	case GateWrongType:
		return "wrong_type"
	case GatePassed:
		return "passed"
	}
	return "unknown"
}

const (
	msgProfileFetchFailed = "Failed to load your vendor profile."
	msgHotelFetchFailed   = "Failed to load the hotel details."
	msgSubmitFailed       = "Failed to update the hotel. Please try again."
)

// EvaluateProfile checks verification before vendor type; only a verified
// hotel vendor passes. The returned message is set for GateError only.
func EvaluateProfile(env domain.ProfileEnvelope, err error) (GateOutcome, string) {
	if err != nil {
		return GateError, failureMessage(err, msgProfileFetchFailed)
	}
	if !env.Success {
		return GateError, orDefault(env.Message, msgProfileFetchFailed)
	}
	if env.Data == nil {
		return GateProfileMissing, ""
	}
	if !env.Data.IsVerified() {
		return GateUnverified, ""
	}
	if !env.Data.IsHotelVendor() {
		return GateWrongType, ""
	}
	return GatePassed, ""
}

// failureMessage prefers a server-provided message carried by err.
func failureMessage(err error, def string) string {
	var m interface{ UserMessage() string }
	if errors.As(err, &m) && m.UserMessage() != "" {
		return m.UserMessage()
	}
	return def
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
