package classify

import "strings"

// TermsOfService is the reading of a failed service enablement.
type TermsOfService int

const (
	// OtherFailure is any failure unrelated to terms of service.
	OtherFailure TermsOfService = iota
	// NotAcceptedUniversal means the Google APIs terms are pending.
	NotAcceptedUniversal
	// NotAcceptedAppsAdmin means the Google Apps Admin APIs terms are pending.
	NotAcceptedAppsAdmin
	// NotAcceptedUnknown is a terms failure naming neither known agreement.
	NotAcceptedUnknown
)

const tosNotAcceptedMarker = "UREQ_TOS_NOT_ACCEPTED"

const (
	universalTermsURL = "https://console.developers.google.com/terms/universal"
	appsAdminTermsURL = "https://console.developers.google.com/terms/appsadmin"
)

// ClassifyTermsOfService reads the stderr of `gcloud services enable`.
func ClassifyTermsOfService(stderr string) TermsOfService {
	if !strings.Contains(stderr, tosNotAcceptedMarker) {
		return OtherFailure
	}
	switch {
	case strings.Contains(stderr, "universal"):
		return NotAcceptedUniversal
	case strings.Contains(stderr, "appsadmin"):
		return NotAcceptedAppsAdmin
	default:
		return NotAcceptedUnknown
	}
}

// NotAccepted reports whether the operator must accept some agreement.
func (t TermsOfService) NotAccepted() bool {
	return t != OtherFailure
}

// Instructions returns the acceptance guidance shown to the operator, or an
// empty string when there is no specific link.
func (t TermsOfService) Instructions() string {
	switch t {
	case NotAcceptedUniversal:
		return "You must first accept the Google APIs Terms of Service. You can accept the terms of service by clicking " +
			universalTermsURL + " and clicking 'Accept'."
	case NotAcceptedAppsAdmin:
		return "You must first accept the Google Apps Admin APIs Terms of Service. You can accept the terms of service by clicking " +
			appsAdminTermsURL + " and clicking 'Accept'."
	default:
		return ""
	}
}

func (t TermsOfService) String() string {
	switch t {
	case NotAcceptedUniversal:
		return "universal"
	case NotAcceptedAppsAdmin:
		return "appsadmin"
	case NotAcceptedUnknown:
		return "unknown"
	default:
		return "other"
	}
}
