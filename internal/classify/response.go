// Package classify interprets raw cloud responses: API probe bodies and the
// stderr of service enablement.
package classify

import (
	"encoding/json"
	"strings"
)

// Classification is what an API probe response says about availability.
type Classification struct {
	// APIDisabled means the API is not enabled on the project.
	APIDisabled bool
	// ServiceDisabled means the product is turned off for the calling user.
	ServiceDisabled bool
}

// ResponseClassifier inspects a probe body. fetchErr is the transport error,
// if any; a failed fetch is indistinguishable from a disabled API.
type ResponseClassifier func(body []byte, fetchErr error) Classification

const (
	apiDisabledMarker     = "it is disabled"
	serviceDisabledMarker = "service not enabled"
)

// serviceDisabledReasons are the error reasons Workspace APIs return when the
// product is not enabled for the user.
var serviceDisabledReasons = map[string]struct{}{
	"notACalendarUser": {},
	"notFound":         {},
	"authError":        {},
}

type apiError struct {
	Error *struct {
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// Default is the classifier used for Google API probes.
func Default(body []byte, fetchErr error) Classification {
	if fetchErr != nil || body == nil {
		return Classification{APIDisabled: true, ServiceDisabled: true}
	}

	var parsed apiError
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == nil {
		return Classification{}
	}

	var c Classification
	c.APIDisabled = strings.Contains(parsed.Error.Message, apiDisabledMarker)
	if len(parsed.Error.Errors) > 0 {
		_, c.ServiceDisabled = serviceDisabledReasons[parsed.Error.Errors[0].Reason]
	}
	if strings.Contains(parsed.Error.Message, serviceDisabledMarker) {
		c.ServiceDisabled = true
	}
	return c
}

var _ ResponseClassifier = Default
