// Package validation checks the local environment before provisioning.
package validation

import (
	"context"
	"fmt"
	"strings"

	keysmitherrors "github.com/alexisbeaulieu97/keysmith/pkg/errors"
)

// Preflight returns the checks a run needs: the gcloud CLI, shred for key
// removal, the Cloud Shell helper used to download the key, and the key
// directory.
func Preflight(keyDir string) []Check {
	return []Check{
		{Name: "gcloud", Required: true, Run: func() error { return CheckCommandExists("gcloud") }},
		{Name: "shred", Required: true, Run: func() error { return CheckCommandExists("shred") }},
		// only present inside Cloud Shell; the download step fails without it
		{Name: "cloudshell", Run: func() error { return CheckCommandExists("cloudshell") }},
		{Name: "key_dir", Required: true, Run: func() error { return CheckDirExists(keyDir) }},
	}
}

// RunChecks executes checks in order and returns every result. The error
// lists the required checks that failed.
func RunChecks(ctx context.Context, checks []Check) ([]Result, error) {
	results := make([]Result, 0, len(checks))
	var failedMessages []string

	for _, check := range checks {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := Result{Check: check}
		var err error
		if check.Run == nil {
			err = keysmitherrors.NewValidationError("preflight."+check.Name, "check has no implementation", nil)
		} else {
			err = check.Run()
		}

		switch {
		case err == nil:
			result.Passed = true
			result.Message = fmt.Sprintf("%s: ok", check.Name)
		case check.Required:
			result.Message = err.Error()
			result.Error = err
			failedMessages = append(failedMessages, err.Error())
		default:
			result.Warning = true
			result.Message = err.Error()
			result.Error = err
		}

		results = append(results, result)
	}

	if len(failedMessages) > 0 {
		combined := strings.Join(failedMessages, "; ")
		return results, keysmitherrors.NewValidationError("preflight", combined, nil)
	}

	return results, nil
}
