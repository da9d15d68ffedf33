package provision

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	projectIDCommand           = "gcloud config get-value project"
	serviceAccountIDCommand    = `gcloud iam service-accounts list --format="value(uniqueId)"`
	serviceAccountEmailCommand = `gcloud iam service-accounts list --format="value(email)"`
	adminEmailCommand          = `gcloud auth list --format="value(account)"`

	delegationURLFormat  = "https://admin.google.com/ac/owl/domainwidedelegation?overwriteClientId=true&clientIdToAdd=%s&clientScopeToAdd=%s"
	apiOverviewURLFormat = "https://console.developers.google.com/apis/api/%s/overview?project=%s"
	appsListURL          = "https://admin.google.com/ac/appslist/core"
)

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9@%+=:,./_-]+$`)

// shellQuote single-quotes s unless it is made only of characters the shell
// passes through untouched.
func shellQuote(s string) string {
	if s != "" && shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func createProjectCommand(id, name string) string {
	return fmt.Sprintf("gcloud projects create %s --name %s --set-as-default", shellQuote(id), shellQuote(name))
}

func enableServiceCommand(api string) string {
	return "gcloud services enable " + shellQuote(api)
}

func createServiceAccountCommand(name, displayName string) string {
	return fmt.Sprintf("gcloud iam service-accounts create %s --display-name %s", shellQuote(name), shellQuote(displayName))
}

func createKeyCommand(keyFile, email string) string {
	return fmt.Sprintf("gcloud iam service-accounts keys create %s --iam-account=%s", shellQuote(keyFile), shellQuote(email))
}

func downloadCommand(keyFile string) string {
	return "cloudshell download " + shellQuote(keyFile)
}

func shredCommand(keyFile string) string {
	return "shred -u " + shellQuote(keyFile)
}

// DelegationURL is the admin console link pre-filled with the client ID and
// scopes to authorize.
func DelegationURL(clientID string, scopes []string) string {
	return fmt.Sprintf(delegationURLFormat, url.QueryEscape(clientID), url.QueryEscape(strings.Join(scopes, ",")))
}

func apiOverviewURL(api, projectID string) string {
	return fmt.Sprintf(apiOverviewURLFormat, api, projectID)
}
