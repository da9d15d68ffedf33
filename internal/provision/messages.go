package provision

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/keysmith/internal/config"
)

const (
	termsRetryPrompt = "If you've accepted the terms of service, press Enter to try again or 'n' to cancel:"

	missingScopesHeader = "The service account is not properly authorized. The following scopes are missing:"

	missingScopesFooter = "To fix this, please click the following link. After clicking 'Authorize', return here to try again. " +
		"If you are confident that these scopes have already been added, then you may continue now. " +
		"If you encounter OAuth errors in the tool, then you may need to wait for the changes to propagate. " +
		"Propagation generally takes less than 1 hour. However, in rare cases, it can take up to 24 hours."

	disabledAPIsFooter = "If these APIs are already enabled, then you may need to wait for the changes to propagate. " +
		"Propagation generally takes a few minutes. However, in rare cases, it can take up to 24 hours."

	downloadReminder = "Press Enter after you have downloaded the file."

	// Farewell is shown once the key has been downloaded and removed.
	Farewell = "If you have already downloaded the file, then you may close this page. " +
		"Please remember that this file is highly sensitive. Any person who gains access to the key file " +
		"will then have full access to all resources to which the service account has access. " +
		"You should treat it just like you would a password."
)

// Welcome introduces the run and lists what will be done on the operator's
// behalf.
func Welcome(p *config.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Welcome! This tool will create and authorize the resources that are necessary to use %s. ", p.FriendlyName)
	b.WriteString("The following steps will be performed on your behalf:\n\n")
	b.WriteString("1. Create a Google Cloud Platform project\n")
	b.WriteString("2. Enable APIs\n")
	b.WriteString("3. Create a service account\n")
	b.WriteString("4. Authorize the service account\n")
	b.WriteString("5. Create a service account key\n\n")
	fmt.Fprintf(&b, "In the end, you will be prompted to download the service account key. This key can then be used for %s.\n\n", p.Name)
	fmt.Fprintf(&b, "If you would like to perform these steps manually, then you can follow the instructions at %s", p.HelpURL)
	return b.String()
}

func authorizeMessage(p *config.Profile, delegationURL string) string {
	return fmt.Sprintf("Before using %s, you must authorize the service account to perform actions on behalf of your users. "+
		"You can do so by clicking:\n\n%s\n\nAfter clicking 'Authorize', return here.", p.FriendlyName, delegationURL)
}

func disabledServicesFooter() string {
	return "If this is expected, then please continue. If this is not expected, then please ensure that these services " +
		"are enabled for your users by visiting " + appsListURL + "."
}
