package provision

import "github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"

// Step identifiers in execution order.
const (
	StepCreateProject           = "create_project"
	StepVerifyTerms             = "verify_tos"
	StepEnableAPIs              = "enable_apis"
	StepCreateServiceAccount    = "create_service_account"
	StepAuthorizeServiceAccount = "authorize_service_account"
	StepCreateKey               = "create_key"
	StepVerifyScopes            = "verify_scopes"
	StepVerifyAPIAccess         = "verify_api_access"
	StepDownloadKey             = "download_key"
	StepDeleteKey               = "delete_key"
)

// Definition is the fixed provisioning pipeline.
func Definition() pipeline.Pipeline {
	return pipeline.Pipeline{
		Name: "provision",
		Steps: []pipeline.Step{
			{ID: StepCreateProject, Name: "Create project"},
			{ID: StepVerifyTerms, Name: "Verify terms of service", DependsOn: []string{StepCreateProject}},
			{ID: StepEnableAPIs, Name: "Enable APIs", DependsOn: []string{StepVerifyTerms}},
			{ID: StepCreateServiceAccount, Name: "Create service account", DependsOn: []string{StepCreateProject}},
			{ID: StepAuthorizeServiceAccount, Name: "Authorize service account", DependsOn: []string{StepCreateServiceAccount}},
			{ID: StepCreateKey, Name: "Create service account key", DependsOn: []string{StepCreateServiceAccount}},
			{ID: StepVerifyScopes, Name: "Verify scope authorization", DependsOn: []string{StepAuthorizeServiceAccount, StepCreateKey}},
			{ID: StepVerifyAPIAccess, Name: "Verify API access", DependsOn: []string{StepCreateKey, StepVerifyScopes}},
			{ID: StepDownloadKey, Name: "Download key", DependsOn: []string{StepCreateKey}},
			{ID: StepDeleteKey, Name: "Delete key", DependsOn: []string{StepDownloadKey}},
		},
	}
}
