package config

import (
	"fmt"

	keysmitherrors "github.com/alexisbeaulieu97/keysmith/pkg/errors"
)

// adminAPI must lead the API list when present: it is the API whose
// enablement surfaces the Apps Admin terms of service.
const adminAPI = "admin.googleapis.com"

// ValidateProfile performs schema and cross-field validation on a profile.
func ValidateProfile(p *Profile) error {
	if p == nil {
		return keysmitherrors.NewValidationError("profile", "profile is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(p); err != nil {
		return convertValidationError(err)
	}

	if err := uniqueEntries("apis", p.APIs); err != nil {
		return err
	}
	if err := uniqueEntries("scopes", p.Scopes); err != nil {
		return err
	}

	for i, api := range p.APIs {
		if api == adminAPI && i != 0 {
			return keysmitherrors.NewValidationError(fieldForList("apis", i), fmt.Sprintf("%s must be the first API", adminAPI), nil)
		}
	}

	return nil
}

func uniqueEntries(list string, values []string) error {
	seen := make(map[string]int, len(values))
	for i, value := range values {
		if first, ok := seen[value]; ok {
			return keysmitherrors.NewValidationError(fieldForList(list, i), fmt.Sprintf("duplicate of %s", fieldForList(list, first)), nil)
		}
		seen[value] = i
	}
	return nil
}
