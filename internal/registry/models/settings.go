package models

import dErrors "smp/pkg/domain-errors"

// Settings are the runtime-adjustable switches of a registry instance.
type Settings struct {
	// LocatorEnabled gates every locator call made by the registration
	// coordinator. Configuration can disable the locator independently.
	LocatorEnabled bool `json:"locator_enabled"`
	// LocatorInfoID selects which stored LocatorInfo is active.
	LocatorInfoID               string `json:"locator_info_id,omitempty"`
	DirectoryIntegrationEnabled bool   `json:"directory_integration_enabled"`
	DirectoryHostName           string `json:"directory_host_name,omitempty"`
	RESTWritableAPIDisabled     bool   `json:"rest_writable_api_disabled"`
}

// DefaultSettings is what Get returns before settings were ever stored.
func DefaultSettings() *Settings {
	return &Settings{LocatorEnabled: true}
}

func (s *Settings) Validate() error {
	if s.DirectoryIntegrationEnabled && s.DirectoryHostName == "" {
		return dErrors.New(dErrors.CodeValidation, "directory host name is required when directory integration is enabled")
	}
	if s.DirectoryHostName != "" {
		return validateAbsoluteURL("directory host name", s.DirectoryHostName)
	}
	return nil
}
