package models

import (
	"strings"

	dErrors "smp/pkg/domain-errors"
)

// LocatorInfo describes one locator (SML) deployment this registry can
// register participants with.
type LocatorInfo struct {
	ID                        string `json:"id"`
	DisplayName               string `json:"display_name"`
	DNSZone                   string `json:"dns_zone"`
	ManagementServiceURL      string `json:"management_service_url"`
	ClientCertificateRequired bool   `json:"client_certificate_required"`
}

func (l *LocatorInfo) Validate() error {
	if strings.TrimSpace(l.DisplayName) == "" {
		return dErrors.New(dErrors.CodeValidation, "locator display name is required")
	}
	if strings.TrimSpace(l.DNSZone) == "" {
		return dErrors.New(dErrors.CodeValidation, "locator dns zone is required")
	}
	return validateAbsoluteURL("locator management service url", l.ManagementServiceURL)
}
