package tes

import "time"

// Version is the TES specification release this package models.
const Version = "1.1.0"

// ServiceInfo describes a TES server, following the GA4GH service-info
// schema. Unlike the task types, the wire format uses camelCase keys.
type ServiceInfo struct {
	// ID is the server's reverse-domain identifier,
	// e.g. "org.ga4gh.myservice".
	ID string `json:"id"`

	// Name is a human-readable service name.
	Name string `json:"name"`

	// Type identifies the GA4GH specification the server implements.
	// For TES servers the artifact is "tes".
	Type ServiceType `json:"type"`

	// Description is free-form service documentation.
	Description string `json:"description,omitempty"`

	// Organization runs the service.
	Organization Organization `json:"organization"`

	// ContactURL is a support contact, usually a mailto link.
	ContactURL string `json:"contactUrl,omitempty"`

	// DocumentationURL points at the service's documentation.
	DocumentationURL string `json:"documentationUrl,omitempty"`

	// CreatedAt is when this service version was first deployed.
	CreatedAt *time.Time `json:"createdAt,omitempty"`

	// UpdatedAt is when this service version was last updated.
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	// Environment names the deployment tier, e.g. "prod" or "test".
	Environment string `json:"environment,omitempty"`

	// Version is the version of the service implementation itself, not
	// of the TES specification.
	Version string `json:"version"`

	// Storage lists storage systems the server can stage data from and
	// to, e.g. "s3://" or "file:///".
	Storage []string `json:"storage,omitempty"`
}

// ServiceType identifies which GA4GH specification and release a service
// implements.
type ServiceType struct {
	// Group is the namespace of the specification, e.g. "org.ga4gh".
	Group string `json:"group"`

	// Artifact names the specification, e.g. "tes".
	Artifact string `json:"artifact"`

	// Version is the specification release, e.g. "1.1.0".
	Version string `json:"version"`
}

// Organization identifies who operates a service.
type Organization struct {
	// Name is the organization name.
	Name string `json:"name"`

	// URL is the organization's website.
	URL string `json:"url"`
}
