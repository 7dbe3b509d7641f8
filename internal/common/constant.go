// Package common contains constants and small helpers shared by the
// projectdesk client packages.
package common

// Outbound HTTP header names.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerScheme            = "Bearer"
)

// Keys of the persisted session in the local metadata store.
const (
	MetadataKeyRole       = "role"
	MetadataKeyCredential = "credential"
)
