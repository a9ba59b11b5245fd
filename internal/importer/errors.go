// internal/importer/errors.go
package importer

import "errors"

var (
	// ErrSteamNotConfigured indicates no Steam credentials are set.
	ErrSteamNotConfigured = errors.New("steam import not configured")

	// ErrFetchLibrary indicates the external library could not be fetched.
	ErrFetchLibrary = errors.New("failed to fetch external library")
)
