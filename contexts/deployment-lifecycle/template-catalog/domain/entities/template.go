package entities

import "time"

// Template is a TOSCA document registered in the catalog. ContentHash
// is the sha256 hex digest of Content and is unique across the
// catalog; the descriptive fields are extracted from the document.
type Template struct {
	ID                      string
	Content                 string
	ContentHash             string
	Name                    string
	Version                 string
	TargetProviderType      string
	ToscaDefinitionsVersion string
	CreatedAt               time.Time
	CreatedBy               string
	UpdatedAt               time.Time
	UpdatedBy               string
}
