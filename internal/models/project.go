// Package models contains the domain structures shared between the
// business logic and the storage layer.
package models

import "time"

// Project is an analytics workspace owned by exactly one user.
// Its identity is immutable once created; removal goes through the
// project deletion service only.
type Project struct {
	ID        string    // opaque unique identifier (UUID)
	UserID    string    // UID of the owning user
	Name      string    // display name
	CreatedAt time.Time // creation timestamp
}

// DummyProject receives project data from a JSON request before it is
// converted into a Project.
type DummyProject struct {
	Name string `json:"name" validate:"required"`
}

// Integration links a sales or ad platform account to a project.
type Integration struct {
	ID          int       // row identifier
	ProjectID   string    // owning project
	Provider    string    // kiwify, hotmart, guru, eduzz or meta_ads
	Credentials string    // provider API credentials, stored opaque
	ConnectedAt time.Time // when the integration was connected
}

// DummyIntegration receives integration data from a JSON request.
type DummyIntegration struct {
	Provider    string `json:"provider" validate:"required,oneof=kiwify hotmart guru eduzz meta_ads"`
	Credentials string `json:"credentials" validate:"required"`
}
