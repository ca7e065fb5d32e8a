package model

import (
	"time"

	"github.com/google/uuid"
)

// RepositoryType controls search visibility. Only PUBLIC repositories are
// returned by name search; fetch by id ignores it.
type RepositoryType string

const (
	RepositoryPublic  RepositoryType = "PUBLIC"
	RepositoryPrivate RepositoryType = "PRIVATE"
)

// Repository represents a row in the `repositories` table. Each repository
// has exactly one owner and holds any number of Content rows.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name, matched by search.
//  Description – free text.
//  Type        – PUBLIC or PRIVATE.
//  CreatedAt   – creation timestamp.
//  OwnerID     – users.id of the owner.
type Repository struct {
	ID          uuid.UUID      // repositories.id
	Name        string         // repositories.name
	Description string         // repositories.description
	Type        RepositoryType // repositories.type
	CreatedAt   time.Time      // repositories.created_at
	OwnerID     uuid.UUID      // repositories.owner_id
}

// Content represents a row in the `contents` table. Title is the natural key
// used by reconciliation; the schema does not enforce its uniqueness.
type Content struct {
	ID           uuid.UUID // contents.id
	Title        string    // contents.title
	Value        string    // contents.value
	RepositoryID uuid.UUID // contents.repository_id
}

// ContentItem is a title/value pair supplied by a client, either as initial
// content at registration or as the reconciliation target.
type ContentItem struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// ContentView is one content row inside a RepositoryView.
type ContentView struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Value string    `json:"value"`
}

// RepositoryView is the full projection of a repository and its contents.
type RepositoryView struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        RepositoryType `json:"type"`
	CreatedAt   time.Time      `json:"created_at"`
	OwnerID     uuid.UUID      `json:"owner_id"`
	Contents    []ContentView  `json:"contents"`
}

// RepositoryRegistration is the payload accepted by RepositoryRepo.Register.
type RepositoryRegistration struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        RepositoryType `json:"type"`
	Contents    []ContentItem  `json:"contents"`
}

// RepositoryUpdate is the payload accepted by RepositoryRepo.Update. Contents
// are not touched by this path.
type RepositoryUpdate struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        RepositoryType `json:"type"`
}

// ContentSync is the payload accepted by RepositoryRepo.ReconcileContents.
type ContentSync struct {
	ID       uuid.UUID     `json:"id"`
	Contents []ContentItem `json:"contents"`
}
