package teachers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/purva252/study-connect-hub/internal/models"
	"github.com/purva252/study-connect-hub/internal/store"
	"github.com/purva252/study-connect-hub/internal/utils"
)

// Directory resolves caller-supplied teacher identifiers and serves the
// teacher listing.
type Directory struct {
	profiles store.TeacherProfileStore
	users    store.UserStore
}

func NewDirectory(profiles store.TeacherProfileStore, users store.UserStore) *Directory {
	return &Directory{profiles: profiles, users: users}
}

// Resolve maps an identifier to the canonical teacher user id. A 24-hex
// string is treated as a raw user id; anything else as a directory code.
// The shape check is purely syntactic and never touches the store.
func (d *Directory) Resolve(ctx context.Context, identifier string) (primitive.ObjectID, error) {
	if userID, err := primitive.ObjectIDFromHex(identifier); err == nil {
		if _, err := d.profiles.ByUserID(ctx, userID); err != nil {
			if err == utils.ErrNotFound {
				return primitive.NilObjectID, fmt.Errorf("teacher not found by id: %w", utils.ErrNotFound)
			}
			return primitive.NilObjectID, err
		}
		return userID, nil
	}

	profile, err := d.profiles.ByCode(ctx, identifier)
	if err != nil {
		if err == utils.ErrNotFound {
			return primitive.NilObjectID, fmt.Errorf("teacher not found by code: %w", utils.ErrNotFound)
		}
		return primitive.NilObjectID, err
	}
	return profile.UserID, nil
}

// Listing is one entry of the teacher directory listing.
type Listing struct {
	ID   primitive.ObjectID  `json:"id"`
	User *models.UserSummary `json:"userId,omitempty"`
	Code string              `json:"code,omitempty"`
}

// List returns every teacher profile with its user populated.
func (d *Directory) List(ctx context.Context) ([]Listing, error) {
	profiles, err := d.profiles.All(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	users, err := d.users.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(profiles))
	for _, p := range profiles {
		entry := Listing{ID: p.ID, Code: p.Code}
		if user, ok := users[p.UserID]; ok {
			summary := user.Summary()
			entry.User = &summary
		}
		listings = append(listings, entry)
	}
	return listings, nil
}

// CodeFor returns the directory code of the given teacher.
func (d *Directory) CodeFor(ctx context.Context, userID primitive.ObjectID) (string, error) {
	profile, err := d.profiles.ByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return profile.Code, nil
}

// NewCode generates a short shareable directory code.
func NewCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}
