package policy

import (
	"auctions/internal/errors"
	"auctions/internal/model"
)

// RequireAuthenticated fails with ErrUnauthorized when there is no signed-in user.
func RequireAuthenticated(actor *model.User) error {
	if actor == nil || actor.ID == 0 {
		return errors.ErrUnauthorized
	}
	return nil
}

// RequireListingAuthor allows only the listing's author.
func RequireListingAuthor(actor *model.User, listing *model.Listing) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if listing == nil || listing.AuthorID != actor.ID {
		return errors.ErrForbidden
	}
	return nil
}

// RequireSelf allows a user to act only on their own profile.
func RequireSelf(actor, target *model.User) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if target == nil || target.ID != actor.ID {
		return errors.ErrForbidden
	}
	return nil
}

// IsAuthor reports whether actor wrote the listing. Anonymous actors never are.
func IsAuthor(actor *model.User, listing *model.Listing) bool {
	return RequireListingAuthor(actor, listing) == nil
}
