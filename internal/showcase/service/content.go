package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
	"github.com/LauchlanT/brickshowcase/internal/showcase/store"
	"github.com/LauchlanT/brickshowcase/pkg/idx"
)

var (
	ErrNotMocOwnerEdit   = Fault("You cannot edit MOCs you did not create")
	ErrNotMocOwnerDelete = Fault("You cannot delete MOCs you did not create")
	ErrOwnMocLike        = Fault("You cannot like your own MOCs")
	ErrOwnMocUnlike      = Fault("You cannot unlike your own MOCs")
	ErrOwnMocTreasure    = Fault("You cannot treasure your own MOCs")
	ErrOwnMocUntreasure  = Fault("You cannot untreasure your own MOCs")
	ErrNotCommentAuthor  = Fault("You can only edit your own comments")
	ErrNotCommentOwner   = Fault("You can only delete your own comments")
	ErrMocUnavailable    = Fault("Error adding comment.")
	ErrLikeUnavailable   = Fault("Error adding like.")
	ErrTreasureFailed    = Fault("Error treasuring MOC.")
)

type ContentService struct {
	Store      store.Store
	RootDomain string
}

// CreateMoc inserts a new MOC and returns its canonical URL.
func (s *ContentService) CreateMoc(ctx context.Context, callerID, title, text, thumb, filter string, privacy bool) (string, error) {
	if callerID == "" {
		return "", Fault("You must be logged in to post new MOCs")
	}
	moc := domain.Moc{
		ID:        idx.New().String(),
		UserID:    callerID,
		Title:     title,
		Thumbnail: thumb,
		Content:   text,
		Privacy:   privacy,
		Filter:    filter,
		PostDate:  time.Now().UTC(),
		Status:    domain.ContentStatusActive,
	}
	if err := s.Store.Mocs().CreateMoc(ctx, moc); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://www.%s/moc/%s", s.RootDomain, moc.ID), nil
}

// EditMoc updates a MOC's fields. Ownership is checked against the stored
// row; soft-deleted MOCs are invisible and read as not-owned.
func (s *ContentService) EditMoc(ctx context.Context, callerID, mocID, title, text, thumb, filter string, privacy bool) error {
	if callerID == "" {
		return Fault("You must be logged in to edit your MOCs")
	}
	if err := s.requireMocOwner(ctx, mocID, callerID, ErrNotMocOwnerEdit); err != nil {
		return err
	}
	now := time.Now().UTC()
	return s.Store.Mocs().UpdateMoc(ctx, domain.Moc{
		ID:        mocID,
		Title:     title,
		Thumbnail: thumb,
		Content:   text,
		Privacy:   privacy,
		Filter:    filter,
		LastEdit:  &now,
	})
}

// DeleteMoc soft deletes a MOC after a password re-check.
func (s *ContentService) DeleteMoc(ctx context.Context, callerID, mocID, password string) error {
	if callerID == "" {
		return Fault("You must be logged in to delete your MOCs")
	}
	if err := s.requireMocOwner(ctx, mocID, callerID, ErrNotMocOwnerDelete); err != nil {
		return err
	}
	if err := verifyUserPassword(ctx, s.Store, callerID, password); err != nil {
		return err
	}
	return s.Store.Mocs().SoftDeleteMoc(ctx, mocID)
}

// LikeMoc records a like and bumps the MOC's counter. Liking twice is a
// no-op success; the counter only moves when a row was actually inserted.
func (s *ContentService) LikeMoc(ctx context.Context, callerID, mocID string) error {
	return s.react(ctx, callerID, mocID, reaction{
		loginFault: Fault("You must be logged in to like MOCs"),
		ownerFault: ErrOwnMocLike,
		missing:    ErrLikeUnavailable,
		counts:     true,
		add:        true,
		pick:       func(tx store.Tx) store.Reactions { return tx.Likes() },
	})
}

// UnlikeMoc removes a like. Removing a like that never existed succeeds.
func (s *ContentService) UnlikeMoc(ctx context.Context, callerID, mocID string) error {
	return s.react(ctx, callerID, mocID, reaction{
		loginFault: Fault("You must be logged in to unlike MOCs"),
		ownerFault: ErrOwnMocUnlike,
		counts:     true,
		pick:       func(tx store.Tx) store.Reactions { return tx.Likes() },
	})
}

// TreasureMoc records a treasure. Same idempotency as likes, but treasures
// carry no denormalized counter.
func (s *ContentService) TreasureMoc(ctx context.Context, callerID, mocID string) error {
	return s.react(ctx, callerID, mocID, reaction{
		loginFault: Fault("You must be logged in to treasure MOCs"),
		ownerFault: ErrOwnMocTreasure,
		missing:    ErrTreasureFailed,
		add:        true,
		pick:       func(tx store.Tx) store.Reactions { return tx.Treasures() },
	})
}

// UntreasureMoc removes a treasure.
func (s *ContentService) UntreasureMoc(ctx context.Context, callerID, mocID string) error {
	return s.react(ctx, callerID, mocID, reaction{
		loginFault: Fault("You must be logged in to untreasure MOCs"),
		ownerFault: ErrOwnMocUntreasure,
		pick:       func(tx store.Tx) store.Reactions { return tx.Treasures() },
	})
}

type reaction struct {
	loginFault Fault
	ownerFault Fault
	missing    Fault // add on a missing MOC fails with this; removal is a no-op
	counts     bool  // whether the MOC carries a denormalized counter
	add        bool
	pick       func(tx store.Tx) store.Reactions
}

func (s *ContentService) react(ctx context.Context, callerID, mocID string, r reaction) error {
	if callerID == "" {
		return r.loginFault
	}
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		owner, err := tx.Mocs().GetMocOwner(ctx, mocID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				if r.add {
					return r.missing
				}
				return nil // removing a reaction from a missing MOC is a no-op
			}
			return err
		}
		if owner == callerID {
			return r.ownerFault
		}

		var changed bool
		if r.add {
			changed, err = r.pick(tx).Add(ctx, mocID, callerID, time.Now().UTC())
		} else {
			changed, err = r.pick(tx).Remove(ctx, mocID, callerID)
		}
		if err != nil {
			return err
		}
		if changed && r.counts {
			delta := int64(1)
			if !r.add {
				delta = -1
			}
			return tx.Mocs().AddToLikeCount(ctx, mocID, delta)
		}
		return nil
	})
}

// AddComment posts a comment on an active MOC and bumps its comment counter.
func (s *ContentService) AddComment(ctx context.Context, callerID, mocID, text string) error {
	if callerID == "" {
		return Fault("You must be logged in to post comments")
	}
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Mocs().GetMocOwner(ctx, mocID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrMocUnavailable
			}
			return err
		}
		err := tx.Comments().CreateComment(ctx, domain.Comment{
			ID:       idx.New().String(),
			MocID:    mocID,
			UserID:   callerID,
			Content:  text,
			PostDate: time.Now().UTC(),
			Status:   domain.ContentStatusActive,
		})
		if err != nil {
			return err
		}
		return tx.Mocs().AddToCommentCount(ctx, mocID, 1)
	})
}

// EditComment updates a comment's text. Author only; deleted comments are
// invisible and read as not-owned.
func (s *ContentService) EditComment(ctx context.Context, callerID, commentID, text string) error {
	if callerID == "" {
		return Fault("You must be logged in to edit comments")
	}
	author, err := s.Store.Comments().GetCommentAuthor(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotCommentAuthor
		}
		return err
	}
	if author != callerID {
		return ErrNotCommentAuthor
	}
	return s.Store.Comments().UpdateComment(ctx, commentID, text, time.Now().UTC())
}

// DeleteComment soft deletes a comment and decrements the MOC's counter.
func (s *ContentService) DeleteComment(ctx context.Context, callerID, commentID string) error {
	if callerID == "" {
		return Fault("You must be logged in to delete comments")
	}
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		comment, err := tx.Comments().GetComment(ctx, commentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotCommentOwner
			}
			return err
		}
		if comment.UserID != callerID {
			return ErrNotCommentOwner
		}
		if err := tx.Comments().SoftDeleteComment(ctx, commentID); err != nil {
			return err
		}
		return tx.Mocs().AddToCommentCount(ctx, comment.MocID, -1)
	})
}

// requireMocOwner checks the caller owns the MOC, reporting the given fault
// when it does not exist or belongs to someone else.
func (s *ContentService) requireMocOwner(ctx context.Context, mocID, callerID string, fault Fault) error {
	owner, err := s.Store.Mocs().GetMocOwner(ctx, mocID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fault
		}
		return err
	}
	if owner != callerID {
		return fault
	}
	return nil
}
