package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
	"github.com/LauchlanT/brickshowcase/internal/showcase/store"
	"github.com/LauchlanT/brickshowcase/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newContentService(t *testing.T) *ContentService {
	t.Helper()
	return &ContentService{Store: newTestStore(t), RootDomain: "mocshare.test"}
}

// createMoc posts a MOC through the service and returns its id, parsed out of
// the returned link.
func createMoc(t *testing.T, content *ContentService, ownerID, title string) string {
	t.Helper()
	link, err := content.CreateMoc(context.Background(), ownerID, title, "Some build notes", "thumb.jpg", "none", false)
	require.NoError(t, err)

	slash := strings.LastIndex(link, "/")
	require.Greater(t, slash, 0)
	return link[slash+1:]
}

func TestCreateMoc(t *testing.T) {
	ctx := context.Background()
	content := newContentService(t)
	ownerID := createActiveUser(t, content.Store, "builder", "builder@example.com", "pw")

	t.Run("requires login", func(t *testing.T) {
		_, err := content.CreateMoc(ctx, "", "Castle", "text", "thumb.jpg", "none", false)
		require.ErrorIs(t, err, Fault("You must be logged in to post new MOCs"))
	})

	t.Run("returns a link to the stored MOC", func(t *testing.T) {
		link, err := content.CreateMoc(ctx, ownerID, "Castle", "A big castle", "castle.jpg", "none", true)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(link, "https://www.mocshare.test/moc/"))

		mocID := link[strings.LastIndex(link, "/")+1:]
		moc, err := content.Store.Mocs().GetMoc(ctx, mocID)
		require.NoError(t, err)
		require.Equal(t, "Castle", moc.Title)
		require.Equal(t, ownerID, moc.UserID)
		require.True(t, moc.Privacy)
		require.Nil(t, moc.LastEdit)
		require.Zero(t, moc.NumLikes)
		require.Zero(t, moc.NumComments)
	})
}

func TestEditMoc(t *testing.T) {
	ctx := context.Background()
	content := newContentService(t)
	ownerID := createActiveUser(t, content.Store, "builder", "builder@example.com", "pw")
	otherID := createActiveUser(t, content.Store, "other", "other@example.com", "pw")
	mocID := createMoc(t, content, ownerID, "Castle")

	t.Run("requires login", func(t *testing.T) {
		err := content.EditMoc(ctx, "", mocID, "New", "text", "thumb.jpg", "none", false)
		require.ErrorIs(t, err, Fault("You must be logged in to edit your MOCs"))
	})

	t.Run("owner only", func(t *testing.T) {
		err := content.EditMoc(ctx, otherID, mocID, "New", "text", "thumb.jpg", "none", false)
		require.ErrorIs(t, err, ErrNotMocOwnerEdit)
	})

	t.Run("missing MOCs read as not owned", func(t *testing.T) {
		err := content.EditMoc(ctx, ownerID, "no-such-moc", "New", "text", "thumb.jpg", "none", false)
		require.ErrorIs(t, err, ErrNotMocOwnerEdit)
	})

	t.Run("updates fields and stamps the edit", func(t *testing.T) {
		err := content.EditMoc(ctx, ownerID, mocID, "Fortress", "Now with moat", "fort.jpg", "mature", true)
		require.NoError(t, err)

		moc, err := content.Store.Mocs().GetMoc(ctx, mocID)
		require.NoError(t, err)
		require.Equal(t, "Fortress", moc.Title)
		require.Equal(t, "Now with moat", moc.Content)
		require.Equal(t, "fort.jpg", moc.Thumbnail)
		require.Equal(t, "mature", moc.Filter)
		require.True(t, moc.Privacy)
		require.NotNil(t, moc.LastEdit)
	})
}

func TestDeleteMoc(t *testing.T) {
	ctx := context.Background()
	content := newContentService(t)
	ownerID := createActiveUser(t, content.Store, "builder", "builder@example.com", "pw")
	otherID := createActiveUser(t, content.Store, "other", "other@example.com", "pw")
	mocID := createMoc(t, content, ownerID, "Castle")

	require.ErrorIs(t,
		content.DeleteMoc(ctx, "", mocID, "pw"),
		Fault("You must be logged in to delete your MOCs"))
	require.ErrorIs(t, content.DeleteMoc(ctx, otherID, mocID, "pw"), ErrNotMocOwnerDelete)
	require.ErrorIs(t, content.DeleteMoc(ctx, ownerID, mocID, "wrong"), ErrPasswordNotCorrect)

	require.NoError(t, content.DeleteMoc(ctx, ownerID, mocID, "pw"))

	_, err := content.Store.Mocs().GetMoc(ctx, mocID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again reads as not owned
	require.ErrorIs(t, content.DeleteMoc(ctx, ownerID, mocID, "pw"), ErrNotMocOwnerDelete)
}

func TestLikeMoc(t *testing.T) {
	ctx := context.Background()
	content := newContentService(t)
	ownerID := createActiveUser(t, content.Store, "builder", "builder@example.com", "pw")
	fanID := createActiveUser(t, content.Store, "fan", "fan@example.com", "pw")
	mocID := createMoc(t, content, ownerID, "Castle")

	numLikes := func() int64 {
		moc, err := content.Store.Mocs().GetMoc(ctx, mocID)
		require.NoError(t, err)
		return moc.NumLikes
	}

	t.Run("requires login", func(t *testing.T) {
		require.ErrorIs(t,
			content.LikeMoc(ctx, "", mocID),
			Fault("You must be logged in to like MOCs"))
	})

	t.Run("owners cannot like their own MOCs", func(t *testing.T) {
		require.ErrorIs(t, content.LikeMoc(ctx, ownerID, mocID), ErrOwnMocLike)
		require.ErrorIs(t, content.UnlikeMoc(ctx, ownerID, mocID), ErrOwnMocUnlike)
	})

	t.Run("liking a missing MOC fails", func(t *testing.T) {
		require.ErrorIs(t, content.LikeMoc(ctx, fanID, "no-such-moc"), ErrLikeUnavailable)
	})

	t.Run("like and unlike move the counter once each", func(t *testing.T) {
		require.NoError(t, content.LikeMoc(ctx, fanID, mocID))
		require.EqualValues(t, 1, numLikes())

		// A repeat like changes nothing
		require.NoError(t, content.LikeMoc(ctx, fanID, mocID))
		require.EqualValues(t, 1, numLikes())

		require.NoError(t, content.UnlikeMoc(ctx, fanID, mocID))
		require.EqualValues(t, 0, numLikes())

		// Unliking without a like is a no-op success
		require.NoError(t, content.UnlikeMoc(ctx, fanID, mocID))
		require.EqualValues(t, 0, numLikes())
	})

	t.Run("unliking a missing MOC is a no-op", func(t *testing.T) {
		require.NoError(t, content.UnlikeMoc(ctx, fanID, "no-such-moc"))
	})
}

func TestTreasureMoc(t *testing.T) {
	ctx := context.Background()
	content := newContentService(t)
	ownerID := createActiveUser(t, content.Store, "builder", "builder@example.com", "pw")
	fanID := createActiveUser(t, content.Store, "fan", "fan@example.com", "pw")
	mocID := createMoc(t, content, ownerID, "Castle")

	require.ErrorIs(t, content.TreasureMoc(ctx, ownerID, mocID), ErrOwnMocTreasure)
	require.ErrorIs(t, content.TreasureMoc(ctx, fanID, "no-such-moc"), ErrTreasureFailed)

	require.NoError(t, content.TreasureMoc(ctx, fanID, mocID))
	exists, err := content.Store.Treasures().Exists(ctx, mocID, fanID)
	require.NoError(t, err)
	require.True(t, exists)

	// Idempotent both ways
	require.NoError(t, content.TreasureMoc(ctx, fanID, mocID))
	require.NoError(t, content.UntreasureMoc(ctx, fanID, mocID))
	require.NoError(t, content.UntreasureMoc(ctx, fanID, mocID))

	exists, err = content.Store.Treasures().Exists(ctx, mocID, fanID)
	require.NoError(t, err)
	require.False(t, exists)

	// Treasures never touch the like counter
	moc, err := content.Store.Mocs().GetMoc(ctx, mocID)
	require.NoError(t, err)
	require.Zero(t, moc.NumLikes)
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	content := newContentService(t)
	ownerID := createActiveUser(t, content.Store, "builder", "builder@example.com", "pw")
	fanID := createActiveUser(t, content.Store, "fan", "fan@example.com", "pw")
	mocID := createMoc(t, content, ownerID, "Castle")

	numComments := func() int64 {
		moc, err := content.Store.Mocs().GetMoc(ctx, mocID)
		require.NoError(t, err)
		return moc.NumComments
	}

	t.Run("requires login", func(t *testing.T) {
		require.ErrorIs(t,
			content.AddComment(ctx, "", mocID, "Nice!"),
			Fault("You must be logged in to post comments"))
	})

	t.Run("rejects missing MOCs", func(t *testing.T) {
		require.ErrorIs(t, content.AddComment(ctx, fanID, "no-such-moc", "Nice!"), ErrMocUnavailable)
	})

	t.Run("adding bumps the counter", func(t *testing.T) {
		require.NoError(t, content.AddComment(ctx, fanID, mocID, "Nice!"))
		require.EqualValues(t, 1, numComments())

		// Owners may comment on their own MOCs
		require.NoError(t, content.AddComment(ctx, ownerID, mocID, "Thanks!"))
		require.EqualValues(t, 2, numComments())
	})

	t.Run("editing is author only", func(t *testing.T) {
		commentID := seedComment(t, content, fanID, mocID, "Original")

		require.ErrorIs(t, content.EditComment(ctx, ownerID, commentID, "Hijacked"), ErrNotCommentAuthor)
		require.ErrorIs(t, content.EditComment(ctx, fanID, "no-such-comment", "x"), ErrNotCommentAuthor)

		require.NoError(t, content.EditComment(ctx, fanID, commentID, "Edited"))
		comment, err := content.Store.Comments().GetComment(ctx, commentID)
		require.NoError(t, err)
		require.Equal(t, "Edited", comment.Content)
		require.NotNil(t, comment.LastEdit)
	})

	t.Run("deleting is author only and decrements", func(t *testing.T) {
		commentID := seedComment(t, content, fanID, mocID, "Short lived")
		before := numComments()

		require.ErrorIs(t, content.DeleteComment(ctx, ownerID, commentID), ErrNotCommentOwner)
		require.ErrorIs(t, content.DeleteComment(ctx, fanID, "no-such-comment"), ErrNotCommentOwner)

		require.NoError(t, content.DeleteComment(ctx, fanID, commentID))
		require.Equal(t, before-1, numComments())

		_, err := content.Store.Comments().GetComment(ctx, commentID)
		require.ErrorIs(t, err, store.ErrNotFound)

		// Deleted comments read as not owned
		require.ErrorIs(t, content.DeleteComment(ctx, fanID, commentID), ErrNotCommentOwner)
	})
}

// seedComment inserts a comment with a known id straight into the store,
// bumping the counter the way the service would.
func seedComment(t *testing.T, content *ContentService, authorID, mocID, text string) string {
	t.Helper()
	ctx := context.Background()

	commentID := idx.New().String()
	require.NoError(t, content.Store.Comments().CreateComment(ctx, domain.Comment{
		ID:       commentID,
		MocID:    mocID,
		UserID:   authorID,
		Content:  text,
		PostDate: time.Now().UTC(),
		Status:   domain.ContentStatusActive,
	}))
	require.NoError(t, content.Store.Mocs().AddToCommentCount(ctx, mocID, 1))
	return commentID
}
