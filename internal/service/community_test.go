package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/model"
	"marketplace/internal/specs"
	"marketplace/internal/testutil"
)

func TestCommunityService_Comments(t *testing.T) {
	ctx := context.Background()
	db, f := newFactory(t)
	svc := NewCommunityService(f)

	author := testutil.User(t, db, "author")
	post := &model.Post{AuthorID: author.ID, Title: "Lost cat", Content: "grey", Category: model.PostLostAndFound}
	other := &model.Post{AuthorID: author.ID, Title: "Vet tips", Content: "...", Category: model.PostHealth}
	testutil.Create(t, db, post, other)

	top, err := svc.AddComment(ctx, NewComment{PostID: post.ID, UserID: author.ID, Content: "seen her"})
	require.NoError(t, err)
	require.NotZero(t, top.ID)

	parent := top.ID
	for depth := 1; depth <= specs.CommentReplyDepth+1; depth++ {
		reply, err := svc.AddComment(ctx, NewComment{PostID: post.ID, ParentID: &parent, UserID: author.ID, Content: "reply"})
		require.NoError(t, err)
		parent = reply.ID
	}

	t.Run("thread", func(t *testing.T) {
		res, err := svc.ListComments(ctx, specs.CommentParams{PostID: post.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.Count)
		require.Len(t, res.Data, 1)

		level := res.Data[0]
		require.NotNil(t, level.User)
		for depth := 1; depth <= specs.CommentReplyDepth; depth++ {
			require.Len(t, level.Replies, 1, "depth %d", depth)
			level = level.Replies[0]
			require.NotNil(t, level.User)
		}
		assert.Empty(t, level.Replies)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.AddComment(ctx, NewComment{PostID: post.ID, UserID: author.ID, Content: "  "})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.AddComment(ctx, NewComment{PostID: 9999, UserID: author.ID, Content: "x"})
		assert.ErrorIs(t, err, ErrNotFound)

		missing := int64(9999)
		_, err = svc.AddComment(ctx, NewComment{PostID: post.ID, ParentID: &missing, UserID: author.ID, Content: "x"})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = svc.AddComment(ctx, NewComment{PostID: other.ID, ParentID: &top.ID, UserID: author.ID, Content: "x"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.ListComments(ctx, specs.CommentParams{PostID: 9999})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete post", func(t *testing.T) {
		require.NoError(t, svc.DeletePost(ctx, post.ID))

		var n int64
		require.NoError(t, db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&n).Error)
		assert.Zero(t, n)

		_, err := svc.GetPost(ctx, post.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, svc.DeletePost(ctx, post.ID), ErrNotFound)

		kept, err := svc.GetPost(ctx, other.ID)
		require.NoError(t, err)
		require.NotNil(t, kept.Author)
	})
}

func TestCommunityService_ListPosts(t *testing.T) {
	db, f := newFactory(t)
	svc := NewCommunityService(f)
	author := testutil.User(t, db, "author")
	testutil.Create(t, db,
		&model.Post{AuthorID: author.ID, Title: "Adopt a puppy", Content: "free", Category: model.PostAdoption},
		&model.Post{AuthorID: author.ID, Title: "Question", Content: "puppy food?", Category: model.PostQuestion},
		&model.Post{AuthorID: author.ID, Title: "Kitten", Content: "adopt", Category: model.PostAdoption},
	)

	res, err := svc.ListPosts(context.Background(), specs.PostParams{Search: "PUPPY"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Count)

	res, err = svc.ListPosts(context.Background(), specs.PostParams{Category: "adoption", Search: "puppy"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Count)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Adopt a puppy", res.Data[0].Title)
}
