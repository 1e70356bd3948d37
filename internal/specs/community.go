package specs

import (
	"strings"

	"marketplace/internal/model"
	"marketplace/internal/specification"
)

type PostParams struct {
	Search   string
	Category string
	AuthorID int64
	Sort     string
	Paging
}

var postSorts = map[string]sortKey{
	"newest": sortNewest,
	"oldest": sortOldest,
}

func postCriteria(p PostParams) specification.Criterion {
	var terms []specification.Criterion
	if p.Search != "" {
		terms = append(terms, specification.AnyContainsFold(p.Search, "title", "content"))
	}
	if c, ok := model.ParsePostCategory(p.Category); ok {
		terms = append(terms, specification.Eq("category", c))
	}
	if p.AuthorID != 0 {
		terms = append(terms, specification.Eq("author_id", p.AuthorID))
	}
	return specification.All(terms...)
}

func NewPostFilterSpec(p PostParams) specification.Specification[model.Post] {
	pg := p.Paging.Normalize()
	b := specification.New[model.Post](postCriteria(p)).
		Include("Author").
		Page(pg.PageIndex, pg.PageSize)
	applySort(b, p.Sort, postSorts, sortNewest)
	return b.Build()
}

func NewPostCountSpec(p PostParams) specification.Specification[model.Post] {
	return specification.New[model.Post](postCriteria(p)).Build()
}

func NewPostDetailSpec(id int64) specification.Specification[model.Post] {
	return specification.New[model.Post](specification.Eq("id", id)).Include("Author").Build()
}

// CommentReplyDepth is how many reply levels are eager-loaded below a top-level
// comment. Deeper replies are not fetched.
const CommentReplyDepth = 3

// CommentThreadIncludes lists the include paths for a comment thread: the
// comment's author, then each reply level followed by that level's authors.
func CommentThreadIncludes() []string {
	paths := []string{"User"}
	for depth := 1; depth <= CommentReplyDepth; depth++ {
		level := strings.TrimSuffix(strings.Repeat("Replies.", depth), ".")
		paths = append(paths, level, level+".User")
	}
	return paths
}

type CommentParams struct {
	PostID int64
	Paging
}

// Top-level comments only; replies arrive through the thread includes.
func commentCriteria(p CommentParams) specification.Criterion {
	return specification.All(
		specification.Eq("post_id", p.PostID),
		specification.IsNull("parent_id"),
	)
}

func NewCommentThreadSpec(p CommentParams) specification.Specification[model.Comment] {
	pg := p.Paging.Normalize()
	return specification.New[model.Comment](commentCriteria(p)).
		Include(CommentThreadIncludes()...).
		OrderBy("id").
		Page(pg.PageIndex, pg.PageSize).
		Build()
}

func NewCommentCountSpec(p CommentParams) specification.Specification[model.Comment] {
	return specification.New[model.Comment](commentCriteria(p)).Build()
}

// CommentsOfPost matches every comment of a post, replies included.
func CommentsOfPost(postID int64) specification.Criterion {
	return specification.Eq("post_id", postID)
}
