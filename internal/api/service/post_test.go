package service

import (
	"context"
	"strings"
	"testing"

	"github.com/projectalpha/alpha/internal/api/storage"
	"github.com/projectalpha/alpha/pkg/idx"

	"github.com/stretchr/testify/require"
)

func newPostService(t *testing.T) (*PostService, string) {
	t.Helper()

	st := newTestStore(t)
	auth := &AuthService{Store: st}
	user, err := auth.Register(context.Background(), "Poster", "poster@example.com", "", "s3cret-pass")
	require.NoError(t, err)

	uploads, err := storage.NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)

	return &PostService{Store: st, Storage: uploads}, user.ID
}

func TestPostServiceCreate(t *testing.T) {
	t.Parallel()

	input := PostInput{
		Title:       "Hello",
		Type:        "article",
		ContentJSON: `{"body":"first post"}`,
		Tags:        "go, http,  api",
		Category:    "dev",
		Author:      "Poster",
	}

	t.Run("parses comma separated tags", func(t *testing.T) {
		t.Parallel()
		svc, userID := newPostService(t)

		post, err := svc.Create(context.Background(), userID, input, nil)
		require.NoError(t, err)
		require.Equal(t, []string{"go", "http", "api"}, post.Tags)
		require.Empty(t, post.FileURL)
	})

	t.Run("empty tag string yields no tags", func(t *testing.T) {
		t.Parallel()
		svc, userID := newPostService(t)

		in := input
		in.Tags = " , ,"
		post, err := svc.Create(context.Background(), userID, in, nil)
		require.NoError(t, err)
		require.Empty(t, post.Tags)
	})

	t.Run("stores an attachment and records its url", func(t *testing.T) {
		t.Parallel()
		svc, userID := newPostService(t)

		att := &Attachment{Filename: "diagram.txt", Reader: strings.NewReader("boxes and arrows")}
		post, err := svc.Create(context.Background(), userID, input, att)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(post.FileURL, "/uploads/"))
		require.True(t, strings.HasSuffix(post.FileURL, ".txt"))
	})
}

func TestPostServiceLifecycle(t *testing.T) {
	t.Parallel()

	svc, userID := newPostService(t)
	otherID := idx.New().String()

	post, err := svc.Create(context.Background(), userID, PostInput{
		Title: "Draft", Type: "article", ContentJSON: `{}`, Tags: "draft",
	}, nil)
	require.NoError(t, err)

	t.Run("get returns own posts only", func(t *testing.T) {
		got, err := svc.Get(context.Background(), post.ID, userID)
		require.NoError(t, err)
		require.Equal(t, "Draft", got.Title)

		_, err = svc.Get(context.Background(), post.ID, otherID)
		require.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("update keeps the attachment url when none is sent", func(t *testing.T) {
		withFile, err := svc.Update(context.Background(), post.ID, userID, PostInput{
			Title: "Draft", Type: "article", ContentJSON: `{}`,
		}, &Attachment{Filename: "a.txt", Reader: strings.NewReader("v1")})
		require.NoError(t, err)
		require.NotEmpty(t, withFile.FileURL)

		updated, err := svc.Update(context.Background(), post.ID, userID, PostInput{
			Title: "Published", Type: "article", ContentJSON: `{"body":"done"}`, Tags: "final",
		}, nil)
		require.NoError(t, err)
		require.Equal(t, "Published", updated.Title)
		require.Equal(t, []string{"final"}, updated.Tags)
		require.Equal(t, withFile.FileURL, updated.FileURL)
	})

	t.Run("update rejects foreign posts", func(t *testing.T) {
		_, err := svc.Update(context.Background(), post.ID, otherID, PostInput{Title: "Hijack"}, nil)
		require.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("delete removes the post", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(context.Background(), post.ID, otherID), ErrPostNotFound)
		require.NoError(t, svc.Delete(context.Background(), post.ID, userID))
		_, err := svc.Get(context.Background(), post.ID, userID)
		require.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestPostServiceList(t *testing.T) {
	t.Parallel()

	svc, userID := newPostService(t)

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.Create(context.Background(), userID, PostInput{
			Title: title, Type: "article", ContentJSON: `{}`,
		}, nil)
		require.NoError(t, err)
	}

	posts, err := svc.List(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, "three", posts[0].Title)

	page, err := svc.List(context.Background(), userID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)

	var titles []string
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	require.Equal(t, []string{"three", "two", "one"}, titles)
}

func TestSplitTags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ", []string{"a", "b"}},
		{"", nil},
		{",,", nil},
		{"solo", []string{"solo"}},
	}

	for _, tc := range cases {
		got := splitTags(tc.raw)
		if tc.want == nil {
			require.Empty(t, got, "raw=%q", tc.raw)
			continue
		}
		require.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}
