package http

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/projectalpha/alpha/internal/api/domain"
	"github.com/projectalpha/alpha/internal/api/service"
	"github.com/projectalpha/alpha/internal/api/store"
	"github.com/projectalpha/alpha/pkg/httpx"
	"github.com/projectalpha/alpha/pkg/slogx"
)

const defaultMaxUploadSize = 10 << 20 // 10 MiB

type PostsHandler struct {
	PostService   *service.PostService
	UserService   *service.UserService
	MaxUploadSize int64
}

type postView struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	ContentJSON string    `json:"content_json"`
	Tags        []string  `json:"tags"`
	Category    string    `json:"category"`
	FileURL     string    `json:"file_url,omitempty"`
	URL         string    `json:"url,omitempty"`
	Author      string    `json:"author,omitempty"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func newPostView(p domain.Post) postView {
	return postView{
		ID:          p.ID,
		Title:       p.Title,
		Type:        p.Type,
		ContentJSON: p.ContentJSON,
		Tags:        p.Tags,
		Category:    p.Category,
		FileURL:     p.FileURL,
		URL:         p.URL,
		Author:      p.Author,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
	}
}

// Create handles new post submission.
//
//	@Summary		Create a post
//	@Description	Multipart form with the post fields and an optional file attachment.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			mpfd
//	@Produce		json
//	@Param			title			formData	string	true	"Post title"
//	@Param			type			formData	string	true	"Post type"
//	@Param			content_json	formData	string	true	"Post content as a JSON document"
//	@Param			tags			formData	string	true	"Comma separated tags"
//	@Param			category		formData	string	true	"Category"
//	@Param			url				formData	string	false	"External link"
//	@Param			author			formData	string	false	"Display author"
//	@Param			file			formData	file	false	"Attachment"
//	@Success		201				{object}	map[string]any	"message, post_id and file_url"
//	@Failure		400				{object}	map[string]string
//	@Failure		401				{object}	map[string]string
//	@Failure		500				{object}	map[string]string
//	@Router			/api/posts [post].
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := h.resolveUser(w, r)
	if !ok {
		return
	}

	in, att, ok := h.parsePostForm(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.Create(ctx, userID, in, att)
	if err != nil {
		log.Error("post creation failed", "err", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Post creation failed")
		return
	}

	// file_url is always present, null when nothing was uploaded.
	var fileURL any
	if post.FileURL != "" {
		fileURL = post.FileURL
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":  "Post created successfully",
		"post_id":  post.ID,
		"file_url": fileURL,
	})
}

// List returns the caller's posts, newest first.
//
//	@Summary	List posts
//	@Tags		Posts
//	@Security	BearerAuth
//	@Produce	json
//	@Param		limit	query		int	false	"Page size (default 10)"
//	@Param		offset	query		int	false	"Page offset"
//	@Success	200		{array}		postView
//	@Failure	401		{object}	map[string]string
//	@Failure	500		{object}	map[string]string
//	@Router		/api/posts [get].
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := h.resolveUser(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	posts, err := h.PostService.List(ctx, userID, limit, offset)
	if err != nil {
		log.Error("post listing failed", "err", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newPostView(p))
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

// Get returns a single post owned by the caller.
//
//	@Summary	Get a post
//	@Tags		Posts
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Post id"
//	@Success	200	{object}	postView
//	@Failure	401	{object}	map[string]string
//	@Failure	404	{object}	map[string]string	"Post missing or owned by someone else"
//	@Failure	500	{object}	map[string]string
//	@Router		/api/posts/{id} [get].
func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := h.resolveUser(w, r)
	if !ok {
		return
	}

	id, ok := postID(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.Get(ctx, id, userID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			httpx.WriteDetail(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Error("post fetch failed", "err", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Failed to fetch post")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newPostView(post))
}

// Update rewrites a post owned by the caller.
//
//	@Summary	Update a post
//	@Tags		Posts
//	@Security	BearerAuth
//	@Accept		mpfd
//	@Produce	json
//	@Param		id	path		int	true	"Post id"
//	@Success	200	{object}	map[string]string
//	@Failure	400	{object}	map[string]string
//	@Failure	401	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/api/posts/{id} [put].
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := h.resolveUser(w, r)
	if !ok {
		return
	}

	id, ok := postID(w, r)
	if !ok {
		return
	}

	in, att, ok := h.parsePostForm(w, r)
	if !ok {
		return
	}

	if _, err := h.PostService.Update(ctx, id, userID, in, att); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			httpx.WriteDetail(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Error("post update failed", "err", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Failed to update post")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Post updated successfully",
	})
}

// Delete removes a post owned by the caller.
//
//	@Summary	Delete a post
//	@Tags		Posts
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Post id"
//	@Success	200	{object}	map[string]string
//	@Failure	401	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/api/posts/{id} [delete].
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := h.resolveUser(w, r)
	if !ok {
		return
	}

	id, ok := postID(w, r)
	if !ok {
		return
	}

	if err := h.PostService.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			httpx.WriteDetail(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Error("post delete failed", "err", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Post deleted successfully",
	})
}

// resolveUser maps the authenticated email to the stable account id. Tokens
// stay valid after an account is deleted, so a miss here is a 404.
func (h *PostsHandler) resolveUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email := httpx.EmailFromContext(ctx)

	userID, err := h.UserService.ResolveUserID(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteDetail(w, http.StatusNotFound, "User not found")
			return "", false
		}
		log.Error("user lookup failed", "err", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "User lookup failed")
		return "", false
	}
	return userID, true
}

// parsePostForm reads the post fields out of a multipart or urlencoded form.
// The attachment is nil when no file was sent.
func (h *PostsHandler) parsePostForm(w http.ResponseWriter, r *http.Request) (service.PostInput, *service.Attachment, bool) {
	maxSize := h.MaxUploadSize
	if maxSize <= 0 {
		maxSize = defaultMaxUploadSize
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxSize)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.WriteDetail(w, http.StatusBadRequest, "Upload too large")
			return service.PostInput{}, nil, false
		}
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid form data")
		return service.PostInput{}, nil, false
	}

	in := service.PostInput{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Type:        strings.TrimSpace(r.FormValue("type")),
		ContentJSON: r.FormValue("content_json"),
		Tags:        r.FormValue("tags"),
		Category:    strings.TrimSpace(r.FormValue("category")),
		URL:         strings.TrimSpace(r.FormValue("url")),
		Author:      strings.TrimSpace(r.FormValue("author")),
	}

	for field, value := range map[string]string{
		"title":        in.Title,
		"type":         in.Type,
		"content_json": in.ContentJSON,
		"category":     in.Category,
	} {
		if value == "" {
			httpx.WriteDetail(w, http.StatusBadRequest, "Missing required field: "+field)
			return service.PostInput{}, nil, false
		}
	}

	var att *service.Attachment
	if r.MultipartForm != nil {
		if file, header, err := r.FormFile("file"); err == nil {
			att = &service.Attachment{Filename: header.Filename, Reader: file}
		}
	}

	return in, att, true
}

func postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteDetail(w, http.StatusNotFound, "Post not found")
		return 0, false
	}
	return id, true
}
