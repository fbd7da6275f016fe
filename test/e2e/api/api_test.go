package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/projectalpha/alpha/internal/api/app"

	"github.com/stretchr/testify/require"
)

/*
 * End-to-end test of the full user journey through a wired Application:
 * register, log in, verify the session, visit the dashboard, then run a
 * post through its whole lifecycle including a file attachment.
 */

const (
	testName     = "Test Runner"
	testEmail    = "runner@example.com"
	testPassword = "RunnerPass123!"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()

	application, err := app.New(app.Config{
		TokenSecret:         "e2e-test-secret",
		TokenTTL:            time.Hour,
		DatabaseFile:        filepath.Join(dir, "e2e.db"),
		UploadDriver:        "local",
		UploadDir:           filepath.Join(dir, "uploads"),
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		ShutdownGracePeriod: time.Second,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return do(t, req)
}

func getJSON(t *testing.T, url, token string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return do(t, req)
}

func do(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp, body
}

func TestFullUserJourney(t *testing.T) {
	srv := setupServer(t)

	// Health check comes up before any account exists.
	resp, body := getJSON(t, srv.URL+"/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Project Alpha API is running", body["message"])

	// Register.
	resp, body = postJSON(t, srv.URL+"/api/auth/register", "", map[string]string{
		"name": testName, "email": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "User registered successfully", body["message"])

	// A second registration with the same email conflicts.
	resp, _ = postJSON(t, srv.URL+"/api/auth/register", "", map[string]string{
		"name": "Imposter", "email": testEmail, "password": "other",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Log in.
	resp, body = postJSON(t, srv.URL+"/api/auth/login", "", map[string]string{
		"email": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	// Verify the session.
	resp, body = getJSON(t, srv.URL+"/api/auth/verify", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["valid"])
	require.Equal(t, testEmail, body["user"])

	// Dashboard greets by name.
	resp, body = getJSON(t, srv.URL+"/api/dashboard", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, fmt.Sprintf("Welcome to your dashboard, %s!", testName), body["message"])

	// Create a post with an attachment.
	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	for k, v := range map[string]string{
		"title":        "Journey Post",
		"type":         "article",
		"content_json": `{"body":"e2e"}`,
		"tags":         "e2e, journey",
		"category":     "testing",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", "journey.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("attachment payload"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/posts", &form)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, body = do(t, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	postID := int64(body["post_id"].(float64))
	fileURL := body["file_url"].(string)

	// The attachment is served back at its recorded URL.
	fileResp, err := http.Get(srv.URL + fileURL)
	require.NoError(t, err)
	fileData, err := io.ReadAll(fileResp.Body)
	require.NoError(t, err)
	_ = fileResp.Body.Close()
	require.Equal(t, http.StatusOK, fileResp.StatusCode)
	require.Equal(t, "attachment payload", string(fileData))

	// Fetch the post back.
	resp, body = getJSON(t, fmt.Sprintf("%s/api/posts/%d", srv.URL, postID), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Journey Post", body["title"])
	require.Equal(t, fileURL, body["file_url"])

	// Update it.
	var update bytes.Buffer
	uw := multipart.NewWriter(&update)
	for k, v := range map[string]string{
		"title":        "Journey Post v2",
		"type":         "article",
		"content_json": `{"body":"edited"}`,
		"tags":         "final",
		"category":     "testing",
	} {
		require.NoError(t, uw.WriteField(k, v))
	}
	require.NoError(t, uw.Close())

	req, err = http.NewRequest(http.MethodPut, fmt.Sprintf("%s/api/posts/%d", srv.URL, postID), &update)
	require.NoError(t, err)
	req.Header.Set("Content-Type", uw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, body = do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Post updated successfully", body["message"])

	// Delete it and confirm it is gone.
	req, err = http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/posts/%d", srv.URL, postID), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, body = do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Post deleted successfully", body["message"])

	resp, _ = getJSON(t, fmt.Sprintf("%s/api/posts/%d", srv.URL, postID), token)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMissingTokenSecretRefused(t *testing.T) {
	_, err := app.New(app.Config{
		DatabaseFile: filepath.Join(t.TempDir(), "nope.db"),
	})
	require.ErrorIs(t, err, app.ErrMissingTokenSecret)
}
