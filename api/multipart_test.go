package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64p(v int64) *int64 { return &v }

func TestCreateArticleMultipart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/articles", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var payload ArticlePayload
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("article")), &payload))
		assert.Equal(t, "Backend Engineer", payload.Title)
		require.NotNil(t, payload.SalaryMin)
		require.NotNil(t, payload.SalaryMax)
		assert.EqualValues(t, 1000, *payload.SalaryMin)
		assert.EqualValues(t, 2000, *payload.SalaryMax)
		assert.Equal(t, "2026-09-13", payload.DueDate)

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "logo.png", header.Filename)
		content, _ := io.ReadAll(file)
		assert.Equal(t, []byte("png-bytes"), content)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Article{ID: 7, Title: payload.Title, Status: ArticlePending})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("acc", "ref"))

	article, err := client.CreateArticle(context.Background(), ArticlePayload{
		Title:     "Backend Engineer",
		SalaryMin: int64p(1000),
		SalaryMax: int64p(2000),
		DueDate:   "2026-09-13",
	}, &Upload{FileName: "logo.png", Content: []byte("png-bytes")})
	require.NoError(t, err)
	assert.EqualValues(t, 7, article.ID)
	assert.Equal(t, ArticlePending, article.Status)
}

func TestCreateArticleWithoutImage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/articles", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.NotEmpty(t, r.FormValue("article"))
		_, _, err := r.FormFile("image")
		assert.Error(t, err, "image part must be absent")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Article{ID: 8})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("acc", "ref"))

	_, err := client.CreateArticle(context.Background(), ArticlePayload{Title: "No image"}, nil)
	require.NoError(t, err)
}

func TestCreateApplicantMultipart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/applicants", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var payload ApplicantPayload
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("applicant")), &payload))
		assert.Equal(t, "Alice Nguyen", payload.FullName)
		assert.EqualValues(t, 42, payload.ArticleID)

		files := r.MultipartForm.File["files"]
		require.Len(t, files, 2)
		assert.Equal(t, "cv.pdf", files[0].Filename)
		assert.Equal(t, "cover.pdf", files[1].Filename)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Applicant{ID: 3, Status: ApplicantSubmitted})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("acc", "ref"))

	applicant, err := client.CreateApplicant(context.Background(), ApplicantPayload{
		FullName:  "Alice Nguyen",
		Phone:     "0900000000",
		ArticleID: 42,
	}, []Upload{
		{FileName: "cv.pdf", Content: []byte("%PDF-1")},
		{FileName: "cover.pdf", Content: []byte("%PDF-2")},
	})
	require.NoError(t, err)
	assert.Equal(t, ApplicantSubmitted, applicant.Status)
}

func TestMultipartReplayedAfter401(t *testing.T) {
	calls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/api/applicants", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		// the replay must carry a complete multipart body again
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.NotEmpty(t, r.FormValue("applicant"))
		require.Len(t, r.MultipartForm.File["files"], 1)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Applicant{ID: 9})
	})
	mux.HandleFunc("/api/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "new", RefreshToken: "newer"})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("stale", "ref"))

	_, err := client.CreateApplicant(context.Background(), ApplicantPayload{
		FullName:  "Bob",
		ArticleID: 1,
	}, []Upload{{FileName: "cv.pdf", Content: []byte("%PDF")}})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestUpdateAvatarMultipart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/update-avatar", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("avatar")
		require.NoError(t, err)
		assert.Equal(t, "me.jpg", header.Filename)
		w.WriteHeader(http.StatusOK)
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("acc", "ref"))

	err := client.UpdateAvatar(context.Background(), Upload{FileName: "me.jpg", Content: []byte("jpeg")})
	require.NoError(t, err)
}
