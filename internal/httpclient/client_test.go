package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	client := New(15 * time.Second)
	require.NotNil(t, client)
	assert.Equal(t, 15*time.Second, client.Timeout)
}

func TestRedirectCap(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// redirect to self forever
		http.Redirect(w, r, server.URL, http.StatusFound)
	}))
	defer server.Close()

	client := New(5 * time.Second)
	resp, err := client.Get(server.URL)
	if resp != nil {
		resp.Body.Close()
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after 10 redirects")
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		shouldErr bool
	}{
		{"http", "http://localhost:8080", false},
		{"https", "https://portal.example.com", false},
		{"trailing path", "https://portal.example.com/api", false},
		{"file scheme", "file:///etc/passwd", true},
		{"missing host", "http://", true},
		{"relative", "/api", true},
		{"garbage", "://nope", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ValidateBaseURL(tt.url)
			if tt.shouldErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, u)
		})
	}
}
