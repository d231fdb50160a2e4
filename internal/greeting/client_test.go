package greeting

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		status  int
		wantOK  bool
		wantErr error
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"message":"hi"}`,
			want:   "hi",
			wantOK: true,
		},
		{
			name:   "missing message field",
			status: http.StatusOK,
			body:   `{}`,
			want:   "",
			wantOK: true,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"message":"ignored"}`,
			want:   FailureMessage,
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   "nope",
			want:   FailureMessage,
		},
		{
			name:    "malformed JSON",
			status:  http.StatusOK,
			body:    `{"message":`,
			wantErr: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/test", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL+"/api/test", WithHTTPClient(server.Client()))
			result, err := client.Fetch(context.Background())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Message)
			assert.Equal(t, tt.wantOK, result.OK)
			assert.Equal(t, tt.status, result.StatusCode)
		})
	}
}

func TestClient_Fetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	_, err := NewClient(endpoint).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestClient_Fetch_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"late"}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL).Fetch(ctx)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_NoTimeout(t *testing.T) {
	client := NewClient("http://localhost:8080/api/test")
	assert.Zero(t, client.httpClient.Timeout)
	assert.Equal(t, "http://localhost:8080/api/test", client.Endpoint())

	client = NewClient("http://x", WithHTTPClient(nil))
	assert.NotNil(t, client.httpClient)
}

func TestStatic_Fetch(t *testing.T) {
	result, err := Static{Message: "Hello, World !"}.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "Hello, World !", result.Message)
}
