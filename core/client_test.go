package core_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/picatz/dnslists/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, core.UserAgent, r.UserAgent())

		switch r.URL.Path {
		case "/list.md":
			w.Write([]byte("## resolver\nsdns://AQcAAAAAAAAADjIwOC42Ny4yMjAuMjIw\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := core.NewClient(core.ClientOptions{Timeout: 5 * time.Second})

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{
			name: "ok",
			path: "/list.md",
			want: "## resolver\nsdns://AQcAAAAAAAAADjIwOC42Ny4yMjAuMjIw\n",
		},
		{
			name:    "not found",
			path:    "/missing.md",
			wantErr: core.ErrUnexpectedStatus,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc, err := core.Fetch(context.Background(), client, srv.URL+test.path)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, string(doc))
		})
	}
}

func TestFetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("unreachable"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := core.Fetch(ctx, core.NewClient(core.ClientOptions{}), srv.URL)
	require.Error(t, err)
}
