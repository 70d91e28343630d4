package xclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xdomain "github.com/vfg2006/creator-campaign-api/infrastructure/integrator/x/domain"
	"github.com/vfg2006/creator-campaign-api/internal/config"
)

func newTestClient(baseURL string) Client {
	return NewClient(&config.Config{
		X: config.X{
			BaseURL:     baseURL,
			BearerToken: "token-de-teste",
			Timeout:     2 * time.Second,
			MaxRetries:  2,
		},
	})
}

func TestXClient_GetUserTweets(t *testing.T) {
	start := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/users/42/tweets", r.URL.Path)
		assert.Equal(t, "Bearer token-de-teste", r.Header.Get("Authorization"))
		assert.Equal(t, "1000", r.URL.Query().Get("since_id"))
		assert.Equal(t, "60", r.URL.Query().Get("max_results"))
		assert.Equal(t, "2026-10-15T12:00:00Z", r.URL.Query().Get("start_time"))
		assert.Equal(t, tweetFields, r.URL.Query().Get("tweet.fields"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": "1002", "author_id": "42", "text": "hello $ACAD", "created_at": "2026-10-16T10:00:00.000Z",
				 "public_metrics": {"like_count": 10, "reply_count": 5, "retweet_count": 1, "quote_count": 0}}
			],
			"meta": {"result_count": 1, "newest_id": "1002", "oldest_id": "1002"}
		}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).GetUserTweets(context.Background(), UserTweetsParams{
		UserID:     "42",
		SinceID:    "1000",
		StartTime:  start,
		MaxResults: 60,
	})

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "1002", resp.Data[0].ID)
	assert.Equal(t, int64(5), resp.Data[0].PublicMetrics.ReplyCount)
	assert.Equal(t, "1002", resp.Meta.NewestID)
}

func TestXClient_GetTweetsByIDs(t *testing.T) {
	tests := []struct {
		name        string
		handler     func(calls *int32) http.HandlerFunc
		ids         []string
		expectedErr func(t *testing.T, err error)
		expectedLen int
		calls       int32
	}{
		{
			name: "Deve repetir respostas 5xx e retornar sucesso",
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					if atomic.AddInt32(calls, 1) == 1 {
						w.WriteHeader(http.StatusServiceUnavailable)
						return
					}
					assert.Equal(t, "1,2", r.URL.Query().Get("ids"))
					_, _ = w.Write([]byte(`{"data":[{"id":"1","text":"a"}],"errors":[{"title":"Not Found Error","resource_id":"2"}]}`))
				}
			},
			ids:         []string{"1", "2"},
			expectedLen: 1,
			calls:       2,
		},
		{
			name: "Não deve repetir limite de requisições",
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					w.WriteHeader(http.StatusTooManyRequests)
					_, _ = w.Write([]byte(`{"title":"Too Many Requests","detail":"Too Many Requests","status":429}`))
				}
			},
			ids: []string{"1"},
			expectedErr: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, xdomain.ErrRateLimited))
				var apiErr *xdomain.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
			},
			calls: 1,
		},
		{
			name: "Deve desistir após esgotar as tentativas",
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					w.WriteHeader(http.StatusBadGateway)
				}
			},
			ids: []string{"1"},
			expectedErr: func(t *testing.T, err error) {
				var apiErr *xdomain.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.True(t, apiErr.IsRetryable())
			},
			calls: 3,
		},
		{
			name: "Deve identificar credencial inválida",
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					w.WriteHeader(http.StatusUnauthorized)
				}
			},
			ids: []string{"1"},
			expectedErr: func(t *testing.T, err error) {
				var apiErr *xdomain.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.True(t, apiErr.IsUnauthorized())
			},
			calls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(tt.handler(&calls))
			defer server.Close()

			resp, err := newTestClient(server.URL).GetTweetsByIDs(context.Background(), tt.ids)

			if tt.expectedErr != nil {
				require.Error(t, err)
				tt.expectedErr(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, resp.Data, tt.expectedLen)
			}
			assert.Equal(t, tt.calls, atomic.LoadInt32(&calls))
		})
	}
}

func TestXClient_GetTweetsByIDsLimits(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0")

	resp, err := client.GetTweetsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Data)

	ids := make([]string, MaxLookupIDs+1)
	_, err = client.GetTweetsByIDs(context.Background(), ids)
	assert.Error(t, err)
}

func TestClampResults(t *testing.T) {
	assert.Equal(t, 5, clampResults(0))
	assert.Equal(t, 60, clampResults(60))
	assert.Equal(t, 100, clampResults(500))
}
