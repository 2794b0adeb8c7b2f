package catalogservice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, 2*time.Second, noopLogger{})
	return client, server
}

func TestGetDefaultDuration(t *testing.T) {
	t.Run("returns configured duration", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/internal/categories/default-duration", r.URL.Path)
			assert.Equal(t, "Food:Restaurants:Sushi", r.URL.Query().Get("key"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"category_key": "Food:Restaurants:Sushi", "duration_days": 5}`))
		})
		defer server.Close()

		duration, err := client.GetDefaultDuration(context.Background(), "Food:Restaurants:Sushi")
		require.NoError(t, err)
		assert.Equal(t, 5, duration)
	})

	t.Run("404 maps to ErrCategoryNotFound", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer server.Close()

		_, err := client.GetDefaultDuration(context.Background(), "Unknown")
		assert.True(t, errors.Is(err, ErrCategoryNotFound))
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"duration_days": 0}`))
		})
		defer server.Close()

		_, err := client.GetDefaultDuration(context.Background(), "Food")
		assert.True(t, errors.Is(err, ErrInvalidResponse))
	})
}

func TestGetDefaultDurationWithGracefulDegradation(t *testing.T) {
	t.Run("server error degrades instead of failing", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer server.Close()

		_, err := client.GetDefaultDurationWithGracefulDegradation(context.Background(), "Food")
		assert.True(t, errors.Is(err, ErrServiceDegraded))
	})

	t.Run("unreachable service degrades", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, noopLogger{})

		_, err := client.GetDefaultDurationWithGracefulDegradation(context.Background(), "Food")
		assert.True(t, errors.Is(err, ErrServiceDegraded))
	})

	t.Run("missing category is passed through", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer server.Close()

		_, err := client.GetDefaultDurationWithGracefulDegradation(context.Background(), "Unknown")
		assert.True(t, errors.Is(err, ErrCategoryNotFound))
	})
}

func TestGetCategoryTree(t *testing.T) {
	t.Run("builds validated domain tree", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/internal/categories/tree", r.URL.Path)
			_, _ = w.Write([]byte(`{
				"name": "root",
				"children": [
					{"name": "Food", "children": [
						{"name": "Restaurants", "children": [
							{"name": "Sushi", "children": []}
						]}
					]}
				]
			}`))
		})
		defer server.Close()

		tree, err := client.GetCategoryTree(context.Background())
		require.NoError(t, err)

		path, _ := domain.NewCategoryPath("Food", "Restaurants", "Sushi")
		assert.True(t, tree.ContainsPath(path))

		missing, _ := domain.NewCategoryPath("Electronics")
		assert.False(t, tree.ContainsPath(missing))
	})

	t.Run("duplicate siblings are rejected", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"name": "root",
				"children": [
					{"name": "Food", "children": []},
					{"name": "Food", "children": []}
				]
			}`))
		})
		defer server.Close()

		_, err := client.GetCategoryTree(context.Background())
		assert.True(t, errors.Is(err, ErrInvalidResponse))
	})
}
