package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"newspector/internal/model"
)

type fakeAggregateStore struct {
	account *model.Account
	group   *model.NewsGroup
	err     error
}

func (f *fakeAggregateStore) GetAccount(ctx context.Context, username string) (*model.Account, error) {
	return f.account, f.err
}

func (f *fakeAggregateStore) GetNewsGroup(ctx context.Context, id string) (*model.NewsGroup, error) {
	return f.group, f.err
}

func newAggregateRouter(store AggregateStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAggregateHandler(store)
	r.GET("/accounts/:id", h.GetAccount)
	r.GET("/groups/:id", h.GetNewsGroup)
	r.GET("/health", h.GetHealth)
	return r
}

func TestGetAccountFound(t *testing.T) {
	store := &fakeAggregateStore{
		account: &model.Account{
			Username:    "alice",
			CategoryMap: model.CategoryMap{"Sports": 3},
			NewsCount:   5,
			FirstComer:  2,
		},
	}
	r := newAggregateRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/accounts/alice", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res AccountResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, int64(3), res.CategoryMap["Sports"])
	assert.Equal(t, int64(5), res.NewsCount)
	assert.Equal(t, int64(2), res.FirstComer)
}

func TestGetAccountNotFound(t *testing.T) {
	r := newAggregateRouter(&fakeAggregateStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/accounts/nobody", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetNewsGroupFound(t *testing.T) {
	store := &fakeAggregateStore{
		group: &model.NewsGroup{
			ID:          "g1",
			Category:    "Sports",
			CategoryMap: model.CategoryMap{"Sports": 4, "Politics": 1},
			IsActive:    true,
			Count:       5,
		},
	}
	r := newAggregateRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/groups/g1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res GroupResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "g1", res.ID)
	assert.Equal(t, "Sports", res.Category)
	assert.Equal(t, int64(5), res.Count)
	assert.Equal(t, true, res.IsActive)
}

func TestGetHealthUnhealthy(t *testing.T) {
	r := newAggregateRouter(&fakeAggregateStore{err: errors.New("DB down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "unhealthy", res["status"])
}

func TestGetHealthHealthy(t *testing.T) {
	r := newAggregateRouter(&fakeAggregateStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
