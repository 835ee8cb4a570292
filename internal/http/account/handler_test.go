package account_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lfonseca/moneta/internal/account"
	accounthttp "github.com/lfonseca/moneta/internal/http/account"
)

func newServer(t *testing.T) (*account.MockRepository, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := account.NewMockRepository(ctrl)
	h := accounthttp.NewHandler(account.NewService(repo))

	r := chi.NewRouter()
	r.Route("/accounts", h.Routes)

	return repo, r
}

func TestHandler_Update_MissingName(t *testing.T) {
	_, srv := newServer(t)

	req := httptest.NewRequest(http.MethodPut, "/accounts/"+uuid.NewString(),
		strings.NewReader(`{"type":"bank_account","balance":"100"}`))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"name is required"}`, rec.Body.String())
}

func TestHandler_Get_NotFoundIsJSON(t *testing.T) {
	repo, srv := newServer(t)

	id := uuid.New()
	repo.EXPECT().GetAccount(gomock.Any(), id).Return(nil, account.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/accounts/"+id.String(), nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"account not found"}`, rec.Body.String())
}

func TestHandler_Create_InvalidTypeIsJSON(t *testing.T) {
	_, srv := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/accounts",
		strings.NewReader(`{"name":"Checking","type":"checking"}`))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Error string `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
}
