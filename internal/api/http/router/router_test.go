package router_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/inklet/inklet-server/internal/api/http/context"
	"github.com/inklet/inklet-server/internal/api/http/handler"
	"github.com/inklet/inklet-server/internal/api/http/middleware"
	"github.com/inklet/inklet-server/internal/api/http/router"
	"github.com/inklet/inklet-server/internal/model"
	"github.com/inklet/inklet-server/internal/testutil"
	"github.com/inklet/inklet-server/internal/token"
)

type stubAuthService struct {
	user  model.User
	token string
}

func (s *stubAuthService) SignUp(ctx context.Context, fullName, email, secret string) (model.User, string, error) {
	return s.user, s.token, nil
}

func (s *stubAuthService) Login(ctx context.Context, email, secret string) (model.User, string, error) {
	return s.user, s.token, nil
}

func (s *stubAuthService) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	return s.user, nil
}

type stubNoteService struct {
	notes []model.Note
}

func (s *stubNoteService) CreateNote(ctx context.Context, params model.CreateNoteParams) (model.Note, error) {
	return model.Note{ID: uuid.New(), OwnerID: params.OwnerID, Title: params.Title, Content: params.Content, Tags: params.Tags}, nil
}

func (s *stubNoteService) UpdateNote(ctx context.Context, ownerID, noteID uuid.UUID, patch model.NotePatch) (model.Note, error) {
	return model.Note{ID: noteID, OwnerID: ownerID}, nil
}

func (s *stubNoteService) UpdatePin(ctx context.Context, ownerID, noteID uuid.UUID, isPinned *bool) (model.Note, error) {
	return model.Note{ID: noteID, OwnerID: ownerID}, nil
}

func (s *stubNoteService) DeleteNote(ctx context.Context, ownerID, noteID uuid.UUID) error {
	return nil
}

func (s *stubNoteService) ListNotes(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	return s.notes, nil
}

func (s *stubNoteService) SearchNotes(ctx context.Context, ownerID uuid.UUID, query string) ([]model.Note, error) {
	return s.notes, nil
}

type testRouter struct {
	handler http.Handler
	tokens  model.TokenManager
	user    model.User
}

func makeRouter(t *testing.T, dbPing func(ctx context.Context) error) testRouter {
	t.Helper()

	log := testutil.MakeNoopLogger()
	cm := httpctx.NewManager()
	tokens := token.NewJWT("router-test-secret")

	user := model.User{ID: uuid.New(), FullName: "Greta Stone", Email: "greta@example.com"}
	authSvc := &stubAuthService{user: user, token: "stub-token"}
	noteSvc := &stubNoteService{notes: []model.Note{}}

	if dbPing == nil {
		dbPing = func(ctx context.Context) error { return nil }
	}

	reg := prometheus.NewRegistry()
	rt := router.New(
		handler.NewAuth(authSvc, cm, log),
		handler.NewNote(noteSvc, cm, log),
		middleware.NewAuthenticate(tokens, cm, log),
		middleware.NewLogging(log),
		middleware.NewMetrics(reg),
		reg,
		dbPing,
		log,
	)

	return testRouter{handler: rt.Register(), tokens: tokens, user: user}
}

func TestRouter_PublicRoutes(t *testing.T) {
	tr := makeRouter(t, nil)

	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login",
		bytes.NewBufferString(`{"email":"greta@example.com","password":"hunter22"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stub-token")
}

func TestRouter_ProtectedRouteRequiresToken(t *testing.T) {
	tr := makeRouter(t, nil)

	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getAllNotes", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ProtectedRouteWithToken(t *testing.T) {
	tr := makeRouter(t, nil)

	accessToken, err := tr.tokens.Issue(tr.user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/getAllNotes", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"notes":[]`)
}

func TestRouter_MethodMismatch(t *testing.T) {
	tr := makeRouter(t, nil)

	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_Healthz(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		tr := makeRouter(t, nil)

		rec := httptest.NewRecorder()
		tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("database down", func(t *testing.T) {
		tr := makeRouter(t, func(ctx context.Context) error {
			return errors.New("pool closed")
		})

		rec := httptest.NewRecorder()
		tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
	})
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	tr := makeRouter(t, nil)

	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login",
		bytes.NewBufferString(`{"email":"a@b.c","password":"x"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inklet_api_http_requests_total")
}
