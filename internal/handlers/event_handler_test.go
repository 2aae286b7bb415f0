package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/sponzo/internal/middleware"
	"github.com/farellandr/sponzo/internal/repository"
	"github.com/farellandr/sponzo/internal/services"
	"github.com/farellandr/sponzo/internal/store"
)

// racingDeleteRepository removes the event on behalf of another request just
// before its own delete runs.
type racingDeleteRepository struct {
	*repository.EventRepository
}

func (r racingDeleteRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := r.EventRepository.Delete(ctx, id); err != nil {
		return false, err
	}
	return r.EventRepository.Delete(ctx, id)
}

func newDeleteRouter(t *testing.T, events services.EventRepository) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := store.NewMemoryStore()
	auth := services.NewAuthService(repository.NewAccountRepository(s), services.AuthOptions{})

	h := &Handler{Auth: auth, Events: services.NewEventService(events)}
	router := gin.New()
	router.DELETE("/events/:id", middleware.JWTAuthMiddleware("test-secret", auth), h.DeleteEvent)

	admin, err := auth.Account(context.Background(), "admin-1")
	require.NoError(t, err)
	token, err := middleware.GenerateToken("test-secret", admin, time.Hour)
	require.NoError(t, err)
	return router, token
}

func deleteEvent(router *gin.Engine, token, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/events/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDeleteEvent(t *testing.T) {
	events := repository.NewEventRepository(store.NewMemoryStore())
	router, token := newDeleteRouter(t, events)

	rec := deleteEvent(router, token, "event-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event deleted successfully.")

	rec = deleteEvent(router, token, "event-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEvent_LostRaceIsNotFound(t *testing.T) {
	events := repository.NewEventRepository(store.NewMemoryStore())
	router, token := newDeleteRouter(t, racingDeleteRepository{events})

	rec := deleteEvent(router, token, "event-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "deleted successfully")

	_, err := events.FindByID(context.Background(), "event-1")
	assert.Error(t, err)
}
