package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/logger"
	timeadapter "github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/time"
	ucmocks "github.com/amirhossein-jamali/headshot-service/mocks/port/usecase"
)

const (
	userID     = uint64(7)
	validToken = "valid-token"
)

type stubVerifier struct{}

func (stubVerifier) Verify(token string) (uint64, error) {
	if token == validToken {
		return userID, nil
	}
	return 0, errs.ErrAuthentication
}

type stubHealth struct {
	report database.HealthReport
}

func (s stubHealth) Health(context.Context) database.HealthReport {
	return s.report
}

type testAPI struct {
	router      *gin.Engine
	fulfillment *ucmocks.MockFulfillmentUseCase
	generations *ucmocks.MockGenerationUseCase
}

func newTestAPI(t *testing.T, health database.HealthReport) *testAPI {
	gin.SetMode(gin.TestMode)

	log := logger.NewNoopLogger()
	fulfillment := ucmocks.NewMockFulfillmentUseCase(t)
	generations := ucmocks.NewMockGenerationUseCase(t)

	router := gin.New()
	SetupMiddlewares(router, log, timeadapter.NewRealTimeProvider(), nil)
	SetupRoutes(router, Handlers{
		Webhook:    handler.NewWebhookHandler(fulfillment, log),
		Checkout:   handler.NewCheckoutHandler(fulfillment),
		Generation: handler.NewGenerationHandler(generations, fulfillment, log),
		Health:     handler.NewHealthHandler(stubHealth{report: health}),
	}, stubVerifier{})

	return &testAPI{router: router, fulfillment: fulfillment, generations: generations}
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+validToken)
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestWebhook(t *testing.T) {
	t.Run("acknowledges verified event", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})
		body := `{"id":"evt_1"}`
		api.fulfillment.On("HandleWebhook", mock.Anything, []byte(body), "t=1,v1=abc").
			Return(&usecase.WebhookResult{Received: true, Outcome: usecase.OutcomeTriggered, EventID: "evt_1"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", strings.NewReader(body))
		req.Header.Set(handler.SignatureHeader, "t=1,v1=abc")
		w := api.do(req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"received":true}`, w.Body.String())
	})

	t.Run("signature failure is 400", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})
		api.fulfillment.On("HandleWebhook", mock.Anything, mock.Anything, "bad").
			Return(nil, errs.ErrAuthentication).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", strings.NewReader(`{}`))
		req.Header.Set(handler.SignatureHeader, "bad")
		w := api.do(req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errs.CodeAuthentication, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("missing signature never reaches the use case", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})

		w := api.do(httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCheckoutRedirect(t *testing.T) {
	api := newTestAPI(t, database.HealthReport{})
	api.fulfillment.On("CompleteCheckout", mock.Anything, "cs_1").
		Return(usecase.RedirectResult{Location: "/dashboard"}).Once()

	w := api.do(httptest.NewRequest(http.MethodGet, "/api/stripe/checkout?session_id=cs_1", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestSubmitGeneration(t *testing.T) {
	body := `{"inputImageUrl":"https://cdn.example.com/me.jpg","gender":"female","background":"office"}`

	t.Run("requires authentication", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})

		w := api.do(httptest.NewRequest(http.MethodPost, "/api/generations", strings.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns checkout redirect", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})
		api.fulfillment.On("Submit", mock.Anything, userID, usecase.SubmitRequest{
			Options: entity.GenerationOptions{
				Gender:        entity.GenderFemale,
				Background:    entity.BackgroundOffice,
				InputImageURL: "https://cdn.example.com/me.jpg",
			},
		}).Return(&usecase.SubmitResult{GenerationID: 12, RedirectTo: "https://checkout.stripe.com/c/pay/cs_1"}, nil).Once()

		req := authed(httptest.NewRequest(http.MethodPost, "/api/generations", strings.NewReader(body)))
		req.Header.Set("Content-Type", "application/json")
		w := api.do(req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, dto.SubmitGenerationResponse{GenerationID: 12, RedirectTo: "https://checkout.stripe.com/c/pay/cs_1"},
			decode[dto.SubmitGenerationResponse](t, w))
	})

	t.Run("invalid options", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})
		api.fulfillment.On("Submit", mock.Anything, userID, mock.Anything).
			Return(nil, errs.ErrInvalidOptions).Once()

		w := api.do(authed(httptest.NewRequest(http.MethodPost, "/api/generations", strings.NewReader(body))))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errs.CodeInvalidOptions, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("provider failure hides details", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})
		api.fulfillment.On("Submit", mock.Anything, userID, mock.Anything).
			Return(nil, errors.Join(errs.ErrExternalService, errors.New("sk_live leaked"))).Once()

		w := api.do(authed(httptest.NewRequest(http.MethodPost, "/api/generations", strings.NewReader(body))))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.NotContains(t, w.Body.String(), "sk_live")
	})

	t.Run("malformed body", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})

		w := api.do(authed(httptest.NewRequest(http.MethodPost, "/api/generations", strings.NewReader(`{"gender":`))))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errs.CodeInvalidRequest, decode[dto.ErrorResponse](t, w).Code)
	})
}

func TestListGenerations(t *testing.T) {
	api := newTestAPI(t, database.HealthReport{})
	imageURL := "https://img/1.png"
	api.generations.On("List", mock.Anything, userID).Return([]*entity.Generation{
		{ID: 2, UserID: userID, Status: entity.StatusProcessing},
		{ID: 1, UserID: userID, Status: entity.StatusCompleted, ImageURL: &imageURL},
	}, nil).Once()

	w := api.do(authed(httptest.NewRequest(http.MethodGet, "/api/generations", nil)))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.GenerationListResponse](t, w)
	require.Len(t, resp.Generations, 2)
	assert.Equal(t, uint64(2), resp.Generations[0].ID)
	assert.Equal(t, "COMPLETED", resp.Generations[1].Status)
}

func TestGenerationStatus(t *testing.T) {
	t.Run("returns snapshot", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})
		api.generations.On("Status", mock.Anything, uint64(5)).
			Return(&entity.GenerationSnapshot{ID: 5, Status: entity.StatusProcessing}, nil).Once()

		w := api.do(httptest.NewRequest(http.MethodGet, "/api/generation-status?generationId=5", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":5,"status":"PROCESSING","imageUrl":null}`, w.Body.String())
	})

	for _, raw := range []string{"", "abc", "0", "-3"} {
		t.Run("rejects id "+raw, func(t *testing.T) {
			api := newTestAPI(t, database.HealthReport{})

			w := api.do(httptest.NewRequest(http.MethodGet, "/api/generation-status?generationId="+url.QueryEscape(raw), nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	t.Run("unknown generation", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})
		api.generations.On("Status", mock.Anything, uint64(404)).Return(nil, errs.ErrGenerationNotFound).Once()

		w := api.do(httptest.NewRequest(http.MethodGet, "/api/generation-status?generationId=404", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMarkFailed(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"success", nil, http.StatusOK},
		{"not processing", errs.ErrInvalidState, http.StatusBadRequest},
		{"not owner", errs.ErrAuthorization, http.StatusForbidden},
		{"unknown", errs.ErrGenerationNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, database.HealthReport{})
			api.generations.On("MarkFailed", mock.Anything, userID, uint64(9), "timeout").Return(tt.err).Once()

			w := api.do(authed(httptest.NewRequest(http.MethodPost, "/api/generation-status",
				strings.NewReader(`{"generationId":9,"reason":"timeout"}`))))

			assert.Equal(t, tt.expected, w.Code)
		})
	}

	t.Run("missing id", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})

		w := api.do(authed(httptest.NewRequest(http.MethodPost, "/api/generation-status", strings.NewReader(`{"reason":"x"}`))))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})
		req := httptest.NewRequest(http.MethodPost, "/api/generation-status", strings.NewReader(`{"generationId":9}`))
		req.Header.Set("Authorization", "Bearer forged")

		w := api.do(req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRetry(t *testing.T) {
	form := func(id string) *http.Request {
		req := authed(httptest.NewRequest(http.MethodPost, "/api/generations/retry",
			strings.NewReader(url.Values{"generationId": {id}}.Encode())))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}

	t.Run("success", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})
		api.generations.On("Retry", mock.Anything, userID, uint64(3)).
			Return(usecase.ActionResult{Success: "Generation restarted"}).Once()

		w := api.do(form("3"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":"Generation restarted"}`, w.Body.String())
	})

	t.Run("rejection is an action result", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})
		api.generations.On("Retry", mock.Anything, userID, uint64(3)).
			Return(usecase.ActionResult{Error: "Maximum retry attempts reached", Err: errs.ErrRetryLimit}).Once()

		w := api.do(form("3"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"error":"Maximum retry attempts reached"}`, w.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})

		w := api.do(form("x"))

		assert.JSONEq(t, `{"error":"Invalid generation ID"}`, w.Body.String())
	})
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, database.HealthReport{Status: database.HealthStatusUp, LatencyMs: 2})
	w := api.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	api = newTestAPI(t, database.HealthReport{Status: database.HealthStatusDown, Error: "connection refused"})
	w = api.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMiddlewares(t *testing.T) {
	t.Run("assigns request id", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{Status: database.HealthStatusUp})

		w := api.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps caller request id", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{Status: database.HealthStatusUp})
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Request-ID", "req-123")

		w := api.do(req)

		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("answers preflight", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})
		req := httptest.NewRequest(http.MethodOptions, "/api/generations", nil)
		req.Header.Set("Origin", "https://app.example.com")

		w := api.do(req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("recovers from panics", func(t *testing.T) {
		api := newTestAPI(t, database.HealthReport{})
		api.generations.On("List", mock.Anything, userID).Run(func(mock.Arguments) {
			panic("boom")
		}).Return(nil, nil).Once()

		w := api.do(authed(httptest.NewRequest(http.MethodGet, "/api/generations", nil)))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, errs.CodeInternalServer, decode[dto.ErrorResponse](t, w).Code)
	})
}
