package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/api/middleware"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().ListingFee().Return(domain.MustParseAmount(domain.DEFAULT_LISTING_FEE_WEI))

	router := New(Config{}, svc).Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.REQUEST_ID_HEADER))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/marketplace", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// state-changing routes require a bearer token
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/assets", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestShutdown_BeforeStart(t *testing.T) {
	s := New(Config{}, nil)
	require.NoError(t, s.Shutdown(context.Background()))
}
