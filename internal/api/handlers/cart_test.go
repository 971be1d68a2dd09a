package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/api/middleware"
	"github.com/printhaus/storefront/internal/cart"
)

func newCartRouter(carts *cart.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	router := gin.New()
	group := router.Group("/v1")
	group.Use(middleware.CartSession(carts))
	group.GET("/cart", HandleGetCart(carts, logger))
	group.POST("/cart/items", HandleAddCartItem(carts, logger))
	group.PATCH("/cart/items/:id", HandleUpdateCartItem(carts, logger))
	group.DELETE("/cart/items/:id", HandleRemoveCartItem(carts, logger))
	group.DELETE("/cart", HandleClearCart(carts, logger))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) cart.State {
	t.Helper()
	var state cart.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return state
}

func TestCartHandlers_SessionMintedWhenAbsent(t *testing.T) {
	router := newCartRouter(cart.NewManager(0, zap.NewNop()))

	w := doJSON(t, router, http.MethodGet, "/v1/cart", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	session := w.Header().Get(middleware.SessionHeader)
	assert.NotEmpty(t, session, "server mints a session id on first contact")

	state := decodeState(t, w)
	assert.Empty(t, state.Items)
	assert.Equal(t, 0, state.ItemCount)
}

func TestCartHandlers_AddUpdateRemoveFlow(t *testing.T) {
	carts := cart.NewManager(0, zap.NewNop())
	router := newCartRouter(carts)
	session := carts.NewSessionID()

	// Add two lines, the first twice to exercise merging
	w := doJSON(t, router, http.MethodPost, "/v1/cart/items", session,
		`{"id":"a","productId":"p1","name":"Midnight Harbour","price":49.99,"quantity":1,"size":"50x70","frame":"oak"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/v1/cart/items", session,
		`{"id":"a","productId":"p1","name":"Midnight Harbour","price":49.99,"quantity":2,"size":"50x70","frame":"oak"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/v1/cart/items", session,
		`{"id":"b","productId":"p2","name":"Terracotta Study","price":39,"quantity":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	state := decodeState(t, w)
	require.Len(t, state.Items, 2)
	assert.Equal(t, 3, state.Items[0].Quantity)
	assert.Equal(t, 4, state.ItemCount)
	assert.InDelta(t, 3*49.99+39, state.Total, 1e-9)

	// Replace quantity
	w = doJSON(t, router, http.MethodPatch, "/v1/cart/items/a", session, `{"quantity":1}`)
	state = decodeState(t, w)
	assert.Equal(t, 2, state.ItemCount)
	assert.InDelta(t, 49.99+39, state.Total, 1e-9)

	// Quantity zero removes the line
	w = doJSON(t, router, http.MethodPatch, "/v1/cart/items/b", session, `{"quantity":0}`)
	state = decodeState(t, w)
	require.Len(t, state.Items, 1)
	assert.Equal(t, "a", state.Items[0].ID)

	// Remove the rest
	w = doJSON(t, router, http.MethodDelete, "/v1/cart/items/a", session, "")
	state = decodeState(t, w)
	assert.Empty(t, state.Items)
	assert.Equal(t, 0.0, state.Total)
}

func TestCartHandlers_ServerMintsLineID(t *testing.T) {
	carts := cart.NewManager(0, zap.NewNop())
	router := newCartRouter(carts)
	session := carts.NewSessionID()

	w := doJSON(t, router, http.MethodPost, "/v1/cart/items", session,
		`{"productId":"p1","name":"Print","price":10}`)
	require.Equal(t, http.StatusOK, w.Code)

	state := decodeState(t, w)
	require.Len(t, state.Items, 1)
	assert.NotEmpty(t, state.Items[0].ID)
	assert.Equal(t, 1, state.Items[0].Quantity, "quantity defaults to 1")
}

func TestCartHandlers_Clear(t *testing.T) {
	carts := cart.NewManager(0, zap.NewNop())
	router := newCartRouter(carts)
	session := carts.NewSessionID()

	doJSON(t, router, http.MethodPost, "/v1/cart/items", session,
		`{"id":"a","productId":"p1","name":"Print","price":10,"quantity":3}`)

	w := doJSON(t, router, http.MethodDelete, "/v1/cart", session, "")
	state := decodeState(t, w)
	assert.Empty(t, state.Items)
	assert.Equal(t, 0, state.ItemCount)
	assert.Equal(t, 0.0, state.Total)
}

func TestCartHandlers_ValidationFailure(t *testing.T) {
	carts := cart.NewManager(0, zap.NewNop())
	router := newCartRouter(carts)

	w := doJSON(t, router, http.MethodPost, "/v1/cart/items", carts.NewSessionID(),
		`{"name":"No product id","price":10}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCartHandlers_SessionsIsolated(t *testing.T) {
	carts := cart.NewManager(0, zap.NewNop())
	router := newCartRouter(carts)

	first := carts.NewSessionID()
	second := carts.NewSessionID()

	doJSON(t, router, http.MethodPost, "/v1/cart/items", first,
		`{"id":"a","productId":"p1","name":"Print","price":10,"quantity":1}`)

	w := doJSON(t, router, http.MethodGet, "/v1/cart", second, "")
	state := decodeState(t, w)
	assert.Empty(t, state.Items)
}
