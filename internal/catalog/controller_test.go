package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/dto"
)

func newTestRouter(t *testing.T) (http.Handler, *Catalog) {
	t.Helper()
	c, err := New(DefaultProducts()...)
	require.NoError(t, err)

	ctrl := NewModule(c, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/products", ctrl.HandleListProducts)
	r.Post("/products/search", ctrl.HandleSearchProducts)
	r.Get("/products/{productId}", ctrl.HandleGetProduct)
	return r, c
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestController_ListProducts(t *testing.T) {
	router, c := newTestRouter(t)
	require.NoError(t, c.Reserve(2, 15))

	rec := do(router, http.MethodGet, "/products", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ProductListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.TraceID)
	require.Len(t, resp.Products, 8)
	assert.Equal(t, "1200.00", resp.Products[0].Price)
	assert.True(t, resp.Products[0].HasStock)
	assert.Equal(t, 0, resp.Products[1].Stock)
	assert.False(t, resp.Products[1].HasStock)
}

func TestController_GetProduct(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodGet, "/products/4", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.ID)
	assert.Equal(t, "Auriculares Bluetooth", resp.Name)
	assert.Equal(t, "80.00", resp.Price)
	assert.Equal(t, 20, resp.Stock)
}

func TestController_GetProduct_Errors(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"unknown id", "/products/99", http.StatusNotFound, "NOT_FOUND"},
		{"non numeric id", "/products/abc", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"zero id", "/products/0", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.status, rec.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestController_SearchProducts(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodPost, "/products/search", `{"productIds": [3, 42, 1]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp SearchProductsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 2)
	assert.Equal(t, 3, resp.Products[0].ID)
	assert.Equal(t, 1, resp.Products[1].ID)
	assert.Equal(t, []int{42}, resp.NotFound)
}

func TestController_SearchProducts_AllFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodPost, "/products/search", `{"productIds": [5]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"notFound":[]`)
}

func TestController_SearchProducts_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	ids := make([]string, 101)
	for i := range ids {
		ids[i] = "1"
	}

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"productIds": [`},
		{"missing ids", `{}`},
		{"negative id", `{"productIds": [1, -3]}`},
		{"too many ids", `{"productIds": [` + strings.Join(ids, ",") + `]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPost, "/products/search", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "VALIDATION_ERROR", resp.Code)
			assert.NotEmpty(t, resp.Details)
		})
	}
}
