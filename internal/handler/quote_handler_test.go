package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/dto"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/repository"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/service"
)

func newQuoteRouter(svc *service.QuoteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/quotes", NewQuoteHandler(svc).Quote)
	return router
}

func TestQuoteHandler_Binding(t *testing.T) {
	// Binding failures never reach the service, so nil repositories are fine
	router := newQuoteRouter(service.NewQuoteService(nil, nil))

	cases := []struct {
		name string
		body string
	}{
		{"bad: missing items", `{}`},
		{"bad: empty items", `{"items":[]}`},
		{"bad: item without name", `{"items":[{"quantity":1,"unit_price":1000}]}`},
		{"bad: negative unit price", `{"items":[{"product_name":"Montre","quantity":1,"unit_price":-5}]}`},
		{"bad: malformed date of birth", `{"items":[{"product_name":"Montre","quantity":1,"unit_price":1000}],"traveler":{"date_of_birth":"10/05/1990"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/v1/quotes", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp dto.ErrorListResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, "validation failed")
		})
	}
}

func TestQuoteHandler_DatabaseDown(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := getTestPool(t)
	if pool == nil {
		t.Skip("no database available")
	}
	pool.Close()

	router := newQuoteRouter(service.NewQuoteService(
		repository.NewRuleSetRepository(pool), repository.NewCategoryRepository(pool)))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/quotes", bytes.NewBufferString(
		`{"items":[{"product_name":"Montre","quantity":1,"unit_price":500000,"vat_rate":16}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// load failures go through the shared DB error mapper
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestQuoteHandler_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	router := setupFullRouter(t)

	postQuote := func(t *testing.T, body string) (*httptest.ResponseRecorder, dto.QuoteResponse) {
		t.Helper()
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/quotes", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		var resp dto.QuoteResponse
		if w.Code == http.StatusOK {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		}
		return w, resp
	}

	t.Run("happy: single eligible line against seeded rules", func(t *testing.T) {
		w, resp := postQuote(t, `{
			"items": [{"product_name": "Téléviseur", "product_category": "ELECTRONICS",
				"quantity": 1, "unit_price": 500000, "vat_rate": 16}],
			"traveler": {"date_of_birth": "1990-05-10", "residence_country": "FR"}
		}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.InDelta(t, 68965.52, resp.EligibleVAT, 0.01)
		assert.InDelta(t, 431034.48, resp.EligibleHT, 0.01)
		assert.InDelta(t, 10344.83, resp.OperatorFee, 0.01)
		assert.InDelta(t, 58620.69, resp.RefundAmount, 0.01)
		assert.Empty(t, resp.ValidationErrors)
		assert.True(t, resp.RefundValidation.IsValid)
		assert.True(t, resp.Submittable)
		assert.NotEmpty(t, resp.RulesetVersion)
	})

	t.Run("happy: excluded category reported separately", func(t *testing.T) {
		w, resp := postQuote(t, `{
			"items": [
				{"product_name": "Téléviseur", "product_category": "ELECTRONICS",
					"quantity": 1, "unit_price": 500000, "vat_rate": 16},
				{"product_name": "Chocolat", "product_category": "FOOD",
					"quantity": 2, "unit_price": 10000, "vat_rate": 16}
			]
		}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp.Eligible, 1)
		require.Len(t, resp.Excluded, 1)
		assert.Equal(t, "FOOD", resp.Excluded[0].ProductCategory)
		assert.NotEmpty(t, resp.Excluded[0].Reason)
		assert.Greater(t, resp.ExcludedVAT, 0.0)
	})

	t.Run("edge: business failures are data, not HTTP errors", func(t *testing.T) {
		w, resp := postQuote(t, `{
			"items": [{"product_name": "Stylo", "quantity": 1, "unit_price": 2000, "vat_rate": 16}],
			"traveler": {"date_of_birth": "2015-01-01", "residence_country": "CD"}
		}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, resp.ValidationErrors)
		assert.False(t, resp.Submittable)
	})

	t.Run("edge: string amounts in ruleset override parsed leniently", func(t *testing.T) {
		w, resp := postQuote(t, `{
			"items": [{"product_name": "Montre", "product_category": "JEWELRY",
				"quantity": 1, "unit_price": 500000, "vat_rate": 16}],
			"ruleset": {"operator_fee_percentage": "0", "operator_fee_fixed": "1000000.00"}
		}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.InDelta(t, 1000000, resp.OperatorFee, 0.01)
		assert.Equal(t, 0.0, resp.RefundAmount)
		assert.False(t, resp.RefundValidation.IsValid)
		assert.Contains(t, resp.RefundValidation.Message, "1000000.00")
	})
}
