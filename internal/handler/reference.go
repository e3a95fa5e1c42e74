package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/domain"
	"tourdesk/internal/service"
)

// ReferenceHandler serves the lookup data the booking screens consume:
// cities, currencies, supplier catalogs, tax rates, exchange rates,
// cancellation policies and promo-code validation.
type ReferenceHandler struct {
	reference *service.ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(reference *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{reference: reference}
}

// ValidatePromoRequest is the HTTP request body for promo-code validation.
type ValidatePromoRequest struct {
	Code string `json:"code"`
}

// GetCities handles GET /v1/reference/cities
func (h *ReferenceHandler) GetCities(c *gin.Context) {
	cities, err := h.reference.Cities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, cities)
}

// GetCurrencies handles GET /v1/reference/currencies
func (h *ReferenceHandler) GetCurrencies(c *gin.Context) {
	currencies, err := h.reference.Currencies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, currencies)
}

// GetCatalog handles GET /v1/reference/catalog?kind=hotel&cityId=3
func (h *ReferenceHandler) GetCatalog(c *gin.Context) {
	kind := domain.ServiceKind(c.Query("kind"))
	known := false
	for _, k := range domain.ServiceKinds {
		if kind == k {
			known = true
			break
		}
	}
	if !known {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "unknown service kind"})
		return
	}

	cityID, _ := strconv.ParseInt(c.Query("cityId"), 10, 64)
	items, err := h.reference.Catalog(c.Request.Context(), kind, cityID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, items)
}

// GetTaxRates handles GET /v1/reference/tax-rates
func (h *ReferenceHandler) GetTaxRates(c *gin.Context) {
	rates, err := h.reference.TaxRates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rates)
}

// GetCancellationPolicies handles GET /v1/reference/cancellation-policies
func (h *ReferenceHandler) GetCancellationPolicies(c *gin.Context) {
	policies, err := h.reference.CancellationPolicies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, policies)
}

// GetExchangeRate handles GET /v1/reference/exchange-rate?from=EUR&to=USD
func (h *ReferenceHandler) GetExchangeRate(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if len(from) != 3 || len(to) != 3 {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "from and to must be 3-letter currency codes"})
		return
	}

	rate, err := h.reference.ExchangeRate(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rate)
}

// ValidatePromoCode handles POST /v1/reference/promo-codes/validate
func (h *ReferenceHandler) ValidatePromoCode(c *gin.Context) {
	var req ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "promo code is required"})
		return
	}

	promo, err := h.reference.ValidatePromoCode(c.Request.Context(), req.Code, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, promo)
}
