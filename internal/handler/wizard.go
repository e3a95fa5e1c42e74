package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/domain"
	"tourdesk/internal/persist"
	"tourdesk/internal/pricing"
	"tourdesk/internal/service"
	"tourdesk/internal/validation"
	"tourdesk/internal/wizard"
)

// WizardHandler drives one wizard session per request: it binds the JSON
// body, runs the validation rule library over the candidate record, and only
// then commits the mutation to the session's store.
type WizardHandler struct {
	manager      *wizard.Manager
	submission   *service.SubmissionService
	baseCurrency string
}

// NewWizardHandler creates a new WizardHandler.
func NewWizardHandler(manager *wizard.Manager, submission *service.SubmissionService, baseCurrency string) *WizardHandler {
	return &WizardHandler{
		manager:      manager,
		submission:   submission,
		baseCurrency: baseCurrency,
	}
}

// SessionResponse is the session envelope returned by every wizard endpoint;
// State uses the same wire form the persistence adapter stores, so the UI and
// storage agree on field names and date formats.
type SessionResponse struct {
	SessionID string          `json:"sessionId"`
	State     json.RawMessage `json:"state"`
}

// SubmitResponse is the HTTP response for a successful submission.
type SubmitResponse struct {
	BookingID string `json:"bookingId"`
	Reference string `json:"reference"`
}

// StepResponse reports the outcome of a navigation request.
type StepResponse struct {
	CurrentStep int  `json:"currentStep"`
	Moved       bool `json:"moved"`
}

// GoToStepRequest is the HTTP request body for a step jump.
type GoToStepRequest struct {
	Step int `json:"step"`
}

// CreateSession handles POST /v1/wizard/sessions
func (h *WizardHandler) CreateSession(c *gin.Context) {
	id, store := h.manager.Create()
	h.respondState(c, http.StatusCreated, id, store)
}

// GetSession handles GET /v1/wizard/sessions/:id
func (h *WizardHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	store, err := h.manager.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, id, store)
}

// DeleteSession handles DELETE /v1/wizard/sessions/:id — the explicit reset:
// in-memory state and the durable snapshot are cleared together.
func (h *WizardHandler) DeleteSession(c *gin.Context) {
	h.manager.Remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// SetClient handles PUT /v1/wizard/sessions/:id/client
func (h *WizardHandler) SetClient(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	selection := req.toDomain()
	if problems := validation.ValidateClient(selection); !problems.Valid() {
		respondValidation(c, problems)
		return
	}
	if err := store.SetClient(selection); err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), store)
}

// ClearClient handles DELETE /v1/wizard/sessions/:id/client
func (h *WizardHandler) ClearClient(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	if err := store.ClearClient(); err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), store)
}

// SetTrip handles PUT /v1/wizard/sessions/:id/trip
func (h *WizardHandler) SetTrip(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := req.toDomain()
	if err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if problems := validation.ValidateTripDetails(trip, time.Now()); !problems.Valid() {
		respondValidation(c, problems)
		return
	}
	if err := store.SetTripDetails(trip); err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), store)
}

// PatchTrip handles PATCH /v1/wizard/sessions/:id/trip
func (h *WizardHandler) PatchTrip(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	var patch TripPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	current := store.State()
	if current.Trip == nil {
		respondError(c, wizard.ErrNoTripDetails)
		return
	}
	patched, err := patch.apply(*current.Trip)
	if err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if problems := validation.ValidateTripDetails(patched, time.Now()); !problems.Valid() {
		respondValidation(c, problems)
		return
	}
	if err := store.SetTripDetails(patched); err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), store)
}

// ClearTrip handles DELETE /v1/wizard/sessions/:id/trip
func (h *WizardHandler) ClearTrip(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	if err := store.ClearTripDetails(); err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), store)
}

// AddPassenger handles POST /v1/wizard/sessions/:id/passengers
func (h *WizardHandler) AddPassenger(c *gin.Context) {
	h.passengerMutation(c, func(store *wizard.Store, p domain.Passenger) error {
		return store.AddPassenger(p)
	})
}

// UpdatePassenger handles PUT /v1/wizard/sessions/:id/passengers/:index
func (h *WizardHandler) UpdatePassenger(c *gin.Context) {
	index, ok := bindIndex(c)
	if !ok {
		return
	}
	h.passengerMutation(c, func(store *wizard.Store, p domain.Passenger) error {
		return store.UpdatePassenger(index, p)
	})
}

// RemovePassenger handles DELETE /v1/wizard/sessions/:id/passengers/:index
func (h *WizardHandler) RemovePassenger(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	index, ok := bindIndex(c)
	if !ok {
		return
	}
	if err := store.RemovePassenger(index); err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), store)
}

// passengerMutation binds, validates and commits one passenger record.
func (h *WizardHandler) passengerMutation(c *gin.Context, commit func(*wizard.Store, domain.Passenger) error) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	var req PassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	passenger, err := req.toDomain(time.Now())
	if err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	travelEnd := time.Time{}
	if trip := store.State().Trip; trip != nil {
		travelEnd = trip.TravelEndDate
	}
	if problems := validation.ValidatePassenger(passenger, travelEnd); !problems.Valid() {
		respondValidation(c, problems)
		return
	}
	if err := commit(store, passenger); err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), store)
}

// AddService handles POST /v1/wizard/sessions/:id/services
func (h *WizardHandler) AddService(c *gin.Context) {
	h.serviceMutation(c, func(store *wizard.Store, s domain.Service) error {
		return store.AddService(s)
	})
}

// UpdateService handles PUT /v1/wizard/sessions/:id/services/:index
func (h *WizardHandler) UpdateService(c *gin.Context) {
	index, ok := bindIndex(c)
	if !ok {
		return
	}
	h.serviceMutation(c, func(store *wizard.Store, s domain.Service) error {
		return store.UpdateService(index, s)
	})
}

// RemoveService handles DELETE /v1/wizard/sessions/:id/services/:index
func (h *WizardHandler) RemoveService(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	index, ok := bindIndex(c)
	if !ok {
		return
	}
	if err := store.RemoveService(index); err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), store)
}

// serviceMutation binds, validates and commits one service record.
func (h *WizardHandler) serviceMutation(c *gin.Context, commit func(*wizard.Store, domain.Service) error) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	svc, err := req.toDomain(pricing.ConvertCurrency)
	if err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if problems := validation.ValidateService(svc); !problems.Valid() {
		respondValidation(c, problems)
		return
	}
	if err := commit(store, svc); err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), store)
}

// SetPricing handles PUT /v1/wizard/sessions/:id/pricing. Only inputs are
// accepted; every derived total comes out of the pricing calculator so the
// persisted summary can never disagree with the formulas.
func (h *WizardHandler) SetPricing(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	var req PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	state := store.State()
	summary := h.buildSummary(req, state)
	if problems := validation.ValidatePricing(summary, state.Services); !problems.Valid() {
		respondValidation(c, problems)
		return
	}
	if err := store.SetPricing(summary); err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), store)
}

// PreviewPricing handles POST /v1/wizard/sessions/:id/pricing/preview — the
// live preview path. It computes the same quote SetPricing would commit but
// stores nothing.
func (h *WizardHandler) PreviewPricing(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	var req PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	state := store.State()
	summary := h.buildSummary(req, state)
	respondJSON(c, http.StatusOK, summary)
}

// ClearPricing handles DELETE /v1/wizard/sessions/:id/pricing
func (h *WizardHandler) ClearPricing(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	if err := store.ClearPricing(); err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), store)
}

// buildSummary assembles a pricing summary from the entered inputs plus the
// session's trip and services.
func (h *WizardHandler) buildSummary(req PricingRequest, state domain.WizardState) domain.PricingSummary {
	base := h.baseCurrency
	source := domain.BookingSourceDirect
	if state.Trip != nil {
		base = state.Trip.Currency
		source = state.Trip.BookingSource
	}
	selling := req.SellingCurrency
	if selling == "" {
		selling = base
	}

	entered := domain.PricingSummary{
		MarkupPercentage:     req.MarkupPercentage,
		TaxRateID:            req.TaxRateID,
		TaxRate:              req.TaxRate,
		PromoCodeID:          req.PromoCodeID,
		CampaignID:           req.CampaignID,
		DiscountAmount:       req.DiscountAmount,
		BaseCurrency:         base,
		SellingCurrency:      selling,
		BookingSource:        source,
		CancellationPolicyID: req.CancellationPolicyID,
		InternalNotes:        req.InternalNotes,
	}
	return pricing.Quote(state.Services, entered)
}

// NextStep handles POST /v1/wizard/sessions/:id/steps/next. The current
// step must satisfy its advance predicate; it is then marked complete and
// the wizard moves forward.
func (h *WizardHandler) NextStep(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	state := store.State()
	if !wizard.CanAdvance(state, state.CurrentStep) {
		respondError(c, wizard.ErrStepIncomplete)
		return
	}
	if err := store.MarkStepComplete(state.CurrentStep); err != nil {
		respondError(c, err)
		return
	}
	current := store.NextStep()
	respondJSON(c, http.StatusOK, StepResponse{CurrentStep: int(current), Moved: current != state.CurrentStep})
}

// PreviousStep handles POST /v1/wizard/sessions/:id/steps/previous
func (h *WizardHandler) PreviousStep(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	before := store.State().CurrentStep
	current := store.PreviousStep()
	respondJSON(c, http.StatusOK, StepResponse{CurrentStep: int(current), Moved: current != before})
}

// GoToStep handles POST /v1/wizard/sessions/:id/steps/goto
func (h *WizardHandler) GoToStep(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	var req GoToStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	moved := store.GoToStep(domain.Step(req.Step))
	respondJSON(c, http.StatusOK, StepResponse{CurrentStep: int(store.State().CurrentStep), Moved: moved})
}

// Submit handles POST /v1/wizard/sessions/:id/submit. On success the session
// is destroyed (memory and durable snapshot); on any failure the collected
// state is preserved unchanged so the user can retry.
func (h *WizardHandler) Submit(c *gin.Context) {
	id := c.Param("id")
	store, ok := h.store(c)
	if !ok {
		return
	}

	state := store.State()
	if state.IsSubmitting {
		respondError(c, service.ErrAlreadySubmitting)
		return
	}

	req, err := service.BuildRequest(state)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := store.SetSubmitting(true); err != nil {
		respondError(c, err)
		return
	}

	booking, problems, err := h.submission.Submit(c.Request.Context(), req)
	if err != nil {
		_ = store.SetSubmitting(false)
		respondError(c, err)
		return
	}
	if !problems.Valid() {
		_ = store.SetSubmitting(false)
		respondValidation(c, problems)
		return
	}

	h.manager.Remove(id)
	respondJSON(c, http.StatusCreated, SubmitResponse{BookingID: booking.ID, Reference: booking.Reference})
}

// store resolves the session store for the :id parameter, responding with
// the mapped error when the session is unknown.
func (h *WizardHandler) store(c *gin.Context) (*wizard.Store, bool) {
	store, err := h.manager.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return store, true
}

// respondState replies with the session envelope.
func (h *WizardHandler) respondState(c *gin.Context, code int, id string, store *wizard.Store) {
	data, err := persist.Encode(store.State())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, code, SessionResponse{SessionID: id, State: json.RawMessage(data)})
}

// bindIndex parses the :index path parameter.
func bindIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "invalid index"})
		return 0, false
	}
	return index, true
}
