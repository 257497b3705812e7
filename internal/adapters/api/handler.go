package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mgrady/bidwell/internal/clock"
	"github.com/mgrady/bidwell/internal/domain/items"
)

// Handler contains the HTTP request handlers for the auction API
type Handler struct {
	itemService *items.Service
	clock       clock.Clock
	logger      *slog.Logger
	staticDir   string
}

// NewHandler creates a new HTTP handler
func NewHandler(itemService *items.Service, clk clock.Clock, logger *slog.Logger, staticDir string) *Handler {
	return &Handler{
		itemService: itemService,
		clock:       clk,
		logger:      logger,
		staticDir:   staticDir,
	}
}

// Routes configures all HTTP routes
func (h *Handler) Routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/items", h.CreateItem).Methods(http.MethodPost)
	router.HandleFunc("/items", h.ListItems).Methods(http.MethodGet)
	router.HandleFunc("/items/{id}", h.GetItem).Methods(http.MethodGet)
	router.HandleFunc("/items/{id}/bid", h.PlaceBid).Methods(http.MethodPost)

	if h.staticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(h.staticDir)))
	}

	router.Use(RequestID)
	router.Use(RequestLogger(h.logger))

	return router
}

type createItemRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	StartingPrice *float64 `json:"startingPrice"`
	EndsAt        string   `json:"endsAt"`
}

type placeBidRequest struct {
	Amount   *float64 `json:"amount"`
	BidderID string   `json:"bidderId"`
}

type itemResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	StartingPrice float64  `json:"startingPrice"`
	CurrentBid    *float64 `json:"currentBid"`
	BidCount      int      `json:"bidCount"`
	EndsAt        string   `json:"endsAt"`
	CreatedAt     string   `json:"createdAt"`
	Status        string   `json:"status"`
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "bidwell",
		"time":    h.clock.Now().UTC().Format(time.RFC3339),
	})
}

// CreateItem handles listing creation requests
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.EndsAt == "" {
		respondError(w, http.StatusBadRequest, "endsAt is required")
		return
	}

	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		respondError(w, http.StatusBadRequest, "endsAt must be an ISO 8601 timestamp")
		return
	}

	var startingPrice float64
	if req.StartingPrice != nil {
		startingPrice = *req.StartingPrice
	}

	cmd := items.CreateItemCommand{
		Title:         req.Title,
		Description:   req.Description,
		StartingPrice: startingPrice,
		EndsAt:        endsAt,
	}

	item, err := h.itemService.CreateItem(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, items.ErrTitleRequired):
			respondError(w, http.StatusBadRequest, "Title is required")
		case errors.Is(err, items.ErrInvalidStartingPrice):
			respondError(w, http.StatusBadRequest, "Starting price must be a non-negative number")
		case errors.Is(err, items.ErrInvalidEndTime):
			respondError(w, http.StatusBadRequest, "endsAt must be in the future")
		default:
			respondError(w, http.StatusInternalServerError, "Failed to create item")
		}
		return
	}

	respondJSON(w, http.StatusCreated, mapItem(item))
}

// ListItems returns every item, each expiration-checked
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	list, err := h.itemService.ListItems(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list items")
		return
	}

	out := make([]*itemResponse, len(list))
	for i, item := range list {
		out[i] = mapItem(item)
	}
	respondJSON(w, http.StatusOK, out)
}

// GetItem returns a single item, expiration-checked
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	item, err := h.itemService.GetItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, items.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "Item not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to retrieve item")
		return
	}

	respondJSON(w, http.StatusOK, mapItem(item))
}

// PlaceBid handles bid placement requests
func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req placeBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Amount == nil || *req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "Bid amount must be a positive number")
		return
	}
	if req.BidderID == "" {
		respondError(w, http.StatusBadRequest, "Bidder ID is required")
		return
	}

	cmd := items.PlaceBidCommand{
		ItemID:   id,
		BidderID: req.BidderID,
		Amount:   *req.Amount,
	}

	item, err := h.itemService.PlaceBid(r.Context(), cmd)
	if err != nil {
		var tooLow *items.BidTooLowError
		switch {
		case errors.Is(err, items.ErrItemNotFound):
			respondError(w, http.StatusNotFound, "Item not found")
		case errors.Is(err, items.ErrAuctionEnded):
			respondError(w, http.StatusBadRequest, "Auction has ended")
		case errors.As(err, &tooLow):
			respondJSON(w, http.StatusBadRequest, map[string]any{
				"error":      fmt.Sprintf("Bid must be greater than %g", tooLow.Minimum),
				"minimumBid": tooLow.Minimum,
			})
		default:
			respondError(w, http.StatusInternalServerError, "Failed to place bid")
		}
		return
	}

	respondJSON(w, http.StatusOK, mapItem(item))
}

// mapItem converts a domain Item to its JSON representation
func mapItem(item *items.Item) *itemResponse {
	return &itemResponse{
		ID:            item.ID,
		Title:         item.Title,
		Description:   item.Description,
		StartingPrice: item.StartingPrice,
		CurrentBid:    item.CurrentBid,
		BidCount:      item.BidCount,
		EndsAt:        item.EndsAt.UTC().Format(time.RFC3339),
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
		Status:        string(item.Status),
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
