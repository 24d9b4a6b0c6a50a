package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/api/response"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/domain/watchlist"
	watchlistservice "github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/service/watchlist"
)

// AddWatchlistRequest represents add request
type AddWatchlistRequest struct {
	Symbol  string `json:"symbol" binding:"required"`
	Company string `json:"company" binding:"required"`
}

// WatchlistHandler handles watchlist HTTP requests. Session scoping
// happens inside the service; the handler only shapes the transport.
type WatchlistHandler struct {
	svc *watchlistservice.Service
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(svc *watchlistservice.Service) *WatchlistHandler {
	return &WatchlistHandler{svc: svc}
}

// List handles GET /api/v1/watchlist
func (h *WatchlistHandler) List(c *gin.Context) {
	items := h.svc.ListItems(c.Request.Context(), c.Request.Header)
	response.SuccessList(c, items, len(items))
}

// Symbols handles GET /api/v1/watchlist/symbols?email=
func (h *WatchlistHandler) Symbols(c *gin.Context) {
	email := c.Query("email")
	symbols := h.svc.ListSymbolsByEmail(c.Request.Context(), c.Request.Header, email)
	response.SuccessList(c, symbols, len(symbols))
}

// Add handles POST /api/v1/watchlist
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req AddWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.ErrCodeInvalidParameter,
			"Invalid request body", err.Error())
		return
	}

	result := h.svc.Add(c.Request.Context(), c.Request.Header, req.Symbol, req.Company)
	if !result.Success {
		switch result.Error {
		case "Not authenticated":
			response.Unauthorized(c, result.Error)
		case "Already in watchlist":
			response.Error(c, http.StatusConflict, response.ErrCodeDuplicateEntry, result.Error)
		case watchlist.ErrEmptySymbol.Error(), watchlist.ErrEmptyCompany.Error():
			// Whitespace-only fields pass the binding check but fail
			// normalization
			response.BadRequest(c, result.Error)
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrCodeDatabaseError, result.Error)
		}
		return
	}

	response.Created(c, result, "Added to watchlist")
}

// Remove handles DELETE /api/v1/watchlist/:symbol
func (h *WatchlistHandler) Remove(c *gin.Context) {
	symbol := c.Param("symbol")

	result := h.svc.Remove(c.Request.Context(), c.Request.Header, symbol)
	if !result.Success {
		if result.Error == "Not authenticated" {
			response.Unauthorized(c, result.Error)
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrCodeDatabaseError, result.Error)
		return
	}

	response.Success(c, result)
}
