package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pari08yadav/train-ticket-booking/internal/server/middleware"
	"github.com/pari08yadav/train-ticket-booking/internal/server/store"
	"github.com/pari08yadav/train-ticket-booking/internal/utils"
)

type addFundRequest struct {
	Amount float64 `json:"amount"`
}

// POST /api/add/fund/
func (h Handler) AddFund(c *gin.Context) {
	var req addFundRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Amount == 0 {
		RespondError(c, http.StatusBadRequest, "Amount is required")
		return
	}

	userID := middleware.UserID(c)
	balance, err := h.Store.AddBalance(userID, req.Amount)
	if err != nil {
		if errors.Is(err, store.ErrInvalidAmount) {
			RespondError(c, http.StatusBadRequest, "Amount must be greater than zero")
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to add funds")
		return
	}

	utils.LogEvent(requestID(c), "funds", "add", "user_id="+itoa(userID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Amount added successfully",
		"data":    gin.H{"balance": balance},
	})
}

// GET /api/check/balance/
func (h Handler) CheckBalance(c *gin.Context) {
	userID := middleware.UserID(c)
	balance, err := h.Store.Balance(userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load balance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
