// internal/interfaces/http/handlers/support.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/domain/support"
	"github.com/pitstop-performance/backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SupportHandler handles support ticket endpoints
type SupportHandler struct {
	supportService *support.Service
	config         *config.Config
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(db *gorm.DB, cfg *config.Config) *SupportHandler {
	return &SupportHandler{
		supportService: support.NewService(db, cfg),
		config:         cfg,
	}
}

// CreateTicket opens a support ticket
func (h *SupportHandler) CreateTicket(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req support.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ticket, err := h.supportService.CreateTicket(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ticket created successfully",
		"data":    ticket,
	})
}

// GetTickets lists the current user's tickets
func (h *SupportHandler) GetTickets(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	tickets, err := h.supportService.GetUserTickets(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tickets})
}

// GetTicket returns a single ticket with its replies
func (h *SupportHandler) GetTicket(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID"})
		return
	}

	ticket, err := h.supportService.GetTicket(userID, middleware.IsAdminFromContext(c), uint(ticketID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ticket})
}

// ReplyToTicket appends a reply to a ticket
func (h *SupportHandler) ReplyToTicket(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID"})
		return
	}

	var req support.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	reply, err := h.supportService.AddReply(userID, middleware.IsAdminFromContext(c), uint(ticketID), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reply added successfully",
		"data":    reply,
	})
}

// CloseTicket closes a ticket and deletes its replies
func (h *SupportHandler) CloseTicket(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID"})
		return
	}

	if err := h.supportService.CloseTicket(userID, middleware.IsAdminFromContext(c), uint(ticketID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ticket closed successfully"})
}

// GetAllTickets lists every ticket, admin only
func (h *SupportHandler) GetAllTickets(c *gin.Context) {
	tickets, err := h.supportService.GetAllTickets()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tickets})
}
