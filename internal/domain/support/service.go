// internal/domain/support/service.go
package support

import (
	"errors"

	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/pkg/apperr"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service handles support ticket business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new support service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateTicketRequest represents ticket creation data
type CreateTicketRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ReplyRequest represents a reply to a ticket
type ReplyRequest struct {
	Message string `json:"message" binding:"required"`
}

// CreateTicket opens a new support ticket
func (s *Service) CreateTicket(userID uint, req *CreateTicketRequest) (*Ticket, error) {
	ticket := Ticket{
		UserID:  userID,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := s.db.Create(&ticket).Error; err != nil {
		return nil, apperr.Internal("failed to create ticket", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"ticket_id": ticket.ID,
	}).Info("Support ticket created")

	return &ticket, nil
}

// GetUserTickets retrieves all tickets opened by a user
func (s *Service) GetUserTickets(userID uint) ([]Ticket, error) {
	var tickets []Ticket
	err := s.db.Preload("Replies").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, apperr.Internal("failed to retrieve tickets", err)
	}
	return tickets, nil
}

// GetTicket retrieves a ticket with its replies. Non-admin callers
// can only see their own tickets.
func (s *Service) GetTicket(userID uint, isAdmin bool, ticketID uint) (*Ticket, error) {
	var ticket Ticket
	query := s.db.Preload("Replies", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("id = ?", ticketID)
	if !isAdmin {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Ticket not found", err)
		}
		return nil, apperr.Internal("failed to retrieve ticket", err)
	}
	return &ticket, nil
}

// AddReply appends a reply to a ticket
func (s *Service) AddReply(userID uint, isAdmin bool, ticketID uint, req *ReplyRequest) (*TicketReply, error) {
	if _, err := s.GetTicket(userID, isAdmin, ticketID); err != nil {
		return nil, err
	}

	reply := TicketReply{
		TicketID: ticketID,
		UserID:   userID,
		Message:  req.Message,
	}

	if err := s.db.Create(&reply).Error; err != nil {
		return nil, apperr.Internal("failed to create reply", err)
	}
	return &reply, nil
}

// CloseTicket deletes a ticket and all of its replies
func (s *Service) CloseTicket(userID uint, isAdmin bool, ticketID uint) error {
	ticket, err := s.GetTicket(userID, isAdmin, ticketID)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("ticket_id = ?", ticket.ID).Delete(&TicketReply{}).Error; err != nil {
		tx.Rollback()
		return apperr.Internal("failed to delete ticket replies", err)
	}

	if err := tx.Delete(&Ticket{}, ticket.ID).Error; err != nil {
		tx.Rollback()
		return apperr.Internal("failed to delete ticket", err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperr.Internal("failed to commit ticket close", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"ticket_id": ticketID,
	}).Info("Support ticket closed")

	return nil
}

// GetAllTickets retrieves every ticket, for admin use
func (s *Service) GetAllTickets() ([]Ticket, error) {
	var tickets []Ticket
	err := s.db.Preload("Replies").
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, apperr.Internal("failed to retrieve tickets", err)
	}
	return tickets, nil
}
