package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/httpresp"
	"github.com/clinicbooking/clinic-scheduler/internal/middleware"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

type MessageHandler struct {
	db *gorm.DB
}

func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{db: db}
}

// --------- Requests ---------

type SendMessageRequest struct {
	ReceiverID   uint   `json:"receiver_id" binding:"required"`
	Content      string `json:"content" binding:"required"`
	TestResultID *uint  `json:"test_result_id"`
}

// --------- Handlers ---------

func (h *MessageHandler) Send(c *gin.Context) {
	p := middleware.Principal(c)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid message.")
		return
	}

	if req.ReceiverID == p.UserID {
		httperr.BadRequest(c, "invalid_receiver", "Cannot message yourself.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("id = ?", req.ReceiverID).Count(&count)
	if count == 0 {
		httperr.NotFound(c, "receiver_not_found", "Recipient not found.")
		return
	}

	if req.TestResultID != nil {
		var tr models.TestResult
		if err := h.db.First(&tr, *req.TestResultID).Error; err != nil {
			httperr.NotFound(c, "test_result_not_found", "Test result not found.")
			return
		}
	}

	msg := models.Message{
		SenderID:     p.UserID,
		ReceiverID:   req.ReceiverID,
		Content:      req.Content,
		TestResultID: req.TestResultID,
	}

	if err := h.db.Create(&msg).Error; err != nil {
		httperr.Internal(c, "failed_to_send_message", "Could not send message.")
		return
	}

	httpresp.Created(c, msg)
}

// Conversation returns the two-party thread, oldest first, and marks the
// other side's messages as read.
func (h *MessageHandler) Conversation(c *gin.Context) {
	otherID, ok := paramID(c)
	if !ok {
		return
	}

	p := middleware.Principal(c)

	var msgs []models.Message
	if err := h.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			p.UserID, otherID, otherID, p.UserID).
		Order("id ASC").
		Find(&msgs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_messages", "Could not load messages.")
		return
	}

	h.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = false", otherID, p.UserID).
		Update("is_read", true)

	httpresp.List(c, msgs)
}

// Inbox lists the latest unread counts per sender.
func (h *MessageHandler) Inbox(c *gin.Context) {
	p := middleware.Principal(c)

	type inboxRow struct {
		SenderID   uint  `json:"sender_id"`
		Unread     int64 `json:"unread"`
		LastMessID uint  `json:"last_message_id"`
	}

	var rows []inboxRow
	if err := h.db.Model(&models.Message{}).
		Select("sender_id, COUNT(*) FILTER (WHERE is_read = false) AS unread, MAX(id) AS last_mess_id").
		Where("receiver_id = ?", p.UserID).
		Group("sender_id").
		Order("last_mess_id DESC").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_messages", "Could not load inbox.")
		return
	}

	httpresp.List(c, rows)
}
