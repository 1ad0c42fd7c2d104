package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freelahub/api/internal/auth"
	"github.com/freelahub/api/internal/models"
	"github.com/freelahub/api/internal/realtime"
	"github.com/freelahub/api/internal/services"
	"github.com/freelahub/api/internal/storage"
)

type MessageHandler struct {
	DB        *gorm.DB
	Messages  *services.MessageService
	Files     *storage.Store
	Notifier  *realtime.Notifier
	Hub       *realtime.Hub
	JWTSecret string
}

func NewMessageHandler(db *gorm.DB, messages *services.MessageService, files *storage.Store, notifier *realtime.Notifier, hub *realtime.Hub, jwtSecret string) *MessageHandler {
	return &MessageHandler{DB: db, Messages: messages, Files: files, Notifier: notifier, Hub: hub, JWTSecret: jwtSecret}
}

// Send accepts multipart form data: a content field plus zero or more
// files. Files are stored before the service runs; if the service rejects
// the message the stored files are removed again, best-effort.
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}

	projectID, err := strconv.ParseUint(c.FormValue("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		return fail(c, fiber.StatusBadRequest, "project_id is required")
	}
	content := c.FormValue("content")

	var attachments []services.AttachmentInput
	var savedPaths []string

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["files"] {
			dst, err := h.Files.NewPath(uint(projectID), file.Filename)
			if err != nil {
				h.cleanup(savedPaths)
				return domainErr(c, err)
			}
			if err := c.SaveFile(file, dst); err != nil {
				h.cleanup(savedPaths)
				return domainErr(c, err)
			}
			savedPaths = append(savedPaths, dst)
			attachments = append(attachments, services.AttachmentInput{
				FileName: file.Filename,
				Path:     dst,
				MimeType: file.Header.Get("Content-Type"),
				Size:     file.Size,
			})
		}
	}

	msg, err := h.Messages.Send(p, services.SendMessageInput{
		ProjectID:   uint(projectID),
		Content:     content,
		Attachments: attachments,
	})
	if err != nil {
		h.cleanup(savedPaths)
		return domainErr(c, err)
	}

	h.notifyParticipants(msg, p.UserID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": msg})
}

func (h *MessageHandler) cleanup(paths []string) {
	for _, path := range paths {
		if err := h.Files.Remove(path); err != nil {
			log.Printf("failed to clean up uploaded file %s: %v", path, err)
		}
	}
}

// notifyParticipants pushes a new_message event to the project's other
// participants: the owning company and every accepted freelancer.
func (h *MessageHandler) notifyParticipants(msg *models.Message, senderID uint) {
	var project models.Project
	if err := h.DB.First(&project, "id = ?", msg.ProjectID).Error; err != nil {
		return
	}

	recipients := map[uint]bool{}
	if project.CompanyID != senderID {
		recipients[project.CompanyID] = true
	}
	var accepted []models.Proposal
	if err := h.DB.Where("project_id = ? AND status = ?", msg.ProjectID, models.ProposalStatusAccepted).
		Find(&accepted).Error; err == nil {
		for _, prop := range accepted {
			if prop.FreelancerID != senderID {
				recipients[prop.FreelancerID] = true
			}
		}
	}

	for userID := range recipients {
		h.Notifier.Notify(userID, map[string]interface{}{
			"type":       "new_message",
			"project_id": msg.ProjectID,
			"message_id": msg.ID,
			"sender_id":  senderID,
			"content":    msg.Content,
		})
	}
}

func (h *MessageHandler) ListByProject(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return err
	}
	messages, err := h.Messages.ListByProject(p, projectID)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": messages})
}

func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Messages.Delete(p, id); err != nil {
		return domainErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// WebSocketHandler keeps a live feed open; clients authenticate with a
// token query param since browsers cannot set headers on websocket dials.
func (h *MessageHandler) WebSocketHandler(c *websocket.Conn) {
	tokenStr := c.Query("token")
	claims, err := auth.ParseJWT(h.JWTSecret, tokenStr)
	if err != nil {
		log.Println("WebSocket: invalid token:", err)
		c.Close()
		return
	}

	client := &realtime.Client{
		ID:     uuid.New().String(),
		UserID: claims.UserID,
		Conn:   realtime.NewWebSocketConn(c),
		Send:   make(chan []byte, 256),
	}

	h.Hub.RegisterClient(client)
	defer h.Hub.UnregisterClient(client)

	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("WebSocket write error:", err)
				return
			}
		}
	}()

	for {
		var payload map[string]interface{}
		if err := c.ReadJSON(&payload); err != nil {
			break
		}
	}
}
