package services

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/freelahub/api/internal/auth"
	"github.com/freelahub/api/internal/domain"
	"github.com/freelahub/api/internal/models"
	"github.com/freelahub/api/internal/policy"
)

// FileRemover deletes a stored attachment file. Satisfied by storage.Store.
type FileRemover interface {
	Remove(path string) error
}

type MessageService struct {
	DB    *gorm.DB
	Files FileRemover
}

func NewMessageService(gdb *gorm.DB, files FileRemover) *MessageService {
	return &MessageService{DB: gdb, Files: files}
}

type AttachmentInput struct {
	FileName string
	Path     string
	MimeType string
	Size     int64
}

type SendMessageInput struct {
	ProjectID   uint
	Content     string
	Attachments []AttachmentInput
}

// Send posts a message into a project's conversation. Only participants may
// send; the files referenced by Attachments are already on disk, and the
// caller cleans them up if this returns an error.
func (s *MessageService) Send(p auth.Principal, in SendMessageInput) (*models.Message, error) {
	project, found, err := policy.FindProject(s.DB, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("project not found")
	}

	participant, err := policy.IsParticipant(s.DB, project, p.UserID)
	if err != nil {
		return nil, err
	}
	if !participant {
		return nil, domain.Forbidden("you are not a participant of this project")
	}

	content := strings.TrimSpace(in.Content)
	if content == "" && len(in.Attachments) == 0 {
		return nil, domain.Invalid("message must have content or attachments")
	}

	msg := models.Message{
		Content:   content,
		SenderID:  p.UserID,
		ProjectID: in.ProjectID,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		for _, a := range in.Attachments {
			att := models.Attachment{
				FileName:   a.FileName,
				Path:       a.Path,
				MimeType:   a.MimeType,
				Size:       a.Size,
				MessageID:  msg.ID,
				UploaderID: p.UserID,
				ProjectID:  in.ProjectID,
			}
			if err := tx.Create(&att).Error; err != nil {
				return err
			}
			msg.Attachments = append(msg.Attachments, att)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByProject returns the project's conversation, oldest first, with
// attachments. Same participant gate as sending, plus admins.
func (s *MessageService) ListByProject(p auth.Principal, projectID uint) ([]models.Message, error) {
	project, found, err := policy.FindProject(s.DB, projectID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("project not found")
	}

	if !p.IsAdmin() {
		participant, err := policy.IsParticipant(s.DB, project, p.UserID)
		if err != nil {
			return nil, err
		}
		if !participant {
			return nil, domain.Forbidden("you are not a participant of this project")
		}
	}

	var messages []models.Message
	err = s.DB.Preload("Sender").Preload("Attachments").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// Delete removes a message, its attachment rows and the stored files. Only
// the original sender may delete. A file that cannot be unlinked is logged
// and skipped; the rows go regardless.
func (s *MessageService) Delete(p auth.Principal, id uint) error {
	var msg models.Message
	err := s.DB.First(&msg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound("message not found")
	}
	if err != nil {
		return err
	}
	if msg.SenderID != p.UserID {
		return domain.Forbidden("you cannot delete this message")
	}

	var attachments []models.Attachment
	if err := s.DB.Where("message_id = ?", id).Find(&attachments).Error; err != nil {
		return err
	}
	for _, a := range attachments {
		if err := s.Files.Remove(a.Path); err != nil {
			log.Printf("failed to remove attachment file %s: %v", a.Path, err)
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, "id = ?", id).Error
	})
}
