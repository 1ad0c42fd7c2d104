package models

import "time"

// Message lives in a project's conversation. Content may be empty as long
// as the message carries at least one attachment.
type Message struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text" json:"content"`

	SenderID  uint `gorm:"not null;index" json:"sender_id"`
	ProjectID uint `gorm:"not null;index" json:"project_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sender      *User        `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Project     *Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

// Attachment rows point at files under the upload dir. Their lifecycle is
// tied to the owning message: deleting the message deletes the rows and the
// stored files.
type Attachment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FileName string `gorm:"not null" json:"file_name"`
	Path     string `gorm:"not null" json:"path"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`

	MessageID  uint `gorm:"not null;index" json:"message_id"`
	UploaderID uint `gorm:"not null;index" json:"uploader_id"`
	ProjectID  uint `gorm:"not null;index" json:"project_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
