package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is the registry row for an ingested file. The vector store holds
// the authoritative data; this row exists so documents can be listed and
// their vectors deleted later.
type Document struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Filename   string `gorm:"type:text;not null" json:"filename"`
	FileID     string `gorm:"type:text;not null;uniqueIndex" json:"file_id"`
	MimeType   string `gorm:"type:text;not null;default:''" json:"mime_type"`
	FileSize   int64  `gorm:"not null;default:0" json:"file_size"`
	Department string `gorm:"type:text;not null;default:'general';index" json:"department"`

	ChunkCount int      `gorm:"not null;default:0" json:"chunk_count"`
	VectorIDs  []string `gorm:"serializer:json" json:"vector_ids"`

	UploadedAt time.Time      `gorm:"not null;index" json:"uploaded_at"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Document) TableName() string { return "document" }
