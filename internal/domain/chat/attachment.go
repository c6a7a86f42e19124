package chat

import (
	"fmt"
	"strings"
	"time"
)

// Attachment is file metadata owned by either a chat message or a ticket.
// The bytes live in external storage addressed by FilePath.
type Attachment struct {
	ID          uint
	OwnerID     uint
	FileName    string
	FilePath    string
	ContentType string
	FileSize    int64
	UploadedAt  time.Time
}

func NewAttachment(fileName, filePath, contentType string, fileSize int64, uploadedAt time.Time) (*Attachment, error) {
	fileName = strings.TrimSpace(fileName)
	switch {
	case fileName == "":
		return nil, fmt.Errorf("file name is required")
	case len(fileName) > 255:
		return nil, fmt.Errorf("file name exceeds maximum length of 255 characters")
	case filePath == "":
		return nil, fmt.Errorf("file path is required")
	case len(filePath) > 500:
		return nil, fmt.Errorf("file path exceeds maximum length of 500 characters")
	case len(contentType) > 100:
		return nil, fmt.Errorf("content type exceeds maximum length of 100 characters")
	case fileSize < 0:
		return nil, fmt.Errorf("file size cannot be negative")
	}
	return &Attachment{
		FileName:    fileName,
		FilePath:    filePath,
		ContentType: contentType,
		FileSize:    fileSize,
		UploadedAt:  uploadedAt.UTC(),
	}, nil
}
