package domain

import (
	"errors"
	"time"
)

// FileType distinguishes client input from admin deliverables.
type FileType string

const (
	// FileTypeUpload is client-provided input.
	FileTypeUpload FileType = "upload"
	// FileTypeDownload is an admin-provided deliverable.
	FileTypeDownload FileType = "download"
)

// IsValid reports whether t is one of the enumerated file types.
func (t FileType) IsValid() bool {
	return t == FileTypeUpload || t == FileTypeDownload
}

var ErrFileNotFound = errors.New("file not found")
var ErrFileMissing = errors.New("file not found on disk")
var ErrInvalidFileType = errors.New("invalid file type")
var ErrFileRequired = errors.New("file and projectId are required")

// File is the logical record of a stored blob. Name keeps the original
// filename for display; Path is the generated storage name and is the
// only index from the record to the bytes on disk. Records are created
// at upload time and never updated.
type File struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"-"`
	ProjectID  string    `json:"project_id"`
	UploadedBy string    `json:"uploaded_by"`
	Type       FileType  `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}
