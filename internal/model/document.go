package model

import "time"

// Document is the metadata record for one stored file.
// This is a pure domain model with no database-specific dependencies or tags.
// Filename keeps whatever the uploader called the file; Filepath is the
// generated storage location and is opaque to clients.
type Document struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	Filepath  string    `json:"filepath"`
	Filesize  int64     `json:"filesize"`
	CreatedAt time.Time `json:"created_at"`
}
