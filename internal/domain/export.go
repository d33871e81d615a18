package domain

import (
	"time"
)

// Export stores metadata about a data export. The JSON document itself lives in object storage.
type Export struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	S3ObjectKey string    `json:"-"` // internal use
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}
