package models

import "time"

// Attachment is a file associated with a form. Attachments are
// existence-dependent on their form and are removed in the same
// transaction when the form is deleted.
//
// The attachments table deliberately has no updated_at column:
// attachment rows are immutable after creation, and the DAO derives
// its column set strictly from the actual schema per entity.
type Attachment struct {
	ID       int64  `json:"id"`
	FormID   int64  `json:"form_id"`
	Filename string `json:"filename"`

	// FilePath is where the file lives under the configured
	// attachments directory.
	FilePath string `json:"file_path"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Attachment model.
func (a Attachment) TableName() string {
	return "attachments"
}
