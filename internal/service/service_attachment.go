// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/davistroy/radioforms-sub003/internal/config"
	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/store"
	"github.com/davistroy/radioforms-sub003/internal/utils"
	"github.com/davistroy/radioforms-sub003/models"
)

type attachmentService struct {
	attachments store.AttachmentRepository
	forms       store.FormRepository
	dir         string
	uuid        *utils.UUIDGenerator

	logger *logger.Logger
}

// NewAttachmentService wires the attachment service. Files are copied
// into cfg.AttachmentsDir under a generated name; the service is
// disabled when the directory is empty.
func NewAttachmentService(attachments store.AttachmentRepository, forms store.FormRepository, cfg config.Files, log *logger.Logger) AttachmentService {
	return &attachmentService{
		attachments: attachments,
		forms:       forms,
		dir:         cfg.AttachmentsDir,
		uuid:        utils.NewUUIDGenerator(),
		logger:      log,
	}
}

// Attach copies content into the attachments directory and records it
// against the form. The stored name is a generated UUID with the
// original extension, so uploads can never collide or escape the
// directory.
func (s *attachmentService) Attach(ctx context.Context, formID int64, filename string, content io.Reader) (*models.Attachment, error) {
	if s.dir == "" {
		return nil, ErrAttachmentsDisabled
	}

	form, err := s.forms.FindByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, store.ErrNotFound
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("error preparing attachments directory: %w", err)
	}

	stored := s.uuid.Generate() + filepath.Ext(filename)
	path := filepath.Join(s.dir, stored)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating attachment file: %w", err)
	}
	if _, err := io.Copy(dst, content); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, fmt.Errorf("error writing attachment file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("error closing attachment file: %w", err)
	}

	id, err := s.attachments.Create(ctx, models.Attachment{
		FormID:   formID,
		Filename: filepath.Base(filename),
		FilePath: path,
	})
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	s.logger.Info().
		Str("func", "attachmentService.Attach").
		Int64("form_id", formID).
		Int64("attachment_id", id).
		Str("stored_as", stored).
		Msg("attachment stored")

	attachment, err := s.attachments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return attachment, nil
}

func (s *attachmentService) ListForForm(ctx context.Context, formID int64) ([]models.Attachment, error) {
	return s.attachments.FindByForm(ctx, formID)
}

// Remove deletes the record and then the file. A missing file is only
// logged: the row is the source of truth and it is already gone.
func (s *attachmentService) Remove(ctx context.Context, id int64) error {
	attachment, err := s.attachments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if attachment == nil {
		return store.ErrNotFound
	}

	if _, err := s.attachments.Delete(ctx, id); err != nil {
		return err
	}

	if err := os.Remove(attachment.FilePath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn().
			Str("func", "attachmentService.Remove").
			Int64("attachment_id", id).
			Str("path", attachment.FilePath).
			Err(err).
			Msg("attachment file could not be removed")
	}

	return nil
}
