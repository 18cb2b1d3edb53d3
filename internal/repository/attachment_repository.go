package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/internal/pkg/apperrors"
)

type IAttachmentRepository interface {
	UsingTx(ctx context.Context, tx *gorm.DB) IAttachmentRepository
	Create(ctx context.Context, attachment *entity.Attachment) error
	GetById(ctx context.Context, id entity.AttachmentId) (*entity.Attachment, error)
	GetByNoteId(ctx context.Context, noteId entity.NoteId) ([]*entity.Attachment, error)
	GetByNoteIds(ctx context.Context, noteIds []entity.NoteId) ([]*entity.Attachment, error)
	DeleteById(ctx context.Context, id entity.AttachmentId) error
	DeleteByNoteIds(ctx context.Context, noteIds []entity.NoteId) error
}

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) IAttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) UsingTx(ctx context.Context, tx *gorm.DB) IAttachmentRepository {
	return &attachmentRepository{db: tx}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *entity.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepository) GetById(ctx context.Context, id entity.AttachmentId) (*entity.Attachment, error) {
	var attachment entity.Attachment
	err := r.db.WithContext(ctx).First(&attachment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attachment, nil
}

func (r *attachmentRepository) GetByNoteId(ctx context.Context, noteId entity.NoteId) ([]*entity.Attachment, error) {
	var attachments []*entity.Attachment
	err := r.db.WithContext(ctx).
		Where("note_id = ?", noteId).
		Order("created_at DESC").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *attachmentRepository) GetByNoteIds(ctx context.Context, noteIds []entity.NoteId) ([]*entity.Attachment, error) {
	if len(noteIds) == 0 {
		return nil, nil
	}

	var attachments []*entity.Attachment
	err := r.db.WithContext(ctx).
		Where("note_id IN ?", noteIds).
		Order("created_at DESC").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *attachmentRepository) DeleteById(ctx context.Context, id entity.AttachmentId) error {
	return r.db.WithContext(ctx).Delete(&entity.Attachment{}, "id = ?", id).Error
}

func (r *attachmentRepository) DeleteByNoteIds(ctx context.Context, noteIds []entity.NoteId) error {
	if len(noteIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("note_id IN ?", noteIds).Delete(&entity.Attachment{}).Error
}
