package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/internal/pkg/apperrors"
)

type INoteRepository interface {
	UsingTx(ctx context.Context, tx *gorm.DB) INoteRepository
	Create(ctx context.Context, note *entity.Note) error
	GetById(ctx context.Context, id entity.NoteId) (*entity.Note, error)
	GetAll(ctx context.Context) ([]*entity.Note, error)
	GetByFolderId(ctx context.Context, folderId entity.FolderId) ([]*entity.Note, error)
	GetByFolderIds(ctx context.Context, folderIds []entity.FolderId) ([]*entity.Note, error)
	CountByFolderId(ctx context.Context, folderId entity.FolderId) (int64, error)
	CountGroupedByFolder(ctx context.Context) (map[entity.FolderId]int64, error)
	Update(ctx context.Context, note *entity.Note) error
	Search(ctx context.Context, criteria entity.SearchCriteria) ([]*entity.Note, error)
	DeleteById(ctx context.Context, id entity.NoteId) error
	DeleteByFolderIds(ctx context.Context, folderIds []entity.FolderId) error
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) INoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) UsingTx(ctx context.Context, tx *gorm.DB) INoteRepository {
	return &noteRepository{db: tx}
}

func (r *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) GetById(ctx context.Context, id entity.NoteId) (*entity.Note, error) {
	var note entity.Note
	err := r.db.WithContext(ctx).First(&note, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) GetAll(ctx context.Context) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := r.db.WithContext(ctx).
		Order("modified_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) GetByFolderId(ctx context.Context, folderId entity.FolderId) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := r.db.WithContext(ctx).
		Where("folder_id = ?", folderId).
		Order("modified_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) GetByFolderIds(ctx context.Context, folderIds []entity.FolderId) ([]*entity.Note, error) {
	if len(folderIds) == 0 {
		return nil, nil
	}

	var notes []*entity.Note
	err := r.db.WithContext(ctx).
		Where("folder_id IN ?", folderIds).
		Order("modified_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) CountByFolderId(ctx context.Context, folderId entity.FolderId) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Note{}).
		Where("folder_id = ?", folderId).
		Count(&count).Error
	return count, err
}

// CountGroupedByFolder returns the number of notes directly inside each
// folder. Folders without notes have no entry.
func (r *noteRepository) CountGroupedByFolder(ctx context.Context) (map[entity.FolderId]int64, error) {
	var rows []struct {
		FolderId entity.FolderId
		Count    int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Note{}).
		Select("folder_id, COUNT(*) AS count").
		Group("folder_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.FolderId]int64, len(rows))
	for _, row := range rows {
		counts[row.FolderId] = row.Count
	}
	return counts, nil
}

func (r *noteRepository) Update(ctx context.Context, note *entity.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

// Search matches the criteria term as a substring of the selected fields.
// Case-insensitive matching lowercases both sides; case-sensitive matching
// uses instr, which sqlite's LIKE would not honor.
func (r *noteRepository) Search(ctx context.Context, criteria entity.SearchCriteria) ([]*entity.Note, error) {
	var conds []string
	var args []any

	if criteria.CaseSensitive {
		if criteria.IncludeTitle {
			conds = append(conds, "instr(title, ?) > 0")
			args = append(args, criteria.Term)
		}
		if criteria.IncludeContent {
			conds = append(conds, "instr(content, ?) > 0")
			args = append(args, criteria.Term)
		}
	} else {
		pattern := "%" + strings.ToLower(criteria.Term) + "%"
		if criteria.IncludeTitle {
			conds = append(conds, "LOWER(title) LIKE ?")
			args = append(args, pattern)
		}
		if criteria.IncludeContent {
			conds = append(conds, "LOWER(content) LIKE ?")
			args = append(args, pattern)
		}
	}

	if len(conds) == 0 {
		return nil, nil
	}

	q := r.db.WithContext(ctx).Where("("+strings.Join(conds, " OR ")+")", args...)
	if len(criteria.FolderIds) > 0 {
		q = q.Where("folder_id IN ?", criteria.FolderIds)
	}

	var notes []*entity.Note
	err := q.Order("modified_at DESC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) DeleteById(ctx context.Context, id entity.NoteId) error {
	return r.db.WithContext(ctx).Delete(&entity.Note{}, "id = ?", id).Error
}

func (r *noteRepository) DeleteByFolderIds(ctx context.Context, folderIds []entity.FolderId) error {
	if len(folderIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("folder_id IN ?", folderIds).Delete(&entity.Note{}).Error
}
