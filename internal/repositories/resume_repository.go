package repositories

import (
	"errors"

	"webresume_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrResumeNotFound      = errors.New("resume not found")
	ErrResumeAlreadyExists = errors.New("resume already exists for this user")
)

type ResumeRepository interface {
	List(db *gorm.DB) ([]models.Resume, error)
	FindByID(db *gorm.DB, id string) (*models.Resume, error)
	FindLatest(db *gorm.DB) (*models.Resume, error)
	Create(db *gorm.DB, resume *models.Resume) error
	Update(db *gorm.DB, resume *models.Resume) error
	Delete(db *gorm.DB, id string) error
	Count(db *gorm.DB) (int64, error)
}

type ResumeRepositoryImpl struct{}

func NewResumeRepository() ResumeRepository {
	return &ResumeRepositoryImpl{}
}

// newestFirst - общий порядок для списка и latest
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC").Order("created_at DESC")
}

func (r *ResumeRepositoryImpl) List(db *gorm.DB) ([]models.Resume, error) {
	resumes := []models.Resume{}
	err := newestFirst(db).Preload("User").Find(&resumes).Error
	return resumes, err
}

func (r *ResumeRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Resume, error) {
	var resume models.Resume
	err := db.Preload("User").First(&resume, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return &resume, nil
}

func (r *ResumeRepositoryImpl) FindLatest(db *gorm.DB) (*models.Resume, error) {
	var resume models.Resume
	err := newestFirst(db).Preload("User").Limit(1).Take(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return &resume, nil
}

// Create: одно резюме на владельца держит уникальный индекс user_id
func (r *ResumeRepositoryImpl) Create(db *gorm.DB, resume *models.Resume) error {
	err := db.Omit(clause.Associations).Create(resume).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrResumeAlreadyExists
	}
	return err
}

// Update перезаписывает запись целиком (last writer wins)
func (r *ResumeRepositoryImpl) Update(db *gorm.DB, resume *models.Resume) error {
	return db.Omit(clause.Associations).Save(resume).Error
}

func (r *ResumeRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Resume{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (r *ResumeRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Resume{}).Count(&count).Error
	return count, err
}
