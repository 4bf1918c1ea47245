package repositories

import (
	"errors"

	"webresume_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
)

type ProfileRepository interface {
	List(db *gorm.DB) ([]models.Profile, error)
	FindByID(db *gorm.DB, id string) (*models.Profile, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	// FindStaffWithToken - профили администраторов с сохраненным токеном, старые первыми
	FindStaffWithToken(db *gorm.DB) ([]models.Profile, error)
	Create(db *gorm.DB, profile *models.Profile) error
	Update(db *gorm.DB, profile *models.Profile) error
	Delete(db *gorm.DB, id string) error
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) List(db *gorm.DB) ([]models.Profile, error) {
	profiles := []models.Profile{}
	err := db.Preload("User").Order("created_at ASC").Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	err := db.Preload("User").First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := db.Preload("User").First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindStaffWithToken(db *gorm.DB) ([]models.Profile, error) {
	profiles := []models.Profile{}
	err := db.
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.role = ?", models.UserRoleAdmin).
		Where("profiles.telegram_token <> ''").
		Order("profiles.created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.Profile) error {
	err := db.Omit(clause.Associations).Create(profile).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrProfileAlreadyExists
	}
	return err
}

func (r *ProfileRepositoryImpl) Update(db *gorm.DB, profile *models.Profile) error {
	return db.Omit(clause.Associations).Save(profile).Error
}

func (r *ProfileRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Profile{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
