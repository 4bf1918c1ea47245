package services

import (
	"context"
	"errors"
	"io"
	"mime/multipart"

	"webresume_backend/internal/cryptox"
	"webresume_backend/internal/logger"
	"webresume_backend/internal/models"
	"webresume_backend/internal/repositories"
	"webresume_backend/internal/services/dto"
	"webresume_backend/internal/storage"
	"webresume_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"gorm.io/gorm"
)

// Requester - кто выполняет запрос (из JWT)
type Requester struct {
	UserID   string
	Username string
	IsStaff  bool
}

func (r Requester) Authenticated() bool {
	return r.UserID != ""
}

type ProfileService interface {
	List(ctx context.Context, db *gorm.DB, requester Requester) ([]*dto.ProfileResponse, error)
	Get(ctx context.Context, db *gorm.DB, requester Requester, id string) (*dto.ProfileResponse, error)
	Create(ctx context.Context, db *gorm.DB, requester Requester, req *dto.ProfileRequest) (*dto.ProfileResponse, error)
	Update(ctx context.Context, db *gorm.DB, requester Requester, id string, req *dto.ProfileRequest) (*dto.ProfileResponse, error)
	Delete(ctx context.Context, db *gorm.DB, requester Requester, id string) error
	UploadResumePDF(ctx context.Context, db *gorm.DB, requester Requester, id string, file *multipart.FileHeader) (*dto.ProfileResponse, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	cipher      *cryptox.Cipher
	storage     storage.Storage
	maxUpload   int64
}

func NewProfileService(profileRepo repositories.ProfileRepository, cipher *cryptox.Cipher, store storage.Storage, maxUpload int64) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		cipher:      cipher,
		storage:     store,
		maxUpload:   maxUpload,
	}
}

func (s *profileService) List(ctx context.Context, db *gorm.DB, requester Requester) ([]*dto.ProfileResponse, error) {
	if !requester.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	var profiles []models.Profile
	if requester.IsStaff {
		all, err := s.profileRepo.List(db)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		profiles = all
	} else {
		own, err := s.profileRepo.FindByUserID(db, requester.UserID)
		switch {
		case errors.Is(err, repositories.ErrProfileNotFound):
		case err != nil:
			return nil, apperrors.DatabaseError(err)
		default:
			profiles = append(profiles, *own)
		}
	}

	resp := make([]*dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, s.toResponse(ctx, &profiles[i]))
	}
	return resp, nil
}

func (s *profileService) Get(ctx context.Context, db *gorm.DB, requester Requester, id string) (*dto.ProfileResponse, error) {
	profile, err := s.findVisible(db, requester, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, profile), nil
}

func (s *profileService) Create(ctx context.Context, db *gorm.DB, requester Requester, req *dto.ProfileRequest) (*dto.ProfileResponse, error) {
	if !requester.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	profile := &models.Profile{UserID: requester.UserID}
	if err := s.apply(profile, req); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Create(db, profile); err != nil {
		if errors.Is(err, repositories.ErrProfileAlreadyExists) {
			return nil, apperrors.ErrProfileAlreadyExists
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "profile created", "profile_id", profile.ID)
	return s.reload(ctx, db, profile.ID)
}

func (s *profileService) Update(ctx context.Context, db *gorm.DB, requester Requester, id string, req *dto.ProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.findVisible(db, requester, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(profile, req); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Update(db, profile); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "profile updated", "profile_id", profile.ID)
	return s.toResponse(ctx, profile), nil
}

func (s *profileService) Delete(ctx context.Context, db *gorm.DB, requester Requester, id string) error {
	profile, err := s.findVisible(db, requester, id)
	if err != nil {
		return err
	}

	if err := s.profileRepo.Delete(db, profile.ID); err != nil {
		return mapProfileError(err)
	}
	s.removeFile(ctx, profile.ResumePDF)

	logger.CtxInfo(ctx, "profile deleted", "profile_id", profile.ID)
	return nil
}

func (s *profileService) UploadResumePDF(ctx context.Context, db *gorm.DB, requester Requester, id string, file *multipart.FileHeader) (*dto.ProfileResponse, error) {
	profile, err := s.findVisible(db, requester, id)
	if err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, apperrors.InternalError(errors.New("file storage is not configured"))
	}

	f, err := openUpload(file, s.maxUpload)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !mtype.Is("application/pdf") {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{"file": mtype.String()})
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, apperrors.InternalError(err)
	}

	key := storage.NewKey("resumes", ".pdf")
	if err := s.storage.Save(ctx, key, f, "application/pdf"); err != nil {
		return nil, apperrors.InternalError(err)
	}

	old := profile.ResumePDF
	profile.ResumePDF = key
	if err := s.profileRepo.Update(db, profile); err != nil {
		s.removeFile(ctx, key)
		return nil, apperrors.DatabaseError(err)
	}
	s.removeFile(ctx, old)

	logger.CtxInfo(ctx, "resume pdf uploaded", "profile_id", profile.ID, "key", key)
	return s.toResponse(ctx, profile), nil
}

// apply шифрует токен до записи; без ключа шифрования токен не сохраняется вовсе
func (s *profileService) apply(profile *models.Profile, req *dto.ProfileRequest) error {
	if req.TelegramToken != nil {
		if *req.TelegramToken == "" {
			profile.TelegramToken = ""
		} else {
			if s.cipher == nil {
				return apperrors.ErrCredentialEncryption.WithError(cryptox.ErrNoKey)
			}
			encrypted, err := s.cipher.Encrypt(*req.TelegramToken)
			if err != nil {
				return apperrors.ErrCredentialEncryption.WithError(err)
			}
			profile.TelegramToken = encrypted
		}
	}
	if req.TelegramUsername != nil {
		profile.TelegramUsername = *req.TelegramUsername
	}
	if req.TelegramChatID != nil {
		chatID := *req.TelegramChatID
		if chatID == 0 {
			profile.TelegramChatID = nil
		} else {
			profile.TelegramChatID = &chatID
		}
	}
	return nil
}

// findVisible - staff видит любой профиль, остальные только свой (чужой = 404)
func (s *profileService) findVisible(db *gorm.DB, requester Requester, id string) (*models.Profile, error) {
	if !requester.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	profile, err := s.profileRepo.FindByID(db, id)
	if err != nil {
		return nil, mapProfileError(err)
	}
	if !requester.IsStaff && profile.UserID != requester.UserID {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

func (s *profileService) reload(ctx context.Context, db *gorm.DB, id string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(db, id)
	if err != nil {
		return nil, mapProfileError(err)
	}
	return s.toResponse(ctx, profile), nil
}

func (s *profileService) toResponse(ctx context.Context, profile *models.Profile) *dto.ProfileResponse {
	resp := dto.NewProfileResponse(profile)
	if profile.ResumePDF != "" && s.storage != nil {
		if url, err := s.storage.GetURL(ctx, profile.ResumePDF); err == nil {
			resp.ResumePDFURL = url
		}
	}
	return resp
}

func (s *profileService) removeFile(ctx context.Context, key string) {
	if key == "" || s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.CtxWithError(ctx, "failed to delete stored file", err, "key", key)
	}
}

func mapProfileError(err error) error {
	if errors.Is(err, repositories.ErrProfileNotFound) {
		return apperrors.ErrProfileNotFound
	}
	return apperrors.DatabaseError(err)
}
