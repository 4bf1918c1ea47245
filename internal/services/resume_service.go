package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"webresume_backend/internal/cache"
	"webresume_backend/internal/logger"
	"webresume_backend/internal/models"
	"webresume_backend/internal/repositories"
	"webresume_backend/internal/services/dto"
	"webresume_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ResumeService - чтение через кеш, запись с полной очисткой кеша.
// Методы чтения возвращают готовый JSON: при попадании в кеш он отдается без изменений.
type ResumeService interface {
	List(ctx context.Context, db *gorm.DB) ([]byte, error)
	Get(ctx context.Context, db *gorm.DB, id string) ([]byte, error)
	Latest(ctx context.Context, db *gorm.DB) ([]byte, error)
	Create(ctx context.Context, db *gorm.DB, ownerID *string, req *dto.ResumeRequest) (*dto.ResumeResponse, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.ResumeRequest) (*dto.ResumeResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
	ClearCache(ctx context.Context) error
}

type resumeService struct {
	resumeRepo repositories.ResumeRepository
	cache      cache.Cache
	ttl        time.Duration
}

func NewResumeService(resumeRepo repositories.ResumeRepository, c cache.Cache, ttl time.Duration) ResumeService {
	if c == nil {
		c = cache.Noop{}
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	return &resumeService{
		resumeRepo: resumeRepo,
		cache:      c,
		ttl:        ttl,
	}
}

// cached - cache-aside: hit отдается как есть, miss читается из БД и кладется в кеш.
// Ошибки кеша только логируются.
func (s *resumeService) cached(ctx context.Context, key string, load func() (interface{}, error)) ([]byte, error) {
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.CacheLog("get", key, err)
	} else if ok {
		logger.CtxDebug(ctx, "cache hit", "key", key)
		return payload, nil
	}

	value, err := load()
	if err != nil {
		return nil, err
	}

	payload, err = json.Marshal(value)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		logger.CacheLog("set", key, err)
	}
	return payload, nil
}

// invalidate вызывается после каждой успешной записи
func (s *resumeService) invalidate(ctx context.Context) {
	if err := s.cache.Clear(ctx); err != nil {
		logger.CacheLog("clear", "*", err)
	}
}

func (s *resumeService) List(ctx context.Context, db *gorm.DB) ([]byte, error) {
	return s.cached(ctx, cache.KeyAllResumes, func() (interface{}, error) {
		resumes, err := s.resumeRepo.List(db)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		resp := make([]*dto.ResumeResponse, 0, len(resumes))
		for i := range resumes {
			resp = append(resp, dto.NewResumeResponse(&resumes[i]))
		}
		return resp, nil
	})
}

func (s *resumeService) Get(ctx context.Context, db *gorm.DB, id string) ([]byte, error) {
	return s.cached(ctx, cache.ResumeKey(id), func() (interface{}, error) {
		resume, err := s.resumeRepo.FindByID(db, id)
		if err != nil {
			return nil, mapResumeError(err)
		}
		return dto.NewResumeResponse(resume), nil
	})
}

func (s *resumeService) Latest(ctx context.Context, db *gorm.DB) ([]byte, error) {
	return s.cached(ctx, cache.KeyLatestResume, func() (interface{}, error) {
		resume, err := s.resumeRepo.FindLatest(db)
		if err != nil {
			if errors.Is(err, repositories.ErrResumeNotFound) {
				return nil, apperrors.ErrNoResume
			}
			return nil, apperrors.DatabaseError(err)
		}
		return dto.NewResumeResponse(resume), nil
	})
}

func (s *resumeService) Create(ctx context.Context, db *gorm.DB, ownerID *string, req *dto.ResumeRequest) (*dto.ResumeResponse, error) {
	resume := &models.Resume{UserID: ownerID}
	req.Apply(resume)

	if err := s.resumeRepo.Create(db, resume); err != nil {
		return nil, mapResumeError(err)
	}
	s.invalidate(ctx)
	logger.CtxInfo(ctx, "resume created", "resume_id", resume.ID)

	// перечитываем вместе с владельцем
	created, err := s.resumeRepo.FindByID(db, resume.ID)
	if err != nil {
		return nil, mapResumeError(err)
	}
	return dto.NewResumeResponse(created), nil
}

func (s *resumeService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.ResumeRequest) (*dto.ResumeResponse, error) {
	resume, err := s.resumeRepo.FindByID(db, id)
	if err != nil {
		return nil, mapResumeError(err)
	}

	req.Apply(resume)
	if err := s.resumeRepo.Update(db, resume); err != nil {
		return nil, mapResumeError(err)
	}
	s.invalidate(ctx)

	logger.CtxInfo(ctx, "resume updated", "resume_id", resume.ID)
	return dto.NewResumeResponse(resume), nil
}

func (s *resumeService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.resumeRepo.Delete(db, id); err != nil {
		return mapResumeError(err)
	}
	s.invalidate(ctx)

	logger.CtxInfo(ctx, "resume deleted", "resume_id", id)
	return nil
}

// ClearCache - ручная очистка; в отличие от invalidate ошибка возвращается клиенту
func (s *resumeService) ClearCache(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		logger.CacheLog("clear", "*", err)
		return apperrors.ErrCacheClearFailed.WithError(err)
	}
	logger.CtxInfo(ctx, "resume cache cleared")
	return nil
}

func mapResumeError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrResumeNotFound):
		return apperrors.ErrResumeNotFound
	case errors.Is(err, repositories.ErrResumeAlreadyExists):
		return apperrors.ErrResumeAlreadyExists
	default:
		return apperrors.DatabaseError(err)
	}
}
