package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"

	"webresume_backend/internal/imageprocessor"
	"webresume_backend/internal/logger"
	"webresume_backend/internal/models"
	"webresume_backend/internal/repositories"
	"webresume_backend/internal/services/dto"
	"webresume_backend/internal/storage"
	"webresume_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProjectService interface {
	List(ctx context.Context, db *gorm.DB) ([]*dto.ProjectResponse, error)
	Get(ctx context.Context, db *gorm.DB, id string) (*dto.ProjectResponse, error)
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
	UploadImage(ctx context.Context, db *gorm.DB, id string, file *multipart.FileHeader) (*dto.ProjectResponse, error)
}

type projectService struct {
	projectRepo repositories.ProjectRepository
	storage     storage.Storage
	images      *imageprocessor.Processor
	maxUpload   int64
}

func NewProjectService(projectRepo repositories.ProjectRepository, store storage.Storage, images *imageprocessor.Processor, maxUpload int64) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		storage:     store,
		images:      images,
		maxUpload:   maxUpload,
	}
}

func (s *projectService) List(ctx context.Context, db *gorm.DB) ([]*dto.ProjectResponse, error) {
	projects, err := s.projectRepo.List(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	resp := make([]*dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, s.toResponse(ctx, &projects[i]))
	}
	return resp, nil
}

func (s *projectService) Get(ctx context.Context, db *gorm.DB, id string) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(db, id)
	if err != nil {
		return nil, mapProjectError(err)
	}
	return s.toResponse(ctx, project), nil
}

func (s *projectService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	project := &models.Project{
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		GithubURL:    req.GithubURL,
		LiveURL:      req.LiveURL,
		VideoURL:     req.VideoURL,
	}

	if err := s.projectRepo.Create(db, project); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "project created", "project_id", project.ID)
	return s.toResponse(ctx, project), nil
}

func (s *projectService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(db, id)
	if err != nil {
		return nil, mapProjectError(err)
	}

	req.Apply(project)
	if err := s.projectRepo.Update(db, project); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return s.toResponse(ctx, project), nil
}

func (s *projectService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	project, err := s.projectRepo.FindByID(db, id)
	if err != nil {
		return mapProjectError(err)
	}

	if err := s.projectRepo.Delete(db, id); err != nil {
		return mapProjectError(err)
	}
	s.removeImage(ctx, project.Image)

	logger.CtxInfo(ctx, "project deleted", "project_id", id)
	return nil
}

func (s *projectService) UploadImage(ctx context.Context, db *gorm.DB, id string, file *multipart.FileHeader) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(db, id)
	if err != nil {
		return nil, mapProjectError(err)
	}
	if s.storage == nil || s.images == nil {
		return nil, apperrors.InternalError(errors.New("image storage is not configured"))
	}

	f, err := openUpload(file, s.maxUpload)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := s.images.Process(f)
	if err != nil {
		if errors.Is(err, imageprocessor.ErrUnsupportedFormat) {
			return nil, apperrors.ErrInvalidFileType
		}
		return nil, apperrors.InternalError(err)
	}

	key := storage.NewKey("projects", img.Ext)
	if err := s.storage.Save(ctx, key, bytes.NewReader(img.Data), img.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	old := project.Image
	project.Image = key
	if err := s.projectRepo.Update(db, project); err != nil {
		s.removeImage(ctx, key)
		return nil, apperrors.DatabaseError(err)
	}
	s.removeImage(ctx, old)

	logger.CtxInfo(ctx, "project image uploaded", "project_id", id, "width", img.Width, "height", img.Height)
	return s.toResponse(ctx, project), nil
}

func (s *projectService) toResponse(ctx context.Context, project *models.Project) *dto.ProjectResponse {
	resp := dto.NewProjectResponse(project)
	if project.Image != "" && s.storage != nil {
		if url, err := s.storage.GetURL(ctx, project.Image); err == nil {
			resp.ImageURL = url
		}
	}
	return resp
}

func (s *projectService) removeImage(ctx context.Context, key string) {
	if key == "" || s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.CtxWithError(ctx, "failed to delete project image", err, "key", key)
	}
}

func mapProjectError(err error) error {
	if errors.Is(err, repositories.ErrProjectNotFound) {
		return apperrors.ErrProjectNotFound
	}
	return apperrors.DatabaseError(err)
}
