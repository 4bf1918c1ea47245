// importresume загружает резюме из JSON файла, если в базе еще нет ни одного.
//
//	go run ./cmd/importresume --file resume.json [--owner admin]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"webresume_backend/database"
	"webresume_backend/internal/cache"
	"webresume_backend/internal/config"
	"webresume_backend/internal/logger"
	"webresume_backend/internal/repositories"
	"webresume_backend/internal/services"
	"webresume_backend/internal/services/dto"
	"webresume_backend/internal/validator"

	"gorm.io/gorm"
)

func main() {
	filePath := flag.String("file", "", "путь к JSON файлу с данными резюме")
	owner := flag.String("owner", "", "username владельца резюме (необязательно)")
	flag.Parse()

	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)

	if err := run(context.Background(), cfg, *filePath, *owner); err != nil {
		logger.Fatal("Resume import failed", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, filePath, owner string) error {
	if filePath == "" {
		return errors.New("--file is required")
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	imported, err := importFile(ctx, db, filePath, owner)
	if err != nil {
		return err
	}
	if !imported {
		logger.Warn("Resume already exists in the database. Skipping import.")
		return nil
	}
	logger.Info("Resume imported", "file", filePath)
	return nil
}

// importFile возвращает false, если резюме уже есть
func importFile(ctx context.Context, db *gorm.DB, filePath, owner string) (bool, error) {
	resumeRepo := repositories.NewResumeRepository()

	count, err := resumeRepo.Count(db)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", filePath, err)
	}
	var req dto.ResumeRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return false, fmt.Errorf("parse %s: %w", filePath, err)
	}
	if err := validator.New().Validate(&req); err != nil {
		return false, err
	}

	var ownerID *string
	if owner != "" {
		user, err := repositories.NewUserRepository().FindByUsername(db, owner)
		if err != nil {
			return false, fmt.Errorf("owner %q: %w", owner, err)
		}
		ownerID = &user.ID
	}

	resumeService := services.NewResumeService(resumeRepo, cache.Noop{}, 0)
	if _, err := resumeService.Create(ctx, db, ownerID, &req); err != nil {
		return false, err
	}
	return true, nil
}
