package service

import (
	"alcyxob/tracker-app/internal/domain"
	"alcyxob/tracker-app/internal/repository"
	"alcyxob/tracker-app/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const exportContentType = "application/json"

// ExportDocument is the JSON snapshot written to object storage.
type ExportDocument struct {
	ExportedAt    time.Time               `json:"exportedAt"`
	User          domain.User             `json:"user"`
	Books         []domain.Book           `json:"books"`
	Records       []domain.ActivityRecord `json:"records"`
	HealthEntries []domain.HealthEntry    `json:"healthEntries"`
}

// ExportService writes user data snapshots to object storage.
type ExportService interface {
	// ExportUserData uploads a snapshot and returns its metadata with a download URL.
	ExportUserData(ctx context.Context, userID string) (*domain.Export, string, error)
	ListExports(ctx context.Context, userID string) ([]domain.Export, error)
	GetExportURL(ctx context.Context, userID, exportID string) (string, error)
	DeleteExport(ctx context.Context, userID, exportID string) error
}

type exportService struct {
	snapshotLoader
	userRepo    repository.UserRepository
	healthRepo  repository.HealthRepository
	exportRepo  repository.ExportRepository
	fileStorage storage.FileStorage
}

// NewExportService creates a new ExportService.
func NewExportService(
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	activityRepo repository.ActivityRepository,
	healthRepo repository.HealthRepository,
	exportRepo repository.ExportRepository,
	fileStorage storage.FileStorage,
) ExportService {
	return &exportService{
		snapshotLoader: snapshotLoader{bookRepo: bookRepo, activityRepo: activityRepo},
		userRepo:       userRepo,
		healthRepo:     healthRepo,
		exportRepo:     exportRepo,
		fileStorage:    fileStorage,
	}
}

func exportObjectKey(userID, exportID string) string {
	return fmt.Sprintf("exports/%s/%s.json", userID, exportID)
}

func (s *exportService) ExportUserData(ctx context.Context, userID string) (*domain.Export, string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}
	user.PasswordHash = ""

	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	health, err := s.healthRepo.GetByUserID(ctx, userID, "", "")
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	body, err := json.MarshalIndent(ExportDocument{
		ExportedAt:    now,
		User:          *user,
		Books:         snap.ProjectCompletion(),
		Records:       snap.Records,
		HealthEntries: health,
	}, "", "  ")
	if err != nil {
		return nil, "", err
	}

	exportID := uuid.NewString()
	export := &domain.Export{
		ID:          exportID,
		UserID:      userID,
		S3ObjectKey: exportObjectKey(userID, exportID),
		FileName:    fmt.Sprintf("tracker-export-%s.json", now.Format("20060102-150405")),
		ContentType: exportContentType,
		Size:        int64(len(body)),
	}

	if err := s.fileStorage.PutObject(ctx, export.S3ObjectKey, exportContentType, body); err != nil {
		if errors.Is(err, storage.ErrStorageDisabled) {
			return nil, "", ErrExportDisabled
		}
		return nil, "", err
	}
	if _, err := s.exportRepo.Create(ctx, export); err != nil {
		// Don't leave an orphaned object behind.
		if delErr := s.fileStorage.DeleteObject(ctx, export.S3ObjectKey); delErr != nil {
			log.Printf("WARN: Failed to remove orphaned export object %s: %v", export.S3ObjectKey, delErr)
		}
		return nil, "", err
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, export.S3ObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, "", err
	}
	log.Printf("INFO: Exported data for user %s (%d bytes)", userID, export.Size)
	return export, url, nil
}

func (s *exportService) ListExports(ctx context.Context, userID string) ([]domain.Export, error) {
	return s.exportRepo.GetByUserID(ctx, userID)
}

func (s *exportService) getExport(ctx context.Context, userID, exportID string) (*domain.Export, error) {
	export, err := s.exportRepo.GetByID(ctx, exportID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExportNotFound
		}
		return nil, err
	}
	return export, nil
}

// GetExportURL returns a fresh download URL for an earlier export.
func (s *exportService) GetExportURL(ctx context.Context, userID, exportID string) (string, error) {
	export, err := s.getExport(ctx, userID, exportID)
	if err != nil {
		return "", err
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, export.S3ObjectKey, storage.DefaultPresignedURLExpiry)
	if errors.Is(err, storage.ErrStorageDisabled) {
		return "", ErrExportDisabled
	}
	return url, err
}

// DeleteExport removes the stored object and its metadata.
func (s *exportService) DeleteExport(ctx context.Context, userID, exportID string) error {
	export, err := s.getExport(ctx, userID, exportID)
	if err != nil {
		return err
	}
	if err := s.fileStorage.DeleteObject(ctx, export.S3ObjectKey); err != nil {
		if errors.Is(err, storage.ErrStorageDisabled) {
			return ErrExportDisabled
		}
		return err
	}
	if err := s.exportRepo.Delete(ctx, exportID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExportNotFound
		}
		return err
	}
	return nil
}
