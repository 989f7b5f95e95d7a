package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// MaxUploadSize is the largest requirement document accepted.
const MaxUploadSize = 5 << 20

// Requirement document kinds
const (
	UploadBirthCertificate = "birth_certificate"
	UploadSchoolID         = "school_id"
	UploadPhoto            = "photo"
)

var uploadTypes = map[string][]string{
	UploadBirthCertificate: {"image/jpeg", "image/png", "application/pdf"},
	UploadSchoolID:         {"image/jpeg", "image/png", "application/pdf"},
	UploadPhoto:            {"image/jpeg", "image/png"},
}

// UploadService stores requirement documents before the form is submitted
type UploadService interface {
	UploadRequirement(ctx context.Context, kind string, file *multipart.FileHeader) (*dto.UploadResponse, error)
}

type uploadServiceImpl struct {
	storage filestorage.FileStorage
	logger  zerolog.Logger
}

// NewUploadService creates a new upload service instance
func NewUploadService(storage filestorage.FileStorage, logger zerolog.Logger) UploadService {
	return &uploadServiceImpl{storage: storage, logger: logger}
}

// UploadRequirement checks the kind, size and sniffed content type of file
// and stores it under requirements/<kind>.
func (s *uploadServiceImpl) UploadRequirement(ctx context.Context, kind string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	allowed, ok := uploadTypes[kind]
	if !ok {
		return nil, apperrors.NewValidationError("kind", "must be one of birth_certificate school_id photo")
	}
	if file == nil {
		return nil, apperrors.NewValidationError("file", "is required")
	}
	if file.Size > MaxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", apperrors.ErrFileTooLarge, file.Size, MaxUploadSize)
	}

	contentType, err := sniff(file)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(allowed, contentType) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFile, contentType)
	}

	url, err := s.storage.SaveFileWithPath(ctx, file, "requirements/"+kind)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", kind).Msg("Failed to store requirement upload")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExternalService, err)
	}

	return &dto.UploadResponse{
		Kind:     kind,
		URL:      url,
		FileName: file.Filename,
		Size:     file.Size,
	}, nil
}

func sniff(file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	return http.DetectContentType(head[:n]), nil
}
