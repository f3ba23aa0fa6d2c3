package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-shortlister/internal/logger"
	"alfredoptarigan/resume-shortlister/internal/models"
)

// UploadReader loads resume bytes from HTTP uploads or local paths and
// assigns each one a fresh source id. Files are held in memory only.
type UploadReader interface {
	ReadUploads(files []*multipart.FileHeader) ([]models.ResumeFile, error)
	ReadPaths(paths []string) ([]models.ResumeFile, error)
}

type uploadReader struct {
	maxFileSize int64
	logger      *zap.Logger
}

func NewUploadReader(maxFileSize int64, log *zap.Logger) UploadReader {
	return &uploadReader{
		maxFileSize: maxFileSize,
		logger:      logger.OrNop(log),
	}
}

func (u *uploadReader) ReadUploads(files []*multipart.FileHeader) ([]models.ResumeFile, error) {
	resumes := make([]models.ResumeFile, 0, len(files))
	for _, file := range files {
		if err := u.checkSize(file.Filename, file.Size); err != nil {
			return nil, err
		}

		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %s: %w", file.Filename, err)
		}
		resume, err := u.read(file.Filename, src)
		src.Close()
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	return resumes, nil
}

func (u *uploadReader) ReadPaths(paths []string) ([]models.ResumeFile, error) {
	resumes := make([]models.ResumeFile, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if info.IsDir() {
			return nil, &ValidationError{Field: "resumes", Message: fmt.Sprintf("%s is a directory", path)}
		}
		if err := u.checkSize(path, info.Size()); err != nil {
			return nil, err
		}

		src, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		resume, err := u.read(filepath.Base(path), src)
		src.Close()
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	return resumes, nil
}

func (u *uploadReader) checkSize(name string, size int64) error {
	if u.maxFileSize > 0 && size > u.maxFileSize {
		return &ValidationError{
			Field:   "resumes",
			Message: fmt.Sprintf("file %s is %d bytes, larger than the %d byte limit", name, size, u.maxFileSize),
		}
	}
	return nil
}

func (u *uploadReader) read(filename string, src io.Reader) (models.ResumeFile, error) {
	// Non-PDF files are still accepted; extraction marks them failed.
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".pdf" {
		u.logger.Warn("resume does not have a .pdf extension", zap.String("filename", filename), zap.String("extension", ext))
	}

	if u.maxFileSize > 0 {
		src = io.LimitReader(src, u.maxFileSize+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return models.ResumeFile{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := u.checkSize(filename, int64(len(data))); err != nil {
		return models.ResumeFile{}, err
	}

	return models.ResumeFile{
		SourceID: uuid.NewString(),
		Filename: filename,
		Data:     data,
	}, nil
}
