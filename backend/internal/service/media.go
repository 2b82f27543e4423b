package service

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/padel-tracker/padel/shared/domain"
	"github.com/padel-tracker/padel/shared/logger"
	"github.com/padel-tracker/padel/shared/middleware/metrics"
	"github.com/padel-tracker/padel/shared/validation"
)

const playerImageDir = "players"

type MediaService interface {
	SavePlayerImage(file io.ReadSeeker, originalFilename string, size int64) (domain.StoredImage, error)
}

type MediaStorage interface {
	// Save writes data under dir/filename and returns the path relative to the storage root.
	Save(data io.Reader, dir, filename string) (string, error)
}

type Media struct {
	storage      MediaStorage
	maxSize      int64
	allowedMimes []string
}

func NewMedia(storage MediaStorage, maxSize int64, allowedMimes []string) *Media {
	return &Media{storage: storage, maxSize: maxSize, allowedMimes: allowedMimes}
}

// SavePlayerImage validates the upload by extension and content, then stores it
// as players/player-<uuid><ext>.
func (m *Media) SavePlayerImage(file io.ReadSeeker, originalFilename string, size int64) (domain.StoredImage, error) {
	img, err := validation.ValidateImage(file, originalFilename, size, m.maxSize, m.allowedMimes)
	if err != nil {
		return domain.StoredImage{}, err
	}

	filename := fmt.Sprintf("player-%s%s", uuid.New(), img.Ext)
	path, err := m.storage.Save(file, playerImageDir, filename)
	if err != nil {
		logger.Log.Error("failed to save player image", "filename", filename, "error", err)
		return domain.StoredImage{}, err
	}

	metrics.UploadedBytes.Observe(float64(size))
	logger.Log.Info("player image stored", "path", path, "mime", img.MimeType, "width", img.Width, "height", img.Height)
	return domain.StoredImage{
		Filename: filename,
		Path:     path,
		MimeType: img.MimeType,
		Size:     size,
	}, nil
}
