package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type Presigner interface {
	PresignPut(ctx context.Context, key string) (string, error)
}

// AvatarUpload tells the client where to PUT the picture.
type AvatarUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type AvatarService struct {
	repomanager repomanager.RepositoryManager
	presigner   Presigner
	logger      logging.Logger
}

// NewAvatarService returns a service; a nil presigner disables uploads.
func NewAvatarService(rm repomanager.RepositoryManager, presigner Presigner, logger logging.Logger) *AvatarService {
	return &AvatarService{repomanager: rm, presigner: presigner, logger: logger}
}

func AvatarKey(userID string, now time.Time) string {
	return fmt.Sprintf("avatars/%s/%d/%02d/%v", userID, now.Year(), now.Month(), uuid.New())
}

// CreateUpload presigns a PUT for a fresh object key and records the key as
// the user's profile picture.
func (s *AvatarService) CreateUpload(ctx context.Context, userID string) (*AvatarUpload, error) {
	if s.presigner == nil {
		return nil, common.NewError(common.ErrorNotConfigured, "avatar uploads are not configured")
	}

	key := AvatarKey(userID, time.Now().UTC())

	url, err := s.presigner.PresignPut(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	if err := s.repomanager.Users().SetProfilePicture(ctx, userID, key); err != nil {
		return nil, wrap("set profile picture", err)
	}

	s.logger.Info(ctx, "avatar upload presigned", "user_id", userID, "key", key)
	return &AvatarUpload{Key: key, URL: url}, nil
}
