package domain

import (
	"context"

	"github.com/raffler-space/backend/internal/common"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/model"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/errorx"
	"github.com/raffler-space/backend/pkg/storage"
	"github.com/raffler-space/backend/pkg/xcontext"
)

type FileDomain interface {
	UploadRaffleImage(context.Context, *model.UploadImageRequest) (*model.UploadImageResponse, error)
}

type fileDomain struct {
	fileStorage        storage.Storage
	globalRoleVerifier *common.GlobalRoleVerifier
}

func NewFileDomain(
	fileStorage storage.Storage,
	userRepo repository.UserRepository,
) *fileDomain {
	return &fileDomain{
		fileStorage:        fileStorage,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

// UploadRaffleImage stores the uploaded image in every rendition size and
// returns their public URLs, largest first.
func (d *fileDomain) UploadRaffleImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	resp, err := common.ProcessImage(ctx, d.fileStorage, "image")
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(resp))
	for _, r := range resp {
		urls = append(urls, r.Url)
	}

	return &model.UploadImageResponse{URLs: urls}, nil
}
