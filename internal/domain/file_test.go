package domain

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/model"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/errorx"
	"github.com/raffler-space/backend/pkg/storage"
	"github.com/raffler-space/backend/pkg/testutil"
	"github.com/raffler-space/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newUploadContext(t *testing.T, role entity.GlobalRole) context.Context {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, &entity.User{Role: role})
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	var imageBuf bytes.Buffer
	require.NoError(t, png.Encode(&imageBuf, image.NewRGBA(image.Rect(0, 0, 64, 48))))

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="banner.png"`)
	header.Set("Content-Type", "image/png")
	part, err := form.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(imageBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/uploadRaffleImage", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	return xcontext.WithHTTPRequest(ctx, req)
}

func Test_fileDomain_UploadRaffleImage(t *testing.T) {
	ctx := newUploadContext(t, entity.RoleAdmin)

	var uploaded []*storage.UploadObject
	fileStorage := &testutil.MockStorage{
		BulkUploadFunc: func(
			ctx context.Context, objs []*storage.UploadObject,
		) ([]*storage.UploadResponse, error) {
			uploaded = objs

			resp := make([]*storage.UploadResponse, 0, len(objs))
			for _, obj := range objs {
				resp = append(resp, &storage.UploadResponse{
					Url:      "https://cdn.example.com/" + obj.FileName,
					FileName: obj.FileName,
				})
			}
			return resp, nil
		},
	}

	domain := NewFileDomain(fileStorage, repository.NewUserRepository())

	resp, err := domain.UploadRaffleImage(ctx, &model.UploadImageRequest{})
	require.NoError(t, err)

	// One rendition per configured size, largest first.
	require.Len(t, resp.URLs, 3)
	require.Len(t, uploaded, 3)
	require.Equal(t, "1024x768-banner.png", uploaded[0].FileName)
	require.Equal(t, "test-bucket", uploaded[0].Bucket)
	require.Equal(t, "raffles", uploaded[0].Prefix)
	require.Equal(t, "image/png", uploaded[0].Mime)
}

func Test_fileDomain_UploadRaffleImage_AdminOnly(t *testing.T) {
	ctx := newUploadContext(t, entity.RoleUser)

	domain := NewFileDomain(&testutil.MockStorage{}, repository.NewUserRepository())

	_, err := domain.UploadRaffleImage(ctx, &model.UploadImageRequest{})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}
