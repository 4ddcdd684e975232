package cloudinary

import (
	"bytes"
	"context"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryUploader struct {
	cld *cld.Cloudinary
}

func NewCloudinaryUploader(cloud *cld.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cloud}
}

// UploadBytes pushes an image and returns its public URL. An empty
// filename lets Cloudinary assign the public ID.
func (u *CloudinaryUploader) UploadBytes(
	ctx context.Context,
	folder string,
	filename string,
	b []byte,
) (string, error) {
	params := uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	}
	if filename != "" {
		params.PublicID = filename
	}

	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(b), params)
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}
