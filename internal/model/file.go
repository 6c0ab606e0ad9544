package model

type UploadImageRequest struct{}

type UploadImageResponse struct {
	URLs []string `json:"urls"`
}
