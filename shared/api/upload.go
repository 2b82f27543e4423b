package api

type UploadImageResponse struct {
	Filename string `json:"filename"`
	ImageUrl string `json:"image_url"`
	Size     int64  `json:"size"`
}
