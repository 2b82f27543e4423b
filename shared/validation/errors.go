package validation

import (
	"net/http"

	internal_errors "github.com/padel-tracker/padel/shared/errors"
)

var (
	ErrPayloadTooLarge = &internal_errors.ErrorWithStatusCode{Message: "Image exceeds the size limit", StatusCode: http.StatusRequestEntityTooLarge}
	ErrMissingFile     = &internal_errors.ErrorWithStatusCode{Message: "No image file provided", StatusCode: http.StatusBadRequest, Code: "MISSING_FILE"}
	ErrInvalidMimeType = &internal_errors.ErrorWithStatusCode{Message: "Only jpeg, png, gif and webp images are allowed", StatusCode: http.StatusUnsupportedMediaType}
	ErrNotAnImage      = &internal_errors.ErrorWithStatusCode{Message: "File is not a valid image", StatusCode: http.StatusBadRequest, Code: "INVALID_IMAGE"}
)
