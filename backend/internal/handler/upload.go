package handler

import (
	"net/http"
	"strings"

	"github.com/padel-tracker/padel/shared/api"
	"github.com/padel-tracker/padel/shared/utils"
	"github.com/padel-tracker/padel/shared/validation"
)

const (
	imageField    = "image"
	UploadsPrefix = "/uploads/"
)

func (h *Handler) UploadPlayerImage(w http.ResponseWriter, r *http.Request) {
	maxSize := h.cfg.Public.MaxImageSize
	file, header, err := validation.ParseImageUpload(w, r, imageField, maxSize)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	defer file.Close()

	stored, err := h.media.SavePlayerImage(file, header.Filename, header.Size)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.UploadImageResponse{
		Filename: stored.Filename,
		ImageUrl: h.publicURL(r) + UploadsPrefix + stored.Path,
		Size:     stored.Size,
	})
}

// publicURL is the configured base url, or the one the request came in on
func (h *Handler) publicURL(r *http.Request) string {
	if base := h.cfg.Public.PublicURL; base != "" {
		return strings.TrimRight(base, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
