package domain

// StoredImage is an uploaded image on disk, addressed relative to the upload root.
type StoredImage struct {
	Filename string
	Path     string // e.g. players/player-<uuid>.png
	MimeType string
	Size     int64
}
