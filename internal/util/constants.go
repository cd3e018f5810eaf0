package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Límites de subida de avatares e imágenes de entrenamiento
const (
	MimeImage         = "image/"
	MaxUploadSizeByte = 10 << 20 // 10MB
)

var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
