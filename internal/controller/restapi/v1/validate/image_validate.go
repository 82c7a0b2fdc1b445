package validate

const MaxFileSize int64 = 10 * 1024 * 1024

var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}
