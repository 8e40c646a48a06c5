package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimeOctetStream = "application/octet-stream"
)

// Storage folders, one per kind of uploaded object.
const (
	FolderCourseImages  = "courses"
	FolderProfileImages = "profiles"
	FolderModuleVideos  = "videos"
	FolderSubmissions   = "submissions"
)

var (
	AllowedImageExtensions = []string{".png", ".jpg", ".jpeg"}
	AllowedVideoExtensions = []string{".mp4", ".webm", ".ogg"}
)
