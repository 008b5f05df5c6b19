package files

import (
	"math"
	"path"
	"strconv"
	"strings"
)

// FileType is the coarse category used to pick an icon.
type FileType string

const (
	TypeText    FileType = "text"
	TypeImage   FileType = "image"
	TypeArchive FileType = "archive"
	TypeVideo   FileType = "video"
	TypeAudio   FileType = "audio"
	TypePDF     FileType = "pdf"
	TypeUnknown FileType = "unknown"
)

var extensionTypes = map[string]FileType{
	"txt": TypeText, "md": TypeText, "json": TypeText, "xml": TypeText,
	"html": TypeText, "css": TypeText, "js": TypeText, "ts": TypeText,
	"jpg": TypeImage, "jpeg": TypeImage, "png": TypeImage, "gif": TypeImage,
	"svg": TypeImage, "webp": TypeImage,
	"zip": TypeArchive, "rar": TypeArchive, "7z": TypeArchive, "tar": TypeArchive, "gz": TypeArchive,
	"mp4": TypeVideo, "mov": TypeVideo, "avi": TypeVideo, "mkv": TypeVideo,
	"mp3": TypeAudio, "wav": TypeAudio, "ogg": TypeAudio,
	"pdf": TypePDF,
}

// FileTypeOf classifies a file name by its extension, case-insensitively.
func FileTypeOf(name string) FileType {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return TypeUnknown
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with base-1024 units, rounding to at most
// decimals places and dropping trailing zeros ("1.5 KB", "0 Bytes").
func FormatBytes(n int64, decimals int) string {
	if n <= 0 {
		return "0 Bytes"
	}
	decimals = max(decimals, 0)

	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	i = min(i, len(sizeUnits)-1)

	value := float64(n) / math.Pow(1024, float64(i))
	scale := math.Pow(10, float64(decimals))
	value = math.Round(value*scale) / scale

	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}
