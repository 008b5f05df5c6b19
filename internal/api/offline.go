package api

import (
	"context"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"
)

// OfflineDescriber describes files from their name alone, without any network
// call. It is used when no chat endpoint is configured.
type OfflineDescriber struct{}

var _ Describer = OfflineDescriber{}

var kindsByExtension = map[string]string{
	"txt": "plain text document", "md": "Markdown document",
	"json": "JSON data file", "xml": "XML document",
	"html": "HTML page", "css": "stylesheet",
	"js": "JavaScript source file", "ts": "TypeScript source file",
	"jpg": "JPEG image", "jpeg": "JPEG image", "png": "PNG image",
	"gif": "GIF image", "svg": "SVG vector image", "webp": "WebP image",
	"zip": "ZIP archive", "rar": "RAR archive", "7z": "7-Zip archive",
	"tar": "tar archive", "gz": "gzip-compressed archive",
	"mp4": "MP4 video", "mov": "QuickTime video", "avi": "AVI video", "mkv": "Matroska video",
	"mp3": "MP3 audio file", "wav": "WAV audio file", "ogg": "Ogg audio file",
	"pdf": "PDF document",
}

// Describe returns a two-sentence description derived from the file extension.
func (OfflineDescriber) Describe(ctx context.Context, fileName, fileContent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
	kind, ok := kindsByExtension[ext]
	if !ok {
		kind = "file of unknown type"
	}

	return fmt.Sprintf("%s is %s %s. The provided content is %d characters long.",
		fileName, article(kind), kind, utf8.RuneCountInString(fileContent)), nil
}

func article(word string) string {
	if word != "" && strings.ContainsRune("AEIOUaeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}
