package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// AudioPrefix is the namespace that holds identified (audio) assets.
	AudioPrefix = "audio/"

	// OriginalNameKey is the object metadata attribute carrying the uploader's file name
	// for identified assets, whose keys are opaque.
	OriginalNameKey = "originalname"
)

var (
	ErrMissingFile     = errors.New("no file uploaded")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrInvalidUpload   = errors.New("invalid multipart upload")
	ErrEmptyIdentifier = errors.New("identifier cannot be empty")
)

// Kind distinguishes the two key naming schemes.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

func (k Kind) String() string {
	return string(k)
}

// Upload is a file received from a client, fully parsed before any storage call.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        []byte
}

// Asset is the view of one stored object returned to clients.
type Asset struct {
	Key          string
	ID           string
	Name         string
	URL          string
	Type         string
	Size         int64
	LastModified time.Time
}

// PlainKey builds the key of a plain asset: {unixMillis}-{fileName}.
// The file name is used verbatim.
func PlainKey(now time.Time, fileName string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), fileName)
}

// Extension returns the text after the last "." in name.
// A name without a dot is returned whole.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return name
	}
	return name[i+1:]
}

// NewAudioIdentifier builds {unixMillis}-{uuidv4}.{extension} for an identified asset.
func NewAudioIdentifier(now time.Time, id uuid.UUID, fileName string) string {
	return fmt.Sprintf("%d-%s.%s", now.UnixMilli(), id.String(), Extension(fileName))
}

// AudioKey maps an identifier to its storage key.
func AudioKey(identifier string) string {
	return AudioPrefix + identifier
}

// TrailingSegment returns the part of key after its last "/".
func TrailingSegment(key string) string {
	i := strings.LastIndex(key, "/")
	if i < 0 {
		return key
	}
	return key[i+1:]
}

// DisplayName recovers the original name from object metadata, falling back when the
// attribute is absent or empty.
func DisplayName(metadata map[string]string, fallback string) string {
	if name := metadata[OriginalNameKey]; name != "" {
		return name
	}
	return fallback
}
