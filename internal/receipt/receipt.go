// Package receipt converts uploaded files into self-describing data-URI
// attachments usable both for inline preview and for the analyzer call.
package receipt

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyFile       = errors.New("empty file")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidDataURI  = errors.New("invalid data URI")
)

// Attachment is an encoded receipt: the data-URI string stored on the
// draft plus the parsed media type and raw bytes the analyzer needs.
type Attachment struct {
	DataURI   string
	MediaType string
	Data      []byte
}

// IsZero reports whether no file has been attached.
func (a Attachment) IsZero() bool {
	return a.DataURI == ""
}

// Encode builds an Attachment from an uploaded file. The media type is
// taken from the file extension, falling back to content sniffing.
// Images and PDFs are accepted.
func Encode(filename string, data []byte) (Attachment, error) {
	if len(data) == 0 {
		return Attachment{}, ErrEmptyFile
	}

	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}

	if !strings.HasPrefix(mediaType, "image/") && mediaType != "application/pdf" {
		return Attachment{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}

	return Attachment{
		DataURI:   "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data),
		MediaType: mediaType,
		Data:      data,
	}, nil
}

// Decode parses a data-URI string back into media type and raw bytes,
// stripping the declaration prefix added by Encode.
func Decode(dataURI string) (Attachment, error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return Attachment{}, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Attachment{}, ErrInvalidDataURI
	}
	mediaType, _, _ := strings.Cut(meta, ";")
	if mediaType == "" {
		return Attachment{}, ErrInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Attachment{}, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return Attachment{DataURI: dataURI, MediaType: mediaType, Data: data}, nil
}
