package validation

import (
	"encoding/base64"

	"github.com/h2non/filetype"
)

// DefaultMaxImageBytes is the largest accepted profile image, measured on
// the uploaded file before encoding.
const DefaultMaxImageBytes int64 = 2 * 1024 * 1024

const (
	msgImageTooLarge = "Image must be smaller than 2MB"
	msgImageType     = "Profile Image must be an image file"
)

// MaxImageBytes returns the configured upload limit.
func (e *Engine) MaxImageBytes() int64 { return e.maxImageBytes }

// CheckUpload validates a selected profile image and encodes it as a data
// URI. size is the size reported for the source file. Violations use the
// same ErrorMap channel as Validate, keyed by profileImage.
func (e *Engine) CheckUpload(size int64, content []byte) (string, ErrorMap) {
	if n := int64(len(content)); n > size {
		size = n
	}
	if size > e.maxImageBytes {
		return "", ErrorMap{FieldProfileImage: msgImageTooLarge}
	}

	kind, err := filetype.Match(content)
	if err != nil || !filetype.IsImage(content) {
		return "", ErrorMap{FieldProfileImage: msgImageType}
	}

	return "data:" + kind.MIME.Value + ";base64," +
		base64.StdEncoding.EncodeToString(content), ErrorMap{}
}
