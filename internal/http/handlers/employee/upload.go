package employee

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/employees-api/internal/utils/response"
	"github.com/aanand-mishra/employees-api/internal/validation"
)

// multipartOverhead is the slack allowed on top of the image limit for
// multipart boundaries and headers.
const multipartOverhead = 64 << 10

// ImageChecker is the upload half of the validation engine.
type ImageChecker interface {
	CheckUpload(size int64, content []byte) (string, validation.ErrorMap)
	MaxImageBytes() int64
}

// ─────────────────────────────────────────────────────────────────────────────
// UploadImage handles POST /api/uploads/profile-image
// Accepts multipart form field "file" and returns the image as a data URI
// ready to be sent as profileImage:
//
//	{ "profileImage": "data:image/png;base64,..." }
//
// Oversized or non-image files produce the same field-error envelope as
// form validation.
// ─────────────────────────────────────────────────────────────────────────────
func UploadImage(checker ImageChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := checker.MaxImageBytes()
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				// Report through the same channel as CheckUpload.
				_, errs := checker.CheckUpload(limit+1, nil)
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		defer file.Close()

		// Size is checked on the declared source size before reading.
		if header.Size > limit {
			_, errs := checker.CheckUpload(header.Size, nil)
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		content, err := io.ReadAll(io.LimitReader(file, limit+1))
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		uri, errs := checker.CheckUpload(header.Size, content)
		if !errs.Empty() {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		slog.Info("profile image accepted",
			slog.String("filename", header.Filename),
			slog.Int64("size", header.Size))
		response.WriteJSON(w, http.StatusOK, map[string]string{"profileImage": uri})
	}
}
