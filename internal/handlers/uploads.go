package handlers

import (
	"errors"
	"net/http"
	"strings"
)

// multipartOverhead is the room left for form fields and part headers
// on top of the file size limit.
const multipartOverhead = 64 << 10

// UploadProof handles POST /api/uploads/proof  (student only)
//
// Form fields: file (the proof) and challengeId. The response carries the
// URL to put in the submission's photoUrl.
func (s *Server) UploadProof(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Uploads.MaxBytes()+multipartOverhead)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondError(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		respondError(w, http.StatusBadRequest, "expected a multipart form")
		return
	}

	challengeID := strings.TrimSpace(r.FormValue("challengeId"))
	if challengeID == "" {
		respondError(w, http.StatusBadRequest, "challengeId is required")
		return
	}
	if _, err := s.Learning.Challenge(r.Context(), challengeID); err != nil {
		s.fail(w, r, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	url, err := s.Uploads.Save(currentUser(r).ID, challengeID, file)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, map[string]string{"url": url})
}
