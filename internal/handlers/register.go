package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/pemira-fti/backend/internal/middleware"
	"github.com/pemira-fti/backend/internal/service"
)

// maxUploadBytes caps the multipart registration body (KRS PDF + photo).
const maxUploadBytes = 16 << 20

// RegistrationHandler serves voter registration.
type RegistrationHandler struct {
	svc *service.RegistrationService
}

// NewRegistrationHandler creates a registration handler.
func NewRegistrationHandler(svc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	NPM     string `json:"npm"`
	Message string `json:"message"`
}

// Register handles POST /register. The body is a multipart form with fields
// npm, name, region, class, password and files krs (PDF) and photo (image).
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	// A missing file part flows through as empty bytes so the pipeline
	// reports it as an incomplete submission like any missing field.
	document, err := readFilePart(r, "krs")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "krs document unreadable")
		return
	}
	photo, err := readFilePart(r, "photo")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "photo unreadable")
		return
	}

	req := service.RegistrationRequest{
		NPM:        r.FormValue("npm"),
		Name:       r.FormValue("name"),
		Region:     r.FormValue("region"),
		ClassLabel: r.FormValue("class"),
		Password:   r.FormValue("password"),
		Document:   document,
		Photo:      photo,
	}

	voter, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, RegisterResponse{
		NPM:     voter.NPM,
		Message: "registration verified",
	})
}

func readFilePart(r *http.Request, name string) ([]byte, error) {
	file, _, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
