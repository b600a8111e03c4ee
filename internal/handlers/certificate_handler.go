package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"assay-backend/internal/apperr"
	"assay-backend/internal/models"
	"assay-backend/internal/services"
	"assay-backend/pkg/utils"
)

// CertificateHandler serves one certificate kind. The router mounts one
// instance per kind.
type CertificateHandler struct {
	Kind    models.CertificateKind
	Service *services.CertificateService
	Log     logrus.FieldLogger
}

func NewCertificateHandler(kind models.CertificateKind, s *services.CertificateService, log logrus.FieldLogger) *CertificateHandler {
	return &CertificateHandler{Kind: kind, Service: s, Log: log}
}

func (h *CertificateHandler) CreateCertificate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCertificateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		fail(w, h.Log, r, err)
		return
	}

	cert, err := h.Service.CreateCertificate(r.Context(), h.Kind, &req)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, cert)
}

func (h *CertificateHandler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	cert, err := h.Service.GetCertificate(r.Context(), h.Kind, mux.Vars(r)["id"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, cert)
}

func (h *CertificateHandler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	p, err := utils.PageRequest(r)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	page, err := h.Service.ListCertificates(r.Context(), h.Kind, p)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *CertificateHandler) UpdateCertificate(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCertificateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		fail(w, h.Log, r, err)
		return
	}

	cert, err := h.Service.UpdateCertificate(r.Context(), h.Kind, mux.Vars(r)["id"], &req)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, cert)
}

func (h *CertificateHandler) DeleteCertificate(w http.ResponseWriter, r *http.Request) {
	changed, err := h.Service.DeleteCertificate(r.Context(), h.Kind, mux.Vars(r)["id"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	writeDeleted(w, changed, h.Kind.Title())
}

func (h *CertificateHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	pdf, err := h.Service.RenderCertificatePDF(r.Context(), h.Kind, id)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s-%s.pdf"`, h.Kind.Table(), id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// UploadMedia accepts a multipart "file" field holding the certificate photo.
func (h *CertificateHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxMediaBytes+(1<<20))
	if err := r.ParseMultipartForm(services.MaxMediaBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(w, h.Log, r, apperr.Validation("file: larger than %d bytes", services.MaxMediaBytes))
			return
		}
		fail(w, h.Log, r, apperr.BadRequest("Expected multipart form with a file field"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		fail(w, h.Log, r, apperr.Validation("file: field required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		sniff := make([]byte, 512)
		n, _ := io.ReadFull(file, sniff)
		contentType = http.DetectContentType(sniff[:n])
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			fail(w, h.Log, r, apperr.Internal("rewind upload", err))
			return
		}
	}

	cert, err := h.Service.AttachMedia(r.Context(), mux.Vars(r)["id"], contentType, file, header.Size)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, cert)
}

// MediaRedirect sends the client to a short-lived download link.
func (h *CertificateHandler) MediaRedirect(w http.ResponseWriter, r *http.Request) {
	url, err := h.Service.MediaURL(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}
