package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/formfillhq/formfill/internal/fill"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

// ExtractFields reports the fillable fields of an uploaded PDF.
func (s *Server) ExtractFields(c *gin.Context) {
	pdfBytes, _, err := s.readUpload(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	fields, err := s.fillsvc.Extract(c.Request.Context(), pdfBytes)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

// Fill resolves values into the uploaded PDF and streams the result.
// Signed-in Pro users fill clean and unmetered; everyone else is
// watermarked and counted against the daily free budget.
func (s *Server) Fill(c *gin.Context) {
	pdfBytes, filename, err := s.readUpload(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	userID := currentUserID(c)
	data, err := s.fillData(c, userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	pro := s.isPro(c)
	if !pro {
		token := userID
		if token == "" {
			token = s.visitorToken(c)
		}
		if !s.limiter.Allow(token) {
			AbortWithError(c, ErrLimited)
			return
		}
	}

	result, err := s.fillsvc.Apply(c.Request.Context(), fill.Request{
		UserID:    userID,
		PDF:       pdfBytes,
		Data:      data,
		Watermark: !pro,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(filename)))
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}

type aiExtractRequest struct {
	FieldNames []string `json:"field_names" binding:"required"`
	Text       string   `json:"text" binding:"required"`
}

// AIExtract guesses values for the given field names from free text.
func (s *Server) AIExtract(c *gin.Context) {
	var req aiExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	values, err := s.fillsvc.AIExtract(c.Request.Context(), req.FieldNames, req.Text)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"values": values})
}

// readUpload pulls the "pdf" part out of the multipart form.
func (s *Server) readUpload(c *gin.Context) ([]byte, string, error) {
	header, err := c.FormFile("pdf")
	if err != nil {
		if isTooLarge(err) {
			return nil, "", ErrTooLarge
		}
		return nil, "", ErrInvalidRequest
	}

	file, err := header.Open()
	if err != nil {
		return nil, "", ErrInvalidRequest
	}
	defer file.Close()

	pdfBytes, err := readAll(file)
	if err != nil {
		if isTooLarge(err) {
			return nil, "", ErrTooLarge
		}
		return nil, "", ErrInvalidRequest
	}
	if len(pdfBytes) == 0 {
		return nil, "", ErrInvalidRequest
	}
	return pdfBytes, header.Filename, nil
}

// fillData resolves the value source: a saved profile for signed-in
// users, or inline JSON under the "data" form field.
func (s *Server) fillData(c *gin.Context, userID string) (map[string]any, error) {
	if profileID := strings.TrimSpace(c.PostForm("profile_id")); profileID != "" {
		if userID == "" {
			return nil, ErrUnauthorized
		}
		saved, err := s.profilesvc.Get(c.Request.Context(), userID, profileID)
		if err != nil {
			return nil, err
		}
		return map[string]any(saved.Data), nil
	}

	raw := strings.TrimSpace(c.PostForm("data"))
	if raw == "" {
		return nil, ErrInvalidRequest
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, ErrInvalidRequest
	}
	return data, nil
}

func readAll(file multipart.File) ([]byte, error) {
	return io.ReadAll(file)
}

func isTooLarge(err error) bool {
	var maxBytes *http.MaxBytesError
	return errors.As(err, &maxBytes)
}

func downloadName(original string) string {
	base := strings.TrimSuffix(path.Base(original), path.Ext(original))
	name := slug.Make(base)
	if name == "" {
		name = "document"
	}
	return name + "-filled.pdf"
}
