package server

import (
	"net/http"

	profiledomain "github.com/formfillhq/formfill/internal/profile/domain"
	"github.com/gin-gonic/gin"
)

type createProfileRequest struct {
	Name string         `json:"name" binding:"required"`
	Data map[string]any `json:"data"`
}

func (s *Server) CreateProfile(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	created, err := s.profilesvc.Create(c.Request.Context(), profiledomain.CreateRequest{
		UserID: currentUserID(c),
		Name:   req.Name,
		Data:   req.Data,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) ListProfiles(c *gin.Context) {
	profiles, err := s.profilesvc.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

func (s *Server) GetProfile(c *gin.Context) {
	got, err := s.profilesvc.Get(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, got)
}

type updateProfileRequest struct {
	Name *string        `json:"name"`
	Data map[string]any `json:"data"`
}

func (s *Server) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	updated, err := s.profilesvc.Update(c.Request.Context(), profiledomain.UpdateRequest{
		UserID: currentUserID(c),
		ID:     c.Param("id"),
		Name:   req.Name,
		Data:   req.Data,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteProfile(c *gin.Context) {
	if err := s.profilesvc.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
