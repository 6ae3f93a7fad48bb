package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/keywordmaster/keywordmaster/internal/logging"
	"github.com/keywordmaster/keywordmaster/internal/session"
	"github.com/keywordmaster/keywordmaster/internal/stats"
	"github.com/keywordmaster/keywordmaster/internal/tagger"
	"github.com/keywordmaster/keywordmaster/internal/version"
	"go.uber.org/zap"
)

// sessionView is the JSON form of the session: the snapshot plus its stats.
type sessionView struct {
	session.Snapshot
	Stats stats.Stats `json:"stats"`
}

func newSessionView(snap session.Snapshot) sessionView {
	return sessionView{Snapshot: snap, Stats: snap.Stats()}
}

// stateVersion identifies what the page shows for a snapshot. The page
// reloads when the live stream reports a different version.
func stateVersion(snap session.Snapshot) string {
	return fmt.Sprintf("%s.%s.%d.%s", snap.Status, snap.RequestID, len(snap.Tags), snap.Copy)
}

// GenerateRequest is the body of POST /api/v1/generate.
type GenerateRequest struct {
	Topic string `json:"topic"`
}

// GenerateResponse is returned by POST /api/v1/generate.
type GenerateResponse struct {
	Topic string      `json:"topic"`
	Tags  []string    `json:"tags"`
	Stats stats.Stats `json:"stats"`
}

// StatsRequest is the body of POST /api/v1/stats.
type StatsRequest struct {
	Tags []string `json:"tags"`
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderPage(c, http.StatusOK, "")
}

func (s *Server) renderPage(c *gin.Context, status int, notice string) {
	c.HTML(status, pageName, s.newPageData(s.ctrl.Snapshot(), notice))
}

func seeOther(c *gin.Context, anchor string) {
	c.Redirect(http.StatusSeeOther, "/"+anchor)
}

func (s *Server) handleGenerateForm(c *gin.Context) {
	topic := c.PostForm("topic")

	// The generation outlives a browser that navigates away; the result is
	// picked up by the next page load.
	ctx := context.WithoutCancel(c.Request.Context())
	err := s.ctrl.Generate(ctx, topic)
	switch {
	case errors.Is(err, session.ErrEmptyTopic):
		seeOther(c, "")
	case errors.Is(err, session.ErrInFlight):
		s.renderPage(c, http.StatusConflict, "A generation is already running. Results will appear shortly.")
	case errors.Is(err, session.ErrClosed):
		s.renderPage(c, http.StatusServiceUnavailable, "The server is shutting down.")
	default:
		// Failures are stored in the session and shown in the banner.
		seeOther(c, "#results")
	}
}

func (s *Server) handleDeleteForm(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		s.renderPage(c, http.StatusBadRequest, "Invalid tag index.")
		return
	}

	s.ctrl.RemoveTag(index)
	seeOther(c, "#results")
}

func (s *Server) handleCopyForm(c *gin.Context) {
	_, err := s.ctrl.CopyAll()
	switch {
	case err == nil, errors.Is(err, session.ErrNoTags):
		seeOther(c, "#results")
	default:
		logging.Warn("Host clipboard copy failed", zap.Error(err))
		s.renderPage(c, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleExport(c *gin.Context) {
	export, err := s.ctrl.Export()
	if errors.Is(err, session.ErrNoTags) {
		c.String(http.StatusNotFound, "No tags to export.")
		return
	}
	if err != nil {
		logging.Error("CSV export failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Export failed.")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType+"; charset=utf-8", export.Data)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Version})
}

func (s *Server) handleAPIGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		badRequest(c, "topic is required")
		return
	}

	tags, err := s.gen.GenerateTags(c.Request.Context(), topic)
	if err != nil {
		var genErr *tagger.GenerationError
		if errors.As(err, &genErr) {
			badGateway(c, "generation_"+genErr.Kind.String(), genErr.Message)
			return
		}
		internalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Topic: topic,
		Tags:  tags,
		Stats: stats.Compute(tags),
	})
}

func (s *Server) handleAPISession(c *gin.Context) {
	c.JSON(http.StatusOK, newSessionView(s.ctrl.Snapshot()))
}

func (s *Server) handleAPIDeleteTag(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "index must be an integer")
		return
	}

	if s.ctrl.Snapshot().Generating {
		conflict(c, session.ErrInFlight.Error())
		return
	}
	if !s.ctrl.RemoveTag(index) {
		notFound(c, fmt.Sprintf("no tag at index %d", index))
		return
	}

	c.JSON(http.StatusOK, newSessionView(s.ctrl.Snapshot()))
}

func (s *Server) handleAPIStats(c *gin.Context) {
	var req StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	c.JSON(http.StatusOK, stats.Compute(req.Tags))
}
