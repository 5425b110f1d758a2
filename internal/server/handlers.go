package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/insajin/brandsnap/internal/apikey"
	"github.com/insajin/brandsnap/internal/brand"
	"github.com/insajin/brandsnap/internal/logger"
	"github.com/insajin/brandsnap/internal/session"
)

// generateRequest는 브랜드 생성 요청 본문입니다.
type generateRequest struct {
	Idea string `json:"idea" binding:"required"`
}

// regenerateRequest는 컴포넌트 재생성 요청 본문입니다.
type regenerateRequest struct {
	Component string `json:"component" binding:"required"`
}

// credentialRequest는 자격 증명 설정 요청 본문입니다.
type credentialRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

// handleHealth는 GET /health를 처리합니다.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// handleMetrics는 GET /metrics를 처리합니다.
func (s *Server) handleMetrics(c *gin.Context) {
	data, err := s.metrics.ToJSON()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "메트릭 직렬화 실패"})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// handleGenerate는 POST /api/brand를 처리합니다.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Idea) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idea 필드가 필요합니다"})
		return
	}

	rec, err := s.session.Generate(c.Request.Context(), strings.TrimSpace(req.Idea))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.respondBrand(c, rec)
}

// handleCurrent는 GET /api/brand를 처리합니다.
func (s *Server) handleCurrent(c *gin.Context) {
	rec := s.session.Current()
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "활성 브랜드가 없습니다"})
		return
	}
	s.respondBrand(c, rec)
}

// handleRegenerate는 POST /api/brand/regenerate를 처리합니다.
func (s *Server) handleRegenerate(c *gin.Context) {
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "component 필드가 필요합니다"})
		return
	}

	kind := brand.Component(strings.ToLower(strings.TrimSpace(req.Component)))
	rec, err := s.session.Regenerate(c.Request.Context(), kind)
	switch {
	case errors.Is(err, session.ErrInvalidComponent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, session.ErrNoActiveBrand):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, session.ErrRegenerationInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.respondBrand(c, rec)
}

// handleExport는 GET /api/brand/export를 처리합니다.
// format 쿼리 파라미터는 json(기본) 또는 text입니다.
func (s *Server) handleExport(c *gin.Context) {
	rec := s.session.Current()
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "활성 브랜드가 없습니다"})
		return
	}

	format := c.DefaultQuery("format", "json")
	name := brand.ExportFileName(rec)

	switch format {
	case "json":
		data, err := brand.ExportJSON(rec)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".json"))
		c.Data(http.StatusOK, "application/json", data)
	case "text":
		text, err := brand.ExportText(rec)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".txt"))
		c.String(http.StatusOK, text)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "지원하지 않는 형식입니다: " + format})
	}
}

// respondBrand는 레코드를 내보내기 스키마로 직렬화해 응답합니다.
func (s *Server) respondBrand(c *gin.Context, rec *brand.Record) {
	data, err := brand.ExportJSON(rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// handleCredentialSet는 POST /api/credential을 처리합니다.
func (s *Server) handleCredentialSet(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.APIKey) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "apiKey 필드가 필요합니다"})
		return
	}

	cred := &apikey.Credential{
		APIKey:  strings.TrimSpace(req.APIKey),
		SavedAt: time.Now(),
	}
	if err := apikey.Save(cred); err != nil {
		logger.Error().Err(err).Msg("자격 증명 저장 실패")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "자격 증명을 저장할 수 없습니다"})
		return
	}

	s.refreshClient()
	c.JSON(http.StatusOK, gin.H{
		"saved":  true,
		"masked": apikey.MaskKey(cred.APIKey),
	})
}

// handleCredentialStatus는 GET /api/credential/status를 처리합니다.
func (s *Server) handleCredentialStatus(c *gin.Context) {
	key, err := apikey.Resolve(s.cfg.Provider.APIKeyEnv)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "자격 증명을 읽을 수 없습니다"})
		return
	}

	if key == "" {
		c.JSON(http.StatusOK, gin.H{"configured": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"configured": true,
		"masked":     apikey.MaskKey(key),
	})
}

// handleCredentialDelete는 DELETE /api/credential을 처리합니다.
func (s *Server) handleCredentialDelete(c *gin.Context) {
	if err := apikey.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "자격 증명을 삭제할 수 없습니다"})
		return
	}
	s.refreshClient()
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// handleCredentialTest는 POST /api/credential/test를 처리합니다.
// 최소 대화 요청으로 키 유효성을 검사합니다.
func (s *Server) handleCredentialTest(c *gin.Context) {
	s.metrics.CredentialChecks.Add(1)

	client := s.currentClient()
	if client == nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "설정된 자격 증명이 없습니다"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := client.TestCredential(ctx); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
