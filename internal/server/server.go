// Package server는 BrandSnap HTTP API와 정적 SPA 호스팅을 제공합니다.
// 단일 공유 세션을 서버 계층의 락으로 보호하며, 상담 WebSocket과 메트릭
// 스냅샷 엔드포인트를 함께 노출합니다.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/insajin/brandsnap/internal/apikey"
	"github.com/insajin/brandsnap/internal/config"
	"github.com/insajin/brandsnap/internal/logger"
	"github.com/insajin/brandsnap/internal/metrics"
	"github.com/insajin/brandsnap/internal/openai"
	"github.com/insajin/brandsnap/internal/session"
)

// Server는 BrandSnap HTTP 서버입니다.
type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	session *session.Session
	metrics *metrics.Metrics

	// mu는 client 교체(자격 증명 수명주기)를 보호합니다.
	mu     sync.RWMutex
	client *openai.Client
}

// New는 라우팅이 구성된 서버를 생성합니다.
func New(cfg *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	m := metrics.NewMetrics()
	s := &Server{
		cfg:     cfg,
		engine:  gin.New(),
		metrics: m,
	}
	s.session = session.New(
		session.WithMetrics(m),
		session.WithImageRetries(cfg.Generation.GetLogoImageRetries()),
	)
	s.refreshClient()
	s.registerRoutes()
	return s
}

// Engine은 테스트에서 직접 요청을 주입할 수 있도록 엔진을 반환합니다.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// refreshClient는 현재 자격 증명으로 프로바이더 클라이언트를 재구성합니다.
// 자격 증명이 없으면 클라이언트를 제거하고 세션은 폴백 경로만 사용합니다.
func (s *Server) refreshClient() {
	key, err := apikey.Resolve(s.cfg.Provider.APIKeyEnv)
	if err != nil || key == "" {
		s.mu.Lock()
		s.client = nil
		s.mu.Unlock()
		s.session.SetAIClient(nil)
		return
	}

	client, err := openai.NewClient(key,
		openai.WithBaseURL(s.cfg.Provider.GetBaseURL()),
		openai.WithChatModel(s.cfg.Provider.GetChatModel()),
		openai.WithImageModel(s.cfg.Provider.GetImageModel()),
		openai.WithSpeechModel(s.cfg.Provider.GetSpeechModel()),
		openai.WithTranscribeModel(s.cfg.Provider.GetTranscribeModel()),
		openai.WithMaxRetries(s.cfg.Provider.GetMaxRetries()),
		openai.WithMetrics(s.metrics),
		openai.WithHTTPClient(&http.Client{
			Timeout: time.Duration(s.cfg.Provider.GetTimeoutSeconds()) * time.Second,
		}),
	)
	if err != nil {
		logger.Warn().Err(err).Msg("프로바이더 클라이언트 생성 실패, 폴백 경로로 운영")
		return
	}

	s.mu.Lock()
	s.client = client
	s.mu.Unlock()
	s.session.SetAIClient(client)
}

// currentClient는 현재 프로바이더 클라이언트를 반환합니다. 없으면 nil입니다.
func (s *Server) currentClient() *openai.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

func (s *Server) registerRoutes() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(requestLogger())

	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", s.handleMetrics)
	s.engine.GET("/ws/consult", s.handleConsultWS)

	api := s.engine.Group("/api")
	{
		api.POST("/brand", s.handleGenerate)
		api.GET("/brand", s.handleCurrent)
		api.POST("/brand/regenerate", s.handleRegenerate)
		api.GET("/brand/export", s.handleExport)

		cred := api.Group("/credential")
		{
			cred.POST("", s.handleCredentialSet)
			cred.GET("/status", s.handleCredentialStatus)
			cred.DELETE("", s.handleCredentialDelete)
			cred.POST("/test", s.handleCredentialTest)
		}
	}

	// 나머지 경로는 SPA 정적 호스팅으로 폴백
	s.engine.NoRoute(s.handleStatic)
}

// requestLogger는 요청 단위 구조화 로그 미들웨어입니다.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("HTTP 요청 처리")
	}
}

// Run은 서버를 기동하고 컨텍스트 취소 시 우아하게 종료합니다.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info().Str("addr", srv.Addr).Msg("BrandSnap 서버 시작")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
