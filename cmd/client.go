package cmd

import (
	"net/http"
	"time"

	"github.com/insajin/brandsnap/internal/apikey"
	"github.com/insajin/brandsnap/internal/config"
	"github.com/insajin/brandsnap/internal/logger"
	"github.com/insajin/brandsnap/internal/metrics"
	"github.com/insajin/brandsnap/internal/openai"
)

// newProviderClient는 현재 자격 증명으로 프로바이더 클라이언트를 구성합니다.
// 자격 증명이 없으면 nil을 반환하며, 호출자는 폴백 경로로 동작합니다.
// m이 nil이 아니면 프로바이더 호출 메트릭을 수집합니다.
func newProviderClient(cfg *config.Config, m *metrics.Metrics) *openai.Client {
	key, err := apikey.Resolve(cfg.Provider.APIKeyEnv)
	if err != nil || key == "" {
		return nil
	}

	opts := []openai.Option{
		openai.WithBaseURL(cfg.Provider.GetBaseURL()),
		openai.WithChatModel(cfg.Provider.GetChatModel()),
		openai.WithImageModel(cfg.Provider.GetImageModel()),
		openai.WithSpeechModel(cfg.Provider.GetSpeechModel()),
		openai.WithTranscribeModel(cfg.Provider.GetTranscribeModel()),
		openai.WithMaxRetries(cfg.Provider.GetMaxRetries()),
		openai.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Provider.GetTimeoutSeconds()) * time.Second,
		}),
	}
	if m != nil {
		opts = append(opts, openai.WithMetrics(m))
	}

	client, err := openai.NewClient(key, opts...)
	if err != nil {
		logger.Warn().Err(err).Msg("프로바이더 클라이언트 생성 실패, 폴백 경로로 진행")
		return nil
	}
	return client
}
