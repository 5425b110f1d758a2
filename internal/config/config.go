// Package config는 BrandSnap의 설정 관리를 담당합니다.
// 설정 우선순위: 환경변수 > 설정파일 > 기본값
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config는 전체 애플리케이션 설정을 나타냅니다.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Provider   ProviderConfig   `mapstructure:"provider"`
	Generation GenerationConfig `mapstructure:"generation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig는 HTTP 서버 설정입니다.
type ServerConfig struct {
	// Host는 바인딩할 호스트입니다.
	Host string `mapstructure:"host"`
	// Port는 리슨 포트입니다.
	Port int `mapstructure:"port"`
	// StaticDir은 웹 UI 정적 파일 디렉토리입니다. 비어있으면 정적 서빙을 하지 않습니다.
	StaticDir string `mapstructure:"static_dir"`
	// TimeoutSeconds는 요청 타임아웃(초)입니다.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// ProviderConfig는 AI 프로바이더 설정입니다.
type ProviderConfig struct {
	// BaseURL은 OpenAI 호환 API 엔드포인트입니다.
	BaseURL string `mapstructure:"base_url"`
	// APIKeyEnv는 API 키를 가져올 환경변수 이름입니다.
	// 환경변수가 설정된 경우 저장된 자격증명보다 우선합니다.
	APIKeyEnv string `mapstructure:"api_key_env"`
	// ChatModel은 브랜드 생성/상담에 사용하는 채팅 모델입니다.
	ChatModel string `mapstructure:"chat_model"`
	// ImageModel은 로고 이미지 생성 모델입니다.
	ImageModel string `mapstructure:"image_model"`
	// SpeechModel은 음성 합성 모델입니다.
	SpeechModel string `mapstructure:"speech_model"`
	// TranscribeModel은 음성 인식 모델입니다.
	TranscribeModel string `mapstructure:"transcribe_model"`
	// TimeoutSeconds는 프로바이더 요청 타임아웃(초)입니다.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// MaxRetries는 일시적 오류에 대한 최대 재시도 횟수입니다.
	MaxRetries int `mapstructure:"max_retries"`
}

// GenerationConfig는 브랜드 생성 동작 설정입니다.
type GenerationConfig struct {
	// LogoImageRetries는 로고 이미지 생성의 최대 재시도 횟수입니다.
	// 재시도마다 점진적으로 일반화된 프롬프트를 사용합니다.
	LogoImageRetries int `mapstructure:"logo_image_retries"`
	// ConsultHistoryTurns는 상담 모드에서 프로바이더로 전달하는 최근 대화 턴 수입니다.
	ConsultHistoryTurns int `mapstructure:"consult_history_turns"`
	// Voice는 음성 모드 활성화 여부입니다.
	Voice bool `mapstructure:"voice"`
}

// LoggingConfig는 로깅 설정입니다.
type LoggingConfig struct {
	// Level은 로그 레벨입니다 (debug, info, warn, error).
	Level string `mapstructure:"level"`
	// Format은 로그 포맷입니다 (json, text).
	Format string `mapstructure:"format"`
	// File은 로그 파일 경로입니다. 비어있으면 stdout으로 출력합니다.
	File string `mapstructure:"file"`
}

// Load는 설정을 로드하고 Config 구조체를 반환합니다.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("설정 파싱 실패: %w", err)
	}

	// 홈 디렉토리 경로 확장
	cfg.Server.StaticDir = expandPath(cfg.Server.StaticDir)
	cfg.Logging.File = expandPath(cfg.Logging.File)

	return &cfg, nil
}

// GetAPIKey는 환경변수에서 API 키를 가져옵니다.
func (p *ProviderConfig) GetAPIKey() string {
	if p.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(p.APIKeyEnv)
}

// HasAPIKey는 환경변수 API 키가 설정되어 있는지 확인합니다.
func (p *ProviderConfig) HasAPIKey() bool {
	return p.GetAPIKey() != ""
}

// GetBaseURL은 프로바이더 엔드포인트를 반환합니다.
// 설정되지 않은 경우 기본값을 반환합니다.
func (p *ProviderConfig) GetBaseURL() string {
	if p.BaseURL == "" {
		return "https://api.openai.com/v1"
	}
	return p.BaseURL
}

// GetChatModel은 채팅 모델을 반환합니다.
func (p *ProviderConfig) GetChatModel() string {
	if p.ChatModel == "" {
		return "gpt-4o-mini"
	}
	return p.ChatModel
}

// GetImageModel은 이미지 모델을 반환합니다.
func (p *ProviderConfig) GetImageModel() string {
	if p.ImageModel == "" {
		return "dall-e-3"
	}
	return p.ImageModel
}

// GetSpeechModel은 음성 합성 모델을 반환합니다.
func (p *ProviderConfig) GetSpeechModel() string {
	if p.SpeechModel == "" {
		return "tts-1"
	}
	return p.SpeechModel
}

// GetTranscribeModel은 음성 인식 모델을 반환합니다.
func (p *ProviderConfig) GetTranscribeModel() string {
	if p.TranscribeModel == "" {
		return "whisper-1"
	}
	return p.TranscribeModel
}

// GetTimeoutSeconds는 요청 타임아웃(초)을 반환합니다.
// 설정되지 않은 경우 기본값 60을 반환합니다.
func (p *ProviderConfig) GetTimeoutSeconds() int {
	if p.TimeoutSeconds <= 0 {
		return 60
	}
	return p.TimeoutSeconds
}

// GetMaxRetries는 채팅 요청의 자동 재시도 횟수를 반환합니다.
// 기본값은 0으로, 프로바이더 실패는 한 번만 표면화됩니다.
func (p *ProviderConfig) GetMaxRetries() int {
	if p.MaxRetries < 0 {
		return 0
	}
	return p.MaxRetries
}

// GetLogoImageRetries는 로고 이미지 재시도 횟수를 반환합니다.
// 설정되지 않은 경우 기본값 2를 반환합니다.
func (g *GenerationConfig) GetLogoImageRetries() int {
	if g.LogoImageRetries <= 0 {
		return 2
	}
	return g.LogoImageRetries
}

// GetConsultHistoryTurns는 상담 히스토리 턴 수를 반환합니다.
// 설정되지 않은 경우 기본값 10을 반환합니다.
func (g *GenerationConfig) GetConsultHistoryTurns() int {
	if g.ConsultHistoryTurns <= 0 {
		return 10
	}
	return g.ConsultHistoryTurns
}

// GetPort는 서버 포트를 반환합니다.
// 설정되지 않은 경우 기본값 3000을 반환합니다.
func (s *ServerConfig) GetPort() int {
	if s.Port <= 0 {
		return 3000
	}
	return s.Port
}

// GetHost는 바인딩 호스트를 반환합니다.
func (s *ServerConfig) GetHost() string {
	if s.Host == "" {
		return "0.0.0.0"
	}
	return s.Host
}

// Addr은 리슨 주소를 반환합니다.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.GetHost(), s.GetPort())
}

// Validate는 설정의 유효성을 검사합니다.
func (c *Config) Validate() error {
	// 포트 범위 검증
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("유효하지 않은 포트: %d (0-65535 범위)", c.Server.Port)
	}

	// 정적 디렉토리가 지정된 경우 존재 확인
	if c.Server.StaticDir != "" {
		info, err := os.Stat(c.Server.StaticDir)
		if err != nil {
			return fmt.Errorf("정적 파일 디렉토리를 찾을 수 없습니다: %s", c.Server.StaticDir)
		}
		if !info.IsDir() {
			return fmt.Errorf("정적 파일 경로가 디렉토리가 아닙니다: %s", c.Server.StaticDir)
		}
	}

	// 로그 레벨 검증
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("유효하지 않은 로그 레벨: %s (debug, info, warn, error 중 하나)", c.Logging.Level)
	}

	// 로그 포맷 검증
	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("유효하지 않은 로그 포맷: %s (json, text 중 하나)", c.Logging.Format)
	}

	// 재시도 설정 검증
	if c.Provider.MaxRetries < 0 {
		return fmt.Errorf("max_retries는 0 이상이어야 합니다")
	}
	if c.Generation.LogoImageRetries < 0 {
		return fmt.Errorf("logo_image_retries는 0 이상이어야 합니다")
	}

	return nil
}

// expandPath는 ~를 홈 디렉토리로 확장합니다.
func expandPath(path string) string {
	if path == "" {
		return ""
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// EnsureConfigDir는 설정 디렉토리가 존재하는지 확인하고 없으면 생성합니다.
func EnsureConfigDir() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("홈 디렉토리를 찾을 수 없습니다: %w", err)
	}

	configDir := filepath.Join(home, ".config", "brandsnap")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("설정 디렉토리 생성 실패: %w", err)
	}

	return nil
}

// DefaultConfigPath는 기본 설정 파일 경로를 반환합니다.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "brandsnap", "config.yaml")
}
