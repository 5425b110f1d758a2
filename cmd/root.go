// Package cmd는 BrandSnap CLI의 명령어를 정의합니다.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/insajin/brandsnap/internal/config"
	"github.com/insajin/brandsnap/internal/logger"
)

var (
	// 전역 플래그
	cfgFile string
	verbose bool

	// 버전 정보 (main에서 주입)
	appVersion   string
	appCommit    string
	appBuildDate string
)

// rootCmd는 CLI의 루트 명령어입니다.
var rootCmd = &cobra.Command{
	Use:   "brandsnap",
	Short: "BrandSnap Brand Studio CLI",
	Long: `BrandSnap은 스타트업 아이디어로부터 브랜드 아이덴티티를 생성합니다.

브랜드 이름, 태그라인, 5색 팔레트, 로고를 한 번에 만들어 냅니다.
OpenAI 호환 프로바이더의 자격 증명이 있으면 AI 경로를, 없으면
결정적 폴백 알고리즘을 사용합니다.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 로거 초기화
		return initLogger()
	},
}

// Execute는 루트 명령어를 실행합니다.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo는 버전 정보를 설정합니다.
func SetVersionInfo(version, commit, buildDate string) {
	appVersion = version
	appCommit = commit
	appBuildDate = buildDate
}

// GetVersionInfo는 버전 정보를 반환합니다.
func GetVersionInfo() (version, commit, buildDate string) {
	return appVersion, appCommit, appBuildDate
}

func init() {
	cobra.OnInitialize(initConfig)

	// 전역 플래그 정의
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"설정 파일 경로 (기본값: ~/.config/brandsnap/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"상세 로그 출력 (debug 레벨)")
}

// initConfig는 설정 파일을 초기화합니다.
// 설정 우선순위: 환경변수 > 설정파일 > 기본값
func initConfig() {
	if cfgFile != "" {
		// 명시적 설정 파일 사용
		viper.SetConfigFile(cfgFile)
	} else {
		// 기본 설정 경로: ~/.config/brandsnap/config.yaml
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "홈 디렉토리를 찾을 수 없습니다: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "brandsnap")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// 환경변수 자동 바인딩 (BRANDSNAP_ 접두사)
	viper.SetEnvPrefix("BRANDSNAP")
	viper.AutomaticEnv()

	// 기본값 설정
	setDefaults()

	// 설정 파일 읽기 (없어도 오류 아님)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// 설정 파일이 있지만 읽기 실패한 경우만 오류
			fmt.Fprintf(os.Stderr, "설정 파일 읽기 실패: %v\n", err)
		}
	}
}

// setDefaults는 기본 설정값을 정의합니다.
func setDefaults() {
	// 서버 설정
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.static_dir", "")
	viper.SetDefault("server.timeout_seconds", 30)

	// 프로바이더 설정
	viper.SetDefault("provider.base_url", "https://api.openai.com/v1")
	viper.SetDefault("provider.api_key_env", "OPENAI_API_KEY")
	viper.SetDefault("provider.chat_model", "gpt-4o-mini")
	viper.SetDefault("provider.image_model", "dall-e-3")
	viper.SetDefault("provider.speech_model", "tts-1")
	viper.SetDefault("provider.transcribe_model", "whisper-1")
	viper.SetDefault("provider.timeout_seconds", 60)
	viper.SetDefault("provider.max_retries", 0)

	// 생성 설정
	viper.SetDefault("generation.logo_image_retries", 2)
	viper.SetDefault("generation.consult_history_turns", 10)
	viper.SetDefault("generation.voice", false)

	// 로깅 설정
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.file", "")
}

// initLogger는 로거를 초기화합니다.
func initLogger() error {
	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	// verbose 플래그가 설정되면 debug 레벨로 오버라이드
	if verbose {
		cfg.Logging.Level = "debug"
	}

	// 로거 설정
	logger.Setup(cfg.Logging)
	return nil
}

// loadConfig는 현재 설정을 로드하고 검증합니다.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("설정 로드 실패: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("설정 검증 실패: %w", err)
	}
	return cfg, nil
}
