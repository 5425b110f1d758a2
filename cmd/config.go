package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/insajin/brandsnap/internal/apikey"
	"github.com/insajin/brandsnap/internal/config"
)

var configInitForce bool

// configCmd는 설정 파일 관리 명령어입니다.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "설정 관리 (init/show)",
	Long: `BrandSnap 설정 파일을 관리합니다.

설정 우선순위: 환경변수(BRANDSNAP_ 접두사) > 설정파일 > 기본값`,
}

// configInitCmd는 기본 설정 파일 템플릿을 생성합니다.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "기본 설정 파일 생성",
	RunE:  runConfigInit,
}

// configShowCmd는 현재 유효 설정을 출력합니다.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 설정 출력",
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "기존 설정 파일 덮어쓰기")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// defaultConfigTemplate은 config init이 생성하는 주석 포함 템플릿입니다.
const defaultConfigTemplate = `# BrandSnap 설정 파일
# 환경변수가 이 파일보다 우선합니다 (예: BRANDSNAP_SERVER_PORT=8080)

server:
  host: "0.0.0.0"
  port: 3000
  # SPA 번들 디렉토리. 비어 있으면 정적 호스팅 비활성화
  static_dir: ""
  timeout_seconds: 30

provider:
  base_url: "https://api.openai.com/v1"
  # API 키를 읽을 환경변수 이름. 저장된 키보다 우선
  api_key_env: "OPENAI_API_KEY"
  chat_model: "gpt-4o-mini"
  image_model: "dall-e-3"
  speech_model: "tts-1"
  transcribe_model: "whisper-1"
  timeout_seconds: 60
  # 채팅 요청 자동 재시도 횟수. 0이면 실패를 한 번만 표면화
  max_retries: 0

generation:
  # 로고 이미지 생성 재시도 횟수 (프롬프트 단순화 단계)
  logo_image_retries: 2
  # 상담 대화에서 프로바이더로 보내는 최근 턴 수
  consult_history_turns: 10
  voice: false

logging:
  # debug, info, warn, error
  level: "info"
  # json 또는 console
  format: "json"
  # 로그 파일 경로. 비어 있으면 stderr
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultConfigPath()

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("설정 파일이 이미 존재합니다: %s (덮어쓰려면 --force)", path)
	}

	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("설정 디렉토리 생성 실패: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o600); err != nil {
		return fmt.Errorf("설정 파일 생성 실패: %w", err)
	}

	fmt.Printf("설정 파일이 생성되었습니다: %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("설정 직렬화 실패: %w", err)
	}

	fmt.Printf("# 설정 파일: %s\n", config.DefaultConfigPath())
	fmt.Print(string(out))

	// 자격 증명 상태 요약 (키 자체는 마스킹)
	if key, err := apikey.Resolve(cfg.Provider.APIKeyEnv); err == nil && key != "" {
		fmt.Printf("\n# 자격 증명: 설정됨 (%s)\n", apikey.MaskKey(key))
	} else {
		fmt.Println("\n# 자격 증명: 없음 (폴백 경로로 동작)")
	}
	return nil
}
