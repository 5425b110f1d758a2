package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/insajin/brandsnap/internal/apikey"
)

// apikeyCmd는 프로바이더 자격 증명 수명주기를 관리합니다.
var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "API 키 관리 (set/remove/status/test)",
	Long: `OpenAI 호환 프로바이더의 API 키를 관리합니다.

키는 ~/.config/brandsnap/credentials.json에 0600 권한으로 저장됩니다.
OPENAI_API_KEY 환경변수(설정의 provider.api_key_env)가 저장된 키보다
우선합니다.`,
}

// apikeySetCmd는 API 키를 저장합니다.
var apikeySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "API 키 저장",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAPIKeySet,
}

// apikeyRemoveCmd는 저장된 API 키를 삭제합니다.
var apikeyRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "저장된 API 키 삭제",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !apikey.Exists() {
			fmt.Println("저장된 API 키가 없습니다.")
			return nil
		}
		if err := apikey.Clear(); err != nil {
			return fmt.Errorf("API 키 삭제 실패: %w", err)
		}
		fmt.Println("API 키가 삭제되었습니다.")
		return nil
	},
}

// apikeyStatusCmd는 자격 증명 상태를 출력합니다.
var apikeyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "자격 증명 상태 확인",
	RunE:  runAPIKeyStatus,
}

// apikeyTestCmd는 저장된 키로 프로바이더에 시험 요청을 보냅니다.
var apikeyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "API 키 유효성 검사",
	RunE:  runAPIKeyTest,
}

func init() {
	apikeyCmd.AddCommand(apikeySetCmd)
	apikeyCmd.AddCommand(apikeyRemoveCmd)
	apikeyCmd.AddCommand(apikeyStatusCmd)
	apikeyCmd.AddCommand(apikeyTestCmd)
	rootCmd.AddCommand(apikeyCmd)
}

func runAPIKeySet(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		// 인자가 없으면 stdin에서 읽음 (셸 히스토리 노출 방지)
		fmt.Print("API 키 입력: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("키 입력 읽기 실패: %w", err)
		}
		key = line
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API 키가 비어 있습니다")
	}

	cred := &apikey.Credential{
		APIKey:  key,
		SavedAt: time.Now(),
	}
	if err := apikey.Save(cred); err != nil {
		return fmt.Errorf("API 키 저장 실패: %w", err)
	}

	fmt.Printf("API 키가 저장되었습니다: %s\n", apikey.MaskKey(key))
	return nil
}

func runAPIKeyStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 환경변수 우선
	if envKey := strings.TrimSpace(os.Getenv(cfg.Provider.APIKeyEnv)); envKey != "" {
		fmt.Printf("자격 증명: 환경변수 %s (%s)\n", cfg.Provider.APIKeyEnv, apikey.MaskKey(envKey))
		if apikey.Exists() {
			fmt.Println("저장된 키도 있지만 환경변수가 우선합니다.")
		}
		return nil
	}

	cred, err := apikey.Load()
	if err != nil {
		return fmt.Errorf("자격 증명 읽기 실패: %w", err)
	}
	if !cred.IsValid() {
		fmt.Println("자격 증명 없음: brandsnap apikey set으로 등록하세요.")
		fmt.Println("자격 증명이 없으면 생성은 폴백 알고리즘으로 동작합니다.")
		return nil
	}

	fmt.Printf("자격 증명: 저장된 키 (%s)\n", apikey.MaskKey(cred.APIKey))
	fmt.Printf("  저장 시각: %s\n", cred.SavedAt.Format(time.RFC3339))
	if cred.Verified {
		fmt.Println("  검증 상태: 성공")
	} else {
		fmt.Println("  검증 상태: 미검증 (brandsnap apikey test)")
	}
	return nil
}

func runAPIKeyTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := newProviderClient(cfg, nil)
	if client == nil {
		return fmt.Errorf("자격 증명이 없습니다: brandsnap apikey set으로 등록하세요")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	fmt.Println("프로바이더에 시험 요청을 보내는 중...")
	if err := client.TestCredential(ctx); err != nil {
		return fmt.Errorf("API 키 검증 실패: %w", err)
	}

	fmt.Println("API 키가 유효합니다.")

	// 저장된 키였다면 검증 플래그 기록
	if cred, err := apikey.Load(); err == nil && cred.IsValid() {
		cred.Verified = true
		if err := apikey.Save(cred); err == nil {
			fmt.Println("검증 상태가 기록되었습니다.")
		}
	}
	return nil
}
