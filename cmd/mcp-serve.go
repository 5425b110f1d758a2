package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/insajin/brandsnap/internal/consultant"
	"github.com/insajin/brandsnap/internal/mcpserver"
	"github.com/insajin/brandsnap/internal/metrics"
	"github.com/insajin/brandsnap/internal/session"
)

// mcpServeCmd는 stdio 기반 MCP 서버를 시작합니다.
var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "MCP 서버 시작 (stdio)",
	Long: `BrandSnap 기능을 MCP 도구로 노출하는 서버를 시작합니다.

stdio 트랜스포트를 사용하므로 Claude Desktop 등 MCP 클라이언트의 설정에
명령어로 등록해 사용합니다. 프로토콜이 stdout을 사용하므로 로그는 stderr로
출력됩니다.`,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// stdout은 MCP 프로토콜 전용이므로 로그는 stderr 콘솔로
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	m := metrics.NewMetrics()
	client := newProviderClient(cfg, m)

	sessOpts := []session.Option{
		session.WithMetrics(m),
		session.WithImageRetries(cfg.Generation.GetLogoImageRetries()),
	}
	consOpts := []consultant.Option{
		consultant.WithMetrics(m),
		consultant.WithHistoryWindow(cfg.Generation.GetConsultHistoryTurns()),
	}
	if client != nil {
		sessOpts = append(sessOpts, session.WithAIClient(client))
		consOpts = append(consOpts, consultant.WithChatClient(client))
	}

	srv := mcpserver.NewServer(
		session.New(sessOpts...),
		consultant.New(consOpts...),
		m,
		log,
	)

	if err := srv.Start(); err != nil {
		return fmt.Errorf("MCP 서버 실행 실패: %w", err)
	}
	return nil
}
