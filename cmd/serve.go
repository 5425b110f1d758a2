package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/insajin/brandsnap/internal/logger"
	"github.com/insajin/brandsnap/internal/server"
)

// serveCmd는 HTTP API와 정적 SPA 호스팅 서버를 시작합니다.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTP API 서버 시작",
	Long: `브랜드 생성 REST API, 상담 WebSocket, 정적 SPA 호스팅을 제공하는
HTTP 서버를 시작합니다.

바인딩 주소는 server.host / server.port 설정(또는 BRANDSNAP_SERVER_PORT 등의
환경변수)으로 제어합니다. server.static_dir이 설정되면 해당 디렉토리의 SPA
번들을 함께 호스팅합니다.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// SIGINT/SIGTERM에서 그레이스풀 셧다운
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg)

	logger.Info().
		Str("addr", cfg.Server.Addr()).
		Str("static_dir", cfg.Server.StaticDir).
		Msg("서버 시작")

	return srv.Run(ctx)
}
