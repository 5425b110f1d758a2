package cmd

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/insajin/brandsnap/internal/consultant"
	"github.com/insajin/brandsnap/internal/session"
	"github.com/insajin/brandsnap/internal/tui"
	"github.com/insajin/brandsnap/internal/voice"
)

var consultVoice bool

// consultCmd는 대화형 브랜드 상담 TUI를 시작합니다.
var consultCmd = &cobra.Command{
	Use:   "consult [idea]",
	Short: "브랜드 컨설턴트와 대화형 상담 시작",
	Long: `브랜드 컨설턴트와 대화하며 아이디어를 다듬습니다.

상담에는 API 키가 필요합니다 (brandsnap apikey set). 대화가 충분히
진행되면 /generate로 상담 내용 기반의 브랜드를 생성할 수 있습니다.

--voice(또는 generation.voice 설정)를 켜면 컨설턴트 응답을 음성으로
재생하고, ctrl+r로 음성 입력을 녹음해 전사합니다. 재생/녹음에는 시스템
오디오 도구(mpv/ffplay/mpg123/afplay, rec/sox/arecord)가 필요합니다.`,
	Args: cobra.ArbitraryArgs,
	RunE: runConsult,
}

func init() {
	consultCmd.Flags().BoolVar(&consultVoice, "voice", false,
		"음성 모드 활성화 (응답 재생 + ctrl+r 음성 입력)")
	rootCmd.AddCommand(consultCmd)
}

func runConsult(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	idea := strings.TrimSpace(strings.Join(args, " "))
	client := newProviderClient(cfg, nil)

	consOpts := []consultant.Option{
		consultant.WithHistoryWindow(cfg.Generation.GetConsultHistoryTurns()),
	}
	sessOpts := []session.Option{
		session.WithImageRetries(cfg.Generation.GetLogoImageRetries()),
	}
	if client != nil {
		consOpts = append(consOpts, consultant.WithChatClient(client))
		sessOpts = append(sessOpts, session.WithAIClient(client))
	}

	cons := consultant.New(consOpts...)
	sess := session.New(sessOpts...)

	var modelOpts []tui.ModelOption
	if consultVoice || (!cmd.Flags().Changed("voice") && cfg.Generation.Voice) {
		// 음성 모드는 프로바이더의 음성 엔드포인트를 사용하므로 폴백이 없음
		if client == nil {
			return fmt.Errorf("음성 모드에는 API 키가 필요합니다: brandsnap apikey set으로 등록하세요")
		}
		v := voice.New(client,
			voice.NewExecPlayer(),
			voice.NewExecCapturer(5*time.Second),
		)
		modelOpts = append(modelOpts, tui.WithVoiceSession(v))
	}

	model := tui.NewModel(cons, sess, idea, modelOpts...)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("상담 화면 실행 실패: %w", err)
	}
	return nil
}
