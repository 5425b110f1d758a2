package voice

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/insajin/brandsnap/internal/logger"
)

// ErrNoAudioTool은 재생/녹음에 쓸 외부 오디오 도구를 찾지 못했을 때
// 반환됩니다.
var ErrNoAudioTool = fmt.Errorf("오디오 도구를 찾을 수 없습니다")

// playerCommands는 재생 후보 도구와 파일 경로를 받는 인자 생성기입니다.
// PATH에서 앞선 항목부터 탐색합니다.
var playerCommands = []struct {
	binary string
	args   func(path string) []string
}{
	{"mpv", func(path string) []string { return []string{"--no-video", "--really-quiet", path} }},
	{"ffplay", func(path string) []string { return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path} }},
	{"mpg123", func(path string) []string { return []string{"-q", path} }},
	{"afplay", func(path string) []string { return []string{path} }},
}

// recorderCommands는 녹음 후보 도구와 녹음 시간(초)을 받는 인자
// 생성기입니다. 각 도구는 WAV 데이터를 stdout으로 출력해야 합니다.
var recorderCommands = []struct {
	binary string
	args   func(seconds int) []string
}{
	{"rec", func(seconds int) []string {
		return []string{"-q", "-t", "wav", "-", "trim", "0", strconv.Itoa(seconds)}
	}},
	{"sox", func(seconds int) []string {
		return []string{"-q", "-d", "-t", "wav", "-", "trim", "0", strconv.Itoa(seconds)}
	}},
	{"arecord", func(seconds int) []string {
		return []string{"-q", "-f", "cd", "-t", "wav", "-d", strconv.Itoa(seconds), "-"}
	}},
}

// ExecPlayer는 외부 재생 도구(mpv, ffplay, mpg123, afplay)로 오디오를
// 재생하는 Player 구현입니다.
type ExecPlayer struct {
	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewExecPlayer는 외부 도구 기반 플레이어를 생성합니다.
func NewExecPlayer() *ExecPlayer {
	return &ExecPlayer{}
}

// Play는 오디오 바이트를 임시 파일에 쓰고 재생 도구를 실행합니다.
// 재생이 끝나거나 Stop이 호출될 때까지 블록합니다.
func (p *ExecPlayer) Play(ctx context.Context, audio []byte) error {
	binary, argsFor, err := lookupPlayer()
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "brandsnap-speech-*.mp3")
	if err != nil {
		return fmt.Errorf("임시 오디오 파일 생성 실패: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := f.Write(audio); err != nil {
		_ = f.Close()
		return fmt.Errorf("임시 오디오 파일 쓰기 실패: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("임시 오디오 파일 닫기 실패: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, argsFor(path)...)

	p.mu.Lock()
	p.cmd = cmd
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.cmd = nil
		p.mu.Unlock()
	}()

	logger.Debug().Str("player", binary).Int("audio_bytes", len(audio)).Msg("오디오 재생 시작")
	if err := cmd.Run(); err != nil {
		// Stop이 프로세스를 종료한 경우도 여기로 들어옴
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s 실행 실패: %w", binary, err)
	}
	return nil
}

// Stop은 진행 중인 재생 프로세스를 종료합니다.
func (p *ExecPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
}

// lookupPlayer는 PATH에서 사용 가능한 재생 도구를 찾습니다.
func lookupPlayer() (string, func(string) []string, error) {
	for _, c := range playerCommands {
		if _, err := exec.LookPath(c.binary); err == nil {
			return c.binary, c.args, nil
		}
	}
	return "", nil, fmt.Errorf("%w: mpv, ffplay, mpg123, afplay 중 하나가 필요합니다", ErrNoAudioTool)
}

// ExecCapturer는 외부 녹음 도구(rec, sox, arecord)로 마이크 입력을
// 캡처하는 Capturer 구현입니다.
type ExecCapturer struct {
	duration time.Duration
}

// NewExecCapturer는 고정 녹음 시간의 캡처러를 생성합니다.
// duration이 0 이하이면 5초를 사용합니다.
func NewExecCapturer(duration time.Duration) *ExecCapturer {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return &ExecCapturer{duration: duration}
}

// Record는 녹음 도구를 실행해 WAV 바이트를 캡처합니다.
func (c *ExecCapturer) Record(ctx context.Context) ([]byte, error) {
	binary, argsFor, err := lookupRecorder()
	if err != nil {
		return nil, err
	}

	seconds := int(c.duration / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	logger.Debug().Str("recorder", binary).Int("seconds", seconds).Msg("녹음 시작")
	cmd := exec.CommandContext(ctx, binary, argsFor(seconds)...)
	audio, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s 실행 실패: %w", binary, err)
	}
	return audio, nil
}

// lookupRecorder는 PATH에서 사용 가능한 녹음 도구를 찾습니다.
func lookupRecorder() (string, func(int) []string, error) {
	for _, c := range recorderCommands {
		if _, err := exec.LookPath(c.binary); err == nil {
			return c.binary, c.args, nil
		}
	}
	return "", nil, fmt.Errorf("%w: rec, sox, arecord 중 하나가 필요합니다", ErrNoAudioTool)
}
