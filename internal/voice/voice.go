// Package voice는 음성 모드 오케스트레이션을 제공합니다.
// 실제 오디오 재생과 캡처는 외부 협력자 인터페이스에 위임하며, 이 패키지는
// 배타적 자원 규칙만 관리합니다: 재생은 최대 하나(새 재생이 기존 재생을
// 중단), 녹음도 최대 하나(두 번째 녹음 요청은 거부).
package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/insajin/brandsnap/internal/logger"
	"github.com/insajin/brandsnap/internal/openai"
)

// 음성 모드 에러 정의
var (
	// ErrMicrophoneDenied는 마이크 권한이 거부되었을 때 캡처 협력자가
	// 반환합니다.
	ErrMicrophoneDenied = errors.New("마이크 권한이 거부되었습니다")

	// ErrRecordingInFlight는 녹음이 이미 진행 중일 때 반환됩니다.
	ErrRecordingInFlight = errors.New("녹음이 이미 진행 중입니다")

	// ErrEmptyRecording은 캡처된 오디오가 비어 있을 때 반환됩니다.
	ErrEmptyRecording = errors.New("캡처된 오디오가 없습니다")
)

// Synthesizer는 음성 합성과 전사를 제공하는 프로바이더 클라이언트입니다.
type Synthesizer interface {
	Speech(ctx context.Context, input, voice string) ([]byte, error)
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Player는 오디오 재생 협력자입니다. Play는 재생이 끝나거나 Stop이 호출될
// 때까지 블록합니다.
type Player interface {
	Play(ctx context.Context, audio []byte) error
	Stop()
}

// Capturer는 오디오 캡처 협력자입니다. 권한 거부 시 ErrMicrophoneDenied를
// 반환해야 합니다.
type Capturer interface {
	Record(ctx context.Context) ([]byte, error)
}

// Voice는 단일 음성 세션입니다.
type Voice struct {
	mu        sync.Mutex
	playing   bool
	playGen   uint64
	recording bool

	ai       Synthesizer
	player   Player
	capturer Capturer
	voiceID  string
}

// Option은 Voice 설정 옵션입니다.
type Option func(*Voice)

// WithVoiceID는 합성에 사용할 음성 식별자를 설정합니다.
func WithVoiceID(id string) Option {
	return func(v *Voice) {
		v.voiceID = id
	}
}

// New는 새로운 음성 세션을 생성합니다.
// ai가 nil이면 모든 음성 경로가 ErrNoCredential을 반환합니다 (폴백 없음).
func New(ai Synthesizer, player Player, capturer Capturer, opts ...Option) *Voice {
	v := &Voice{
		ai:       ai,
		player:   player,
		capturer: capturer,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Speak은 텍스트를 합성해 재생합니다. 진행 중인 재생이 있으면 먼저
// 중단합니다.
func (v *Voice) Speak(ctx context.Context, text string) error {
	if v.ai == nil {
		return openai.ErrNoCredential
	}

	audio, err := v.ai.Speech(ctx, text, v.voiceID)
	if err != nil {
		return fmt.Errorf("음성 합성 실패: %w", err)
	}

	v.mu.Lock()
	if v.playing {
		// 새 재생이 기존 재생을 중단
		v.player.Stop()
	}
	v.playing = true
	v.playGen++
	gen := v.playGen
	v.mu.Unlock()

	playErr := v.player.Play(ctx, audio)

	v.mu.Lock()
	// 더 새로운 재생이 시작되었으면 상태를 건드리지 않음
	if v.playGen == gen {
		v.playing = false
	}
	v.mu.Unlock()

	if playErr != nil {
		return fmt.Errorf("오디오 재생 실패: %w", playErr)
	}
	return nil
}

// StopPlayback은 진행 중인 재생을 중단합니다. 재생이 없으면 아무 일도 하지
// 않습니다.
func (v *Voice) StopPlayback() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.playing {
		v.player.Stop()
		v.playing = false
	}
}

// Listen은 오디오를 캡처해 텍스트로 전사합니다.
// 녹음이 이미 진행 중이면 ErrRecordingInFlight를 반환합니다.
func (v *Voice) Listen(ctx context.Context) (string, error) {
	if v.ai == nil {
		return "", openai.ErrNoCredential
	}

	v.mu.Lock()
	if v.recording {
		v.mu.Unlock()
		return "", ErrRecordingInFlight
	}
	v.recording = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.recording = false
		v.mu.Unlock()
	}()

	audio, err := v.capturer.Record(ctx)
	if err != nil {
		if errors.Is(err, ErrMicrophoneDenied) {
			return "", err
		}
		return "", fmt.Errorf("오디오 캡처 실패: %w", err)
	}
	if len(audio) == 0 {
		return "", ErrEmptyRecording
	}

	text, err := v.ai.Transcribe(ctx, audio, "recording.wav")
	if err != nil {
		return "", fmt.Errorf("전사 실패: %w", err)
	}

	logger.Debug().Int("audio_bytes", len(audio)).Msg("음성 전사 완료")
	return text, nil
}

// Busy는 재생 또는 녹음이 진행 중인지 반환합니다.
func (v *Voice) Busy() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing || v.recording
}
