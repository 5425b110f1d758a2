package voice

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/insajin/brandsnap/internal/openai"
)

// fakeSynth는 테스트용 합성/전사 클라이언트입니다.
type fakeSynth struct {
	audio      []byte
	speechErr  error
	text       string
	transErr   error
	gotVoice   string
	speechCall int32
	transCall  int32
}

func (f *fakeSynth) Speech(ctx context.Context, input, voice string) ([]byte, error) {
	atomic.AddInt32(&f.speechCall, 1)
	f.gotVoice = voice
	if f.speechErr != nil {
		return nil, f.speechErr
	}
	return f.audio, nil
}

func (f *fakeSynth) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	atomic.AddInt32(&f.transCall, 1)
	if f.transErr != nil {
		return "", f.transErr
	}
	return f.text, nil
}

// fakePlayer는 재생 협력자 페이크입니다. blockFirst가 설정되면 첫 Play가
// Stop까지 블록되며, started로 재생 진입을 알립니다.
type fakePlayer struct {
	stops      int32
	plays      int32
	blockFirst bool
	started    chan struct{}
	release    chan struct{}
}

func (f *fakePlayer) Play(ctx context.Context, audio []byte) error {
	n := atomic.AddInt32(&f.plays, 1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.blockFirst && n == 1 {
		<-f.release
	}
	return nil
}

func (f *fakePlayer) Stop() {
	atomic.AddInt32(&f.stops, 1)
	if f.release != nil {
		select {
		case f.release <- struct{}{}:
		default:
		}
	}
}

// fakeCapturer는 캡처 협력자 페이크입니다.
type fakeCapturer struct {
	audio   []byte
	err     error
	entered chan struct{}
	release chan struct{}
}

func (f *fakeCapturer) Record(ctx context.Context) ([]byte, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

// TestSpeak_RequiresCredential은 자격 증명 없는 재생 요청을 거부하는지
// 테스트합니다.
func TestSpeak_RequiresCredential(t *testing.T) {
	v := New(nil, &fakePlayer{}, &fakeCapturer{})
	if err := v.Speak(context.Background(), "hello"); !errors.Is(err, openai.ErrNoCredential) {
		t.Errorf("error = %v, want ErrNoCredential", err)
	}
}

// TestSpeak_PlaysSynthesizedAudio는 합성 후 재생 경로를 테스트합니다.
func TestSpeak_PlaysSynthesizedAudio(t *testing.T) {
	ai := &fakeSynth{audio: []byte("pcm-data")}
	player := &fakePlayer{}
	v := New(ai, player, &fakeCapturer{}, WithVoiceID("nova"))

	if err := v.Speak(context.Background(), "hello"); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}

	if ai.gotVoice != "nova" {
		t.Errorf("voice = %q, want nova", ai.gotVoice)
	}
	if atomic.LoadInt32(&player.plays) != 1 {
		t.Errorf("재생 횟수 = %d, want 1", player.plays)
	}
	if v.Busy() {
		t.Error("재생 완료 후 Busy() = true")
	}
}

// TestSpeak_PropagatesSynthesisError는 합성 실패를 전파하는지 테스트합니다.
func TestSpeak_PropagatesSynthesisError(t *testing.T) {
	wantErr := errors.New("synthesis down")
	ai := &fakeSynth{speechErr: wantErr}
	player := &fakePlayer{}
	v := New(ai, player, &fakeCapturer{})

	err := v.Speak(context.Background(), "hello")
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
	if atomic.LoadInt32(&player.plays) != 0 {
		t.Error("합성 실패인데 재생이 호출됨")
	}
}

// TestSpeak_PreemptsCurrentPlayback은 새 재생이 기존 재생을 중단하는지
// 테스트합니다.
func TestSpeak_PreemptsCurrentPlayback(t *testing.T) {
	ai := &fakeSynth{audio: []byte("pcm")}
	player := &fakePlayer{
		blockFirst: true,
		started:    make(chan struct{}, 2),
		release:    make(chan struct{}, 1),
	}
	v := New(ai, player, &fakeCapturer{})

	done := make(chan error, 1)
	go func() {
		done <- v.Speak(context.Background(), "first")
	}()

	// 첫 재생이 블록 상태에 들어갈 때까지 대기
	<-player.started

	// 두 번째 재생은 첫 재생을 중단시킴
	if err := v.Speak(context.Background(), "second"); err != nil {
		t.Fatalf("두 번째 Speak() error = %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("첫 Speak() error = %v", err)
	}
	if atomic.LoadInt32(&player.stops) != 1 {
		t.Errorf("Stop 호출 수 = %d, want 1", player.stops)
	}
	if atomic.LoadInt32(&player.plays) != 2 {
		t.Errorf("재생 횟수 = %d, want 2", player.plays)
	}
	if v.Busy() {
		t.Error("모든 재생 종료 후 Busy() = true")
	}
}

// TestStopPlayback은 수동 재생 중단을 테스트합니다.
func TestStopPlayback(t *testing.T) {
	ai := &fakeSynth{audio: []byte("pcm")}
	player := &fakePlayer{
		blockFirst: true,
		started:    make(chan struct{}, 1),
		release:    make(chan struct{}, 1),
	}
	v := New(ai, player, &fakeCapturer{})

	done := make(chan error, 1)
	go func() {
		done <- v.Speak(context.Background(), "hello")
	}()

	<-player.started
	v.StopPlayback()

	if err := <-done; err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	if v.Busy() {
		t.Error("중단 후 Busy() = true")
	}

	// 재생이 없을 때의 중단은 무시됨
	v.StopPlayback()
	if got := atomic.LoadInt32(&player.stops); got != 1 {
		t.Errorf("Stop 호출 수 = %d, want 1", got)
	}
}

// TestListen은 캡처 후 전사 경로를 테스트합니다.
func TestListen(t *testing.T) {
	t.Run("정상 전사", func(t *testing.T) {
		ai := &fakeSynth{text: "a pottery subscription box"}
		v := New(ai, &fakePlayer{}, &fakeCapturer{audio: []byte("wav")})

		text, err := v.Listen(context.Background())
		if err != nil {
			t.Fatalf("Listen() error = %v", err)
		}
		if text != "a pottery subscription box" {
			t.Errorf("text = %q", text)
		}
	})

	t.Run("자격 증명 없으면 거부", func(t *testing.T) {
		v := New(nil, &fakePlayer{}, &fakeCapturer{audio: []byte("wav")})
		if _, err := v.Listen(context.Background()); !errors.Is(err, openai.ErrNoCredential) {
			t.Errorf("error = %v, want ErrNoCredential", err)
		}
	})

	t.Run("마이크 권한 거부 전파", func(t *testing.T) {
		ai := &fakeSynth{text: "x"}
		v := New(ai, &fakePlayer{}, &fakeCapturer{err: ErrMicrophoneDenied})

		_, err := v.Listen(context.Background())
		if !errors.Is(err, ErrMicrophoneDenied) {
			t.Errorf("error = %v, want ErrMicrophoneDenied", err)
		}
		if atomic.LoadInt32(&ai.transCall) != 0 {
			t.Error("캡처 실패인데 전사가 호출됨")
		}
	})

	t.Run("빈 오디오 거부", func(t *testing.T) {
		ai := &fakeSynth{text: "x"}
		v := New(ai, &fakePlayer{}, &fakeCapturer{audio: nil})

		if _, err := v.Listen(context.Background()); !errors.Is(err, ErrEmptyRecording) {
			t.Errorf("error = %v, want ErrEmptyRecording", err)
		}
	})
}

// TestListen_RejectsConcurrentRecording은 중복 녹음 거부를 테스트합니다.
func TestListen_RejectsConcurrentRecording(t *testing.T) {
	mic := &fakeCapturer{
		audio:   []byte("wav"),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	ai := &fakeSynth{text: "transcribed"}
	v := New(ai, &fakePlayer{}, mic)

	done := make(chan error, 1)
	go func() {
		_, err := v.Listen(context.Background())
		done <- err
	}()

	<-mic.entered

	// 첫 녹음이 진행 중인 동안 두 번째 녹음은 거부됨
	if _, err := v.Listen(context.Background()); !errors.Is(err, ErrRecordingInFlight) {
		t.Errorf("error = %v, want ErrRecordingInFlight", err)
	}

	close(mic.release)
	if err := <-done; err != nil {
		t.Fatalf("첫 Listen() error = %v", err)
	}

	// 완료 후에는 다시 녹음 가능
	mic.entered = nil
	if _, err := v.Listen(context.Background()); err != nil {
		t.Errorf("완료 후 Listen() error = %v", err)
	}
}
