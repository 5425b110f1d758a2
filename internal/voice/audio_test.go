package voice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// stubTool은 임시 PATH 디렉토리에 실행 가능한 셸 스크립트를 만듭니다.
func stubTool(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, name)
	// 테스트가 PATH를 덮어쓰므로 스크립트 내부에서는 표준 경로를 복원
	body := "#!/bin/sh\nPATH=/usr/bin:/bin\n" + script + "\n"
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("스텁 도구 생성 실패: %v", err)
	}
}

// TestLookupPlayer는 PATH에서 재생 도구를 탐색하는지 테스트합니다.
func TestLookupPlayer(t *testing.T) {
	t.Run("도구 없음", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		_, _, err := lookupPlayer()
		if !errors.Is(err, ErrNoAudioTool) {
			t.Errorf("error = %v, want ErrNoAudioTool", err)
		}
	})

	t.Run("후보 순서대로 탐색", func(t *testing.T) {
		dir := t.TempDir()
		stubTool(t, dir, "mpg123", "exit 0")
		t.Setenv("PATH", dir)

		binary, argsFor, err := lookupPlayer()
		if err != nil {
			t.Fatalf("lookupPlayer() error = %v", err)
		}
		if binary != "mpg123" {
			t.Errorf("binary = %q, want mpg123", binary)
		}
		args := argsFor("/tmp/a.mp3")
		if args[len(args)-1] != "/tmp/a.mp3" {
			t.Errorf("마지막 인자 = %q, want 파일 경로", args[len(args)-1])
		}
	})
}

// TestExecPlayer_Play는 재생 도구 실행과 실패 전파를 테스트합니다.
func TestExecPlayer_Play(t *testing.T) {
	t.Run("정상 재생", func(t *testing.T) {
		dir := t.TempDir()
		stubTool(t, dir, "mpv", "exit 0")
		t.Setenv("PATH", dir)

		p := NewExecPlayer()
		if err := p.Play(context.Background(), []byte("fake-mp3-bytes")); err != nil {
			t.Errorf("Play() error = %v", err)
		}
	})

	t.Run("도구 실패 전파", func(t *testing.T) {
		dir := t.TempDir()
		stubTool(t, dir, "mpv", "exit 3")
		t.Setenv("PATH", dir)

		p := NewExecPlayer()
		if err := p.Play(context.Background(), []byte("fake")); err == nil {
			t.Error("Play() error = nil, want error")
		}
	})

	t.Run("도구 없음", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		p := NewExecPlayer()
		if err := p.Play(context.Background(), []byte("fake")); !errors.Is(err, ErrNoAudioTool) {
			t.Errorf("error = %v, want ErrNoAudioTool", err)
		}
	})
}

// TestExecPlayer_Stop은 Stop이 진행 중인 재생 프로세스를 종료하는지
// 테스트합니다.
func TestExecPlayer_Stop(t *testing.T) {
	dir := t.TempDir()
	stubTool(t, dir, "mpv", "sleep 30")
	t.Setenv("PATH", dir)

	p := NewExecPlayer()
	done := make(chan error, 1)
	go func() {
		done <- p.Play(context.Background(), []byte("fake"))
	}()

	// 프로세스가 시작될 때까지 대기 후 종료
	deadline := time.After(5 * time.Second)
	for {
		p.mu.Lock()
		started := p.cmd != nil && p.cmd.Process != nil
		p.mu.Unlock()
		if started {
			break
		}
		select {
		case <-deadline:
			t.Fatal("재생 프로세스가 시작되지 않음")
		case <-time.After(10 * time.Millisecond):
		}
	}

	p.Stop()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Play() error = nil, want 종료 에러")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Stop 이후에도 Play가 반환하지 않음")
	}
}

// TestExecCapturer_Record는 녹음 도구의 stdout 캡처를 테스트합니다.
func TestExecCapturer_Record(t *testing.T) {
	t.Run("정상 캡처", func(t *testing.T) {
		dir := t.TempDir()
		stubTool(t, dir, "rec", `printf 'RIFFwav-bytes'`)
		t.Setenv("PATH", dir)

		c := NewExecCapturer(time.Second)
		audio, err := c.Record(context.Background())
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if string(audio) != "RIFFwav-bytes" {
			t.Errorf("audio = %q", audio)
		}
	})

	t.Run("도구 없음", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		c := NewExecCapturer(time.Second)
		if _, err := c.Record(context.Background()); !errors.Is(err, ErrNoAudioTool) {
			t.Errorf("error = %v, want ErrNoAudioTool", err)
		}
	})

	t.Run("기본 녹음 시간", func(t *testing.T) {
		c := NewExecCapturer(0)
		if c.duration != 5*time.Second {
			t.Errorf("duration = %v, want 5s", c.duration)
		}
	})
}
