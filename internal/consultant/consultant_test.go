package consultant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/insajin/brandsnap/internal/openai"
)

// fakeChat은 테스트용 대화 클라이언트입니다.
type fakeChat struct {
	response string
	err      error
	got      []openai.ChatMessage
}

func (f *fakeChat) ChatCompletion(ctx context.Context, messages []openai.ChatMessage, temperature float64, maxTokens int) (string, error) {
	f.got = messages
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// TestStart는 인사말 생성과 활성화를 테스트합니다.
func TestStart(t *testing.T) {
	t.Run("아이디어가 있으면 맥락을 담은 인사말", func(t *testing.T) {
		c := New()
		reply := c.Start("handmade pottery subscription box")

		if !c.Active() {
			t.Error("Start 후 Active() = false")
		}
		if !strings.Contains(reply.Message, "handmade pottery subscription box") {
			t.Errorf("인사말에 아이디어가 없음: %q", reply.Message)
		}
		if reply.ReadyToGenerate {
			t.Error("인사말에서 ReadyToGenerate = true")
		}
		if len(c.Transcript()) != 1 {
			t.Errorf("대화 기록 길이 = %d, want 1", len(c.Transcript()))
		}
	})

	t.Run("아이디어가 없으면 일반 인사말", func(t *testing.T) {
		c := New()
		reply := c.Start("")
		if reply.Message == "" {
			t.Error("인사말이 비어 있음")
		}
	})
}

// TestChat_RequiresCredential은 자격 증명 없는 상담 요청을 거부하는지
// 테스트합니다.
func TestChat_RequiresCredential(t *testing.T) {
	c := New()
	c.Start("idea")

	_, err := c.Chat(context.Background(), "hello")
	if !errors.Is(err, openai.ErrNoCredential) {
		t.Errorf("error = %v, want ErrNoCredential", err)
	}
}

// TestChat_ParsesStructuredReply는 구조화된 JSON 응답 파싱을 테스트합니다.
func TestChat_ParsesStructuredReply(t *testing.T) {
	ai := &fakeChat{response: `{"message": "Who is your audience?", "action": "ask_questions", "readyToGenerate": false}`}
	c := New(WithChatClient(ai))
	c.Start("pottery boxes")

	reply, err := c.Chat(context.Background(), "I sell pottery kits to beginners")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if reply.Message != "Who is your audience?" {
		t.Errorf("Message = %q", reply.Message)
	}
	if reply.Action != "ask_questions" {
		t.Errorf("Action = %q", reply.Action)
	}
	if reply.ReadyToGenerate {
		t.Error("ReadyToGenerate = true, want false")
	}

	// 시스템 프롬프트 + 히스토리가 전달되었는지 확인
	if len(ai.got) < 2 {
		t.Fatalf("전달된 메시지 수 = %d", len(ai.got))
	}
	if ai.got[0].Role != "system" {
		t.Errorf("첫 메시지 역할 = %q, want system", ai.got[0].Role)
	}
	last := ai.got[len(ai.got)-1]
	if last.Role != "user" || last.Content != "I sell pottery kits to beginners" {
		t.Errorf("마지막 메시지 = %+v", last)
	}

	// 대화 기록: 인사말 + 사용자 + 상담사
	if got := len(c.Transcript()); got != 3 {
		t.Errorf("대화 기록 길이 = %d, want 3", got)
	}
}

// TestChat_DegradesOnParseFailure는 파싱 실패 시 원문으로 격하되는지
// 테스트합니다.
func TestChat_DegradesOnParseFailure(t *testing.T) {
	ai := &fakeChat{response: "Just plain advice, no JSON here."}
	c := New(WithChatClient(ai))
	c.Start("idea")

	reply, err := c.Chat(context.Background(), "tell me more")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if reply.Message != "Just plain advice, no JSON here." {
		t.Errorf("Message = %q, want 원문", reply.Message)
	}
	if reply.Action != "ask_questions" {
		t.Errorf("Action = %q, want ask_questions", reply.Action)
	}
	if reply.ReadyToGenerate {
		t.Error("ReadyToGenerate = true, want false")
	}
}

// TestChat_PropagatesProviderError는 프로바이더 에러를 그대로 전달하는지
// 테스트합니다.
func TestChat_PropagatesProviderError(t *testing.T) {
	wantErr := errors.New("provider down")
	ai := &fakeChat{err: wantErr}
	c := New(WithChatClient(ai))
	c.Start("idea")

	_, err := c.Chat(context.Background(), "hello")
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}

// TestChat_HistoryWindow는 최근 턴만 전달되는지 테스트합니다.
func TestChat_HistoryWindow(t *testing.T) {
	ai := &fakeChat{response: `{"message": "ok", "action": "ask_questions", "readyToGenerate": false}`}
	c := New(WithChatClient(ai), WithHistoryWindow(4))
	c.Start("idea")

	for i := 0; i < 6; i++ {
		if _, err := c.Chat(context.Background(), "message"); err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
	}

	// 시스템 프롬프트 1개 + 윈도우 4턴
	if got := len(ai.got); got != 5 {
		t.Errorf("전달된 메시지 수 = %d, want 5", got)
	}
}

// TestExtractKeywords는 키워드 추출 규칙을 테스트합니다.
func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "빈도순 정렬",
			text: "pottery pottery pottery wheel wheel clay clay clay clay",
			want: []string{"clay", "pottery", "wheel"},
		},
		{
			name: "동률은 첫 등장 순서",
			text: "alpha beta alpha beta gamma gamma",
			want: []string{"alpha", "beta", "gamma"},
		},
		{
			name: "1회 등장 단어 제외",
			text: "unique words only here once each",
			want: nil,
		},
		{
			name: "4자 미만 제외",
			text: "cat cat cat dog dog pottery pottery",
			want: []string{"pottery"},
		},
		{
			name: "상위 5개 제한",
			text: strings.Repeat("aaaa bbbb cccc dddd eeee ffff ", 3),
			want: []string{"aaaa", "bbbb", "cccc", "dddd", "eeee"},
		},
		{
			name: "구두점 제거 후 집계",
			text: "pottery, pottery. wheel! wheel?",
			want: []string{"pottery", "wheel"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractKeywords(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("extractKeywords() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("keywords[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestSynthesizePrompt는 상담 내용 기반 프롬프트 합성을 테스트합니다.
func TestSynthesizePrompt(t *testing.T) {
	ai := &fakeChat{response: `{"message": "ok", "action": "ask_questions", "readyToGenerate": false}`}
	c := New(WithChatClient(ai))
	c.Start("pottery subscription")

	if _, err := c.Chat(context.Background(), "pottery kits for beginners who love ceramics"); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if _, err := c.Chat(context.Background(), "monthly pottery delivery with ceramics tutorials"); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	prompt := c.SynthesizePrompt()
	if !strings.Contains(prompt, "pottery") {
		t.Errorf("합성 프롬프트에 핵심 키워드가 없음: %q", prompt)
	}
	if !strings.Contains(prompt, "A startup focused on") {
		t.Errorf("합성 프롬프트 형식이 다름: %q", prompt)
	}
}

// TestReset은 상담 초기화와 멱등성을 테스트합니다.
func TestReset(t *testing.T) {
	c := New()
	c.Start("idea")

	c.Reset()
	if c.Active() {
		t.Error("Reset 후 Active() = true")
	}
	if len(c.Transcript()) != 0 {
		t.Error("Reset 후 대화 기록이 남아 있음")
	}

	// 멱등성
	c.Reset()
	if c.Active() {
		t.Error("두 번째 Reset 후 Active() = true")
	}
}
