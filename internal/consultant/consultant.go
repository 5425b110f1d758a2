// Package consultant는 대화형 브랜드 상담 모드를 제공합니다.
// 상담은 AI 경로 전용이며 폴백이 없습니다.
package consultant

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/insajin/brandsnap/internal/metrics"
	"github.com/insajin/brandsnap/internal/openai"
)

// historyWindow는 프로바이더로 전달하는 최근 대화 턴 수입니다.
const historyWindow = 10

// systemInstruction은 상담 모드의 고정 시스템 프롬프트입니다.
const systemInstruction = `You are a friendly brand consultant helping a founder sharpen their startup idea before generating a brand identity. Ask focused questions about the target audience, the problem being solved, and the desired brand personality. Keep replies short and conversational.

Respond with a JSON object containing exactly these fields:
{
  "message": "Your conversational reply",
  "action": "ask_questions or suggest_generation",
  "readyToGenerate": true or false
}

Set readyToGenerate to true only when you have enough detail to brief a designer. Respond only with valid JSON, no additional text.`

// Turn은 상담 대화의 단일 턴입니다.
type Turn struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// Reply는 상담사의 구조화된 응답입니다.
type Reply struct {
	Message         string   `json:"message"`
	Action          string   `json:"action"`
	ReadyToGenerate bool     `json:"readyToGenerate"`
	Insights        []string `json:"insights,omitempty"`
}

// ChatClient는 상담이 사용하는 대화 클라이언트입니다.
type ChatClient interface {
	ChatCompletion(ctx context.Context, messages []openai.ChatMessage, temperature float64, maxTokens int) (string, error)
}

// Consultant는 단일 상담 세션입니다.
type Consultant struct {
	mu         sync.Mutex
	id         string
	active     bool
	idea       string
	transcript []Turn

	ai      ChatClient
	metrics *metrics.Metrics
	window  int
}

// Option은 Consultant 설정 옵션입니다.
type Option func(*Consultant)

// WithChatClient는 대화 클라이언트를 설정합니다.
func WithChatClient(ai ChatClient) Option {
	return func(c *Consultant) {
		c.ai = ai
	}
}

// WithMetrics는 메트릭 수집기를 설정합니다.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Consultant) {
		c.metrics = m
	}
}

// WithHistoryWindow는 프로바이더로 전달할 최근 턴 수를 설정합니다.
func WithHistoryWindow(turns int) Option {
	return func(c *Consultant) {
		if turns > 0 {
			c.window = turns
		}
	}
}

// New는 새로운 상담 세션을 생성합니다.
func New(opts ...Option) *Consultant {
	c := &Consultant{
		id:      uuid.New().String(),
		metrics: metrics.NewMetrics(),
		window:  historyWindow,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID는 상담 세션 식별자를 반환합니다.
func (c *Consultant) ID() string {
	return c.id
}

// Active는 상담이 활성 상태인지 반환합니다.
func (c *Consultant) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Start는 아이디어 맥락을 담은 인사말로 상담을 시작합니다.
func (c *Consultant) Start(idea string) Reply {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = true
	c.idea = idea

	greeting := "Hi! I'm your brand consultant. Tell me about your startup idea and I'll help you shape its identity. What problem are you solving, and for whom?"
	if strings.TrimSpace(idea) != "" {
		greeting = fmt.Sprintf("Hi! I'm your brand consultant. I see you're working on: %q. Who is your target audience, and what feeling should the brand evoke?", idea)
	}

	c.transcript = append(c.transcript, Turn{Role: "assistant", Content: greeting, Time: time.Now()})
	c.metrics.ConsultSessions.Add(1)

	return Reply{
		Message:         greeting,
		Action:          "ask_questions",
		ReadyToGenerate: false,
	}
}

// Chat은 사용자 메시지를 처리하고 구조화된 응답을 반환합니다.
// 자격 증명이 없으면 ErrNoCredential을 반환합니다 (폴백 없음).
// 응답 파싱이 실패하면 원문 메시지로 격하됩니다.
func (c *Consultant) Chat(ctx context.Context, message string) (Reply, error) {
	if c.ai == nil {
		return Reply{}, openai.ErrNoCredential
	}

	c.mu.Lock()
	c.transcript = append(c.transcript, Turn{Role: "user", Content: message, Time: time.Now()})
	messages := c.buildMessagesLocked()
	c.mu.Unlock()

	content, err := c.ai.ChatCompletion(ctx, messages, 0.7, 400)
	if err != nil {
		return Reply{}, err
	}

	reply := parseReply(content)
	reply.Insights = c.Keywords()

	c.mu.Lock()
	c.transcript = append(c.transcript, Turn{Role: "assistant", Content: reply.Message, Time: time.Now()})
	c.mu.Unlock()

	c.metrics.ConsultTurns.Add(1)
	return reply, nil
}

// buildMessagesLocked는 시스템 프롬프트와 최근 턴으로 메시지 목록을
// 구성합니다. 호출자는 락을 보유해야 합니다.
func (c *Consultant) buildMessagesLocked() []openai.ChatMessage {
	messages := []openai.ChatMessage{
		{Role: "system", Content: systemInstruction},
	}

	turns := c.transcript
	if len(turns) > c.window {
		turns = turns[len(turns)-c.window:]
	}
	for _, turn := range turns {
		messages = append(messages, openai.ChatMessage{Role: turn.Role, Content: turn.Content})
	}
	return messages
}

// parseReply는 응답 본문을 구조화된 Reply로 파싱합니다.
// 파싱 실패 시 원문 메시지로 격하됩니다.
func parseReply(content string) Reply {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var reply Reply
	if err := json.Unmarshal([]byte(trimmed), &reply); err == nil && reply.Message != "" {
		if reply.Action == "" {
			reply.Action = "ask_questions"
		}
		return reply
	}

	// 격하: 원문을 그대로 메시지로 사용
	return Reply{
		Message:         content,
		Action:          "ask_questions",
		ReadyToGenerate: false,
	}
}

// Transcript는 전체 대화 기록의 복사본을 반환합니다.
func (c *Consultant) Transcript() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Keywords는 사용자 턴에서 추출한 상위 5개 키워드를 반환합니다.
// 길이 4 이상이며 2회 이상 등장한 단어를 빈도순으로 정렬하고, 동률은
// 첫 등장 순서를 따릅니다.
func (c *Consultant) Keywords() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return extractKeywords(c.userTextLocked())
}

// userTextLocked는 모든 사용자 턴을 이어붙입니다. 호출자는 락을 보유해야
// 합니다.
func (c *Consultant) userTextLocked() string {
	var b strings.Builder
	if c.idea != "" {
		b.WriteString(c.idea)
		b.WriteString(" ")
	}
	for _, turn := range c.transcript {
		if turn.Role == "user" {
			b.WriteString(turn.Content)
			b.WriteString(" ")
		}
	}
	return b.String()
}

// SynthesizePrompt는 대화 전체에서 합성한 생성 프롬프트를 반환합니다.
func (c *Consultant) SynthesizePrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	text := c.userTextLocked()
	keywords := extractKeywords(text)

	if len(keywords) == 0 {
		return strings.TrimSpace(text)
	}
	return fmt.Sprintf("A startup focused on %s. Details from the consultation: %s",
		strings.Join(keywords, ", "), strings.TrimSpace(text))
}

// Reset은 상담 상태를 초기화합니다. 멱등합니다.
func (c *Consultant) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.idea = ""
	c.transcript = nil
}

// extractKeywords는 텍스트에서 상위 5개 키워드를 추출합니다.
func extractKeywords(text string) []string {
	type entry struct {
		word  string
		count int
		first int
	}

	counts := map[string]*entry{}
	var order []string

	for i, raw := range strings.Fields(strings.ToLower(text)) {
		word := strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' {
				return r
			}
			return -1
		}, raw)
		if len(word) < 4 {
			continue
		}
		if e, ok := counts[word]; ok {
			e.count++
		} else {
			counts[word] = &entry{word: word, count: 1, first: i}
			order = append(order, word)
		}
	}

	var entries []*entry
	for _, word := range order {
		if counts[word].count > 1 {
			entries = append(entries, counts[word])
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].first < entries[j].first
	})

	var keywords []string
	for _, e := range entries {
		keywords = append(keywords, e.word)
		if len(keywords) == 5 {
			break
		}
	}
	return keywords
}
