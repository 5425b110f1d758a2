package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/insajin/brandsnap/internal/metrics"
)

// chatRequest는 Chat Completions API 요청 구조입니다.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatMessage는 대화 메시지 구조입니다.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse는 Chat Completions API 응답 구조입니다.
type chatResponse struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []chatChoice   `json:"choices"`
	Usage   usage          `json:"usage"`
	Error   *errorResponse `json:"error,omitempty"`
}

// chatChoice는 응답 선택지입니다.
type chatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// usage는 토큰 사용량입니다.
type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// errorResponse는 API 에러 응답 구조입니다.
type errorResponse struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// errorEnvelope는 에러 응답 봉투입니다.
type errorEnvelope struct {
	Error *errorResponse `json:"error,omitempty"`
}

// imageRequest는 Images API 요청 구조입니다.
type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size,omitempty"`
}

// imageResponse는 Images API 응답 구조입니다.
type imageResponse struct {
	Created int64          `json:"created"`
	Data    []imageData    `json:"data"`
	Error   *errorResponse `json:"error,omitempty"`
}

// imageData는 생성된 이미지 항목입니다.
type imageData struct {
	URL     string `json:"url,omitempty"`
	B64JSON string `json:"b64_json,omitempty"`
}

// speechRequest는 Audio Speech API 요청 구조입니다.
type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// transcribeResponse는 Audio Transcriptions API 응답 구조입니다.
type transcribeResponse struct {
	Text  string         `json:"text"`
	Error *errorResponse `json:"error,omitempty"`
}

// Client는 OpenAI 호환 API 클라이언트입니다.
type Client struct {
	httpClient      *http.Client
	apiKey          string
	baseURL         string
	chatModel       string
	imageModel      string
	speechModel     string
	transcribeModel string
	maxRetries      int
	retryDelayMs    int
	metrics         *metrics.Metrics
}

// Option은 Client 설정 옵션입니다.
type Option func(*Client)

// WithBaseURL은 API 엔드포인트를 설정합니다.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient는 HTTP 클라이언트를 설정합니다.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithChatModel은 채팅 모델을 설정합니다.
func WithChatModel(model string) Option {
	return func(c *Client) {
		c.chatModel = model
	}
}

// WithImageModel은 이미지 모델을 설정합니다.
func WithImageModel(model string) Option {
	return func(c *Client) {
		c.imageModel = model
	}
}

// WithSpeechModel은 음성 합성 모델을 설정합니다.
func WithSpeechModel(model string) Option {
	return func(c *Client) {
		c.speechModel = model
	}
}

// WithTranscribeModel은 음성 인식 모델을 설정합니다.
func WithTranscribeModel(model string) Option {
	return func(c *Client) {
		c.transcribeModel = model
	}
}

// WithMaxRetries는 채팅 요청의 최대 자동 재시도 횟수를 설정합니다.
// 기본값은 0이며, 프로바이더 실패는 한 번만 표면화됩니다. 레이트 리밋과
// 서버 에러의 재시도는 이 옵션으로 명시적으로 켠 경우에만 동작합니다.
func WithMaxRetries(retries int) Option {
	return func(c *Client) {
		if retries < 0 {
			retries = 0
		}
		c.maxRetries = retries
	}
}

// WithMetrics는 프로바이더 호출 메트릭 수집기를 설정합니다.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient는 새로운 Client를 생성합니다.
// API 키가 비어 있으면 ErrNoCredential을 반환합니다.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: brandsnap apikey set 명령으로 키를 저장하거나 OPENAI_API_KEY 환경변수를 설정하세요", ErrNoCredential)
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:          apiKey,
		baseURL:         "https://api.openai.com/v1",
		chatModel:       "gpt-4o-mini",
		imageModel:      "dall-e-3",
		speechModel:     "tts-1",
		transcribeModel: "whisper-1",
		maxRetries:      0,
		retryDelayMs:    1000,
	}

	// 옵션 적용
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ChatCompletion은 대화 메시지를 전송하고 응답 텍스트를 반환합니다.
// 기본적으로 실패는 한 번만 표면화됩니다. WithMaxRetries로 재시도를 켠
// 경우에 한해 레이트 리밋과 서버 에러를 지수 지연과 함께 재시도합니다.
func (c *Client) ChatCompletion(ctx context.Context, messages []ChatMessage, temperature float64, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = 300
	}

	req := chatRequest{
		Model:       c.chatModel,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	var resp *chatResponse
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// 재시도 전 지연
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
			case <-time.After(time.Duration(c.retryDelayMs*attempt) * time.Millisecond):
			}
		}

		resp, lastErr = c.doChatRequest(ctx, req)
		if lastErr == nil {
			break
		}

		// 컨텍스트 취소 확인
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrContextCanceled, lastErr)
		}

		// 재시도 불가능한 에러는 즉시 반환
		if pe, ok := AsProviderError(lastErr); ok {
			if pe.IsRateLimit() {
				lastErr = fmt.Errorf("%w: %v", ErrRateLimited, lastErr)
				continue
			}
			if !pe.IsRetryable() {
				break
			}
		}
	}

	if lastErr != nil {
		return "", lastErr
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: 응답 선택지가 비어 있습니다", ErrMalformedResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// doChatRequest는 Chat Completions API에 HTTP 요청을 전송합니다.
func (c *Client) doChatRequest(ctx context.Context, req chatRequest) (*chatResponse, error) {
	respBody, err := c.postJSON(ctx, "/chat/completions", req)
	if err != nil {
		return nil, err
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("응답 파싱 실패: %w", err)
	}
	return &resp, nil
}

// GenerateImage는 프롬프트로 이미지를 생성하고 이미지 URI를 반환합니다.
// 응답이 base64 본문을 담은 경우 data URI로 변환합니다.
func (c *Client) GenerateImage(ctx context.Context, prompt, size string) (string, error) {
	if size == "" {
		size = "1024x1024"
	}

	req := imageRequest{
		Model:  c.imageModel,
		Prompt: prompt,
		N:      1,
		Size:   size,
	}

	respBody, err := c.postJSON(ctx, "/images/generations", req)
	if err != nil {
		return "", err
	}

	var resp imageResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("응답 파싱 실패: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("%w: 이미지 데이터가 비어 있습니다", ErrMalformedResponse)
	}

	if resp.Data[0].URL != "" {
		return resp.Data[0].URL, nil
	}
	if resp.Data[0].B64JSON != "" {
		return "data:image/png;base64," + resp.Data[0].B64JSON, nil
	}
	return "", fmt.Errorf("%w: 이미지 URL이 비어 있습니다", ErrMalformedResponse)
}

// Speech는 텍스트를 음성으로 합성하고 오디오 바이트를 반환합니다.
func (c *Client) Speech(ctx context.Context, input, voice string) ([]byte, error) {
	if voice == "" {
		voice = "alloy"
	}

	req := speechRequest{
		Model: c.speechModel,
		Input: input,
		Voice: voice,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("요청 직렬화 실패: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("HTTP 요청 생성 실패: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP 요청 실패: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("응답 읽기 실패: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseProviderError(resp.StatusCode, respBody)
	}

	// 음성 엔드포인트는 원시 오디오 바이트를 반환합니다
	return respBody, nil
}

// Transcribe는 오디오를 텍스트로 변환합니다.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if filename == "" {
		filename = "audio.wav"
	}

	// multipart 본문 구성
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("multipart 구성 실패: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("multipart 구성 실패: %w", err)
	}
	if err := writer.WriteField("model", c.transcribeModel); err != nil {
		return "", fmt.Errorf("multipart 구성 실패: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("multipart 구성 실패: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("HTTP 요청 생성 실패: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("HTTP 요청 실패: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("응답 읽기 실패: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", parseProviderError(resp.StatusCode, respBody)
	}

	var transcribed transcribeResponse
	if err := json.Unmarshal(respBody, &transcribed); err != nil {
		return "", fmt.Errorf("응답 파싱 실패: %w", err)
	}
	return transcribed.Text, nil
}

// postJSON은 JSON 본문을 POST하고 성공 응답 본문을 반환합니다.
// 비정상 상태 코드는 ProviderError로 변환됩니다.
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("요청 직렬화 실패: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("HTTP 요청 생성 실패: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP 요청 실패: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("응답 읽기 실패: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseProviderError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// parseProviderError는 비정상 응답 본문을 ProviderError로 변환합니다.
func parseProviderError(status int, body []byte) error {
	var envelope errorEnvelope
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
		return &ProviderError{
			Status:  status,
			Type:    envelope.Error.Type,
			Message: envelope.Error.Message,
		}
	}
	return &ProviderError{
		Status:  status,
		Message: string(body),
	}
}
