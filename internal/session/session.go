// Package session은 브랜드 세션 상태와 부분 재생성을 관리합니다.
package session

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/insajin/brandsnap/internal/brand"
	"github.com/insajin/brandsnap/internal/logger"
	"github.com/insajin/brandsnap/internal/metrics"
)

// 세션 관련 에러 정의
var (
	// ErrNoActiveBrand는 활성 브랜드 없이 재생성을 요청했을 때 반환됩니다.
	ErrNoActiveBrand = errors.New("활성 브랜드가 없습니다. 먼저 브랜드를 생성하세요")

	// ErrRegenerationInFlight는 같은 컴포넌트의 재생성이 진행 중일 때
	// 반환됩니다.
	ErrRegenerationInFlight = errors.New("해당 컴포넌트의 재생성이 이미 진행 중입니다")

	// ErrInvalidComponent는 알 수 없는 컴포넌트 종류입니다.
	ErrInvalidComponent = errors.New("알 수 없는 컴포넌트 종류입니다")
)

// AIClient는 세션이 사용하는 AI 프로바이더 어댑터입니다.
type AIClient interface {
	// GenerateBrandData는 아이디어로부터 브랜드 데이터를 생성합니다.
	GenerateBrandData(ctx context.Context, idea string) (*brand.Data, error)

	// GenerateLogoImage는 로고 이미지를 생성합니다.
	// 실패 시 빈 문자열과 nil을 반환합니다 (최선 노력).
	GenerateLogoImage(ctx context.Context, brandName, description string, extraRetries int) (string, error)
}

// Session은 단일 브랜드 세션입니다.
// 현재 레코드와 컴포넌트별 진행 중 재생성 집합을 보호합니다.
type Session struct {
	mu       sync.Mutex
	id       string
	current  *brand.Record
	inflight map[brand.Component]bool

	gen          *brand.Generator
	ai           AIClient
	metrics      *metrics.Metrics
	imageRetries int
}

// Option은 Session 설정 옵션입니다.
type Option func(*Session)

// WithAIClient는 AI 프로바이더 어댑터를 설정합니다.
// nil이면 항상 폴백 경로를 사용합니다.
func WithAIClient(ai AIClient) Option {
	return func(s *Session) {
		s.ai = ai
	}
}

// WithMetrics는 메트릭 수집기를 설정합니다.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithRandSource는 폴백 생성기의 난수 소스를 설정합니다.
// 테스트에서 결정적 동작을 위해 사용합니다.
func WithRandSource(src rand.Source) Option {
	return func(s *Session) {
		s.gen = brand.NewGenerator(src)
	}
}

// WithImageRetries는 로고 이미지 재시도 횟수를 설정합니다.
func WithImageRetries(retries int) Option {
	return func(s *Session) {
		s.imageRetries = retries
	}
}

// New는 새로운 브랜드 세션을 생성합니다.
func New(opts ...Option) *Session {
	s := &Session{
		id:           uuid.New().String(),
		inflight:     make(map[brand.Component]bool),
		gen:          brand.NewGenerator(rand.NewSource(time.Now().UnixNano())),
		metrics:      metrics.NewMetrics(),
		imageRetries: 2,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID는 세션 식별자를 반환합니다.
func (s *Session) ID() string {
	return s.id
}

// SetAIClient는 AI 어댑터를 교체합니다. 자격 증명 수명주기(설정/삭제)에
// 따라 런타임에 호출됩니다. nil이면 이후 생성은 폴백 경로를 사용합니다.
func (s *Session) SetAIClient(ai AIClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ai = ai
}

// aiClient는 현재 AI 어댑터를 반환합니다.
func (s *Session) aiClient() AIClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ai
}

// Generate는 아이디어로부터 완전한 브랜드 레코드를 생성하고 저장합니다.
// 자격 증명이 있으면 AI 경로를 시도하고, 모든 어댑터 에러는 폴백으로
// 전환됩니다. 팔레트와 로고는 항상 결정된 업종/바이브로부터 재계산됩니다.
func (s *Session) Generate(ctx context.Context, idea string) (*brand.Record, error) {
	start := time.Now()
	slog := logger.WithSessionID(s.id)
	ai := s.aiClient()

	var data *brand.Data
	withAI := false

	if ai != nil {
		d, err := ai.GenerateBrandData(ctx, idea)
		if err != nil {
			slog.Warn().Err(err).Msg("AI 브랜드 생성 실패, 폴백 경로로 전환")
			s.metrics.ProviderErrors.Add(1)
		} else {
			data = d
			withAI = true
		}
	}

	if data == nil {
		d := s.gen.Data(idea)
		data = &d
		s.metrics.Fallbacks.Add(1)
	} else {
		s.metrics.AISuccesses.Add(1)
	}

	// 팔레트와 로고는 항상 결정된 업종/바이브로부터 재계산
	palette := s.gen.Palette(data.Industry, data.Vibe)
	logo := s.gen.Logo(data.BrandName, data.Industry, data.Vibe)

	// 이미지 로고는 AI 경로에서 로고 설명이 있을 때만 시도
	if withAI && data.LogoDescription != "" {
		url, err := ai.GenerateLogoImage(ctx, data.BrandName, data.LogoDescription, s.imageRetries)
		if err != nil {
			slog.Warn().Err(err).Msg("로고 이미지 생성 실패, 아이콘 로고 유지")
		} else if url != "" {
			logo = brand.NewImageLogo(url, data.LogoDescription, data.BrandName)
		}
	}

	rec := &brand.Record{
		Idea:            idea,
		BrandName:       data.BrandName,
		Tagline:         data.Tagline,
		Palette:         palette,
		Logo:            logo,
		Industry:        data.Industry,
		Vibe:            data.Vibe,
		Reasoning:       data.Reasoning,
		GeneratedWithAI: withAI,
		Timestamp:       time.Now(),
	}

	s.mu.Lock()
	s.current = rec
	s.mu.Unlock()

	s.metrics.Generations.Add(1)
	s.metrics.RecordGeneration()
	s.metrics.RecordGenLatency(time.Since(start))

	slog.Info().
		Str("brand_name", rec.BrandName).
		Bool("with_ai", withAI).
		Msg("브랜드 생성 완료")

	return rec, nil
}

// Regenerate는 현재 브랜드의 단일 컴포넌트를 재생성합니다.
// 같은 컴포넌트의 재생성이 진행 중이면 ErrRegenerationInFlight를 반환합니다.
// 각 분기는 이번 재생성의 결과로만 GeneratedWithAI를 갱신합니다.
func (s *Session) Regenerate(ctx context.Context, kind brand.Component) (*brand.Record, error) {
	if !kind.Valid() {
		return nil, ErrInvalidComponent
	}

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveBrand
	}
	if s.inflight[kind] {
		s.mu.Unlock()
		return nil, ErrRegenerationInFlight
	}
	s.inflight[kind] = true
	snapshot := *s.current
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, kind)
		s.mu.Unlock()
	}()

	slog := logger.WithGeneration(s.id, string(kind))
	ai := s.aiClient()

	updated := snapshot
	withAI := false

	switch kind {
	case brand.ComponentName:
		var logoDescription string
		if ai != nil {
			d, err := ai.GenerateBrandData(ctx, snapshot.Idea)
			if err != nil {
				slog.Warn().Err(err).Msg("AI 이름 재생성 실패, 폴백 경로로 전환")
				s.metrics.ProviderErrors.Add(1)
			} else {
				updated.BrandName = d.BrandName
				updated.Reasoning = d.Reasoning
				logoDescription = d.LogoDescription
				withAI = true
			}
		}
		if !withAI {
			updated.BrandName = s.gen.Name(snapshot.Idea)
		}

		// 로고 텍스트는 브랜드 이름을 담으므로 이름 변경 시 로고도 재구성
		updated.Logo = s.gen.Logo(updated.BrandName, snapshot.Industry, snapshot.Vibe)
		if withAI && logoDescription != "" {
			url, err := ai.GenerateLogoImage(ctx, updated.BrandName, logoDescription, s.imageRetries)
			if err != nil {
				slog.Warn().Err(err).Msg("로고 이미지 생성 실패, 아이콘 로고 유지")
			} else if url != "" {
				updated.Logo = brand.NewImageLogo(url, logoDescription, updated.BrandName)
			}
		}

	case brand.ComponentTagline:
		if ai != nil {
			d, err := ai.GenerateBrandData(ctx, snapshot.Idea)
			if err != nil {
				slog.Warn().Err(err).Msg("AI 태그라인 재생성 실패, 폴백 경로로 전환")
				s.metrics.ProviderErrors.Add(1)
			} else {
				updated.Tagline = d.Tagline
				withAI = true
			}
		}
		if !withAI {
			updated.Tagline = s.gen.Tagline(snapshot.Idea)
		}

	case brand.ComponentColors:
		// 팔레트 재계산은 네트워크 호출 없이 저장된 업종/바이브를 사용
		updated.Palette = s.gen.Palette(snapshot.Industry, snapshot.Vibe)
		withAI = false

	case brand.ComponentLogo:
		updated.Logo = s.gen.Logo(snapshot.BrandName, snapshot.Industry, snapshot.Vibe)
		if ai != nil {
			description := snapshot.Logo.Description
			if description == "" {
				description = "a modern abstract symbol"
			}
			url, err := ai.GenerateLogoImage(ctx, snapshot.BrandName, description, s.imageRetries)
			if err != nil {
				slog.Warn().Err(err).Msg("로고 이미지 생성 실패, 아이콘 로고 유지")
			} else if url != "" {
				updated.Logo = brand.NewImageLogo(url, description, snapshot.BrandName)
				withAI = true
			}
		}
	}

	updated.GeneratedWithAI = withAI
	updated.Timestamp = time.Now()

	s.mu.Lock()
	s.current = &updated
	s.mu.Unlock()

	s.metrics.Regenerations.Add(1)

	slog.Info().Bool("with_ai", withAI).Msg("컴포넌트 재생성 완료")
	return &updated, nil
}

// Current는 현재 브랜드 레코드를 반환합니다. 없으면 nil입니다.
func (s *Session) Current() *brand.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	rec := *s.current
	return &rec
}

// Reset은 세션 상태를 초기화합니다. 멱등합니다.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.inflight = make(map[brand.Component]bool)
}
