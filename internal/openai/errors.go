// Package openai는 OpenAI 호환 API 프로바이더 통합 레이어를 제공합니다.
package openai

import (
	"errors"
	"fmt"
)

// 프로바이더 관련 에러 정의
var (
	// ErrNoCredential은 API 키가 설정되지 않았을 때 반환됩니다.
	ErrNoCredential = errors.New("API 키가 설정되지 않았습니다")

	// ErrMalformedResponse는 프로바이더 응답에서 브랜드 데이터를 복구할 수
	// 없을 때 반환됩니다.
	ErrMalformedResponse = errors.New("프로바이더 응답을 해석할 수 없습니다")

	// ErrRateLimited는 API 레이트 리밋에 걸렸을 때 반환됩니다.
	ErrRateLimited = errors.New("API 레이트 리밋 초과")

	// ErrContextCanceled는 컨텍스트가 취소되었을 때 반환됩니다.
	ErrContextCanceled = errors.New("요청이 취소되었습니다")
)

// ProviderError는 프로바이더의 비정상 HTTP 응답입니다.
// 파싱 가능한 경우 프로바이더의 구조화된 에러 메시지를 담습니다.
type ProviderError struct {
	// Status는 HTTP 상태 코드입니다.
	Status int
	// Type은 프로바이더가 보고한 에러 타입입니다 (파싱 가능한 경우).
	Type string
	// Message는 프로바이더가 보고한 에러 메시지입니다.
	Message string
}

// Error는 error 인터페이스를 구현합니다.
func (e *ProviderError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("OpenAI API 에러 (HTTP %d): [%s] %s", e.Status, e.Type, e.Message)
	}
	return fmt.Sprintf("OpenAI API 에러 (HTTP %d): %s", e.Status, e.Message)
}

// IsRateLimit은 레이트 리밋 에러인지 확인합니다.
func (e *ProviderError) IsRateLimit() bool {
	return e.Status == 429
}

// IsRetryable은 재시도 가능한 에러인지 확인합니다.
// 서버 에러(5xx)와 레이트 리밋은 재시도 가능합니다.
func (e *ProviderError) IsRetryable() bool {
	return e.Status >= 500 || e.IsRateLimit()
}

// IsContentPolicy는 콘텐츠 정책 거부인지 확인합니다.
func (e *ProviderError) IsContentPolicy() bool {
	return e.Type == "content_policy_violation" || e.Type == "invalid_request_error" && e.Status == 400
}

// AsProviderError는 에러 체인에서 ProviderError를 추출합니다.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
