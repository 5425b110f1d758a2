package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/insajin/brandsnap/internal/brand"
)

// handleGenerateBrand는 generate_brand 도구 핸들러입니다.
// 아이디어로부터 완전한 브랜드 아이덴티티를 생성합니다.
func (s *Server) handleGenerateBrand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idea, err := request.RequireString("idea")
	if err != nil || strings.TrimSpace(idea) == "" {
		return mcp.NewToolResultError("required parameter 'idea' is missing or invalid"), nil
	}

	s.logger.Info().Str("idea", idea).Msg("브랜드 생성 요청")

	rec, err := s.session.Generate(ctx, strings.TrimSpace(idea))
	if err != nil {
		s.logger.Error().Err(err).Msg("브랜드 생성 실패")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to generate brand: %s", err.Error())), nil
	}

	result, err := brand.ExportJSON(rec)
	if err != nil {
		return mcp.NewToolResultError("Failed to serialize response"), nil
	}

	return mcp.NewToolResultText(string(result)), nil
}

// handleRegenerateComponent는 regenerate_component 도구 핸들러입니다.
// 현재 브랜드의 단일 컴포넌트를 재생성합니다.
func (s *Server) handleRegenerateComponent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	component, err := request.RequireString("component")
	if err != nil {
		return mcp.NewToolResultError("required parameter 'component' is missing or invalid"), nil
	}

	kind := brand.Component(strings.ToLower(strings.TrimSpace(component)))
	if !kind.Valid() {
		return mcp.NewToolResultError("component must be one of: name, tagline, colors, logo"), nil
	}

	s.logger.Info().Str("component", string(kind)).Msg("컴포넌트 재생성 요청")

	rec, err := s.session.Regenerate(ctx, kind)
	if err != nil {
		s.logger.Error().Err(err).Msg("컴포넌트 재생성 실패")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to regenerate component: %s", err.Error())), nil
	}

	result, err := brand.ExportJSON(rec)
	if err != nil {
		return mcp.NewToolResultError("Failed to serialize response"), nil
	}

	return mcp.NewToolResultText(string(result)), nil
}

// handleConsult는 consult 도구 핸들러입니다.
// 상담 대화를 시작하거나 이어갑니다. 자격 증명이 없으면 에러입니다.
func (s *Server) handleConsult(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := request.GetString("action", "chat")

	switch action {
	case "start":
		idea := request.GetString("idea", "")
		s.logger.Info().Str("idea", idea).Msg("상담 시작 요청")

		reply := s.cons.Start(idea)
		result, err := json.Marshal(reply)
		if err != nil {
			return mcp.NewToolResultError("Failed to serialize response"), nil
		}
		return mcp.NewToolResultText(string(result)), nil

	case "chat":
		message := request.GetString("message", "")
		if strings.TrimSpace(message) == "" {
			return mcp.NewToolResultError("parameter 'message' is required for the 'chat' action"), nil
		}

		s.logger.Info().Msg("상담 메시지 요청")

		reply, err := s.cons.Chat(ctx, message)
		if err != nil {
			s.logger.Error().Err(err).Msg("상담 실패")
			return mcp.NewToolResultError(fmt.Sprintf("Consultation failed: %s", err.Error())), nil
		}

		result, err := json.Marshal(reply)
		if err != nil {
			return mcp.NewToolResultError("Failed to serialize response"), nil
		}
		return mcp.NewToolResultText(string(result)), nil

	default:
		return mcp.NewToolResultError("action must be 'start' or 'chat'"), nil
	}
}

// handleExportBrand는 export_brand 도구 핸들러입니다.
// 현재 브랜드를 JSON 문서 또는 텍스트 보고서로 내보냅니다.
func (s *Server) handleExportBrand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec := s.session.Current()
	if rec == nil {
		return mcp.NewToolResultError("no active brand: call generate_brand first"), nil
	}

	format := request.GetString("format", "json")
	switch format {
	case "json":
		result, err := brand.ExportJSON(rec)
		if err != nil {
			return mcp.NewToolResultError("Failed to serialize response"), nil
		}
		return mcp.NewToolResultText(string(result)), nil

	case "text":
		text, err := brand.ExportText(rec)
		if err != nil {
			return mcp.NewToolResultError("Failed to render report"), nil
		}
		return mcp.NewToolResultText(text), nil

	default:
		return mcp.NewToolResultError("format must be 'json' or 'text'"), nil
	}
}
