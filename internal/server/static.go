package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// handleStatic은 SPA 번들을 호스팅합니다. 매칭되지 않은 GET 경로는 파일이
// 존재하면 그 파일을, 아니면 index.html을 반환합니다. HTML은 no-cache,
// 나머지 자산은 1시간 캐시입니다.
func (s *Server) handleStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "찾을 수 없습니다"})
		return
	}

	dir := s.cfg.Server.StaticDir
	if dir == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "정적 호스팅이 비활성화되어 있습니다"})
		return
	}

	reqPath := path.Clean("/" + c.Request.URL.Path)
	file := filepath.Join(dir, filepath.FromSlash(reqPath))

	// 디렉터리 탈출 방지
	if !strings.HasPrefix(file, filepath.Clean(dir)+string(os.PathSeparator)) && file != filepath.Clean(dir) {
		c.JSON(http.StatusNotFound, gin.H{"error": "찾을 수 없습니다"})
		return
	}

	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		// SPA 폴백: 알 수 없는 경로는 index.html
		file = filepath.Join(dir, "index.html")
		if _, err := os.Stat(file); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "찾을 수 없습니다"})
			return
		}
	}

	setCacheHeaders(c, file)
	c.File(file)
}

// setCacheHeaders는 파일 종류에 따른 캐시 정책을 설정합니다.
func setCacheHeaders(c *gin.Context, file string) {
	if strings.HasSuffix(file, ".html") {
		c.Header("Cache-Control", "no-cache")
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
}
