package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/insajin/brandsnap/internal/branding"
)

// versionCmd는 버전 정보를 출력합니다.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 출력",
	Run: func(cmd *cobra.Command, args []string) {
		version, commit, buildDate := GetVersionInfo()
		fmt.Printf("%s %s\n", branding.AppName, version)
		fmt.Printf("  commit:     %s\n", commit)
		fmt.Printf("  build date: %s\n", buildDate)
		fmt.Printf("  go version: %s\n", runtime.Version())
		fmt.Printf("  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
