package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/adalundhe/aw/core/config"
	"github.com/adalundhe/aw/core/detect"
	"github.com/adalundhe/aw/core/generate"
	"github.com/adalundhe/aw/core/server"
	"github.com/adalundhe/aw/core/storage"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	webPort      int
	webHost      string
	webNoBrowser bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the local work log viewer",
	Long: `Start the authenticated loopback HTTP server backing the work log web
viewer. A fresh bearer token is generated at startup and embedded in the
printed URL. The server runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		port := webPort
		if port == 0 {
			port = cfg.Web.Port
		}
		baseURL := webHost
		if baseURL == "" {
			baseURL = cfg.Web.BaseURL
		}

		provider, err := generate.New(cfg.Generation.Provider, generate.Options{Model: cfg.Generation.Model})
		if err != nil {
			return err
		}
		dbPath, err := storage.DBPath()
		if err != nil {
			return err
		}

		srv, err := server.New(server.Options{
			Port:     port,
			DBPath:   dbPath,
			BaseURL:  baseURL,
			Provider: provider,
		})
		if err != nil {
			return err
		}

		url := srv.URL()
		fmt.Printf("Work log viewer: %s\n", url)
		fmt.Println("Press Ctrl+C to stop.")

		if !webNoBrowser && term.IsTerminal(int(os.Stdout.Fd())) {
			openBrowser(url)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Start(ctx)
	},
}

// openBrowser launches the system browser; failures are ignored since the
// URL is already printed.
func openBrowser(url string) {
	var opener string
	switch runtime.GOOS {
	case "darwin":
		opener = detect.Which("open")
	default:
		opener = detect.Which("xdg-open")
	}
	if opener == "" {
		return
	}
	_ = exec.Command(opener, url).Start()
}

func init() {
	webCmd.Flags().IntVar(&webPort, "port", 0, fmt.Sprintf("port to listen on (default %d)", config.DefaultWebPort))
	webCmd.Flags().StringVar(&webHost, "host", "", "web viewer base URL override")
	webCmd.Flags().BoolVar(&webNoBrowser, "no-browser", false, "do not open the system browser")
	rootCmd.AddCommand(webCmd)
}
