package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/yungbote/adtech-learning/internal/app"
	"github.com/yungbote/adtech-learning/internal/favicon"
	"github.com/yungbote/adtech-learning/internal/linkcheck"
	"github.com/yungbote/adtech-learning/internal/pages"
	"github.com/yungbote/adtech-learning/internal/platform/logger"
)

func rootCmd(out io.Writer) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Operate the ad tech learning site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")

	newLog := func() *logger.Logger {
		if !verbose {
			return logger.NewNop()
		}
		log, err := logger.New("development")
		if err != nil {
			return logger.NewNop()
		}
		return log
	}

	cmd.AddCommand(
		routesCmd(),
		renderCmd(newLog),
		linkcheckCmd(newLog),
		faviconCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)
	return cmd
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print every page URL the site serves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range pages.AllPaths() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "/health")
			return nil
		},
	}
}

// newInProcessApp builds the site without binding a port or warming caches.
func newInProcessApp(log *logger.Logger) (*app.App, error) {
	gin.SetMode(gin.ReleaseMode)
	cfg := app.DefaultConfig()
	cfg.Serverless = true
	cfg.PageCacheWarm = false
	return app.NewWithConfig(context.Background(), log, cfg)
}

func renderCmd(newLog func() *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "render <path>",
		Short: "Render one URL in-process and write the body to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(args[0])
			if !strings.HasPrefix(target, "/") {
				return fmt.Errorf("path %q must start with /", target)
			}
			a, err := newInProcessApp(newLog())
			if err != nil {
				return err
			}
			defer a.Close()

			rec := httptest.NewRecorder()
			a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil).WithContext(cmd.Context()))
			if _, err := cmd.OutOrStdout().Write(rec.Body.Bytes()); err != nil {
				return err
			}
			if rec.Code != http.StatusOK {
				return fmt.Errorf("GET %s returned %d", target, rec.Code)
			}
			return nil
		},
	}
}

func linkcheckCmd(newLog func() *logger.Logger) *cobra.Command {
	var (
		baseURL     string
		concurrency int
		retries     int
		timeout     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "linkcheck",
		Short: "Crawl internal links and report any that do not return 200",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLog()
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var fetcher linkcheck.Fetcher
			if strings.TrimSpace(baseURL) != "" {
				f, err := linkcheck.HTTPFetcher(nil, baseURL, retries)
				if err != nil {
					return err
				}
				fetcher = f
			} else {
				a, err := newInProcessApp(log)
				if err != nil {
					return err
				}
				defer a.Close()
				fetcher = linkcheck.HandlerFetcher(a.Handler())
			}

			report, err := linkcheck.New(log, fetcher, linkcheck.Options{Concurrency: concurrency}).Run(ctx, pages.AllPaths()...)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, b := range report.Broken {
				switch {
				case b.Err != "":
					fmt.Fprintf(w, "BROKEN %s (from %s): %s\n", b.Path, b.Referrer, b.Err)
				default:
					fmt.Fprintf(w, "BROKEN %s (from %s): status %d\n", b.Path, b.Referrer, b.Status)
				}
			}
			fmt.Fprintf(w, "checked %d urls, %d broken\n", report.Checked, len(report.Broken))
			if !report.OK() {
				return fmt.Errorf("%d broken links", len(report.Broken))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Check a running site instead of an in-process one")
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "Maximum concurrent fetches")
	cmd.Flags().IntVar(&retries, "retries", 2, "Retries for timeouts, 429s and 5xx (with --base-url)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall crawl timeout")
	return cmd
}

func faviconCmd() *cobra.Command {
	var (
		in       string
		outPath  string
		size     int
		generate bool
		color    string
	)
	cmd := &cobra.Command{
		Use:   "favicon",
		Short: "Resize an image into a square PNG favicon, or generate the site mark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			switch {
			case generate:
				buf, gerr := favicon.Generate(favicon.Options{Size: size, Color: color})
				data, err = buf.Bytes(), gerr
			case in != "":
				raw, rerr := os.ReadFile(in)
				if rerr != nil {
					return fmt.Errorf("read %s: %w", in, rerr)
				}
				buf, ferr := favicon.Resize(raw, size)
				data, err = buf.Bytes(), ferr
			default:
				return fmt.Errorf("one of --in or --generate is required")
			}
			if err != nil {
				return err
			}

			if outPath == "" || outPath == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%dx%d, %d bytes)\n", outPath, size, size, len(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Source PNG or JPEG")
	cmd.Flags().StringVarP(&outPath, "out", "o", "favicon.png", `Output file ("-" for stdout)`)
	cmd.Flags().IntVar(&size, "size", favicon.DefaultSize, "Edge length in pixels")
	cmd.Flags().BoolVar(&generate, "generate", false, "Draw the site mark instead of resizing")
	cmd.Flags().StringVar(&color, "color", favicon.DefaultColor, "Background color for --generate")
	return cmd
}
