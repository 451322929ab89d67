package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/imbecility/tubesave/pkg/api"
	"github.com/imbecility/tubesave/pkg/gateway"
)

func newServeCmd() *cobra.Command {
	var (
		listen          string
		web             bool
		rateLimit       float64
		rateBurst       int
		downloadTimeout time.Duration
		maxBytes        int64
		proxyURL        string
	)

	cmd := &cobra.Command{
		Use:   "serve [--listen ADDR]",
		Short: "Run the HTTP API and web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("listen") {
				cfg.Listen = listen
			}
			if f.Changed("web") {
				cfg.WebUI = web
			}
			if f.Changed("rate") {
				cfg.RateLimit = rateLimit
			}
			if f.Changed("burst") {
				cfg.RateBurst = rateBurst
			}
			if f.Changed("download-timeout") {
				cfg.DownloadTimeout = downloadTimeout
			}
			if f.Changed("max-bytes") {
				cfg.MaxBytes = maxBytes
			}
			if f.Changed("proxy") {
				cfg.ProxyURL = proxyURL
			}

			svc, err := gateway.New(cfg)
			if err != nil {
				return err
			}
			return api.NewServer(cfg, svc).Start(cmd.Context())
		},
	}

	d := gateway.DefaultConfig()
	cmd.Flags().StringVarP(&listen, "listen", "l", d.Listen, "Address to listen on")
	cmd.Flags().BoolVar(&web, "web", d.WebUI, "Serve the web UI on /")
	cmd.Flags().Float64Var(&rateLimit, "rate", d.RateLimit, "Requests per second allowed across all clients")
	cmd.Flags().IntVar(&rateBurst, "burst", d.RateBurst, "Rate limiter burst size")
	cmd.Flags().DurationVar(&downloadTimeout, "download-timeout", d.DownloadTimeout, "Maximum time to buffer one download (eg. 90s, 5m)")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", d.MaxBytes, "Maximum bytes buffered per download")
	cmd.Flags().StringVarP(&proxyURL, "proxy", "p", "", "HTTP/HTTPS proxy URL for outbound requests")
	return cmd
}
