// Package gifboard parses gifboard command configuration and runs the HTTP
// service.
package gifboard

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	entrypoint "github.com/louisbranch/gifboard/internal/platform/cmd"
	"github.com/louisbranch/gifboard/internal/services/gifboard"
	"github.com/louisbranch/gifboard/internal/services/gifboard/assets"
	"github.com/louisbranch/gifboard/internal/services/gifboard/catalog"
)

// Config holds the gifboard command configuration.
type Config struct {
	HTTPAddr  string `env:"GIFBOARD_HTTP_ADDR"   envDefault:":8080"`
	StaticDir string `env:"GIFBOARD_STATIC_DIR"`
	DataFile  string `env:"GIFBOARD_DATA_FILE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.StaticDir, "static-dir", cfg.StaticDir, "static asset root (default: dist beside the executable)")
	fs.StringVar(&cfg.DataFile, "data-file", cfg.DataFile, "JSON document served at /api/data (default: embedded gifs.json)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads startup state and serves HTTP until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGifboard, func(ctx context.Context) error {
		serverCfg, err := buildServerConfig(cfg)
		if err != nil {
			return err
		}
		server, err := gifboard.NewServer(ctx, serverCfg)
		if err != nil {
			return fmt.Errorf("init gifboard server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve gifboard: %w", err)
		}
		return nil
	})
}

func buildServerConfig(cfg Config) (gifboard.Config, error) {
	doc, err := loadDocument(cfg.DataFile)
	if err != nil {
		return gifboard.Config{}, err
	}
	staticFS, err := openStaticRoot(cfg.StaticDir)
	if err != nil {
		return gifboard.Config{}, err
	}
	return gifboard.Config{
		HTTPAddr: cfg.HTTPAddr,
		Assets:   staticFS,
		Document: doc,
	}, nil
}

func loadDocument(path string) (*catalog.Document, error) {
	path = strings.TrimSpace(path)
	var (
		doc *catalog.Document
		err error
	)
	if path == "" {
		path = "embedded"
		doc, err = catalog.Default()
	} else {
		doc, err = catalog.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log.Printf("catalog loaded source=%s records=%d bytes=%d", path, doc.Len(), doc.Size())
	return doc, nil
}

// openStaticRoot resolves the static root. A missing root only logs a
// warning; every request then falls through to the API routes.
func openStaticRoot(dir string) (fs.FS, error) {
	root, err := assets.ResolveRoot(dir)
	if err != nil {
		return nil, err
	}
	if err := assets.CheckRoot(root); err != nil {
		log.Printf("warning: static assets unavailable: %v", err)
	} else {
		log.Printf("serving static assets root=%s", root)
	}
	return os.DirFS(root), nil
}
