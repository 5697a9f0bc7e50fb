package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"github.com/matchday/fixtures-dashboard/internal/domain/match"
	"github.com/matchday/fixtures-dashboard/internal/platform/logging"
)

// fixturesd serves the per-league schedule documents as static JSON,
// the same shape the API consumes over FIXTURES_BASE_URL. Handy for
// local development and as a stand-in for the real document host.
func main() {
	addr := flag.String("addr", ":9090", "listen address")
	dir := flag.String("dir", "./fixtures", "directory holding <league>.json documents")
	flag.Parse()

	logger := logging.NewJSON(logging.LevelInfo)
	logging.SetDefault(logger)
	defer logger.Sync()

	if err := checkDocuments(*dir); err != nil {
		logger.Error("fixture documents failed validation", "dir", *dir, "error", err)
		os.Exit(1)
	}

	handler := func(ctx *fasthttp.RequestCtx) {
		if !ctx.IsGet() {
			ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
			return
		}

		name := strings.TrimPrefix(string(ctx.Path()), "/")
		league, ok := match.ParseLeague(strings.TrimSuffix(name, ".json"))
		if !ok || !strings.HasSuffix(name, ".json") {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			return
		}

		body, err := os.ReadFile(filepath.Join(*dir, string(league)+".json"))
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			return
		}

		ctx.SetContentType("application/json")
		ctx.SetBody(body)
	}

	logger.Info("fixtures server starting", "addr", *addr, "dir", *dir)
	if err := fasthttp.ListenAndServe(*addr, handler); err != nil {
		logger.Error("fixtures server failed", "error", err)
		os.Exit(1)
	}
}

// checkDocuments decodes every league document once at boot so a
// malformed file surfaces immediately instead of at first fetch.
func checkDocuments(dir string) error {
	for _, league := range match.Leagues() {
		path := filepath.Join(dir, string(league)+".json")
		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var doc match.Document
		if err := sonic.Unmarshal(body, &doc); err != nil {
			return err
		}
	}
	return nil
}
