package source

import (
	"context"
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/matchday/fixtures-dashboard/internal/domain/match"
)

// DirSource reads league schedule documents straight from a local
// directory holding <league>.json files. Used for local development
// and tests in place of the static file host.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Fetch(_ context.Context, league match.League) (match.Document, error) {
	path := filepath.Join(s.dir, string(league)+".json")

	raw, err := os.ReadFile(path)
	if err != nil {
		return match.Document{}, crerr.Mark(crerr.Wrapf(err, "read league=%s", league), match.ErrFetch)
	}

	var doc match.Document
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return match.Document{}, crerr.Mark(crerr.Wrapf(err, "decode league=%s document", league), match.ErrShape)
	}

	return doc, nil
}
