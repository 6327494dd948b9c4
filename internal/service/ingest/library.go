package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

const loadConcurrency = 4

var ErrInvalidName = errors.New("invalid document name")

// Indexer is the write side of the corpus index.
type Indexer interface {
	Ingest(ctx context.Context, docs []core.DocumentInput) ([]core.CorpusDocument, error)
	Clear()
}

// Library keeps training materials in the repository and mirrors them into
// the corpus index after every change.
type Library struct {
	repo    core.DocumentsRepository
	index   Indexer
	fetcher *Fetcher
}

func NewLibrary(repo core.DocumentsRepository, index Indexer, fetcher *Fetcher) *Library {
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	return &Library{repo: repo, index: index, fetcher: fetcher}
}

// ValidateName rejects names that could escape the library, like "../x".
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ImportFiles loads files in parallel and stores the ones that yield text.
// Files that fail are logged and skipped, as long as at least one succeeds.
func (l *Library) ImportFiles(ctx context.Context, paths []string) ([]core.StoredDocument, error) {
	logger := log.FromCtx(ctx)

	inputs := make([]*core.DocumentInput, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			in, err := LoadFile(p)
			if err != nil {
				logger.Warn().Err(err).Str("path", p).Msg("skipping material")
				return nil
			}
			if strings.TrimSpace(in.Text) == "" {
				logger.Warn().Str("path", p).Msg("skipping material without text")
				return nil
			}
			inputs[i] = &in
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var saved []core.StoredDocument
	for i, in := range inputs {
		if in == nil {
			continue
		}
		doc, err := l.repo.SaveDocument(ctx, core.StoredDocument{
			Name:    in.Name,
			Source:  paths[i],
			Content: in.Text,
		})
		if err != nil {
			return saved, err
		}
		saved = append(saved, doc)
	}

	if len(saved) == 0 {
		return nil, core.ErrEmptyCorpus
	}
	if _, err := l.Reload(ctx); err != nil {
		return saved, err
	}
	return saved, nil
}

// ImportDir imports every supported file directly inside dir.
func (l *Library) ImportDir(ctx context.Context, dir string) ([]core.StoredDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read materials dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsSupported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, core.ErrEmptyCorpus
	}
	return l.ImportFiles(ctx, paths)
}

func (l *Library) ImportURL(ctx context.Context, rawURL string) (core.StoredDocument, error) {
	in, err := l.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return core.StoredDocument{}, err
	}
	return l.importInput(ctx, in, rawURL)
}

// ImportText stores already extracted text, e.g. an upload.
func (l *Library) ImportText(ctx context.Context, name, text string) (core.StoredDocument, error) {
	if err := ValidateName(name); err != nil {
		return core.StoredDocument{}, err
	}
	return l.importInput(ctx, core.DocumentInput{Name: name, Text: text}, "upload")
}

// ImportBytes extracts an uploaded file by the extension of its name.
func (l *Library) ImportBytes(ctx context.Context, name string, data []byte) (core.StoredDocument, error) {
	if err := ValidateName(name); err != nil {
		return core.StoredDocument{}, err
	}
	text, err := Extract(filepath.Ext(name), data)
	if errors.Is(err, ErrUnsupportedFormat) {
		return core.StoredDocument{}, err
	}
	if err != nil {
		return core.StoredDocument{}, fmt.Errorf("%w: %s: %v", ErrUnreadable, name, err)
	}
	return l.importInput(ctx, core.DocumentInput{Name: name, Text: text}, "upload")
}

func (l *Library) importInput(ctx context.Context, in core.DocumentInput, source string) (core.StoredDocument, error) {
	if strings.TrimSpace(in.Text) == "" {
		return core.StoredDocument{}, core.ErrEmptyCorpus
	}

	doc, err := l.repo.SaveDocument(ctx, core.StoredDocument{Name: in.Name, Source: source, Content: in.Text})
	if err != nil {
		return core.StoredDocument{}, err
	}
	if _, err := l.Reload(ctx); err != nil {
		return doc, err
	}
	return doc, nil
}

func (l *Library) List(ctx context.Context) ([]core.StoredDocument, error) {
	return l.repo.ListDocuments(ctx)
}

func (l *Library) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := l.repo.DeleteDocument(ctx, name); err != nil {
		return err
	}
	_, err := l.Reload(ctx)
	return err
}

// Reload rebuilds the corpus from the repository and returns the number of
// documents in it. An empty library clears the corpus.
func (l *Library) Reload(ctx context.Context) (int, error) {
	stored, err := l.repo.LoadDocuments(ctx)
	if err != nil {
		return 0, err
	}

	inputs := make([]core.DocumentInput, 0, len(stored))
	for _, d := range stored {
		inputs = append(inputs, core.DocumentInput{Name: d.Name, Text: d.Content})
	}

	docs, err := l.index.Ingest(ctx, inputs)
	if errors.Is(err, core.ErrEmptyCorpus) {
		l.index.Clear()
		log.FromCtx(ctx).Info().Msg("material library is empty")
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}
