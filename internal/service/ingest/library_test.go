package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/service/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu     sync.Mutex
	nextID int64
	docs   map[string]core.StoredDocument
}

func newMemRepo() *memRepo {
	return &memRepo{docs: make(map[string]core.StoredDocument)}
}

func (r *memRepo) SaveDocument(_ context.Context, doc core.StoredDocument) (core.StoredDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.docs[doc.Name]; ok {
		doc.ID = old.ID
	} else {
		r.nextID++
		doc.ID = r.nextID
	}
	doc.Size = len(doc.Content)
	doc.CreatedAt = time.Now()
	r.docs[doc.Name] = doc
	return doc, nil
}

func (r *memRepo) ListDocuments(ctx context.Context) ([]core.StoredDocument, error) {
	docs, _ := r.LoadDocuments(ctx)
	for i := range docs {
		docs[i].Content = ""
	}
	return docs, nil
}

func (r *memRepo) LoadDocuments(context.Context) ([]core.StoredDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := make([]core.StoredDocument, 0, len(r.docs))
	for _, d := range r.docs {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (r *memRepo) DeleteDocument(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[name]; !ok {
		return core.ErrDocumentNotFound
	}
	delete(r.docs, name)
	return nil
}

func newTestLibrary() (*Library, *corpus.Index) {
	idx := corpus.NewIndex(0)
	return NewLibrary(newMemRepo(), idx, fastFetcher()), idx
}

func names(docs []core.CorpusDocument) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Name)
	}
	return out
}

func TestLibrary_ImportFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	lib, idx := newTestLibrary()

	paths := []string{
		writeFile(t, dir, "a.txt", "Build rapport before pitching."),
		writeFile(t, dir, "b.md", "## Pricing\n\nAnchor high and justify with ROI."),
		writeFile(t, dir, "empty.txt", "   "),
		writeFile(t, dir, "scan.pdf", "%PDF-1.4"),
	}

	saved, err := lib.ImportFiles(ctx, paths)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, paths[0], saved[0].Source)

	assert.Equal(t, []string{"a.txt", "b.md"}, names(idx.Documents()))
}

func TestLibrary_ImportFilesNothingUsable(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	lib, idx := newTestLibrary()

	_, err := lib.ImportFiles(ctx, []string{writeFile(t, dir, "empty.txt", "")})
	assert.ErrorIs(t, err, core.ErrEmptyCorpus)
	assert.True(t, idx.IsEmpty())
}

func TestLibrary_ImportDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	lib, idx := newTestLibrary()

	writeFile(t, dir, "z.txt", "Close with a clear next step.")
	writeFile(t, dir, "a.html", "<p>Qualify the budget early.</p>")
	writeFile(t, dir, "skip.docx", "binary")
	writeFile(t, dir, "pricing.pdf", string(fixture(t, "pricing.pdf")))

	saved, err := lib.ImportDir(ctx, dir)
	require.NoError(t, err)
	require.Len(t, saved, 3)
	assert.Equal(t, "a.html", saved[0].Name)
	assert.Equal(t, "pricing.pdf", saved[1].Name)
	assert.Contains(t, saved[1].Content, "Always anchor high")
	assert.Len(t, idx.Documents(), 3)

	_, err = lib.ImportDir(ctx, t.TempDir())
	assert.ErrorIs(t, err, core.ErrEmptyCorpus)
}

func TestLibrary_ImportTextAndDelete(t *testing.T) {
	ctx := context.Background()
	lib, idx := newTestLibrary()

	_, err := lib.ImportText(ctx, "../evil.txt", "text")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = lib.ImportText(ctx, "upload.txt", "  ")
	assert.ErrorIs(t, err, core.ErrEmptyCorpus)

	doc, err := lib.ImportText(ctx, "upload.txt", "Summarize value in one sentence.")
	require.NoError(t, err)
	assert.Equal(t, "upload", doc.Source)
	assert.False(t, idx.IsEmpty())

	list, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Content)

	assert.ErrorIs(t, lib.Delete(ctx, "a/b"), ErrInvalidName)
	assert.ErrorIs(t, lib.Delete(ctx, "missing.txt"), core.ErrDocumentNotFound)

	require.NoError(t, lib.Delete(ctx, "upload.txt"))
	assert.True(t, idx.IsEmpty())
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestLibrary_ImportBytes(t *testing.T) {
	ctx := context.Background()
	lib, idx := newTestLibrary()

	doc, err := lib.ImportBytes(ctx, "pricing.pdf", fixture(t, "pricing.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "upload", doc.Source)
	assert.Contains(t, doc.Content, "Pricing playbook for enterprise training deals.")
	assert.Equal(t, []string{"pricing.pdf"}, names(idx.Documents()))

	_, err = lib.ImportBytes(ctx, "deck.pptx", []byte("PK"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = lib.ImportBytes(ctx, "../pricing.pdf", fixture(t, "pricing.pdf"))
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = lib.ImportBytes(ctx, "broken.pdf", []byte("%PDF-1.4"))
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestLibrary_Reload(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	_, err := repo.SaveDocument(ctx, core.StoredDocument{Name: "kept.txt", Content: "Follow up within a day."})
	require.NoError(t, err)

	idx := corpus.NewIndex(0)
	lib := NewLibrary(repo, idx, nil)

	n, err := lib.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"kept.txt"}, names(idx.Documents()))
}
