package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync/atomic"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

// Index holds the ingested reference text. It is shared read-only between
// sessions; Ingest swaps the whole corpus at once.
type Index struct {
	chunkSize int
	docs      atomic.Pointer[[]core.CorpusDocument]
}

func NewIndex(chunkSize int) *Index {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	idx := &Index{chunkSize: chunkSize}
	idx.docs.Store(&[]core.CorpusDocument{})
	return idx
}

// Ingest replaces the corpus. Blank documents are skipped; if none are left
// the previous corpus stays in place and ErrEmptyCorpus is returned.
func (i *Index) Ingest(ctx context.Context, inputs []core.DocumentInput) ([]core.CorpusDocument, error) {
	docs := make([]core.CorpusDocument, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Text) == "" {
			log.FromCtx(ctx).Warn().Str("document", in.Name).Msg("skipping document without text")
			continue
		}
		docs = append(docs, core.CorpusDocument{
			ID:       documentID(in.Name, in.Text),
			Name:     in.Name,
			FullText: in.Text,
			Chunks:   ChunkText(in.Text, i.chunkSize),
		})
	}

	if len(docs) == 0 {
		return nil, core.ErrEmptyCorpus
	}

	i.docs.Store(&docs)
	log.FromCtx(ctx).Info().Int("documents", len(docs)).Msg("corpus ingested")
	return docs, nil
}

// Clear drops every document, used when the library is emptied.
func (i *Index) Clear() {
	i.docs.Store(&[]core.CorpusDocument{})
}

func (i *Index) IsEmpty() bool {
	return len(*i.docs.Load()) == 0
}

// Documents returns the current corpus. Callers must not modify it.
func (i *Index) Documents() []core.CorpusDocument {
	return *i.docs.Load()
}

func documentID(name, text string) string {
	sum := sha256.Sum256([]byte(name + "\x00" + text))
	return hex.EncodeToString(sum[:8])
}
