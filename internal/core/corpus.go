package core

import "time"

// DocumentInput is extracted text handed over by the ingestion side.
type DocumentInput struct {
	Name string
	Text string
}

// CorpusDocument is immutable once ingested.
type CorpusDocument struct {
	ID       string
	Name     string
	FullText string
	Chunks   []string
}

type RelevanceHit struct {
	Text  string
	Score int
}

// StoredDocument is a training material kept in the library.
type StoredDocument struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	Content   string    `json:"-"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
