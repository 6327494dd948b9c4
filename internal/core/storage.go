package core

import "context"

type DocumentsRepository interface {
	SaveDocument(ctx context.Context, doc StoredDocument) (StoredDocument, error)
	ListDocuments(ctx context.Context) ([]StoredDocument, error)
	LoadDocuments(ctx context.Context) ([]StoredDocument, error)
	DeleteDocument(ctx context.Context, name string) error
}
