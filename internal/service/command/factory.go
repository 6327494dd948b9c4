package command

import (
	"context"

	"github.com/sandevgo/pitchcoach/internal/core"
)

// Sessions is the part of the coach dialog the chat commands drive.
type Sessions interface {
	Start(ctx context.Context, id string) (core.TurnResult, error)
	Reset(ctx context.Context, id string) error
	Expect(id string) core.TurnKind
	Snapshot(id string) (core.Snapshot, error)
}

type Materials interface {
	List(ctx context.Context) ([]core.StoredDocument, error)
	Delete(ctx context.Context, name string) error
}

func NewCommands(
	cfg core.ProviderConfig,
	sessions Sessions,
	materials Materials,
) []core.Command {
	return []core.Command{
		NewStartCommand(sessions),
		NewStateCommand(sessions),
		NewResetCommand(sessions),
		NewMaterialsCommand(materials),
		NewModelCommand(cfg),
	}
}
