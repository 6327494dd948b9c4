package command

import (
	"context"
	"fmt"
)

type MaterialsCommand struct {
	materials Materials
	formatter *ResponseFormatter
}

func NewMaterialsCommand(materials Materials) *MaterialsCommand {
	return &MaterialsCommand{materials: materials, formatter: NewResponseFormatter()}
}

func (c *MaterialsCommand) Name() string {
	return "materials"
}

func (c *MaterialsCommand) Description() string {
	return "List or delete training materials"
}

func (c *MaterialsCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 2 && args[0] == "delete" {
		if err := c.materials.Delete(ctx, args[1]); err != nil {
			return "", fmt.Errorf("failed to delete %s: %w", args[1], err)
		}
		return c.formatter.Success(fmt.Sprintf("Deleted `%s`", args[1])), nil
	}

	docs, err := c.materials.List(ctx)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Training Materials"),
			"No materials yet.\n",
			c.formatter.Tip("add some with `coach ingest <files...>`"),
		), nil
	}

	items := make([]string, 0, len(docs))
	for _, d := range docs {
		items = append(items, fmt.Sprintf("`%s` (%d chars)", d.Name, d.Size))
	}
	return c.formatter.Combine(
		c.formatter.Info("Training Materials"),
		c.formatter.List(items),
		c.formatter.Usage("/materials delete <name>"),
	), nil
}
