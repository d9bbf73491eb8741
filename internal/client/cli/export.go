package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskadmin/internal/client/export"
)

// Export uploads the loaded task list, loading it first if needed.
func (a *App) Export(ctx context.Context) error {
	if a.tasks.Tasks == nil {
		if err := a.tasks.Refresh(ctx); err != nil {
			return err
		}
		if a.tasks.Banner.Error != "" {
			fmt.Fprintln(a.out, "Error:", a.tasks.Banner.Error)
			return nil
		}
	}

	key, err := a.exporter.ExportTasks(ctx, a.displayName(), a.tasks.Tasks)
	if errors.Is(err, export.ErrNotConfigured) {
		fmt.Fprintln(a.out, "Export is not configured; set export.bucket in the config file")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported %d tasks to s3://%s/%s\n", len(a.tasks.Tasks), a.config.Export.Bucket, key)
	return nil
}
