package cli

import (
	"context"

	"github.com/dmitrijs2005/ticketapp/internal/client/repositories/kv"
)

// Export writes the whole local store to path.
func (a *App) Export(ctx context.Context, path string) error {
	n, err := kv.Export(ctx, a.store, path)
	if err != nil {
		a.logger.Error(ctx, "export", "path", path, "error", err)
		return err
	}
	a.printf("Exported %d items to %s\n", n, path)
	return nil
}

// Import loads a snapshot into the local store. The logged-in user shown by
// the client is not reloaded; the guard sees the imported session at once.
func (a *App) Import(ctx context.Context, path string) error {
	n, err := kv.Import(ctx, a.store, path)
	if err != nil {
		a.logger.Error(ctx, "import", "path", path, "imported", n, "error", err)
		return err
	}
	a.printf("Imported %d items from %s\n", n, path)
	return a.Whoami(ctx)
}
