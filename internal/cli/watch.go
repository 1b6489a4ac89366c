package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces the burst of events editors emit for one save.
const watchDebounce = 200 * time.Millisecond

// watchCommand creates the watch command, which re-renders a data file
// every time it is saved.
func (c *CLI) watchCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-render a data file whenever it changes",
		Long: `Render a data file, then watch it and render again on every save.

Accepts the same flags as render. Render errors are reported and watching
continues; press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := filepath.Clean(args[0])

			opts := c.options(cmd, &flags)
			opts.SetRenderDefaults()
			if err := c.resolveChart(&opts, input); err != nil {
				return err
			}

			logger := loggerFromContext(ctx)
			render := func(ctx context.Context) {
				logger.Debug("rendering", "file", input)
				if err := c.runRender(ctx, []string{input}, opts, flags.output, 1); err != nil && ctx.Err() == nil {
					printError("%v", err)
				}
			}
			render(ctx)

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			// Editors often replace the file on save, so watch its directory.
			if err := watcher.Add(filepath.Dir(input)); err != nil {
				return fmt.Errorf("watch %s: %w", input, err)
			}
			printInfo("Watching %s (Ctrl+C to stop)", input)

			return watchLoop(ctx, watcher.Events, watcher.Errors, input, watchDebounce, render)
		},
	}

	flags.registerLayout(cmd.Flags())
	flags.registerRender(cmd.Flags())
	flags.registerCommon(cmd.Flags(), "output file or base path")

	registerCompletions(cmd)
	return cmd
}

// watchLoop calls fn once per burst of write or create events on target.
// It returns nil when ctx is done or the event channel closes, and the first
// watcher error otherwise.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, target string, debounce time.Duration, fn func(context.Context)) error {
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fire = time.After(debounce)
		case <-fire:
			fire = nil
			fn(ctx)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", target, err)
		}
	}
}
