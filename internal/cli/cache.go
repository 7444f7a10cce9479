package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/depscout/depscout/pkg/errors"
)

// cacheCommand creates the cache command with its subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the HTTP response cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached registry responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			printDetail("%s", dir)
			return nil
		},
	})

	return cmd
}

func (c *CLI) runCacheClear() error {
	dir, err := cacheDir()
	if err != nil {
		return err
	}

	removed := 0
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInternal, err, "clearing cache")
	}

	printSuccess("Cleared %d cached entries", removed)
	printDetail("%s", dir)
	return nil
}

// cacheDir returns the directory used for cached registry responses.
func cacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "resolving home directory")
	}
	return filepath.Join(home, ".cache", appName), nil
}
