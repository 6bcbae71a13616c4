// Package cli implements the lessonsync command line client.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/localnerve/lessonsync/internal/cache"
	"github.com/localnerve/lessonsync/internal/config"
	"github.com/localnerve/lessonsync/internal/logger"
	"github.com/localnerve/lessonsync/internal/syncer"
)

// session is the engine a command runs against, built from flags after
// parsing.
type session struct {
	engine *syncer.Engine
	local  *syncer.Local
	close  func() error
}

type options struct {
	apiURL    string
	cacheFile string
	redisAddr string
	prefix    string
	timeout   time.Duration
}

// NewRootCmd creates the root command for lessonsync.
func NewRootCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	opts := options{
		apiURL:    cfg.APIBaseURL,
		cacheFile: cfg.CacheFile,
		redisAddr: cfg.RedisAddr,
		prefix:    cfg.RedisPrefix,
		timeout:   cfg.SyncTimeout,
	}

	root := &cobra.Command{
		Use:   "lessonsync",
		Short: "Sync a local lesson cache with a lessonsync server",
		Long: `Keep an offline copy of lesson materials, tests and progress in step
with a lessonsync server.

The local cache is a JSON file by default, or a redis database when
--redis is given. Every command works offline; server calls that fail are
reported and retried on the next sync.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api", opts.apiURL, "server API base URL")
	flags.StringVar(&opts.cacheFile, "cache", opts.cacheFile, "local cache file")
	flags.StringVar(&opts.redisAddr, "redis", opts.redisAddr, "redis address for the local cache (overrides --cache)")
	flags.StringVar(&opts.prefix, "redis-prefix", opts.prefix, "key prefix in redis")
	flags.DurationVar(&opts.timeout, "timeout", opts.timeout, "timeout per server call")

	// flags are read when a command runs, not here
	open := func() (*session, error) {
		return openSession(opts, log)
	}
	client := func() *syncer.Client {
		return syncer.NewClient(opts.apiURL, opts.timeout, log)
	}

	root.AddCommand(newHealthCmd(client))
	root.AddCommand(newPassCmd("pull", "Merge server state into the local cache", open, (*syncer.Engine).LoadFromBackend))
	root.AddCommand(newPassCmd("push", "Push the local cache to the server", open, (*syncer.Engine).SyncToBackend))
	root.AddCommand(newPassCmd("sync", "Pull then push, when the server is reachable", open, (*syncer.Engine).Run))
	root.AddCommand(newGetCmd(open))

	return root
}

func openSession(opts options, log *logger.Logger) (*session, error) {
	var (
		c       cache.Cache
		closeFn = func() error { return nil }
	)

	if opts.redisAddr != "" {
		r, err := cache.NewRedis(opts.redisAddr, opts.prefix, log)
		if err != nil {
			return nil, err
		}
		c, closeFn = r, r.Close
	} else {
		f, err := cache.OpenFile(opts.cacheFile)
		if err != nil {
			return nil, err
		}
		c = f
	}

	local := syncer.NewLocal(c)
	client := syncer.NewClient(opts.apiURL, opts.timeout, log)
	return &session{
		engine: syncer.NewEngine(client, local, log),
		local:  local,
		close:  closeFn,
	}, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
