package wire

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/mithrel/dragkit/internal/artifact"
	"github.com/mithrel/dragkit/internal/config"
	"github.com/mithrel/dragkit/internal/convert"
	"github.com/mithrel/dragkit/internal/keys"
	"github.com/mithrel/dragkit/internal/workspace"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg       config.Config
	Viper     *viper.Viper
	Log       *log.Logger
	Workspace *workspace.Workspace
	Converter *convert.Converter
	Artifacts *artifact.Materializer
	// Tokens is the system keyring when auth.keyring is set, otherwise an
	// in-memory store seeded with auth.token.
	Tokens keys.TokenStore
}

// Options tweak BuildApp for callers such as tests and --quiet.
type Options struct {
	LogOutput io.Writer
}

// BuildApp validates the loaded settings and wires dependencies.
func BuildApp(ctx context.Context, v *viper.Viper, opts Options) (*App, error) {
	if err := config.CheckConfigValidity(v); err != nil {
		return nil, err
	}
	cfg := config.FromViper(v)

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := log.New(out, "dragkit ", log.LstdFlags)

	ws := workspace.New(cfg.Workspace.Root, cfg.Workspace.Marker)
	ws.Log = logger
	conv := convert.New(cfg.Note.HTMLMode)
	mat := artifact.New(ws,
		artifact.WithConverter(conv),
		artifact.WithBookmarkFormat(cfg.Bookmark.Format),
		artifact.WithTheme(cfg.Snapshot.Theme),
		artifact.WithLogger(logger),
	)
	var tokens keys.TokenStore
	if cfg.AuthKeyring {
		tokens = &keys.KeyringStore{}
	} else {
		mem := &keys.MemoryStore{}
		if cfg.AuthToken != "" {
			_ = mem.Put(keys.AuthTokenID, cfg.AuthToken)
		}
		tokens = mem
	}
	return &App{
		Cfg:       cfg,
		Viper:     v,
		Log:       logger,
		Workspace: ws,
		Converter: conv,
		Artifacts: mat,
		Tokens:    tokens,
	}, nil
}
