package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mithrel/dragkit/internal/artifact"
	"github.com/mithrel/dragkit/internal/convert"
	"github.com/mithrel/dragkit/internal/workspace"
)

// Config is the typed view of the merged viper settings.
type Config struct {
	Workspace struct {
		Root   string
		Marker string
	}
	Bookmark struct {
		Format artifact.BookmarkFormat
	}
	Note struct {
		HTMLMode convert.HTMLMode
	}
	Snapshot struct {
		Theme artifact.Theme
	}
	HTTPAddr  string
	AuthToken string

	// AuthKeyring reads the bearer token from the system keyring when AuthToken is empty.
	AuthKeyring bool

	Output struct {
		Pretty bool
	}
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for defaults and the generated config file.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "http_addr", Default: "127.0.0.1:4873", Comment: "Listen address for `serve`"},

		{Key: "workspace.root", Default: os.TempDir(), Comment: "Parent directory of the drag workspace"},
		{Key: "workspace.marker", Default: workspace.DefaultMarker, Comment: "Workspace directory name; cleanup only deletes paths containing it"},
		{Key: "bookmark.format", Default: string(artifact.FormatWebloc), Comment: "Bookmark file flavour: webloc, url or desktop"},
		{Key: "note.html_mode", Default: string(convert.ModeStrip), Comment: "HTML handling for notes: strip or convert"},
		{Key: "snapshot.theme", Default: string(artifact.ThemeLight), Comment: "Snapshot stylesheet: light or dark"},
		{Key: "auth.token", Default: "", Comment: "Bearer token required by `serve`; empty disables auth"},
		{Key: "auth.keyring", Default: false, Comment: "Load the bearer token from the system keyring when auth.token is empty"},
		{Key: "output.pretty", Default: true, Comment: "Render Markdown with glamour when writing to a terminal"},
	}
}

// IsSecret reports whether key holds a credential that must not be printed.
func IsSecret(key string) bool {
	return key == "auth.token"
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "dragkit"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dragkit"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing file in the search paths is fine; a named file must exist and parse.
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: DRAGKIT_* (highest among these sources)
	v.SetEnvPrefix("dragkit")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(v.GetString("workspace.root")) == "" {
		v.Set("workspace.root", os.TempDir())
	}
	return nil
}

// FromViper builds a Config. It assumes CheckConfigValidity passed.
func FromViper(v *viper.Viper) Config {
	var c Config
	c.Workspace.Root = expandHome(v.GetString("workspace.root"))
	c.Workspace.Marker = strings.TrimSpace(v.GetString("workspace.marker"))
	c.Bookmark.Format, _ = artifact.ParseBookmarkFormat(v.GetString("bookmark.format"))
	c.Note.HTMLMode, _ = convert.ParseHTMLMode(v.GetString("note.html_mode"))
	c.Snapshot.Theme, _ = artifact.ParseTheme(v.GetString("snapshot.theme"))
	c.HTTPAddr = v.GetString("http_addr")
	c.AuthToken = strings.TrimSpace(v.GetString("auth.token"))
	c.AuthKeyring = v.GetBool("auth.keyring")
	c.Output.Pretty = v.GetBool("output.pretty")
	return c
}

// CheckConfigValidity reports every invalid setting at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	marker := strings.TrimSpace(v.GetString("workspace.marker"))
	switch {
	case marker == "":
		errs = append(errs, errors.New("workspace.marker is required"))
	case strings.ContainsAny(marker, `/\`) || marker == "." || marker == "..":
		errs = append(errs, fmt.Errorf("workspace.marker %q must be a single directory name", marker))
	}
	if _, err := artifact.ParseBookmarkFormat(v.GetString("bookmark.format")); err != nil {
		errs = append(errs, fmt.Errorf("bookmark.format: %w", err))
	}
	if _, err := convert.ParseHTMLMode(v.GetString("note.html_mode")); err != nil {
		errs = append(errs, fmt.Errorf("note.html_mode: %w", err))
	}
	if _, err := artifact.ParseTheme(v.GetString("snapshot.theme")); err != nil {
		errs = append(errs, fmt.Errorf("snapshot.theme: %w", err))
	}
	if strings.TrimSpace(v.GetString("http_addr")) == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}
	return errors.Join(errs...)
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "dragkit", "config.toml")
}

func expandHome(dir string) string {
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, dir[1:])
		}
	}
	return dir
}
