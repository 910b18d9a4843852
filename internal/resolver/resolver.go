// Package resolver builds the per-language snippet table a session serves:
// the built-in snippets, overridden by the user's snippets file, overridden
// by snippets passed inline in initializationOptions.
package resolver

import (
	"errors"
	"os"

	"github.com/snippets-ls/snippets-ls/internal/config"
	"github.com/snippets-ls/snippets-ls/internal/snippets"
	"github.com/tliron/commonlog"
)

// Resolver merges snippet sources over a fixed set of defaults.
type Resolver struct {
	defaults snippets.Table
	home     config.HomeDirFunc
	log      commonlog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHomeDir overrides how the home directory is found.
func WithHomeDir(home config.HomeDirFunc) Option {
	return func(r *Resolver) {
		r.home = home
	}
}

// WithLogger sets the logger used for configuration diagnostics.
func WithLogger(log commonlog.Logger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

// New returns a Resolver over defaults. The defaults are never modified.
func New(defaults snippets.Table, opts ...Option) *Resolver {
	r := &Resolver{
		defaults: defaults,
		home:     os.UserHomeDir,
		log:      commonlog.GetLogger("snippets-ls.resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Defaults returns a copy of the built-in table.
func (r *Resolver) Defaults() snippets.Table {
	return r.defaults.Clone()
}

// Resolve returns the snippet table for the given options. Precedence, from
// lowest to highest, is built-in, file, inline. Unusable sources are logged
// and treated as empty; Resolve never fails.
func (r *Resolver) Resolve(opts config.Options) snippets.Table {
	if !opts.Present {
		return r.defaults.Clone()
	}

	for _, w := range opts.Warnings {
		r.log.Warningf("ignoring option %s", w)
	}

	merged := snippets.Merge(r.defaults, r.fileSnippets(opts))
	return snippets.Merge(merged, opts.Snippets)
}

// fileSnippets loads the file source. A missing file is expected and only
// logged at debug level.
func (r *Resolver) fileSnippets(opts config.Options) snippets.Table {
	var path string
	switch {
	case opts.DefaultFile:
		p, ok := config.DefaultSnippetsFile(r.home)
		if !ok {
			return nil
		}
		path = p
	case opts.SnippetsFile != "":
		path = config.ExpandHome(opts.SnippetsFile, r.home)
	default:
		return nil
	}

	table, err := config.LoadFile(path)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			r.log.Debugf("no snippets file at %s", path)
		} else {
			r.log.Warningf("ignoring snippets file: %s", err)
		}
		return nil
	}

	r.log.Infof("loaded snippets for %d languages from %s", len(table), path)
	return table
}
