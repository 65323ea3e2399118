package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/silverstar-dev/silverstar/internal/api"
	"github.com/silverstar-dev/silverstar/internal/config"
	"github.com/silverstar-dev/silverstar/internal/logger"
	"github.com/silverstar-dev/silverstar/internal/session"
	"github.com/silverstar-dev/silverstar/internal/tokenstore"
)

// options collects the injectable dependencies of a command run. Production
// runs use defaults built from config; tests swap in fakes.
type options struct {
	client *api.Client
	tokens tokenstore.Store
	out    io.Writer
}

// Option overrides one dependency of a command run
type Option func(*options)

// WithClient injects a pre-built API client
func WithClient(c *api.Client) Option {
	return func(o *options) { o.client = c }
}

// WithTokenStore injects a token store
func WithTokenStore(s tokenstore.Store) Option {
	return func(o *options) { o.tokens = s }
}

// WithOutput redirects command output
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// buildOptions applies overrides and fills the gaps with production defaults.
func buildOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.out == nil {
		o.out = os.Stdout
	}
	if o.tokens == nil {
		o.tokens = tokenstore.NewKeyring()
	}
	if o.client == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		o.client = api.New(cfg.API.BaseURL, o.tokens, logger.GetLogger())
	}

	return o, nil
}

// requireSession is the command-line route guard: it resolves the stored
// session against the server and refuses to proceed while anonymous. The
// decision is only made after resolution completes.
func requireSession(o *options) (*session.Session, error) {
	sess := session.New(o.client, o.tokens, logger.GetLogger())
	if err := sess.Resolve(); err != nil {
		return nil, err
	}
	if sess.State() != session.Authenticated {
		return nil, fmt.Errorf("not logged in. Run 'silverstar login' first")
	}
	return sess, nil
}
