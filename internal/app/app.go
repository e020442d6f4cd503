package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/opsview/internal/config"
	"github.com/five82/opsview/internal/listing"
	"github.com/five82/opsview/internal/locale"
	"github.com/five82/opsview/internal/logging"
	"github.com/five82/opsview/internal/operations"
	"github.com/five82/opsview/internal/prefs"
	"github.com/five82/opsview/internal/status"
	"github.com/five82/opsview/internal/ui"
)

// Options configure the opsview application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/opsview/prefs.toml
	APIURL     string // overrides api_url from the config file
	Verbose    bool
}

// session holds everything Run wires together before the UI starts.
type session struct {
	cfg       config.Config
	prefs     prefs.Prefs
	prefsPath string
	locale    *locale.Locale
	client    *operations.Client
	ctrl      *listing.Controller
	log       zerolog.Logger
	closeLog  func() error
}

// Run boots the opsview TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	res, err := ui.Run(ui.Options{
		Context:    ctx,
		Controller: s.ctrl,
		Locale:     s.locale,
		APIURL:     s.client.BaseURL(),
		ThemeName:  s.prefs.Theme,
		PrefsPath:  s.prefsPath,
		Search:     s.prefs.LastSearch,
	})
	s.finish(res)
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func newSession(opts Options) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if override := strings.TrimSpace(opts.APIURL); override != "" {
		cfg.APIURL = override
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	// Logging failures are not fatal; Setup falls back to discarding output.
	closeLog, _ := logging.Setup(cfg.LogFile, opts.Verbose)
	log := logging.For("app")

	loc, err := locale.FromConfig(cfg)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init locale: %w", err)
	}

	client, err := operations.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init operations client: %w", err)
	}

	mapper := status.NewMapper(cfg.Statuses)
	ctrl := listing.New(client, mapper)

	log.Info().
		Str("api", client.BaseURL()).
		Str("locale", loc.Tag()).
		Str("currency", loc.Currency()).
		Int("statuses", len(mapper.Codes())).
		Msg("session started")

	return &session{
		cfg:       cfg,
		prefs:     userPrefs,
		prefsPath: prefsPath,
		locale:    loc,
		client:    client,
		ctrl:      ctrl,
		log:       log,
		closeLog:  closeLog,
	}, nil
}

// finish disposes the controller and persists the UI's final preferences.
func (s *session) finish(res ui.Result) {
	s.ctrl.Dispose()
	s.ctrl.Wait()

	next := s.prefs
	if res.Theme != "" {
		next.Theme = res.Theme
	}
	next.LastSearch = res.LastSearch
	if err := prefs.Save(s.prefsPath, next); err != nil {
		s.log.Warn().Err(err).Str("path", s.prefsPath).Msg("save prefs failed")
	}
	s.prefs = next
}

func (s *session) close() {
	s.log.Info().Msg("session closed")
	if s.closeLog != nil {
		_ = s.closeLog()
	}
}
