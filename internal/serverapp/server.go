package serverapp

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/config"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/game"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/httpmw"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/schedule"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/server"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/store"
	appsync "github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/sync"
)

type Options struct {
	Config *config.Config
	Logger *log.Logger
}

// Server owns everything the process runs: the game, its store, the
// reset scheduler loop and the optional remote saver. Close tears all
// of it down in reverse order of construction.
type Server struct {
	Handler http.Handler
	Game    *game.Game

	st     store.Store
	saver  *appsync.Saver
	cancel context.CancelFunc
	logger *log.Logger
}

func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	cfg := opts.Config

	st, err := openStore(cfg.Data)
	if err != nil {
		return nil, err
	}

	bal := config.FromEnv(cfg.Balance)
	g, err := game.New(st, game.RealClock{}, bal)
	if err != nil {
		st.Close()
		return nil, err
	}

	srv := &Server{Game: g, st: st, logger: opts.Logger}

	if cfg.Sync.Enabled {
		srv.attachRemote(cfg.Sync)
	}

	// Catch up on boundaries crossed while the process was down (and
	// anchor cadence tracking on first run) before the ticker takes over.
	if _, err := g.ApplyDueResets(); err != nil {
		st.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv.cancel = cancel
	sched := schedule.NewScheduler(time.Now, time.Second)
	go sched.Run(ctx)
	go srv.consumeResets(ctx, sched)

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}
	server.RegisterAPIRoutes(mux, rr, &server.App{Game: g})
	server.RegisterAdminUI(mux, rr, strings.TrimPrefix(cfg.Server.Addr, ":"))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "growth-tracker",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := st.Keys(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "growth-tracker",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	srv.Handler = httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	)
	return srv, nil
}

func openStore(d config.DataConfig) (store.Store, error) {
	switch d.Backend {
	case "sqlite":
		return store.OpenSQLite(d.SQLitePath)
	case "", "file":
		return store.NewFileStore(d.Dir)
	default:
		return nil, errors.New("unknown data backend: " + d.Backend)
	}
}

// attachRemote pulls the newest snapshot from redis before any local
// writes, then arms the debounced saver so every persisted change is
// mirrored back. Sync is best-effort: an unreachable remote never
// blocks boot, local state stays authoritative, and the armed saver
// keeps retrying pushes as changes come in.
func (s *Server) attachRemote(sc config.SyncConfig) {
	client := redis.NewClient(&redis.Options{
		Addr:     sc.RedisAddr,
		Password: sc.RedisPassword,
		DB:       sc.RedisDB,
	})
	remote := appsync.NewRedisStore(client, sc.UserID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	dump, found, err := remote.Fetch(ctx)
	switch {
	case err != nil:
		s.logger.Printf("[sync] remote load failed, local state is authoritative: %v", err)
		s.Game.Notify("warning", "Cloud sync unavailable; using local data")
	case found:
		if err := s.Game.Import(dump); err != nil {
			s.logger.Printf("[sync] remote snapshot rejected, keeping local state: %v", err)
			s.Game.Notify("warning", "Cloud save rejected; using local data")
		}
	}

	quiet := time.Duration(sc.QuietSeconds) * time.Second
	s.saver = appsync.NewSaver(remote, s.Game.Dump, quiet, func(err error) {
		s.logger.Printf("[sync] push failed: %v", err)
	})
	s.saver.MarkLoaded()
	s.Game.SetOnChange(s.saver.Touch)
}

func (s *Server) consumeResets(ctx context.Context, sched *schedule.Scheduler) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-sched.Due():
			if _, err := s.Game.ApplyDueResets(); err != nil {
				s.logger.Printf("[reset] %s: %v", c, err)
			}
			sched.Ack(c)
		}
	}
}

// Close flushes any pending remote push and releases the store.
func (s *Server) Close(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	var first error
	if s.saver != nil {
		if err := s.saver.Flush(ctx); err != nil {
			first = err
		}
		s.saver.Stop()
	}
	if err := s.st.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
