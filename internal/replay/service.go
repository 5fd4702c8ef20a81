package replay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/slpstats/replayd/internal/queryengine"
)

// Config tunes the service's interaction with the query engine.
type Config struct {
	Database       string
	OutputLocation string
	PollInterval   time.Duration
	QueryTimeout   time.Duration
}

// Service reconstructs replay snapshots from the query engine's sources.
type Service struct {
	engine queryengine.Engine
	cfg    Config
	log    *logrus.Logger
}

// NewService creates a reconstruction service around the given engine.
func NewService(engine queryengine.Engine, cfg Config, log *logrus.Logger) *Service {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 2 * time.Minute
	}
	return &Service{engine: engine, cfg: cfg, log: log}
}

// Reconstruct fetches the five data sources concurrently and assembles the
// snapshot for the inclusive frame range. The first fetch failure cancels
// the remaining fetches.
func (s *Service) Reconstruct(ctx context.Context, matchID string, frameStart, frameEnd int) (*Snapshot, error) {
	started := time.Now()

	var src SourceData
	g, gctx := errgroup.WithContext(ctx)

	fetch := func(dst **queryengine.Result, sql string) func() error {
		return func() error {
			res, err := queryengine.RunToCompletion(gctx, s.engine, queryengine.Query{
				SQL:            sql,
				Database:       s.cfg.Database,
				OutputLocation: s.cfg.OutputLocation,
			}, s.cfg.PollInterval, s.cfg.QueryTimeout)
			if err != nil {
				return err
			}
			*dst = res
			return nil
		}
	}

	g.Go(fetch(&src.MatchSettings, matchSettingsSQL(matchID)))
	g.Go(fetch(&src.PlayerSettings, playerSettingsSQL(matchID)))
	g.Go(fetch(&src.Frames, framesSQL(matchID, frameStart, frameEnd)))
	g.Go(fetch(&src.Items, itemsSQL(matchID, frameStart, frameEnd)))
	g.Go(fetch(&src.PlatformEvents, platformEventsSQL(matchID, frameStart, frameEnd)))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot, err := Assemble(src)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"matchId":    matchID,
		"frameStart": frameStart,
		"frameEnd":   frameEnd,
		"frames":     len(snapshot.Frames),
		"elapsed":    time.Since(started).Round(time.Millisecond),
	}).Info("reconstructed replay snapshot")

	return snapshot, nil
}
