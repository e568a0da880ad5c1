package pyroscope

import (
	"context"
	"strings"

	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/fx"
)

type Service struct {
	cfg      *config.Configuration
	logger   *logger.Logger
	profiler *pyroscope.Profiler
}

// Module provides fx options for Pyroscope
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewPyroscopeService),
		fx.Invoke(RegisterHooks),
	)
}

func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !svc.IsEnabled() {
				svc.logger.Info("Pyroscope profiling is disabled")
				return nil
			}

			pyroscopeConfig := pyroscope.Config{
				ApplicationName: svc.cfg.Pyroscope.ApplicationName,
				ServerAddress:   svc.cfg.Pyroscope.ServerAddress,
				ProfileTypes:    svc.profileTypes(),
				Logger:          svc,
			}
			if svc.cfg.Pyroscope.BasicAuthUser != "" {
				pyroscopeConfig.BasicAuthUser = svc.cfg.Pyroscope.BasicAuthUser
				pyroscopeConfig.BasicAuthPassword = svc.cfg.Pyroscope.BasicAuthPass
			}

			profiler, err := pyroscope.Start(pyroscopeConfig)
			if err != nil {
				svc.logger.Errorw("Failed to initialize Pyroscope", "error", err)
				return err
			}
			svc.profiler = profiler
			svc.logger.Infow("Pyroscope profiling started",
				"application_name", svc.cfg.Pyroscope.ApplicationName,
				"server_address", svc.cfg.Pyroscope.ServerAddress,
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if svc.profiler == nil {
				return nil
			}
			return svc.profiler.Stop()
		},
	})
}

// pyroscope.Logger
func (s *Service) Debugf(format string, args ...interface{}) {}

func (s *Service) Infof(format string, args ...interface{}) {
	s.logger.Infof("[pyroscope] "+format, args...)
}

func (s *Service) Errorf(format string, args ...interface{}) {
	s.logger.Errorf("[pyroscope] "+format, args...)
}

func NewPyroscopeService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

func (s *Service) IsEnabled() bool {
	return s.cfg.Pyroscope.Enabled
}

var profileTypeNames = map[string]pyroscope.ProfileType{
	"cpu":            pyroscope.ProfileCPU,
	"inuse_objects":  pyroscope.ProfileInuseObjects,
	"alloc_objects":  pyroscope.ProfileAllocObjects,
	"inuse_space":    pyroscope.ProfileInuseSpace,
	"alloc_space":    pyroscope.ProfileAllocSpace,
	"goroutines":     pyroscope.ProfileGoroutines,
	"mutex_count":    pyroscope.ProfileMutexCount,
	"mutex_duration": pyroscope.ProfileMutexDuration,
	"block_count":    pyroscope.ProfileBlockCount,
	"block_duration": pyroscope.ProfileBlockDuration,
}

func (s *Service) profileTypes() []pyroscope.ProfileType {
	if len(s.cfg.Pyroscope.ProfileTypes) == 0 {
		return []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileGoroutines,
			// the ledger serialises on per customer locks
			pyroscope.ProfileMutexDuration,
		}
	}

	var result []pyroscope.ProfileType
	for _, name := range s.cfg.Pyroscope.ProfileTypes {
		pt, ok := profileTypeNames[strings.ToLower(name)]
		if !ok {
			s.logger.Warnw("Unknown profile type", "type", name)
			continue
		}
		result = append(result, pt)
	}
	return result
}

// TagWrapper runs fn with profiling labels attached
func (s *Service) TagWrapper(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	if !s.IsEnabled() {
		fn(ctx)
		return
	}

	var pairs []string
	for key, value := range labels {
		pairs = append(pairs, key, value)
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}
