package server

import (
	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/compare"
	"github.com/rgehrsitz/fmgo/internal/config"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// tracer is the API's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("fmgo/server")

// maxBodyBytes bounds request bodies; plans are small YAML documents
const maxBodyBytes = 1 << 20

// Options configures a Server
type Options struct {
	Engine calculation.EngineConfig
	Logger *zap.Logger
	Limits *config.Limits
}

// Server serves projections, rate sweeps and plan comparisons over HTTP
type Server struct {
	engineConfig calculation.EngineConfig
	parser       *config.InputParser
	compare      *compare.CompareEngine
	logger       *zap.Logger
	inst         *instruments
}

// New creates a Server. A nil logger discards output.
func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	inst, err := newInstruments()
	if err != nil {
		return nil, err
	}

	parser := config.NewInputParser()
	if opts.Limits != nil {
		parser.Limits = *opts.Limits
	}

	s := &Server{
		engineConfig: opts.Engine,
		parser:       parser,
		logger:       logger,
		inst:         inst,
	}
	s.compare = compare.NewCompareEngine(s.engine(""))
	return s, nil
}

// engine returns an engine for one request; locale overrides the configured one when valid
func (s *Server) engine(locale string) *calculation.CalculationEngine {
	cfg := s.engineConfig
	if l, err := domain.ParseLocale(locale); err == nil && locale != "" {
		cfg.Locale = l
	}
	engine := calculation.NewCalculationEngineWithConfig(cfg)
	engine.SetLogger(s.logger.Sugar())
	return engine
}
