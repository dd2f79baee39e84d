package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"role-profile/internal/domain"
	"role-profile/internal/metrics"
	"role-profile/internal/weights"
)

const competencySliceSize = 10

var (
	// ErrScoringInternal marks failures that are not the caller's fault.
	ErrScoringInternal       = errors.New("scoring internal error")
	ErrPipelineNotConfigured = errors.New("scoring pipeline not configured")
)

// ScoringOutput is the complete profile for one answer vector.
type ScoringOutput struct {
	TablesVersion      string              `json:"tables_version"`
	Roles              []domain.Role       `json:"authentic_roles"`
	Competencies       []domain.Competency `json:"competencies"`
	TopCompetencies    []domain.Competency `json:"top_10_competencies"`
	BottomCompetencies []domain.Competency `json:"bottom_10_competencies"`
	Recommendations    []string            `json:"recommendations"`
}

// ScoringPipeline validates answers and runs them through mapping, role and
// competency ranking and recommendations. It holds no per-request state.
type ScoringPipeline struct {
	tables       *weights.Tables
	fingerprint  string
	validator    AnswerValidator
	mapper       MetaprogramMapper
	roles        RoleCalculator
	competencies CompetencyCalculator
	recommender  RecommendationEngine
	cache        ResultCache
	logger       *zap.Logger
}

// NewScoringPipeline wires every stage against the same tables. cache may
// be nil; it is also dropped when the tables cannot be fingerprinted.
func NewScoringPipeline(tables *weights.Tables, cache ResultCache, logger *zap.Logger) *ScoringPipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tables == nil {
		return &ScoringPipeline{logger: logger}
	}
	var fingerprint string
	if cache != nil {
		fp, err := tables.Fingerprint()
		if err != nil {
			logger.Warn("result cache disabled", zap.Error(err))
			cache = nil
		}
		fingerprint = fp
	}
	return &ScoringPipeline{
		tables:       tables,
		fingerprint:  fingerprint,
		validator:    NewAnswerValidator(tables.QuestionCount, tables.Scale),
		mapper:       NewMetaprogramMapper(tables),
		roles:        NewRoleCalculator(tables),
		competencies: NewCompetencyCalculator(tables),
		cache:        cache,
		logger:       logger,
	}
}

// Score is the single entry point of the pipeline. It returns either a full
// ScoringOutput, a *ValidationError, or an error wrapping ErrScoringInternal.
func (p *ScoringPipeline) Score(ctx context.Context, raw any) (ScoringOutput, error) {
	if p == nil || p.tables == nil {
		return ScoringOutput{}, ErrPipelineNotConfigured
	}

	answers, res := p.validator.Parse(raw)
	if !res.Valid() {
		return ScoringOutput{}, &ValidationError{Messages: res.Errors()}
	}

	var key string
	if p.cache != nil {
		key = CacheKey(p.tables.Version, p.fingerprint, answers)
		if out, ok := p.cache.Get(ctx, key); ok {
			return out, nil
		}
	}

	start := time.Now()
	out, err := p.compute(answers)
	metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return ScoringOutput{}, err
	}

	if p.cache != nil {
		p.cache.Set(ctx, key, out)
	}
	return out, nil
}

func (p *ScoringPipeline) compute(answers domain.AnswerVector) (ScoringOutput, error) {
	mps, err := p.mapper.Map(answers)
	if err != nil {
		return ScoringOutput{}, fmt.Errorf("map metaprograms: %w", err)
	}

	var (
		roles        []domain.Role
		competencies []domain.Competency
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		roles, err = p.roles.Calculate(mps)
		if err != nil {
			return fmt.Errorf("calculate roles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		competencies, err = p.competencies.Calculate(mps)
		if err != nil {
			return fmt.Errorf("calculate competencies: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return ScoringOutput{}, err
	}

	top := TopCompetencies(competencies, competencySliceSize)
	bottom := BottomCompetencies(competencies, competencySliceSize)
	recs := p.recommender.Generate(roles, top, bottom)

	if len(roles) > 0 {
		p.logger.Debug("profile scored",
			zap.String("tables_version", p.tables.Version),
			zap.String("top_role", roles[0].ID),
			zap.Int("top_role_percentage", roles[0].Percentage),
			zap.Int("recommendations", len(recs)),
		)
	}

	return ScoringOutput{
		TablesVersion:      p.tables.Version,
		Roles:              roles,
		Competencies:       competencies,
		TopCompetencies:    top,
		BottomCompetencies: bottom,
		Recommendations:    recs,
	}, nil
}
