package usecase

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"assessment-planner/internal/assessment"
	"assessment-planner/internal/assessment/repository"
	"assessment-planner/pkg/datemath"
	pkgLog "assessment-planner/pkg/log"
	"assessment-planner/pkg/openrouter"
	"assessment-planner/pkg/studycal"
)

const (
	contextCacheSize = 256
	contextCacheTTL  = 5 * time.Minute

	recentSubjectsLimit = 5
)

type implUseCase struct {
	l         pkgLog.Logger
	llm       openrouter.IOpenRouter
	repo      repository.Repository
	scheduler studycal.Scheduler // optional, nil disables study-session booking
	dateMath  *datemath.Parser
	timezone  string

	// clock anchors relative-date resolution; injected so tests are reproducible
	clock func() time.Time

	contextCache *lru.LRU[string, assessment.UserContext]
}

// New creates a new assessment UseCase instance.
// A nil clock defaults to time.Now.
func New(
	l pkgLog.Logger,
	llm openrouter.IOpenRouter,
	repo repository.Repository,
	scheduler studycal.Scheduler,
	dateMath *datemath.Parser,
	timezone string,
	clock func() time.Time,
) *implUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &implUseCase{
		l:            l,
		llm:          llm,
		repo:         repo,
		scheduler:    scheduler,
		dateMath:     dateMath,
		timezone:     timezone,
		clock:        clock,
		contextCache: lru.NewLRU[string, assessment.UserContext](contextCacheSize, nil, contextCacheTTL),
	}
}
