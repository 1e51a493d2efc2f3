package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates reads still work, slower or for fewer collections.
	Degraded Status = "degraded"
	// Unhealthy indicates the search engine is unreachable and no read can be served.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckMissing indicates an absent search index.
	CheckMissing CheckResult = "missing"
)

// Check names.
const (
	CheckCache  = "cache"
	CheckSearch = "search"
	indexPrefix = "index:"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	cache       Pinger
	search      Pinger
	indexes     IndexChecker
	collections []string
}

// New creates a Service checking the index of every listed collection.
func New(cache, search Pinger, indexes IndexChecker, collections []string) *Service {
	return &Service{cache: cache, search: search, indexes: indexes, collections: collections}
}

// Check runs health checks against all components.
// A dead cache only slows reads down, so it degrades; a dead search engine is fatal.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.collections)+2)

	checks[CheckCache] = ping(ctx, s.cache)
	checks[CheckSearch] = ping(ctx, s.search)

	if checks[CheckSearch] == CheckError {
		return Report{Status: Unhealthy, Checks: checks}
	}

	for _, c := range s.collections {
		ok, err := s.indexes.IndexExists(ctx, c)
		switch {
		case err != nil:
			checks[indexPrefix+c] = CheckError
		case !ok:
			checks[indexPrefix+c] = CheckMissing
		default:
			checks[indexPrefix+c] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v != CheckOK {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func ping(ctx context.Context, p Pinger) CheckResult {
	if err := p.Ping(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
