package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates a missing or unreadable index.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckMissing indicates an index that does not exist.
	CheckMissing CheckResult = "missing"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	indexes IndexChecker
	names   []string
}

// New creates a Service. indexes can be nil, in which case only the database is checked.
func New(db DBPinger, indexes IndexChecker, indexNames ...string) *Service {
	return &Service{db: db, indexes: indexes, names: indexNames}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.names)+1)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["database"] = CheckOK

	status := Healthy
	if s.indexes == nil {
		return Report{Status: status, Checks: checks}
	}

	for _, name := range s.names {
		exists, err := s.indexes.IndexExists(ctx, name)
		switch {
		case err != nil:
			checks["index:"+name] = CheckError
			status = Degraded
		case !exists:
			checks["index:"+name] = CheckMissing
			status = Degraded
		default:
			checks["index:"+name] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
