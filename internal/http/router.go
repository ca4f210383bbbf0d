package http

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/monisha2608/HRMBackend/internal/http/handlers"
	"github.com/monisha2608/HRMBackend/internal/http/metrics"
	httpmw "github.com/monisha2608/HRMBackend/internal/http/middleware"
)

type RouterDependencies struct {
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	OnboardingHandler  *handlers.OnboardingHandler
	SuccessionHandler  *handlers.SuccessionHandler
	ReportHandler      *handlers.ReportHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	RateLimiter        httpmw.Limiter
	Metrics            *metrics.Collector
	Logger             *zap.Logger
	RequestTimeout     time.Duration
	UploadMaxBytes     int64
}

type Router struct {
	deps RouterDependencies
}

const (
	maxBodyBytes = 1 << 20

	applyLimit  = 5
	applyWindow = time.Minute
)

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// The multipart application form carries the resume, so it gets a wider
	// body cap than the JSON routes.
	bodyLimit := int64(maxBodyBytes)
	if req.Method == http.MethodPost && req.URL.Path == "/api/applications" {
		bodyLimit = r.deps.UploadMaxBytes + maxBodyBytes
	}
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging(r.deps.Logger), httpmw.BodyLimit(bodyLimit), httpmw.Recover(r.deps.Logger), httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && path == "/api/jobs":
			r.deps.JobHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/jobs/") && strings.Count(path, "/") == 3:
			r.deps.JobHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/applications":
			limited := httpmw.RateLimit(r.deps.RateLimiter, func(req *http.Request) string {
				return "apply:" + httpmw.ClientIP(req)
			}, applyLimit, applyWindow)
			limited(r.deps.AuthMiddleware.OptionalAuthenticate(http.HandlerFunc(r.deps.ApplicationHandler.Submit))).ServeHTTP(w, req)
			return
		}

		if strings.HasPrefix(path, "/api/") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/api/applications/mine":
		httpmw.RequireRole(httpmw.RoleCandidate)(http.HandlerFunc(r.deps.ApplicationHandler.Mine)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/onboarding/mine":
		httpmw.RequireRole(httpmw.RoleCandidate)(http.HandlerFunc(r.deps.OnboardingHandler.Mine)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/jobs":
		r.hr(r.deps.JobHandler.Create).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/jobs/search":
		r.hr(r.deps.JobHandler.Search).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/jobs/"):
		r.hr(r.deps.JobHandler.Update).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/jobs/"):
		r.hr(r.deps.JobHandler.Delete).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/jobs/") && strings.HasSuffix(path, "/applications"):
		r.hr(r.deps.ApplicationHandler.ListByJob).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/applications/") && strings.HasSuffix(path, "/status"):
		r.hr(r.deps.ApplicationHandler.UpdateStatus).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/applications/") && strings.HasSuffix(path, "/notes"):
		r.hr(r.deps.ApplicationHandler.AddNote).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/applications/") && strings.HasSuffix(path, "/notes"):
		r.hr(r.deps.ApplicationHandler.Notes).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/applications/") && strings.HasSuffix(path, "/history"):
		r.hr(r.deps.ApplicationHandler.History).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/applications/") && strings.Count(path, "/") == 3:
		r.hr(r.deps.ApplicationHandler.Get).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/onboarding/plans":
		r.hr(r.deps.OnboardingHandler.ListPlans).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/onboarding/plans":
		r.hr(r.deps.OnboardingHandler.CreatePlan).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/onboarding/plans/") && strings.HasSuffix(path, "/tasks"):
		r.hr(r.deps.OnboardingHandler.AddTask).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/onboarding/plans/"):
		r.hr(r.deps.OnboardingHandler.GetPlan).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/onboarding/plans/"):
		r.hr(r.deps.OnboardingHandler.DeletePlan).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/api/onboarding/tasks/"):
		r.hr(r.deps.OnboardingHandler.UpdateTask).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/onboarding/tasks/"):
		r.hr(r.deps.OnboardingHandler.DeleteTask).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/succession":
		r.hr(r.deps.SuccessionHandler.List).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/succession":
		r.hr(r.deps.SuccessionHandler.Save).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/reports/summary":
		r.hr(r.deps.ReportHandler.Summary).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/reports/applications/export":
		r.hr(r.deps.ReportHandler.Export).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) hr(h http.HandlerFunc) http.Handler {
	return httpmw.RequireRole(httpmw.RoleHR)(h)
}
