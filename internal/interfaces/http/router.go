package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"timeclock/internal/application/punchclock/services"
	"timeclock/internal/application/punchclock/usecases"
	"timeclock/internal/infrastructure/auth"
	"timeclock/internal/infrastructure/config"
	"timeclock/internal/infrastructure/ratelimit"
	"timeclock/internal/infrastructure/repository"
	punchhandlers "timeclock/internal/interfaces/http/handlers/punchclock"
	"timeclock/internal/interfaces/http/middleware"
	"timeclock/internal/interfaces/http/routes"
	"timeclock/internal/shared/biztime"
	sharedConfig "timeclock/internal/shared/config"
	"timeclock/internal/shared/logger"
	"timeclock/internal/shared/utils"
)

// Router wires the punch clock HTTP surface together.
type Router struct {
	engine         *gin.Engine
	punchHandler   *punchhandlers.PunchClockHandler
	authMiddleware *middleware.AuthMiddleware
	globalIPLimit  gin.HandlerFunc
	db             *gorm.DB
	cfg            *config.Config
	log            logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies. The Redis
// client may be nil, in which case rate limit windows are kept in process
// memory.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	eventRepo := repository.NewAttendanceEventRepository(db)
	tokenRepo := repository.NewPunchTokenRepository(db)
	contractorRepo := repository.NewContractorProfileRepository(db)

	crypto := auth.NewPunchTokenService()
	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	verifier := services.NewVerifier(cfg.Clock.Geofence, cfg.Clock.Wifi)
	policy := usecases.PolicyFromConfig(cfg.Clock, biztime.ParseWeekday(cfg.Clock.WeekStart))
	now := biztime.NowUTC

	rl := cfg.Clock.RateLimit
	userLimiter := ratelimit.NewCompositeRateLimiter(
		newWindowLimiter(redisClient, "punch_burst", rl.Burst),
		newWindowLimiter(redisClient, "punch_sustained", rl.Sustained),
	)
	punchIPLimiter := newWindowLimiter(redisClient, "punch_ip", rl.GlobalIP)
	globalIPLimiter := newWindowLimiter(redisClient, "ip_global", rl.GlobalIP)

	issueTokenUC := usecases.NewIssueTokenUseCase(contractorRepo, tokenRepo, crypto, policy.TokenTTL, log, now)
	submitPunchUC := usecases.NewSubmitPunchUseCase(
		contractorRepo, eventRepo, tokenRepo, crypto, verifier,
		userLimiter, punchIPLimiter, policy, log, now,
	)
	currentStateUC := usecases.NewGetCurrentStateUseCase(eventRepo, policy, log, now)
	weeklyRowsUC := usecases.NewGetWeeklyRowsUseCase(eventRepo, policy, log, now)
	signatureUC := usecases.NewAttachSignatureUseCase(eventRepo, log, now)
	driftUC := usecases.NewListDriftExceptionsUseCase(eventRepo, log, now)
	listEventsUC := usecases.NewListEventsUseCase(eventRepo, log)

	punchHandler := punchhandlers.NewPunchClockHandler(
		issueTokenUC, submitPunchUC, currentStateUC, weeklyRowsUC,
		signatureUC, driftUC, listEventsUC,
		cfg.Server.TrustProxyHeader,
	)

	return &Router{
		engine:         engine,
		punchHandler:   punchHandler,
		authMiddleware: middleware.NewAuthMiddleware(jwtSvc, log),
		globalIPLimit:  middleware.GlobalIPRateLimit(globalIPLimiter, log),
		db:             db,
		cfg:            cfg,
		log:            log,
	}
}

func newWindowLimiter(redisClient *redis.Client, prefix string, w sharedConfig.RateLimitWindowConfig) ratelimit.Limiter {
	window := time.Duration(w.WindowMS) * time.Millisecond
	if redisClient != nil {
		return ratelimit.NewRedisRateLimiter(redisClient, prefix, w.MaxHits, window)
	}
	return ratelimit.NewMemoryRateLimiter(w.MaxHits, window)
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(r.globalIPLimit)

	r.engine.GET("/health", r.healthCheck)

	routes.SetupPunchRoutes(r.engine, &routes.PunchRouteConfig{
		PunchHandler:   r.punchHandler,
		AuthMiddleware: r.authMiddleware,
		MinAppVersion:  r.cfg.Server.MinAppVersion,
	})
}

func (r *Router) healthCheck(c *gin.Context) {
	dbStatus := "up"
	if sqlDB, err := r.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "down"
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"status":   "ok",
		"database": dbStatus,
		"time":     biztime.NowUTC(),
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
