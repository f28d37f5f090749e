package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/crib-match-backend/internal/archive"
	"github.com/shinyyama/crib-match-backend/internal/handler"
	appmw "github.com/shinyyama/crib-match-backend/internal/middleware"
	"github.com/shinyyama/crib-match-backend/internal/reqctx"
	"github.com/shinyyama/crib-match-backend/internal/repository"
	"github.com/shinyyama/crib-match-backend/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	// Identity defaults to trusting the X-User-ID header.
	Identity     appmw.Identity
	Archiver     archive.Archiver
	Logger       *zap.Logger
	BatchSize    int
	RequireReply bool
	GitSHA       string
	BuildTime    string
}

type Server struct {
	e         *echo.Echo
	log       *zap.Logger
	prefRepo  repository.PreferenceRepository
	matchRepo repository.MatchRepository
	tokenRepo repository.TokenRepository
	chatRepo  repository.ChatRepository
	matchSvc  service.MatchService
}

// New builds the HTTP server. db may be nil and injected later with SetDB.
func New(db *gorm.DB, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	identity := opts.Identity
	if identity == nil {
		identity = appmw.HeaderIdentity{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, rid string) {
			req := c.Request()
			c.SetRequest(req.WithContext(reqctx.WithRID(req.Context(), rid)))
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("rid", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type", "x-user-id"},
	}))

	prefRepo := repository.NewPreferenceRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	chatRepo := repository.NewChatRepository(db)

	matchSvc := service.NewMatchService(prefRepo, matchRepo, opts.Archiver, opts.BatchSize, log)
	tokenSvc := service.NewTokenService(tokenRepo, chatRepo, opts.RequireReply, log)
	chatSvc := service.NewChatService(chatRepo, prefRepo)
	prefSvc := service.NewPreferenceService(prefRepo)

	matchHandler := handler.NewMatchHandler(matchSvc)
	tokenHandler := handler.NewTokenHandler(tokenSvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	prefHandler := handler.NewPreferenceHandler(prefSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    opts.GitSHA,
			"build_time": opts.BuildTime,
		})
	})

	fn := e.Group("/functions/v1")
	fn.POST("/match-algorithm", matchHandler.Run)
	fn.GET("/get-matches-raw", matchHandler.Raw)
	fn.POST("/chat-tokens", tokenHandler.Dispatch, identity.OptionalAuth)

	api := e.Group("/api", identity.RequireAuth)
	api.PUT("/me/renter-preferences", prefHandler.PutRenter)
	api.PUT("/me/landlord-preferences", prefHandler.PutLandlord)
	api.GET("/me/preferences", prefHandler.GetMine)
	api.GET("/me/matches", matchHandler.Mine)
	api.GET("/chats", chatHandler.List)
	api.POST("/chats", chatHandler.Open)
	api.GET("/chats/:id/messages", chatHandler.ListMessages)
	api.POST("/chats/:id/messages", chatHandler.PostMessage)
	api.GET("/users/:uid/unlocked-features", tokenHandler.ListUnlocked)

	return &Server{
		e:         e,
		log:       log,
		prefRepo:  prefRepo,
		matchRepo: matchRepo,
		tokenRepo: tokenRepo,
		chatRepo:  chatRepo,
		matchSvc:  matchSvc,
	}
}

func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Start(addr string) error {
	s.log.Info("starting server", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) SetDB(db *gorm.DB) {
	s.prefRepo.SetDB(db)
	s.matchRepo.SetDB(db)
	s.tokenRepo.SetDB(db)
	s.chatRepo.SetDB(db)
}

// RunMatching runs the same regeneration as POST /functions/v1/match-algorithm.
func (s *Server) RunMatching(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()
	run, err := s.matchSvc.Run(ctx)
	if err != nil {
		return 0, err
	}
	return len(run.Matches), nil
}
