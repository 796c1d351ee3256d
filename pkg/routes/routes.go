package pkg

import (
	"context"
	"errors"
	"net/http"

	"FacultyManager/internal/auth"
	"FacultyManager/internal/bootstrap"
	"FacultyManager/internal/config"
	"FacultyManager/internal/faculty"
	"FacultyManager/internal/notification"
	"FacultyManager/internal/session"
	"FacultyManager/internal/views"
	"FacultyManager/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var EchoModules = fx.Module("echo",
	fx.Provide(bootstrap.NewLogger),
	fx.Provide(config.NewServerConfig),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(config.NewSequencer),
	fx.Provide(config.NewMailConfig),
	fx.Provide(config.NewEmailService),
	fx.Provide(config.NewSessionConfig),
	fx.Provide(config.NewNotificationConfig),
	fx.Provide(session.NewManager),
	fx.Provide(views.NewRenderer),
	fx.Provide(middleware.NewAuthGate),
	fx.Provide(NewEchoServer),

	fx.Provide(auth.NewUserRepository),
	fx.Provide(func(r *auth.UserRepository) auth.UserStore { return r }),
	fx.Provide(func(r *auth.UserRepository) notification.Recipients { return r }),
	fx.Provide(auth.NewUserService),
	fx.Provide(auth.NewAuthHandler),

	fx.Provide(notification.NewNotificationRepository),
	fx.Provide(func(r *notification.NotificationRepository) notification.RecordStore { return r }),
	fx.Provide(notification.NewNotificationService),
	fx.Provide(func(s *notification.NotificationService) faculty.Notifier { return s }),
	fx.Provide(notification.NewNotificationHandler),

	fx.Provide(faculty.NewFacultyRepository),
	fx.Provide(func(r *faculty.FacultyRepository) faculty.Store { return r }),
	fx.Provide(faculty.NewFacultyService),
	fx.Provide(faculty.NewFacultyHandler),

	fx.Invoke(config.EnsureIndexes),
	fx.Invoke(RegisterRoutes))

func NewEchoServer(lc fx.Lifecycle, cfg *config.ServerConfig, renderer *views.Renderer, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	middleware.SetupMiddleware(e, log)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Server running", zap.String("addr", cfg.Addr))
			go func() {
				if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start the server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

type RouteHandlers struct {
	fx.In

	Sessions      *session.Manager
	Gate          *middleware.AuthGate
	Auth          *auth.AuthHandler
	Faculty       *faculty.FacultyHandler
	Notifications *notification.NotificationHandler
}

func RegisterRoutes(e *echo.Echo, h RouteHandlers) {
	e.Use(middleware.SessionMiddleware(h.Sessions))
	e.Use(h.Gate.Middleware)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	login := middleware.LoginRateLimiter()
	e.GET("/login", h.Auth.ShowLogin)
	e.POST("/login", h.Auth.Login, login)
	e.GET("/signup", h.Auth.ShowSignup)
	e.POST("/signup", h.Auth.Signup)
	e.GET("/logout", h.Auth.Logout)
	e.GET("/settings", h.Auth.ShowSettings)
	e.POST("/settings", h.Auth.UpdateSettings)

	e.GET("/", h.Faculty.Home)
	e.GET("/add", h.Faculty.ShowAdd)
	e.POST("/add", h.Faculty.Add)
	e.GET("/update/:id", h.Faculty.ShowUpdate)
	e.POST("/update/:id", h.Faculty.Update)
	e.GET("/delete/:id", h.Faculty.Delete)
	e.POST("/delete/:id", h.Faculty.Delete)
	e.GET("/department/:department", h.Faculty.Department)
	e.GET("/export.pdf", h.Faculty.ExportPDF)

	e.GET("/notifications", h.Notifications.ListNotifications)
}
