package main

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/jimdaga/morning-press/internal/config"
	"github.com/jimdaga/morning-press/internal/database"
	"github.com/jimdaga/morning-press/internal/health"
	"github.com/jimdaga/morning-press/internal/logging"
	"github.com/jimdaga/morning-press/internal/newsletter"
	"github.com/jimdaga/morning-press/internal/subscribers"
	"github.com/jimdaga/morning-press/internal/viewer"
	"github.com/jimdaga/morning-press/internal/web"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Init(cfg.DatabasePath)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if cfg.Env == "development" {
		if err := database.SeedDevData(db); err != nil {
			logger.Warn("Failed to seed dev data", "error", err)
		}
	}

	subStore := subscribers.NewStore(db)
	userStore := viewer.NewStore(db, logger)
	archive := newsletter.NewArchive(cfg.OutputDir)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.SetHTMLTemplate(web.Templates())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("morningpress", store))

	r.GET("/health", gin.WrapF(health.Handler(db)))

	r.GET("/", subscribers.HomePage(subStore, cfg))
	r.POST("/subscribe", subscribers.Subscribe(subStore, cfg))
	r.GET("/success", subscribers.SuccessPage(cfg))
	r.GET("/unsubscribe/:token", subscribers.Unsubscribe(subStore, cfg))
	r.GET("/admin/subscribers", subscribers.AdminList(subStore, cfg))
	r.GET("/admin/export", subscribers.ExportCSV(subStore))
	r.GET("/admin/users", viewer.AdminUsers(userStore, cfg))

	r.GET("/viewer", viewer.LandingPage(cfg))
	r.POST("/register", viewer.Register(userStore))
	r.POST("/login", viewer.Login(userStore))
	r.GET("/logout", viewer.Logout())

	authed := r.Group("/newsletters", viewer.RequireAuth())
	authed.GET("", viewer.ArchiveList(archive, cfg))
	authed.GET("/:filename", viewer.ReadEdition(archive, userStore))

	logger.Info("Starting server", "port", cfg.Port, "env", cfg.Env)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
