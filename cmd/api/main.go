package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shancon-hr/attendance-backend-go/internal/config"
	appHTTP "github.com/shancon-hr/attendance-backend-go/internal/handler/http"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/cron"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/database"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/email"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/oauth"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/sse"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/storage"
	"github.com/shancon-hr/attendance-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/shancon-hr/attendance-backend-go/internal/service/auth"
	deviceService "github.com/shancon-hr/attendance-backend-go/internal/service/device"
	employeeService "github.com/shancon-hr/attendance-backend-go/internal/service/employee"
	"github.com/shancon-hr/attendance-backend-go/internal/service/file"
	punchService "github.com/shancon-hr/attendance-backend-go/internal/service/punch"
	reportService "github.com/shancon-hr/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	deviceRepo := postgresql.NewDeviceRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	hub := sse.NewHub()
	clk := clock.NewRealClock()

	authService := serviceAuth.NewAuthService(db, userRepo, jwtService, jwtRepo, googleService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, emailService, cfg, clk)
	deviceSvc := deviceService.NewDeviceService(deviceRepo)
	punchSvc := punchService.NewPunchService(punchRepo, employeeRepo, deviceRepo, fileService, hub, clk)
	reportSvc := reportService.NewReportService(punchRepo, clk)

	scheduler := cron.NewScheduler()
	maintenance := cron.NewMaintenanceJobs(punchRepo, deviceRepo, hub, clk)
	maintenance.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	handlers := appHTTP.Handlers{
		Auth:     appHTTP.NewAuthHandler(jwtService, authService, cfg.App.FrontendURL),
		Employee: appHTTP.NewEmployeeHandler(employeeSvc),
		Device:   appHTTP.NewDeviceHandler(deviceSvc),
		Punch:    appHTTP.NewPunchHandler(punchSvc),
		Report:   appHTTP.NewReportHandler(reportSvc),
		Events:   appHTTP.NewEventsHandler(jwtService, hub),
	}

	router := appHTTP.NewRouter(jwtService, handlers, cfg.App.FrontendURL, cfg.App.Env, cfg.Storage.BasePath)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Open SSE streams end when their request contexts are cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
