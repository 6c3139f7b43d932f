package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/sekolahku/attendance-backend-go/internal/config"
	appHTTP "github.com/sekolahku/attendance-backend-go/internal/handler/http"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/clock"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/database"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/jwt"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/storage"
	"github.com/sekolahku/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/sekolahku/attendance-backend-go/internal/service/attendance"
	authService "github.com/sekolahku/attendance-backend-go/internal/service/auth"
	"github.com/sekolahku/attendance-backend-go/internal/service/file"
	reportService "github.com/sekolahku/attendance-backend-go/internal/service/report"
	settingsService "github.com/sekolahku/attendance-backend-go/internal/service/settings"
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

	userRepo := postgresql.NewUserRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileService := file.NewFileService(fileStorage)

	authSvc := authService.NewAuthService(db, userRepo, JWTService, refreshTokenRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		userRepo,
		settingsRepo,
		fileService,
		clock.System{},
	)
	reportSvc := reportService.NewReportService(attendanceSvc)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		settingsHandler,
		attendanceHandler,
		cfg.Storage.BasePath,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
