package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/httplog/v3"

	"github.com/kantorkita/hrms-backend-go/internal/config"
	appHTTP "github.com/kantorkita/hrms-backend-go/internal/handler/http"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/database"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/jwt"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/mail"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/oauth"
	"github.com/kantorkita/hrms-backend-go/internal/repository/postgresql"
	approvalService "github.com/kantorkita/hrms-backend-go/internal/service/approval"
	attendanceService "github.com/kantorkita/hrms-backend-go/internal/service/attendance"
	authService "github.com/kantorkita/hrms-backend-go/internal/service/auth"
	dashboardService "github.com/kantorkita/hrms-backend-go/internal/service/dashboard"
	divisionService "github.com/kantorkita/hrms-backend-go/internal/service/division"
	exportService "github.com/kantorkita/hrms-backend-go/internal/service/export"
	leaveService "github.com/kantorkita/hrms-backend-go/internal/service/leave"
	overtimeService "github.com/kantorkita/hrms-backend-go/internal/service/overtime"
	userService "github.com/kantorkita/hrms-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	divisionRepo := postgresql.NewDivisionRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	stepRepo := postgresql.NewApprovalStepRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	mailService := mail.NewService(cfg)

	authSvc := authService.NewService(userRepo, refreshTokenRepo, jwtService, googleService)
	userSvc := userService.NewService(userRepo)
	divisionSvc := divisionService.NewService(db, divisionRepo, userRepo)
	attendanceSvc := attendanceService.NewService(db, attendanceRepo)
	approvalSvc := approvalService.NewService(cfg, userRepo, divisionRepo, stepRepo)
	leaveSvc := leaveService.NewService(db, leaveRepo, stepRepo, userRepo, approvalSvc, mailService, logger)
	overtimeSvc := overtimeService.NewService(db, overtimeRepo, stepRepo, userRepo, approvalSvc, mailService, logger)
	dashboardSvc := dashboardService.NewService(dashboardRepo)
	exportSvc := exportService.NewService(attendanceRepo)

	router := appHTTP.NewRouter(jwtService, logger, cfg.App.FrontendURL, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc),
		Profile:    appHTTP.NewProfileHandler(userSvc),
		Division:   appHTTP.NewDivisionHandler(divisionSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc, approvalSvc),
		Export:     appHTTP.NewExportHandler(exportSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
