package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mfl-hr/attendance-dashboard-go/internal/config"
	appHTTP "github.com/mfl-hr/attendance-dashboard-go/internal/handler/http"
	"github.com/mfl-hr/attendance-dashboard-go/internal/pkg/cron"
	"github.com/mfl-hr/attendance-dashboard-go/internal/pkg/database"
	"github.com/mfl-hr/attendance-dashboard-go/internal/pkg/token"
	"github.com/mfl-hr/attendance-dashboard-go/internal/repository/postgresql"
	attendancesyncService "github.com/mfl-hr/attendance-dashboard-go/internal/service/attendancesync"
	"github.com/mfl-hr/attendance-dashboard-go/internal/service/export"
	holidayService "github.com/mfl-hr/attendance-dashboard-go/internal/service/holiday"
	reportService "github.com/mfl-hr/attendance-dashboard-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	tokenSvc := token.NewService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	renderer := export.NewHTTPRenderer(cfg.Render.ServiceURL, cfg.Render.Timeout)
	reportSvc := reportService.NewReportService(employeeRepo, attendanceRepo, holidayRepo)
	holidaySvc := holidayService.NewHolidayService(db, holidayRepo, reportSvc)

	// The iClock sync job only runs when a source device database is
	// configured. Deployments without a device link still serve reports
	// from whatever attendance rows are already present.
	scheduler := cron.NewScheduler()
	if cfg.Sync.SourceDSN != "" {
		sourceDB, err := database.NewPostgreSQLDB(cfg.Sync.SourceDSN)
		if err != nil {
			fmt.Println("Error connecting to sync source database:", err)
			return
		}
		defer sourceDB.Close()

		syncSvc := attendancesyncService.NewService(attendanceRepo, postgresql.NewIClockSource(sourceDB))
		scheduler.AddJob("attendance-sync", cfg.Sync.Interval, func(ctx context.Context) error {
			_, err := syncSvc.Sync(ctx)
			return err
		})
		scheduler.Start()
		defer scheduler.Stop()
	}

	reportHandler := appHTTP.NewReportHandler(employeeRepo, reportSvc, renderer)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)

	router := appHTTP.NewRouter(cfg.App.Env, tokenSvc, reportHandler, holidayHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
