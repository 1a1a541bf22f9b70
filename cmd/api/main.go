package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/zenithhr/payroll-engine-go/internal/config"
	"github.com/zenithhr/payroll-engine-go/internal/domain/rate"
	"github.com/zenithhr/payroll-engine-go/internal/domain/salaryprofile"
	appHTTP "github.com/zenithhr/payroll-engine-go/internal/handler/http"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/database"
	"github.com/zenithhr/payroll-engine-go/internal/repository/postgresql"
	payrollService "github.com/zenithhr/payroll-engine-go/internal/service/payroll"
	rateService "github.com/zenithhr/payroll-engine-go/internal/service/rate"
	salaryProfileService "github.com/zenithhr/payroll-engine-go/internal/service/salaryprofile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "payroll-engine"),
		slog.String("env", cfg.App.Env),
	)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	rateRepo := postgresql.NewRateRepository(db)
	salaryProfileRepo := postgresql.NewSalaryProfileRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	rateResolver := rate.NewResolver(rateRepo, logger)
	profileResolver := salaryprofile.NewResolver(salaryProfileRepo, logger)

	rateSvc := rateService.NewRateService(rateRepo)
	profileSvc := salaryProfileService.NewSalaryProfileService(salaryProfileRepo, employeeRepo)
	payslipSvc := payrollService.NewPayslipService(
		payslipRepo,
		employeeRepo,
		attendanceRepo,
		profileResolver,
		rateResolver,
		logger,
	)

	payslipHandler := appHTTP.NewPayslipHandler(payslipSvc)
	rateHandler := appHTTP.NewRateHandler(rateSvc)
	profileHandler := appHTTP.NewSalaryProfileHandler(profileSvc)

	router := appHTTP.NewRouter(payslipHandler, rateHandler, profileHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
