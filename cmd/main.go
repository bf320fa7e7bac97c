package main

import (
	"log"
	"timesheet-service/internal/auth"
	"timesheet-service/internal/config"
	"timesheet-service/internal/handlers"
	"timesheet-service/internal/metrics"
	"timesheet-service/internal/models"
	"timesheet-service/internal/repository"
	"timesheet-service/internal/services"
	"timesheet-service/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	cfg := InitConfig()
	db := ConnectDatabase(cfg)
	MigrateDatabase(db)
	invalidator := InitInvalidator(cfg)

	entryRepo := repository.NewEntryRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	userRepo := repository.NewUserRepository(db)

	m := metrics.New()
	timesheetService := services.NewTimesheetService(entryRepo, invalidator, m)
	reportService := services.NewReportService(entryRepo, projectRepo, assignmentRepo, holidayRepo)
	adminService := services.NewAdminService(projectRepo, holidayRepo, assignmentRepo, userRepo)

	app := fiber.New()
	app.Use(auth.Middleware(cfg.JWTSecret))

	// Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	th := handlers.NewTimesheetHandler(timesheetService)
	rh := handlers.NewReportHandler(reportService)
	ah := handlers.NewAdminHandler(adminService)

	api := app.Group("/api/timesheet")
	api.Get("/entries", th.ListEntries)
	api.Post("/entries", th.LogTime)
	api.Post("/entries/recurring", th.LogRecurringTime)
	api.Put("/entries/:id", th.UpdateEntry)
	api.Delete("/entries/:id", th.DeleteEntry)

	api.Get("/projects", rh.ListProjects)
	api.Get("/reports/entries", rh.TeamEntries)
	api.Get("/reports/workable-days", rh.WorkableDays)

	admin := api.Group("/admin", auth.RequireRole(models.RoleAdmin))
	admin.Get("/projects", ah.ListProjects)
	admin.Post("/projects", ah.CreateProject)
	admin.Put("/projects/:id", ah.UpdateProject)
	admin.Delete("/projects/:id", ah.DeleteProject)
	admin.Get("/holidays", ah.ListHolidays)
	admin.Post("/holidays", ah.CreateHoliday)
	admin.Delete("/holidays/:id", ah.DeleteHoliday)
	admin.Get("/assignments", ah.ListAssignments)
	admin.Post("/assignments", ah.AssignProject)
	admin.Delete("/assignments/:userId/:projectId", ah.UnassignProject)
	admin.Get("/users", ah.ListUsers)

	api.Get("/swagger/*", swagger.HandlerDefault)

	// Add Health check endpoint
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	log.Printf("Server listening on port %s", cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectAssignment{},
		&models.TimesheetEntry{},
		&models.Holiday{},
	)
	if err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
}

// InitInvalidator connects to Redis for calendar-view invalidation. When
// Redis is unavailable the service runs without it.
func InitInvalidator(cfg *config.Config) services.Invalidator {
	if cfg.RedisHost == "" {
		log.Println("Redis not configured, calendar invalidation disabled")
		return services.NoopInvalidator{}
	}
	client, err := storage.NewRedisClient(cfg.RedisHost, cfg.RedisPort)
	if err != nil {
		log.Printf("Warning: %v. Continuing without calendar invalidation.", err)
		return services.NoopInvalidator{}
	}
	return services.NewRedisInvalidator(client)
}
