package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/spartan/planner/internal/adapters/docstore"
	"github.com/spartan/planner/internal/adapters/repository"
	"github.com/spartan/planner/internal/application/services"
	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/infrastructure/config"
	"github.com/spartan/planner/internal/infrastructure/database"
	"github.com/spartan/planner/internal/infrastructure/logger"
	"github.com/spartan/planner/internal/infrastructure/server"
	"github.com/spartan/planner/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the planner API server",
		Long:  "Start the planner API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewSeedCommand creates the seed command. It provisions the demo login
// account and a small set of starter documents so a fresh install renders a
// populated dashboard.
func NewSeedCommand() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the demo account and starter data",
		Run: func(cmd *cobra.Command, args []string) {
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				log.Fatal("Password is required")
			}
			runSeed(password)
		},
	}

	seedCmd.Flags().String("password", "", "Demo account password (required)")
	return seedCmd
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	db, err := database.New(cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	srv, err := server.New(cfg, db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting planner API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Error("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Graceful shutdown failed", "error", err)
	}
}

func runMigration(direction string) {
	m := newMigrator()

	var err error
	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", err)
	}

	if err == migrate.ErrNoChange {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
}

func showMigrationVersion() {
	m := newMigrator()

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

func newMigrator() *migrate.Migrate {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}
	return m
}

func runSeed(password string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hash, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := repository.NewUserRepository(db, appLogger)
	if err := users.Create(ctx, &entities.User{
		ID:           cfg.Session.UserID,
		Email:        cfg.Session.DemoEmail,
		DisplayName:  "Martin Sanchez",
		PasswordHash: hash,
	}); err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	store := docstore.NewClient(db, appLogger)
	taskRepo := repository.NewTaskRepository(store, docstore.CollectionPath(cfg.Session.UserID, "tasks"), appLogger)

	existing, err := taskRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to inspect task collection: %v", err)
	}
	if len(existing) > 0 {
		fmt.Println("Task collection already populated, skipping starter tasks")
		return
	}

	nextWeek := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	starters := []ports.CreateTaskRequest{
		{Title: "Review syllabus", Category: "Personal", Priority: "Low", Status: "Not Started"},
		{Title: "Python lab 1", Category: "Homework", Priority: "High", Status: "Not Started", DueDate: nextWeek, CourseName: "CS 122 - Adv Python Prog"},
		{Title: "Join coding club", Category: "Club", Priority: "Medium", Status: "In Progress"},
	}
	for _, req := range starters {
		if _, err := taskRepo.Create(ctx, req); err != nil {
			log.Fatalf("Failed to seed task %q: %v", req.Title, err)
		}
	}

	fmt.Println("Seed completed successfully")
}
