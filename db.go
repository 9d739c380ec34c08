package main

import (
	"log/slog"
	"os"
	"strings"

	"contas/models"
	"contas/store"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	db         *gorm.DB
	categories *store.Categories
	expenses   *store.Records[models.Expense]
	incomes    *store.Records[models.Income]
)

// initDB connects to Postgres using DB_DSN and prepares schema and stores.
func initDB() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		slog.Error("DB_DSN is not set; a Postgres DSN is required")
		os.Exit(1)
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect postgres database", "error", err)
		os.Exit(1)
	}
	setupDB(gdb)
}

// setupDB wires the stores and, unless disabled via DB_AUTO_MIGRATE,
// migrates and seeds the schema. Split from initDB so tests can run against
// another dialector.
func setupDB(gdb *gorm.DB) {
	db = gdb

	shouldMigrate := true
	if v := strings.ToLower(os.Getenv("DB_AUTO_MIGRATE")); v == "false" || v == "0" || v == "no" {
		shouldMigrate = false
	}
	if shouldMigrate {
		// Roles first so the users FK can be applied safely; migrate models
		// individually so a failure on one doesn't block others.
		for _, m := range []any{
			&models.Role{},
			&models.User{},
			&models.RefreshToken{},
			&models.Category{},
			&models.Expense{},
			&models.Income{},
		} {
			if err := db.AutoMigrate(m); err != nil {
				slog.Warn("migration warning", "error", err)
			}
		}
		seedDB()
	}

	categories = store.NewCategories(db)
	expenses = store.NewRecords[models.Expense](db)
	incomes = store.NewRecords[models.Income](db)
}

func seedDB() {
	// master roles
	roles := []models.Role{
		{Name: "administrator", Description: "full access"},
		{Name: "user", Description: "regular user"},
	}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}

	// admin user
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
			slog.Warn("failed to find administrator role", "error", err)
		}
		rid := role.ID
		admin := models.User{Username: "admin", RoleID: &rid}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		slog.Info("seeded admin user", "username", "admin")
	}

	// starter categories so fresh installs have a usable taxonomy
	var ccount int64
	db.Model(&models.Category{}).Count(&ccount)
	if ccount == 0 {
		starter := []models.Category{
			{Name: "Alimentação", Icon: "Restaurant", Color: "#e57373"},
			{Name: "Transporte", Icon: "DirectionsCar", Color: "#64b5f6"},
			{Name: "Moradia", Icon: "Home", Color: "#81c784"},
			{Name: "Lazer", Icon: "SportsEsports", Color: "#ba68c8"},
			{Name: "Salário", Icon: "Payments", Color: "#ffd54f"},
		}
		for _, cat := range starter {
			db.Create(&cat)
		}
	}
}
