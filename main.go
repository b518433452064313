// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/carelog/hospital-admin/config"
	"github.com/carelog/hospital-admin/endpoint"
	"github.com/carelog/hospital-admin/middleware"
	"github.com/carelog/hospital-admin/model"
	"github.com/carelog/hospital-admin/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	if secret := os.Getenv("JWTSECRET"); secret != "" {
		util.SetJWTSecret(secret)
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Patient{}, &model.Session{}, &model.AuditLog{}); err != nil {
		log.Fatalf("Error migrating schema: %v", err)
	}

	util.SetAuditLoggerDB(db)

	if err := seedAdminUser(db); err != nil {
		log.Printf("Admin user seeding skipped: %v", err)
	}

	// Redis is optional: sessions fall back to the database and rate limiting allows.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable: %v", err)
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	// Create a Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	auth := router.Group("/auth")
	auth.POST("/register", endpoint.Register)
	auth.POST("/login", middleware.RateLimiter(middleware.RateLimitConfig{}), endpoint.Login)
	auth.POST("/logout", middleware.SessionAuth(), endpoint.Logout)

	protected := router.Group("/", middleware.SessionAuth())
	protected.GET("/doctor", endpoint.ListDoctors)
	protected.POST("/patient", endpoint.CreatePatient)
	protected.GET("/patient", endpoint.ListPatients)
	protected.POST("/patient/batch", endpoint.ImportPatients)
	protected.GET("/patient/batch", endpoint.ExportPatientsCSV)
	protected.GET("/patient/:id", endpoint.GetPatientInfo)
	protected.PATCH("/patient/:id", endpoint.UpdatePatient)
	protected.DELETE("/patient/:id", endpoint.DeletePatient)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

// seedAdminUser creates the administrator account from ADMIN_EMAIL and
// ADMIN_PASSWORD when configured and not yet present.
func seedAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return fmt.Errorf("ADMIN_EMAIL or ADMIN_PASSWORD not set")
	}

	var existing model.User
	err := db.First(&existing, "email = ?", email).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	salt, err := util.GenerateSalt()
	if err != nil {
		return err
	}
	hashed, err := util.HashPassword(password, salt)
	if err != nil {
		return err
	}

	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	return db.Create(&model.User{
		Name:         name,
		Email:        email,
		Password:     hashed,
		PasswordSalt: salt,
		Role:         model.RoleAdmin,
	}).Error
}
