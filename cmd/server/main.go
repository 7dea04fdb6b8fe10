package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"inventory_catalog_backend/internal/database"
	"inventory_catalog_backend/internal/filter"
	"inventory_catalog_backend/internal/middleware"
	"inventory_catalog_backend/internal/models"
	routerpkg "inventory_catalog_backend/internal/router"
	"inventory_catalog_backend/internal/store"
	"inventory_catalog_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	utils.InitLogger()
	utils.SetJWTSecret(os.Getenv("JWT_SECRET"))

	itemStore := store.NewItemStore()
	filterEngine := filter.NewEngine()
	snapshots := openSnapshotStore()

	if seedPath := os.Getenv("SEED_FILE"); seedPath != "" {
		loadSeedFile(itemStore, seedPath)
	}

	router := gin.Default()
	router.Use(middlewareStack()...)

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	routerpkg.Setup(router, routerpkg.Deps{
		Store:             itemStore,
		Engine:            filterEngine,
		Snapshots:         snapshots,
		AdminUsername:     utils.Getenv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: adminPasswordHash(),
	})

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "items_seeded": itemStore.Len()})

	if err := router.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}

func middlewareStack() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.RequestID(),
		utils.GinLogger(),
	}
}

// openSnapshotStore prefers Postgres when DB_HOST is configured; any
// connection problem falls back to the in-memory store so filter-state
// persistence never blocks startup.
func openSnapshotStore() filter.SnapshotStore {
	host := os.Getenv("DB_HOST")
	if host == "" {
		utils.LogInfo("No DB_HOST configured, filter snapshots kept in memory")
		return database.NewMemorySnapshotStore()
	}

	pg, err := database.OpenPostgresSnapshotStore(
		host,
		utils.Getenv("DB_PORT", "5432"),
		utils.Getenv("DB_USER", "inventory_catalog"),
		utils.Getenv("DB_PASSWORD", ""),
		utils.Getenv("DB_NAME", "inventory_catalog_db"),
		utils.Getenv("DB_SSLMODE", "disable"),
	)
	if err != nil {
		utils.LogWarn("Snapshot database unavailable, falling back to memory", map[string]interface{}{"error": err.Error()})
		return database.NewMemorySnapshotStore()
	}
	utils.LogInfo("Snapshot database connected", map[string]interface{}{"host": host})
	return pg
}

// adminPasswordHash prefers a precomputed bcrypt hash; a plain
// ADMIN_PASSWORD is hashed at startup for convenience in development.
func adminPasswordHash() string {
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		return hash
	}
	plain := utils.Getenv("ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	return string(hash)
}

// loadSeedFile imports a JSON array of raw item records at startup.
// Per-row errors are logged and skipped, matching import semantics.
func loadSeedFile(itemStore *store.ItemStore, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		utils.LogWarn("Failed to read seed file", map[string]interface{}{"path": path, "error": err.Error()})
		return
	}

	var rows []models.ImportRecord
	if err := json.Unmarshal(content, &rows); err != nil {
		utils.LogWarn("Failed to parse seed file", map[string]interface{}{"path": path, "error": err.Error()})
		return
	}

	result := itemStore.ImportBatch(rows, true)
	utils.LogInfo("Seed file loaded", map[string]interface{}{
		"path":     path,
		"imported": result.Imported,
		"updated":  result.Updated,
		"errors":   len(result.Errors),
	})
	for _, rowErr := range result.Errors {
		utils.LogWarn("Seed row skipped", map[string]interface{}{"error": rowErr})
	}
}
