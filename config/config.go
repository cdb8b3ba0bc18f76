package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vnkhanh/service-survey/logger"
	"github.com/vnkhanh/service-survey/models"
)

// Config chứa toàn bộ cấu hình đọc từ biến môi trường.
type Config struct {
	Port string

	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBTimeZone     string
	DBMaxOpenConns int
	DBMaxIdleConns int

	CORSOrigins []string

	RespondentSalt string
	AdminAPIKey    string

	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string
	ExportDir      string

	DraftTTL       time.Duration
	DraftPurgeCron string

	SubmitRatePerMin int
	SubmitRateBurst  int
}

var (
	AppConfig *Config
	DB        *gorm.DB
)

// LoadConfig đọc .env (nếu có) rồi biến môi trường, có giá trị mặc định.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug(".env not found, using process environment")
	}

	AppConfig = &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         getEnv("DB_NAME", "service_survey"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBTimeZone:     getEnv("DB_TIMEZONE", "Asia/Makassar"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),

		RespondentSalt: os.Getenv("RESPONDENT_SALT"),
		AdminAPIKey:    os.Getenv("ADMIN_API_KEY"),

		SupabaseURL:    os.Getenv("SUPABASE_URL"),
		SupabaseKey:    os.Getenv("SUPABASE_KEY"),
		SupabaseBucket: getEnv("SUPABASE_BUCKET", "survey_exports"),
		ExportDir:      getEnv("EXPORT_DIR", "./exports"),

		DraftTTL:       time.Duration(getEnvInt("DRAFT_TTL_DAYS", 30)) * 24 * time.Hour,
		DraftPurgeCron: getEnv("DRAFT_PURGE_CRON", "@daily"),

		SubmitRatePerMin: getEnvInt("SUBMIT_RATE_PER_MIN", 10),
		SubmitRateBurst:  getEnvInt("SUBMIT_RATE_BURST", 5),
	}

	if AppConfig.RespondentSalt == "" {
		logger.Log.Warn("RESPONDENT_SALT is empty, respondent hashes are unsalted")
	}
	if AppConfig.AdminAPIKey == "" {
		logger.Log.Warn("ADMIN_API_KEY is empty, export endpoints are disabled")
	}
	return AppConfig
}

// Current trả về cấu hình đã nạp, hoặc cấu hình mặc định khi chưa gọi LoadConfig (test).
func Current() *Config {
	if AppConfig == nil {
		return &Config{
			SupabaseBucket:   "survey_exports",
			ExportDir:        os.TempDir(),
			DraftTTL:         30 * 24 * time.Hour,
			DraftPurgeCron:   "@daily",
			SubmitRatePerMin: 10,
			SubmitRateBurst:  5,
		}
	}
	return AppConfig
}

// DSN chuỗi kết nối PostgreSQL.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimeZone)
}

// ConnectDB khởi tạo kết nối PostgreSQL và migrate bảng
func ConnectDB(c *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(c.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(c.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(c.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	DB = db
	logger.Log.WithField("host", c.DBHost).Info("Connected to PostgreSQL & migrated successfully")
	return db, nil
}

// Migrate tạo/cập nhật toàn bộ bảng.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logger.Log.WithField("key", key).WithError(err).Warn("invalid integer env, using default")
		return defaultValue
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
