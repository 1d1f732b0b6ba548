package configs

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ENV struct {
	DBDriver         string
	DBHost           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBPort           string
	Port             string
	AppEnv           string
	AppURL           string
	LogLevel         string
	AppAuthKey       string
	AppEncKey        string
	CSRFKey          string
	RabbitMQURL      string
	ImageSearchLimit int
	TemplateDir      string
	StaticDir        string
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	v := viper.New()
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_NAME", "bloomie")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_URL", "http://localhost:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("IMAGE_SEARCH_LIMIT", 10)
	v.SetDefault("TEMPLATE_DIR", "templates")
	v.SetDefault("STATIC_DIR", "public")
	v.AutomaticEnv()

	return ENV{
		DBDriver:         v.GetString("DB_DRIVER"),
		DBHost:           v.GetString("DB_HOST"),
		DBUser:           v.GetString("DB_USER"),
		DBPassword:       v.GetString("DB_PASSWORD"),
		DBName:           v.GetString("DB_NAME"),
		DBPort:           v.GetString("DB_PORT"),
		Port:             v.GetString("APP_PORT"),
		AppEnv:           v.GetString("APP_ENV"),
		AppURL:           v.GetString("APP_URL"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		AppAuthKey:       v.GetString("APP_AUTH_KEY"),
		AppEncKey:        v.GetString("APP_ENC_KEY"),
		CSRFKey:          v.GetString("CSRF_KEY"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		ImageSearchLimit: v.GetInt("IMAGE_SEARCH_LIMIT"),
		TemplateDir:      v.GetString("TEMPLATE_DIR"),
		StaticDir:        v.GetString("STATIC_DIR"),
	}

}
