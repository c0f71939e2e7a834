package bootstrap

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string `mapstructure:"SERVER_PORT"`
	APIPort          string `mapstructure:"API_PORT"`
	SiteURL          string `mapstructure:"SITE_URL"`
	MongoURI         string `mapstructure:"MONGO_URI"`
	RedisURL         string `mapstructure:"REDIS_URL"`
	MailjetAPIKey    string `mapstructure:"MAILJET_API_KEY"`
	MailjetSecretKey string `mapstructure:"MAILJET_SECRET_KEY"`
	MailFromAddress  string `mapstructure:"MAIL_FROM_ADDRESS"`
	MailFromName     string `mapstructure:"MAIL_FROM_NAME"`
	CaptchaSecretKey string `mapstructure:"CAPTCHA_SECRET_KEY"`
	// Production gates the CAPTCHA and mail side effects: when false,
	// external calls are bypassed so local runs need no credentials.
	Production  bool `mapstructure:"PRODUCTION"`
	IsLocalCors bool `mapstructure:"LOCAL_CORS"`
}

func Setup(cfgPath string) (*Config, error) {
	viper.SetConfigFile(cfgPath)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.APIPort == "" {
		cfg.APIPort = "8081"
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = "http://localhost:" + cfg.ServerPort
	}

	return &cfg, nil
}
