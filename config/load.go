package config

import (
	"errors"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，如 VOTE_MYSQL_HOST
const EnvPrefix = "VOTE"

var (
	instance *Config
	mu       sync.RWMutex
)

// Default 返回内置默认配置，配置文件和环境变量在此基础上覆盖
func Default() *Config {
	return &Config{
		Host:   "0.0.0.0",
		Port:   "8080",
		Prefix: "api",
		Mode:   ModeDebug,
		Mysql: Mysql{
			Host:   "127.0.0.1",
			Port:   "3306",
			DBName: "hackathon_vote",
		},
		Redis: Redis{
			Port:   "6379",
			Prefix: "hackathon-vote",
		},
		JWT: JWT{
			AccessSecret: "change-me",
			AccessExpire: 7 * 24 * 3600,
		},
		Log: Log{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
		OTel: OTel{
			ServiceName: "hackathon-vote-system",
		},
		Voting: Voting{
			Enabled:         true,
			MaxVotesPerUser: 3,
			Mode:            VotingModeReason,
		},
	}
}

// Load 依次读取 config.yaml、.env 和环境变量
// path 为空时在当前目录和 ./config 下查找 config.yaml，找不到不算错误
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	} else if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// .env 只补充环境变量，不覆盖已存在的
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, err
	}
	if cfg.Voting.Mode != VotingModeScores {
		cfg.Voting.Mode = VotingModeReason
	}
	return cfg, nil
}

// Init 加载配置，失败直接退出
func Init() {
	cfg, err := Load(os.Getenv(EnvPrefix + "_CONFIG"))
	if err != nil {
		panic(err)
	}
	Set(cfg)
}

// Set 替换全局配置，测试中也用它注入配置
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return Default()
	}
	return instance
}
