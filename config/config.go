package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

// VotingMode 决定一张选票携带理由还是分维度打分
type VotingMode string

const (
	VotingModeReason VotingMode = "reason"
	VotingModeScores VotingMode = "scores"
)

type Config struct {
	Host     string   `split_words:"true" mapstructure:"host"`
	Port     string   `split_words:"true" mapstructure:"port"`
	Prefix   string   `split_words:"true" mapstructure:"prefix"`
	Mode     Mode     `split_words:"true" mapstructure:"mode"`
	Mysql    Mysql    `mapstructure:"mysql"`
	Redis    Redis    `mapstructure:"redis"`
	JWT      JWT      `mapstructure:"jwt"`
	Log      Log      `mapstructure:"log"`
	Sentry   Sentry   `mapstructure:"sentry"`
	OTel     OTel     `mapstructure:"otel"`
	S3       S3       `mapstructure:"s3"`
	Webhook  Webhook  `mapstructure:"webhook"`
	Telegram Telegram `mapstructure:"telegram"`
	Voting   Voting   `mapstructure:"voting"`
}

type Mysql struct {
	Host     string `split_words:"true" mapstructure:"host"`
	Port     string `split_words:"true" mapstructure:"port"`
	Username string `split_words:"true" mapstructure:"username"`
	Password string `split_words:"true" mapstructure:"password"`
	DBName   string `split_words:"true" mapstructure:"db_name"`
}

// Redis Host 为空时不启用，实时消息只在本进程内广播
type Redis struct {
	Host     string `split_words:"true" mapstructure:"host"`
	Port     string `split_words:"true" mapstructure:"port"`
	Password string `split_words:"true" mapstructure:"password"`
	DB       int    `split_words:"true" mapstructure:"db"`
	Prefix   string `split_words:"true" mapstructure:"prefix"` // 频道名前缀
}

type JWT struct {
	AccessSecret string `split_words:"true" mapstructure:"access_secret"`
	AccessExpire int64  `split_words:"true" mapstructure:"access_expire"` // 秒
}

type Log struct {
	FilePath   string `split_words:"true" mapstructure:"file_path"`   // 日志文件路径
	Level      string `split_words:"true" mapstructure:"level"`       // debug, info, warn, error
	MaxSize    int    `split_words:"true" mapstructure:"max_size"`    // 单个文件最大 MB
	MaxBackups int    `split_words:"true" mapstructure:"max_backups"` // 保留的旧文件数
	MaxAge     int    `split_words:"true" mapstructure:"max_age"`     // 保留天数
	Compress   bool   `split_words:"true" mapstructure:"compress"`
}

type Sentry struct {
	Dsn         string        `split_words:"true" mapstructure:"dsn"`
	Environment string        `split_words:"true" mapstructure:"environment"`
	SampleRate  float64       `split_words:"true" mapstructure:"sample_rate"` // 性能追踪采样率
	Tracing     SentryTracing `mapstructure:"tracing"`
}

type SentryTracing struct {
	DBSlowThresholdMs    int  `split_words:"true" mapstructure:"db_slow_threshold_ms"`
	RedisSlowThresholdMs int  `split_words:"true" mapstructure:"redis_slow_threshold_ms"`
	TraceHTTPCalls       bool `split_words:"true" mapstructure:"trace_http_calls"`
}

type OTel struct {
	Enable      bool   `split_words:"true" mapstructure:"enable"`
	ServiceName string `split_words:"true" mapstructure:"service_name"`
	AgentHost   string `split_words:"true" mapstructure:"agent_host"`
	AgentPort   string `split_words:"true" mapstructure:"agent_port"`
}

// S3 Bucket 为空时不提供附件上传
type S3 struct {
	Endpoint        string `split_words:"true" mapstructure:"endpoint"`
	BaseURL         string `split_words:"true" mapstructure:"base_url"`
	Bucket          string `split_words:"true" mapstructure:"bucket"`
	Region          string `split_words:"true" mapstructure:"region"`
	AccessKey       string `split_words:"true" mapstructure:"access_key"`
	SecretAccessKey string `split_words:"true" mapstructure:"secret_key"`
	Prefix          string `split_words:"true" mapstructure:"prefix"`
	UsePathStyle    bool   `split_words:"true" mapstructure:"path_style"`
}

// Webhook 投票事件额外推送到外部地址（如大屏），URL 为空时不推送
type Webhook struct {
	URL    string `split_words:"true" mapstructure:"url"`
	Secret string `split_words:"true" mapstructure:"secret"`
}

// Telegram 管理员公告和设置变更同步到群组，Token 为空时不启用
type Telegram struct {
	Token  string `split_words:"true" mapstructure:"token"`
	ChatID int64  `split_words:"true" mapstructure:"chat_id"`
}

// Voting 仅用于首次创建 SystemSettings，之后以数据库为准
type Voting struct {
	Enabled         bool       `split_words:"true" mapstructure:"enabled"`
	MaxVotesPerUser int        `split_words:"true" mapstructure:"max_votes_per_user"`
	Mode            VotingMode `split_words:"true" mapstructure:"mode"`
}
