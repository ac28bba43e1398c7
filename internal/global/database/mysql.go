package database

import (
	"errors"
	"fmt"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/global/sentry/tracing"
	"hackathon-vote-system/internal/model"
	"hackathon-vote-system/tools"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// mysqlDuplicateEntry ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

// GormConfig 生产库和测试库共用的 gorm 配置
func GormConfig() *gorm.Config {
	cfg := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		// 唯一索引冲突翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
	}
	switch config.Get().Mode {
	case config.ModeDebug:
		cfg.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		cfg.Logger = logger.Discard
	}
	return cfg
}

func Init() {
	c := config.Get().Mysql
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.DBName)

	db, err := gorm.Open(gormmysql.Open(dsn), GormConfig())
	tools.PanicOnErr(err)

	if tracing.IsEnabled() {
		tools.PanicOnErr(db.Use(tracing.NewGormTracingPlugin()))
	}
	tools.PanicOnErr(Migrate(db))
	DB = db
}

// Migrate 自动迁移并保证 SystemSettings 单行存在
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return err
	}
	voting := config.Get().Voting
	settings := model.SystemSettings{
		ID:              model.SettingsID,
		IsVotingEnabled: voting.Enabled,
		MaxVotesPerUser: voting.MaxVotesPerUser,
		VotingMode:      voting.Mode,
		Version:         1,
	}
	// 已存在时保持管理员改过的值
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&settings).Error
}

// IsDuplicate 判断是否为唯一约束冲突
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
