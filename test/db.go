// Package test 各模块测试共用的数据库、请求和断言工具
package test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/global/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// SetupDB 每个测试一个独立的内存 SQLite，迁移后赋给 database.DB
// 只开一个连接：事务里的代码必须用 tx，否则会自己等自己
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.Set(config.Default())

	name := fmt.Sprintf("testdb_%d", dbSeq.Add(1))
	gormCfg := database.GormConfig()
	gormCfg.Logger = logger.Discard
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), gormCfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})
	return db
}
