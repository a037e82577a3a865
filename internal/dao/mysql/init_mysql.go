// Package mysql 提供数据访问层的初始化和 Repository 聚合
package mysql

import (
	"fmt"

	"fitmall_chat_server/internal/config"
	"fitmall_chat_server/internal/dao/mysql/repository"
	"fitmall_chat_server/internal/model"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init 初始化数据库连接并返回 Repository 层实例
// 建立连接 -> AutoMigrate 表结构 -> 创建 Repositories 聚合
func Init() *repository.Repositories {
	conf := config.GetConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	// 表不存在则创建，字段变更则更新结构，不删除已有数据
	err = db.AutoMigrate(
		&model.Member{},
		&model.BanRecord{},
		&model.PreChatQuestion{},
		&model.SupportRoom{},
		&model.SupportMessage{},
		&model.MultiRoom{},
		&model.Participant{},
		&model.MultiMessage{},
	)
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	return repository.NewRepositories(db)
}
