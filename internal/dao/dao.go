// Package dao 实现数据访问层
package dao

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Config 数据库配置，由外层配置装配后注入
type Config struct {
	Type         string
	Path         string
	Host         string
	UserName     string
	Password     string
	Name         string
	Charset      string
	ParseTime    bool
	TablePrefix  string
	MaxIdleConns int
	MaxOpenConns int
	RunMode      string
}

// Dao 数据访问对象
type Dao struct {
	Db *gorm.DB
}

func New(db *gorm.DB) *Dao {
	return &Dao{Db: db}
}

func (d *Dao) DB() *gorm.DB {
	return d.Db
}

// NewDBEngine 创建 GORM 引擎
func NewDBEngine(c Config) (*gorm.DB, error) {

	dialector := userDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}
	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	} else {
		db.Config.Logger = logger.Default.LogMode(logger.Silent)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	sqlDB.SetConnMaxLifetime(time.Minute * 10)

	return db, nil
}

func userDialector(c Config) gorm.Dialector {
	if c.Type == "mysql" {
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	} else if c.Type == "postgres" {
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		))
	} else if c.Type == "sqlite" {
		if dir := filepath.Dir(c.Path); dir != "." {
			_ = os.MkdirAll(dir, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
