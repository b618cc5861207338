package app

import (
	"context"
	"database/sql"

	"go-hrm/internal/config"
	"go-hrm/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type infrastructure struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	redis  *redis.Client
	mongo  *mongo.Client
	minio  *minio.Client
}

func (i *infrastructure) close() {
	if i.mongo != nil {
		_ = i.mongo.Disconnect(context.Background())
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.sqlDB != nil {
		_ = i.sqlDB.Close()
	}
}

// BuildApp connects the backing services and mounts every module on router.
// The returned cleanup closes the connections and must run after the HTTP
// server has stopped.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L().Named("app")
	infra := &infrastructure{}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	infra.gormDB = gormDB

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	infra.sqlDB = sqlDB

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, 5)
	if err != nil {
		infra.close()
		return nil, err
	}
	infra.redis = rdb

	minioClient, err := connection.ConnectMinIO(ctx, cfg.MinIO)
	if err != nil {
		infra.close()
		return nil, err
	}
	if minioClient == nil {
		logger.Warn("minio endpoint not configured, uploads are disabled")
	}
	infra.minio = minioClient

	if cfg.Mongo.URI != "" {
		mongoClient, err := connection.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			infra.close()
			return nil, err
		}
		infra.mongo = mongoClient
	} else {
		logger.Warn("mongo uri not configured, letter templates are disabled")
	}

	if err := registerModules(ctx, router, cfg, infra, zap.L()); err != nil {
		infra.close()
		return nil, err
	}

	return infra.close, nil
}
