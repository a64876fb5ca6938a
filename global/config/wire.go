package config

import (
	"context"

	"github.com/JacobHeater/upsign/data/database/mgo/mongoutil"
	"github.com/JacobHeater/upsign/logger"
	mgoSrv "github.com/JacobHeater/upsign/service/mgo"
	storage "github.com/JacobHeater/upsign/service/storage"
	ids "github.com/JacobHeater/upsign/tools/ids"
)

// ConfigAll wires up the id generator, redis and mongo from Global.
func ConfigAll(ctx context.Context) {
	ConfigIds()
	ConfigRedis()
	ConfigMgo(ctx)
}

func ConfigIds() {
	ids.SetNodeID(Global.Server.NodeId)
}

func ConfigRedis() {
	err := storage.InitRedis(storage.Config{
		Addr:     Global.Redis.Addr,
		Password: Global.Redis.Password,
		DB:       Global.Redis.DB,
	})
	if err != nil {
		logger.Errorf("redis init failed: %v", err)
	}
}

func ConfigMgo(ctx context.Context) {
	cfg := &mongoutil.Config{
		Uri:         Global.Mongo.Uri,
		Database:    Global.Mongo.Database,
		Username:    Global.Mongo.Username,
		Password:    Global.Mongo.Password,
		MaxPoolSize: Global.Mongo.MaxPoolSize,
	}
	mgoSrv.StartAsync(ctx, cfg)
}
