package main

import (
	"context"

	"github.com/Luismorlan/blogmux/app_setting"
	"github.com/Luismorlan/blogmux/server"
	. "github.com/Luismorlan/blogmux/utils"
	"github.com/Luismorlan/blogmux/utils/dotenv"
	. "github.com/Luismorlan/blogmux/utils/flag"
	. "github.com/Luismorlan/blogmux/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func cleanup() {
	CloseProfiler()
	CloseTracer()
	Log.Info("api server shutdown")
}

func main() {
	ParseFlags()
	InitLogger()
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	if dotenv.IsProdEnv() {
		StartTracer(*ServiceName)
		if err := StartProfiler(*ServiceName); err != nil {
			Log.WithError(err).Warn("fail to start profiler")
		}
	}

	setting, err := app_setting.ParseServerAppSetting(*AppConfigPath)
	if err != nil {
		Log.WithError(err).Fatal("fail to load app setting")
	}

	db, err := GetDBConnection()
	if err != nil {
		Log.WithError(err).Fatal("fail to connect database")
	}
	if err := DatabaseSetupAndMigration(db); err != nil {
		Log.WithError(err).Fatal("fail to migrate database")
	}

	deps, err := server.NewDependencies(context.Background(), db, setting)
	if err != nil {
		Log.WithError(err).Fatal("fail to set up server dependencies")
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(*ServiceName))
	if setting.MEDIA_BACKEND == app_setting.MediaBackendLocal {
		router.Static(setting.MEDIA_URL, setting.MEDIA_ROOT)
	}

	server.AddRoutes(router, deps)

	Log.WithField("addr", setting.LISTEN_ADDR).Info("api server starts up")
	if err := router.Run(setting.LISTEN_ADDR); err != nil {
		Log.WithError(err).Error("api server stopped")
	}
}
