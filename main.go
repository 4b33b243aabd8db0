package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"rigforge/backend/api/handler"
	"rigforge/backend/api/route"
	"rigforge/backend/common"
	"rigforge/backend/library/blobstore"
	"rigforge/backend/library/workshop"
	"rigforge/backend/model"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

//go:embed frontend/dist
var buildFS embed.FS

//go:embed frontend/dist/index.html
var indexPage []byte

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}
	common.SetupGinLog()
	if err := common.LoadConfigFile(); err != nil {
		common.FatalLog(err)
	}
	common.SysLog("RigForge " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Redis
	if err := common.InitRedisClient(); err != nil {
		common.FatalLog(err)
	}
	// Initialize SQL Database
	if dir := filepath.Dir(common.SQLitePath); dir != "." && common.SQLitePath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			common.FatalLog(err)
		}
	}
	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.FatalLog(err)
		}
	}()

	// Persistence collaborator for submitted configurations
	var bs blobstore.Store
	if common.RedisEnabled {
		bs = blobstore.NewRedisStore(common.RDB)
	} else {
		bs = blobstore.NewMemoryStore()
		common.SysLog("Redis disabled, saved configurations are kept in memory only")
	}
	handler.Setup(workshop.NewManager(), bs)

	// Initialize HTTP server
	server := gin.New()
	server.Use(gin.Logger(), gin.Recovery())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Session store: Redis when available, signed cookies otherwise
	if common.RedisEnabled {
		store, err := redis.NewStore(10, "tcp", common.RDB.Options().Addr, "", common.RDB.Options().Password, []byte(common.SessionSecret))
		if err != nil {
			common.FatalLog(err)
		}
		server.Use(sessions.Sessions("rigforge_session", store))
	} else {
		store := cookie.NewStore([]byte(common.SessionSecret))
		server.Use(sessions.Sessions("rigforge_session", store))
	}

	route.SetRouter(server, buildFS, indexPage)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(*common.Port),
		Handler: server,
	}
	go func() {
		common.SysLog("listening on " + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.FatalLog(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	common.SysLog("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		common.SysError("forced shutdown: " + err.Error())
	}
	common.SysLog("server exited")
}
