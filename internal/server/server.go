package server

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kv-base-hack/trending-api/storage"
	"github.com/kv-base-hack/trending-api/worker"
	"go.uber.org/zap"
)

// Server to serve the service.
type Server struct {
	s         *gin.Engine
	bindAddr  string
	log       *zap.SugaredLogger
	storage   *storage.Storage
	selection *worker.SelectionLoader
}

// NewServer returns a new server.
func NewServer(bindAddr string, storage *storage.Storage, selection *worker.SelectionLoader) *Server {
	engine := gin.New()

	engine.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AddAllowHeaders("Digest", "Authorization", "Signature", "Nonce")

	engine.Use(cors.New(config))

	s := &Server{
		s:         engine,
		log:       zap.S(),
		bindAddr:  bindAddr,
		storage:   storage,
		selection: selection,
	}

	s.register()

	return s
}

// Run runs server.
func (s *Server) Run() error {
	s.log.Debugw("run in ", "s.bindAddr", s.bindAddr)
	if err := s.s.Run(s.bindAddr); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}

func (s *Server) register() {
	s.s.GET("/debug/pprof/*all", gin.WrapH(http.DefaultServeMux))
	v1 := s.s.Group("/v1")

	token := v1.Group("token")
	token.GET("/trending", s.getTokenTrending)
	token.POST("/select", s.selectToken)
	token.GET("/selection", s.getSelection)
	token.DELETE("/selection", s.clearSelection)
}
