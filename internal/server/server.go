package server

import (
	"net/http"
	"sync"

	"esports-registration/internal/config"
	"esports-registration/static"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg       config.Config
	engine    *gin.Engine
	sessions  *sessionStore
	ws        *wsHub
	limiter   *rateLimiter
	stopSweep chan struct{}
	closeOnce sync.Once
}

func New(cfg config.Config) *Server {
	registerValidators()
	s := &Server{
		cfg:       cfg,
		ws:        newWSHub(cfg.WSWriteTimeout),
		limiter:   newRateLimiter(cfg.SubmitRatePerSec, cfg.SubmitBurst),
		stopSweep: make(chan struct{}),
	}
	s.sessions = newSessionStore(cfg.SessionTTL, s.newController)
	s.engine = s.routes()
	go s.sweepSessions(cfg.SweepInterval)
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	r.GET("/", s.handleHome)
	r.POST("/game", s.handleSelectGame)
	r.POST("/register", s.handleRegister)
	r.GET("/ws", s.handleWebsocket)
	r.GET("/health", s.handleHealth)
	r.GET("/static/*filepath", gin.WrapH(http.StripPrefix("/static/", static.Handler())))
	return r
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Close stops the session sweeper, cancels every pending form reset and
// drops open websockets.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.stopSweep)
		s.sessions.CloseAll()
		s.ws.CloseAll()
	})
}
