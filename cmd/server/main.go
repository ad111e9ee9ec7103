package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"courseplan/internal/milp"
	"courseplan/pkg/config"
	"courseplan/pkg/logger"
	"courseplan/pkg/middleware/requestid"
)

var backends = map[string]func(time.Duration) milp.Solver{
	"gophersat": milp.NewGophersatSolver,
	"highs":     milp.NewHighsSolver,
	"cbc":       milp.NewCbcSolver,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	l, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer l.Sync()

	newBackend, ok := backends[cfg.Solver.Backend]
	if !ok {
		log.Fatalf("%v is not a valid solver backend", cfg.Solver.Backend)
	}
	solver := newBackend(cfg.Solver.TimeLimit)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestid.Middleware(), logger.GinMiddleware(l))
	registerRoutes(r, l, solver)

	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
