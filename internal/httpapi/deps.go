package httpapi

import (
	"sync/atomic"

	"go.uber.org/zap"

	"jobinfo-engine/internal/catalog"
	"jobinfo-engine/internal/config"
	"jobinfo-engine/internal/events"
	"jobinfo-engine/internal/session"
)

type Deps struct {
	Cat  *catalog.Catalog
	Sess *session.Session
	Hub  *events.Hub
	Log  *zap.Logger

	// Atomic store for the live config
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
