package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-admin-panel/config"
	"github.com/oksasatya/go-admin-panel/internal/session"
	"github.com/oksasatya/go-admin-panel/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg          *config.Config
	logger       *logrus.Logger
	pgPool       *pgxpool.Pool
	redisClient  *redis.Client
	sessionStore session.Store
	cookieMgr    *helpers.CookieManager
)

func SetConfig(c *config.Config)           { cfg = c }
func GetConfig() *config.Config            { return cfg }
func SetLogger(l *logrus.Logger)           { logger = l }
func GetLogger() *logrus.Logger            { return logger }
func SetPGPool(p *pgxpool.Pool)            { pgPool = p }
func GetPGPool() *pgxpool.Pool             { return pgPool }
func SetRedis(r *redis.Client)             { redisClient = r }
func GetRedis() *redis.Client              { return redisClient }
func SetSessions(s session.Store)          { sessionStore = s }
func GetSessions() session.Store           { return sessionStore }
func SetCookies(m *helpers.CookieManager)  { cookieMgr = m }
func GetCookies() *helpers.CookieManager   { return cookieMgr }
