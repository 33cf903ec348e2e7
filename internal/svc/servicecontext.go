package svc

import (
	"log"
	"time"

	"skillpass/internal/chain"
	"skillpass/internal/config"
	"skillpass/internal/events"
	"skillpass/internal/model"
	"skillpass/internal/monitor"
	"skillpass/internal/registrar"
	"skillpass/internal/walletstore"

	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ServiceContext struct {
	Config config.Config
	DB     *gorm.DB

	SkillsDao       model.SkillsDao
	EndorsementsDao model.EndorsementsDao
	InvestmentsDao  model.InvestmentsDao
	ProfilesDao     model.ProfilesDao
	WalletsDao      model.EmbeddedWalletsDao

	WalletStore *walletstore.Store
	Registrar   *registrar.Registrar

	SolanaReader chain.SolanaReader
	EvmReader    chain.EvmReader
	Prices       chain.PriceSource
	Etherscan    chain.EtherscanSource
	Sender       *chain.Sender

	Balances *monitor.BalanceTracker
	Emitter  events.Emitter
}

func NewServiceContext(c config.Config) *ServiceContext {
	db, err := initDB(c.Postgres.DSN)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	store := walletstore.NewStore(c.WalletStore.Path)
	walletsDao := model.NewEmbeddedWalletsDao(db)

	solReader := chain.NewSolanaRPCClient(c.Chains.SolanaRpcUrl)
	evmReader := chain.NewEvmClient(c.Chains.EthereumRpcUrl)
	prices := chain.NewCoinGeckoClient(c.CoinGecko.ApiUrl)

	fallbacks := c.Chains.SolanaFallbackRpcUrls
	if len(fallbacks) == 0 {
		fallbacks = config.DefaultSolanaFallbacks
	}

	balances := monitor.NewBalanceTracker(evmReader, solReader, prices,
		time.Duration(c.Monitor.RefreshSeconds)*time.Second)
	if err := balances.Start(); err != nil {
		log.Fatalf("failed to start balance monitor: %v", err)
	}

	var emitter events.Emitter = events.NopEmitter{}
	if c.Nats.Url != "" {
		natsEmitter, err := events.NewNatsEmitter(c.Nats.Url, c.Nats.Subject)
		if err != nil {
			// 事件是尽力而为的旁路，连不上不拦启动
			logx.Errorf("⚠️ NATS 连接失败, 事件发布降级为 no-op: %v", err)
		} else {
			emitter = natsEmitter
		}
	}

	return &ServiceContext{
		Config:          c,
		DB:              db,
		SkillsDao:       model.NewSkillsDao(db),
		EndorsementsDao: model.NewEndorsementsDao(db),
		InvestmentsDao:  model.NewInvestmentsDao(db),
		ProfilesDao:     model.NewProfilesDao(db),
		WalletsDao:      walletsDao,
		WalletStore:     store,
		Registrar:       registrar.New(walletsDao, store),
		SolanaReader:    solReader,
		EvmReader:       evmReader,
		Prices:          prices,
		Etherscan:       chain.NewEtherscanClient(c.Etherscan.ApiUrl, c.Etherscan.ApiKey),
		Sender:          chain.NewSender(c.Chains.SolanaRpcUrl, fallbacks),
		Balances:        balances,
		Emitter:         emitter,
	}
}

// StopMonitor stops the background balance refresh and the event emitter.
func (s *ServiceContext) StopMonitor() {
	if s.Balances != nil {
		s.Balances.Stop()
	}
	if s.Emitter != nil {
		s.Emitter.Close()
	}
}

func initDB(dsn string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}
