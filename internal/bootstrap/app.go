package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"askmynotes/internal/ai"
	"askmynotes/internal/app"
	"askmynotes/internal/cache"
	"askmynotes/internal/config"
	"askmynotes/internal/model"
	"askmynotes/internal/pkg/extract"
	"askmynotes/internal/platform/logger"
	mysqlClient "askmynotes/internal/platform/mysql"
	rabbitmqClient "askmynotes/internal/platform/rabbitmq"
	redisClient "askmynotes/internal/platform/redis"
	"askmynotes/internal/repository"
	"askmynotes/internal/worker"
)

type App struct {
	Config *config.Config
	Logger *logger.Logger
	MySQL  *gorm.DB
	Redis  *redis.Client
	MQConn *amqp.Connection

	TurnWorker *worker.TurnPersistWorker

	UserService     *app.UserService
	NoteService     *app.NoteService
	AnswerService   *app.AnswerService
	StudySetService *app.StudySetService

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	lg, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("build logger failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Note{},
		&model.ConversationTurn{},
		&model.StudySet{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	userRepo := repository.NewUserRepository(mysqlDB)
	subjectRepo := repository.NewSubjectRepository(mysqlDB)
	noteRepo := repository.NewNoteRepository(mysqlDB)
	turnRepo := repository.NewTurnRepository(mysqlDB)
	setRepo := repository.NewStudySetRepository(mysqlDB)

	// Redis is optional: without it history reads always hit the store.
	var redisCli *redis.Client
	var historyCache app.HistoryCache
	if cfg.Redis.Addr != "" {
		redisCli, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		historyCache = cache.NewHistoryCache(
			redisCli,
			time.Duration(cfg.Redis.HistoryTTLSeconds)*time.Second,
			time.Duration(cfg.Redis.HistoryDirtyTTLSeconds)*time.Second,
		)
	}

	// Queue mode hands turn-pair persistence to the rabbitmq worker; sync
	// mode writes pairs in-request through the repository transaction.
	var mqConn *amqp.Connection
	var turnWriter app.TurnWriter
	var turnWorker *worker.TurnPersistWorker
	if cfg.Study.PersistMode == "queue" {
		mqConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		turnWriter = rabbitmqClient.NewTurnPairPublisher(mqConn, cfg.RabbitMQ.TurnPersistQueue)
		turnWorker = worker.NewTurnPersistWorker(mqConn, turnRepo, cfg.RabbitMQ.TurnPersistQueue, lg)
		if err := turnWorker.Start(ctx); err != nil {
			return nil, fmt.Errorf("start turn worker failed: %w", err)
		}
	}

	resolver := app.NewCorpusResolver(userRepo, subjectRepo, app.ResolvePolicy(cfg.Study.ResolverPolicy))
	conversationLog := app.NewConversationLog(turnRepo, turnWriter, historyCache)

	llmClient := ai.NewOpenAICompatibleClient(time.Duration(cfg.LLM.TimeoutSeconds) * time.Second)
	generator := ai.NewGenerator(llmClient, ai.ChatConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})

	userService := app.NewUserService(userRepo, subjectRepo, noteRepo)
	noteService := app.NewNoteService(resolver, noteRepo, extract.NewExtractor(), lg)
	answerService := app.NewAnswerService(
		resolver,
		subjectRepo,
		noteRepo,
		conversationLog,
		app.NewContextAssembler(cfg.Study.AskContextChars),
		generator,
		lg,
		cfg.Study.HistoryLimit,
	)
	studySetService := app.NewStudySetService(
		resolver,
		noteRepo,
		setRepo,
		app.NewContextAssembler(cfg.Study.StudyContextChars),
		generator,
		lg,
	)

	return &App{
		Config:          cfg,
		Logger:          lg,
		MySQL:           mysqlDB,
		Redis:           redisCli,
		MQConn:          mqConn,
		TurnWorker:      turnWorker,
		UserService:     userService,
		NoteService:     noteService,
		AnswerService:   answerService,
		StudySetService: studySetService,
		StartedAt:       time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.TurnWorker != nil {
		a.TurnWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	if a.Logger != nil {
		a.Logger.Sync()
	}
	return closeErr
}
