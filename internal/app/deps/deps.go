package deps

import (
	"context"
	"dinehub/internal/config"
	"dinehub/internal/core/domain/category"
	dl "dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/restaurant"
	duow "dinehub/internal/core/domain/unit_of_work"
	"dinehub/internal/core/domain/user"
	dbcategory "dinehub/internal/db/category"
	dbrestaurant "dinehub/internal/db/restaurant"
	uow "dinehub/internal/db/unit_of_work"
	dbuser "dinehub/internal/db/user"
	"dinehub/internal/http/handlers/auth"
	"dinehub/internal/http/templates"
	"dinehub/internal/implementations/email"
	"dinehub/internal/implementations/logging"
	passwordhasher "dinehub/internal/implementations/password_hasher"
	passwordresetter "dinehub/internal/implementations/password_resetter"
	"dinehub/internal/implementations/session"
	"dinehub/internal/rabbitmq"
	passwordresetlink "dinehub/internal/rabbitmq/publishers/password_reset_link"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork           duow.UnitOfWork
	UserRepository       user.UserRepository
	SessionRepository    user.SessionRepository
	PreferenceRepository category.PreferenceRepository
	FavoriteRepository   restaurant.FavoriteRepository

	EmailSender             *email.EmailSender
	PasswordResetLinkSender user.PasswordResetLinkSender

	UserSessionTokenGenerator user.SessionTokenGenerator
	PasswordHasher            user.PasswordHasher
	PasswordResetter          user.PasswordResetter

	SessionCookie *auth.SessionCookie
	Templates     *templates.Templates
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig(config.Load)
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = session.NewRedisRepository(deps.Redis, deps.UserRepository, deps.Config.SessionTTL)
	deps.PreferenceRepository = dbcategory.NewPgxPreferenceRepository(deps.DB)
	deps.FavoriteRepository = dbrestaurant.NewPgxFavoriteRepository(deps.DB)

	deps.UserSessionTokenGenerator = session.NewUUID()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetter = passwordresetter.NewHMAC(
		deps.Config.Secret,
		deps.Config.PasswordResetValidDuration(),
		deps.Now,
	)

	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailPasswordResetTemplate,
		deps.Config.PasswordResetBaseURL,
	)
	closeRabbitmqConn := func() {}
	closePasswordResetPublisher := func() {}
	if deps.Config.PasswordResetDelivery == config.DeliveryQueue {
		closeRabbitmqConn = deps.initRabbitmqConnection()
		closePasswordResetPublisher = deps.initRabbitmqPasswordResetPublisher()
	} else {
		deps.PasswordResetLinkSender = deps.EmailSender
	}

	deps.SessionCookie = auth.NewSessionCookie(
		deps.Config.SessionCookieName,
		deps.Config.Secret,
		deps.Config.SessionTTL,
		deps.Config.SessionCookieSecure,
	)
	deps.initTemplates()

	flushSentry := deps.initSentry()

	return deps, closeAll(
		closePasswordResetPublisher,
		closeRabbitmqConn,
		closeRedisClient,
		closePgxPool,
		closeLogger,
		flushSentry,
	)
}

// InitMailerDeps sets up the dependencies of the password reset consumer.
// It connects to neither Postgres nor Redis.
func InitMailerDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig(config.LoadMailer)
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailPasswordResetTemplate,
		deps.Config.PasswordResetBaseURL,
	)
	closeRabbitmqConn := deps.initRabbitmqConnection()

	flushSentry := deps.initSentry()

	return deps, closeAll(closeRabbitmqConn, closeLogger, flushSentry)
}

func closeAll(closeFuncs ...func()) func() {
	return func() {
		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig(load func() (*config.Config, error)) {
	config, err := load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initRabbitmqPasswordResetPublisher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordResetQueue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not create RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	// The default exchange routes by queue name.
	deps.PasswordResetLinkSender = passwordresetlink.NewRabbitMQ(deps.Logger, rabbitmqChannel, "", queue)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down password reset publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Password reset publisher shut down.")
	}
}

func (deps *Deps) initTemplates() {
	tmpl, err := templates.New()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not parse HTML templates.", dl.Entry("err", err))
		panic(err)
	}
	deps.Templates = tmpl
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
