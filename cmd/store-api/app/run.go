package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/configs"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/adapter/cache"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/adapter/gateway"
	apihttp "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/adapter/http"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/adapter/http/middleware"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/adapter/kafka"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/adapter/notify"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/adapter/queue"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/adapter/repo"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/logging"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/security"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.Init(cfg.App.Name, cfg.App.LogFile)

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(ctx)
	cancel()
	if err != nil {
		return nil, nil, err
	}

	if err := repo.RunMigrations(db, "migrations"); err != nil {
		return nil, nil, err
	}

	log.Info("store-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq
	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}

	// infra
	orderRepo := repo.NewMySQLOrderRepo(db)
	payRepo := repo.NewMySQLPaymentNotificationRepo(db)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.StatusCache.TTL)
	otpStore := cache.NewRedisOTPStore(rdb, cfg.Security.OTPTTL)
	snap := gateway.NewSnapClient(cfg.Gateway.BaseURL, cfg.Gateway.ServerKey, cfg.Gateway.Timeout)
	verifier := security.NewSignatureVerifier(cfg.Gateway.ServerKey)
	mailer := notify.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	wa := notify.NewWhatsAppClient(cfg.WhatsApp.BaseURL, cfg.WhatsApp.APIKey, cfg.WhatsApp.Timeout)

	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}

	// kafka: status event producer + cache-refresh consumer
	events, closeKafka, err := setupKafka(cfg, statusCache)
	if err != nil {
		return nil, nil, err
	}

	// queue worker: customer/operator notifications
	setupNotificationWorker(ch, wa, mailer)

	// usecases
	checkoutUC := usecase.NewCreateCheckout(orderRepo)
	initiateUC := usecase.NewInitiateTransaction(orderRepo, snap)
	reconcileUC := usecase.NewReconcileWebhook(verifier, orderRepo, payRepo).
		WithEvents(events).
		WithStatusCache(statusCache)
	manualUC := usecase.NewManualPayment(orderRepo, producer, cfg.Notify.OperatorEmail)
	updateUC := usecase.NewUpdateStatus(orderRepo).
		WithEvents(events).
		WithStatusCache(statusCache)

	// handlers + router + middleware
	oh := apihttp.NewOrderHandler(checkoutUC, initiateUC, orderRepo, statusCache)
	ph := apihttp.NewPaymentHandler(manualUC)
	wh := apihttp.NewWebhookHandler(reconcileUC)
	ah := apihttp.NewAdminHandler(updateUC, orderRepo)
	th := apihttp.NewTokenHandler(cfg, otpStore, mailer)
	authz := middleware.NewAuthz(cfg)
	router := apihttp.NewRouter(oh, ph, wh, ah, th, authz)

	cleanup := func() {
		_ = db.Close()
		_ = rdb.Close()
		_ = ch.Close()
		_ = conn.Close()
		closeKafka()
	}

	return &App{Router: router}, cleanup, nil
}

func setupKafka(cfg configs.Config, statusCache usecase.OrderStatusCache) (*kafka.StatusEventProducer, func(), error) {
	sp, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
	if err != nil {
		return nil, nil, err
	}
	events := kafka.NewStatusEventProducer(sp, cfg.Kafka.TopicEvents)

	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		_ = sp.Close()
		return nil, nil, err
	}

	h := kafka.NewOrderStatusChangedHandler(statusCache)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.TopicEvents}, h.Handle)
	consumer.Logger = logging.New("kafka")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			logging.New("kafka").Error("consumer stopped", "error", err)
		}
	}()

	closer := func() {
		cancel()
		_ = grp.Close()
		_ = sp.Close()
	}
	return events, closer, nil
}

func setupNotificationWorker(ch *amqp.Channel, wa queue.WhatsAppSender, mail queue.EmailSender) {
	h := queue.NewNotificationHandler(wa, mail)

	router := queue.NewRouter(ch, queue.WithPrefetch(20), queue.WithRequeue(false))
	router.Register(queue.QueueName, queue.JSONHandler[usecase.NotificationMsg]{HandleFunc: h.Handle})

	if err := router.Start(); err != nil {
		panic(err)
	}
}
