package startup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin"
	"github.com/go-redis/redis"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rahe01/StayVista/casbinAuthorization"
	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/handlers"
	application "github.com/rahe01/StayVista/service"
	"github.com/rahe01/StayVista/startup/config"
	store2 "github.com/rahe01/StayVista/store"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"
)

type Server struct {
	config *config.Config
}

var Logger = logrus.New()

const (
	LogFilePath = "/app/logs/stayvista.log"
)

type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Data["id"] = generateUniqueID()

	msg := fmt.Sprintf("[%s] [%s] [%s] %s\n",
		entry.Time.Format("2006-01-02T15:04:05Z07:00"),
		entry.Level,
		entry.Data["id"],
		entry.Message,
	)

	return []byte(msg), nil
}

func generateUniqueID() string {
	return fmt.Sprintf("ID-%d", time.Now().UnixNano())
}

func initLogger() {
	writer, err := rotatelogs.New(
		LogFilePath+"_%Y%m%d%H%M",
		rotatelogs.WithRotationTime(3*time.Minute),
	)
	if err != nil {
		Logger.Fatalf("Failed to create rotatelogs hook: %v", err)
	}
	Logger.SetOutput(writer)

	Logger.SetFormatter(&CustomFormatter{})
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) Start() {

	initLogger()

	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     10,
		},
	}

	mongoClient := server.initMongoClient(httpClient)
	defer func(mongoClient *mongo.Client, ctx context.Context) {
		err := mongoClient.Disconnect(ctx)
		if err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}(mongoClient, context.Background())

	redisClient := server.initRedisClient()

	ctx := context.Background()
	exp, err := newExporter(server.config.JaegerAddress)
	if err != nil {
		log.Fatalf("Failed to Initialize Exporter: %v", err)
	}

	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("stayvista")
	otel.SetTextMapPropagator(propagation.TraceContext{})

	userStore := server.initUserStore(mongoClient, tracer)
	roomStore := server.initRoomStore(mongoClient, tracer)
	bookingStore := server.initBookingStore(mongoClient, tracer)
	notificationStore := server.initNotificationStore(mongoClient, tracer)
	tokenCache := server.initTokenCache(redisClient, tracer)

	authService := application.NewAuthService(userStore, tokenCache, Logger)
	userService := application.NewUserService(userStore, tracer)
	roomService := application.NewRoomService(roomStore, tracer)
	notificationService := application.NewNotificationService(notificationStore, Logger)
	bookingService := application.NewBookingService(bookingStore, roomStore, notificationService, tracer)
	paymentService := application.NewPaymentService(tracer, Logger)
	statService := application.NewStatService(bookingStore, roomStore, userStore, tracer)

	accessControl := handlers.NewAccessControl(authService, userStore, Logger)

	authHandler := handlers.NewAuthHandler(authService, tracer)
	userHandler := handlers.NewUserHandler(userService, tracer)
	roomHandler := handlers.NewRoomHandler(roomService, tracer)
	bookingHandler := handlers.NewBookingHandler(bookingService, paymentService, tracer)
	statHandler := handlers.NewStatHandler(statService, tracer)
	notificationHandler := handlers.NewNotificationHandler(notificationService, tracer)

	server.start(accessControl, authHandler, userHandler, roomHandler, bookingHandler, statHandler, notificationHandler)
}

func (server *Server) initMongoClient(httpClient *http.Client) *mongo.Client {
	client, err := store2.GetClientWithHTTPConfig(server.config.DBHost, server.config.DBPort, httpClient)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initRedisClient() *redis.Client {
	client, err := store2.GetRedisClient(server.config.CacheHost, server.config.CachePort)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initUserStore(client *mongo.Client, tracer trace.Tracer) domain.UserStore {
	return store2.NewUserMongoDBStore(client, tracer)
}

func (server *Server) initRoomStore(client *mongo.Client, tracer trace.Tracer) domain.RoomStore {
	return store2.NewRoomMongoDBStore(client, tracer)
}

func (server *Server) initBookingStore(client *mongo.Client, tracer trace.Tracer) domain.BookingStore {
	return store2.NewBookingMongoDBStore(client, tracer)
}

func (server *Server) initNotificationStore(client *mongo.Client, tracer trace.Tracer) domain.NotificationStore {
	return store2.NewNotificationMongoDBStore(client, tracer)
}

func (server *Server) initTokenCache(client *redis.Client, tracer trace.Tracer) domain.TokenCache {
	return store2.NewTokenRedisCache(client, tracer)
}

func (server *Server) start(
	ac *handlers.AccessControl,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	roomHandler *handlers.RoomHandler,
	bookingHandler *handlers.BookingHandler,
	statHandler *handlers.StatHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	router := mux.NewRouter()
	router.Use(MiddlewareContentTypeSet)

	enforcer, err := casbin.NewEnforcerSafe("./rbac_model.conf", "./policy.csv")
	if err != nil {
		log.Fatalf("Failed to load authorization policy: %v", err)
	}
	router.Use(casbinAuthorization.CasbinMiddleware(enforcer, Logger))

	authHandler.Init(router)
	userHandler.Init(router, ac)
	roomHandler.Init(router, ac)
	bookingHandler.Init(router, ac)
	statHandler.Init(router, ac)
	notificationHandler.Init(router, ac)

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"http://localhost:5173", "http://localhost:5174"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillaHandlers.AllowCredentials(),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", server.config.Port),
		Handler: cors(router),
	}

	wait := time.Second * 15
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("stayvista"),
		),
	)

	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")

		next.ServeHTTP(rw, h)
	})
}
