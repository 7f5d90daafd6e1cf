package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/sportconnect/sportconnect-api/docs"
	v1 "github.com/sportconnect/sportconnect-api/internal/api/handler/v1"
	"github.com/sportconnect/sportconnect-api/internal/api/middleware"
	"github.com/sportconnect/sportconnect-api/internal/cache"
	"github.com/sportconnect/sportconnect-api/internal/config"
	"github.com/sportconnect/sportconnect-api/internal/repository"
	"github.com/sportconnect/sportconnect-api/internal/repository/dao"
	"github.com/sportconnect/sportconnect-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, rdb *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	c := cache.New(rdb)

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db, c)
	eventHandler := s.initEventHandler(db, c)
	placeHandler := s.initPlaceHandler(db)
	chatHandler := s.initChatHandler(db, c)
	coachHandler := s.initCoachHandler()
	adminHandler := s.initAdminHandler(db, c)
	s.MountHandlers(db, authHandler, userHandler, eventHandler, placeHandler, chatHandler, coachHandler, adminHandler)

	go chatHandler.Run()

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserService(db *gorm.DB, c *cache.Cache) *service.UserService {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))

	return service.NewUserService(userRepo, eventRepo, c, s.Config.Redis.LeaderboardTTL)
}

func (s *Server) initEventService(db *gorm.DB) *service.EventService {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	messageRepo := repository.NewMessageRepository(dao.NewMessageDAO(db))

	return service.NewEventService(eventRepo, messageRepo)
}

func (s *Server) initUserHandler(db *gorm.DB, c *cache.Cache) *v1.UserHandler {
	return v1.NewUserHandler(s.initUserService(db, c))
}

func (s *Server) initEventHandler(db *gorm.DB, c *cache.Cache) *v1.EventHandler {
	return v1.NewEventHandler(s.initEventService(db), s.initUserService(db, c))
}

func (s *Server) initPlaceHandler(db *gorm.DB) *v1.PlaceHandler {
	repo := repository.NewPlaceRepository(dao.NewPlaceDAO(db))
	svc := service.NewPlaceService(repo)

	return v1.NewPlaceHandler(svc)
}

func (s *Server) initChatHandler(db *gorm.DB, c *cache.Cache) *v1.ChatHandler {
	return v1.NewChatHandler(s.initEventService(db), s.initUserService(db, c))
}

func (s *Server) initCoachHandler() *v1.CoachHandler {
	svc := service.NewCoachService(s.Config.Coach)

	return v1.NewCoachHandler(svc)
}

func (s *Server) initAdminHandler(db *gorm.DB, c *cache.Cache) *v1.AdminHandler {
	placeRepo := repository.NewPlaceRepository(dao.NewPlaceDAO(db))
	placeSvc := service.NewPlaceService(placeRepo)
	userSvc := s.initUserService(db, c)

	return v1.NewAdminHandler(userSvc, userSvc, s.initEventService(db), placeSvc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	db *gorm.DB,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	placeHandler *v1.PlaceHandler,
	chatHandler *v1.ChatHandler,
	coachHandler *v1.CoachHandler,
	adminHandler *v1.AdminHandler,
) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator([]byte(s.Config.API.JWTSigningKey)).VerifyJWT()

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)
		public.GET("/places", placeHandler.HandleListPlaces)
		public.GET("/places/:placeID", placeHandler.HandleGetPlace)
		public.GET("/leaderboard", userHandler.HandleLeaderboard)
	}

	authed := s.Router.Group(basePath, verifyJWT)
	{
		authed.GET("/users/me", userHandler.HandleGetMe)
		authed.GET("/users/:userID/profile", userHandler.HandleGetProfile)

		authed.GET("/events", eventHandler.HandleListEvents)
		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.POST("/events/:eventID/join", eventHandler.HandleJoinEvent)
		authed.POST("/events/:eventID/leave", eventHandler.HandleLeaveEvent)
		authed.POST("/events/:eventID/cancel", eventHandler.HandleCancelEvent)

		// Chat
		authed.GET("/events/:eventID/chat", chatHandler.HandleWebSocket)
		authed.GET("/events/:eventID/messages", chatHandler.HandleGetMessages)
		authed.POST("/events/:eventID/messages", chatHandler.HandlePostMessage)

		authed.POST("/coach/ask", coachHandler.HandleAskCoach)
	}

	admin := s.Router.Group(basePath+"/admin", verifyJWT, middleware.AdminOnly(db))
	{
		admin.GET("/users", adminHandler.HandleListUsers)
		admin.PUT("/users/:userID/admin", adminHandler.HandleSetAdmin)
		admin.POST("/users/:userID/reset-points", adminHandler.HandleResetPoints)
		admin.DELETE("/users/:userID", adminHandler.HandleDeleteUser)

		admin.POST("/events/:eventID/toggle-cancel", adminHandler.HandleToggleEventCancelled)
		admin.DELETE("/events/:eventID", adminHandler.HandleDeleteEvent)

		admin.GET("/places", adminHandler.HandleListAllPlaces)
		admin.POST("/places", adminHandler.HandleCreatePlace)
		admin.PUT("/places/:placeID", adminHandler.HandleUpdatePlace)
		admin.POST("/places/:placeID/deactivate", adminHandler.HandleDeactivatePlace)
		admin.POST("/places/:placeID/restore", adminHandler.HandleRestorePlace)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Sport Connect API"
	docs.SwaggerInfo.Description = "Community sporting events: create, join and chat."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
