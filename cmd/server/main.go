package main

import (
	"context"

	"halvi-backend/internal/assetcache"
	"halvi-backend/internal/cart"
	"halvi-backend/internal/config"
	"halvi-backend/internal/database"
	"halvi-backend/internal/geo"
	"halvi-backend/internal/handlers"
	"halvi-backend/internal/middleware"
	"halvi-backend/internal/notify"
	"halvi-backend/internal/session"
	"halvi-backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Development {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{})
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	ctx := context.Background()

	// Session state lives in Redis so it survives restarts; the memory
	// store keeps local development working without one.
	var kv storage.KV
	var notifier notify.Notifier = notify.NewLogNotifier(log)
	redisClient, err := storage.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, using in-memory session store")
		kv = storage.NewMemoryKV()
	} else {
		defer redisClient.Close()
		kv = storage.NewRedisKV(redisClient)
		notifier = notify.NewRedisNotifier(redisClient)
	}

	shopQueries := database.NewShopQueries(db)

	carts := cart.NewService(kv, notifier, log)
	geocoder := geo.NewClient(cfg.GeocoderURL)
	location := session.NewLocationProvider(kv, geocoder, cfg.DefaultLatitude, cfg.DefaultLongitude, log)
	shopSelection := session.NewShopSelection(kv, shopQueries, log)
	themes := session.NewThemeProvider(kv, log)
	language := session.NewLanguageProvider(kv, cfg.DefaultLanguage, log)

	assets := assetcache.New(assetcache.Config{
		Version:  cfg.CacheVersion,
		Origin:   assetcache.NewOriginFetcher(cfg.AssetOrigin),
		Precache: cfg.PrecacheAssets,
		Log:      log,
	})
	if err := assets.Install(ctx); err != nil {
		log.WithError(err).Warn("asset precache incomplete, serving without offline fallback")
	} else if err := assets.Activate(ctx); err != nil {
		log.WithError(err).Warn("asset cache activation failed")
	}

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	sessionStore := middleware.NewSessionStore(cfg.JWTSecret, !cfg.Development)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Use(middleware.SecurityHeaders())
	r.Use(sessionStore.Middleware())

	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret, log)
	publicHandler := handlers.NewPublicHandler(db, location)
	cartHandler := handlers.NewCartHandler(carts, db, log)
	sessionHandler := handlers.NewSessionHandler(location, shopSelection, themes, language)
	adminHandler := handlers.NewAdminHandler(db, log)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/refresh", authHandler.RefreshToken)

		public.GET("/shops", publicHandler.GetShops)
		public.GET("/shops/nearby", publicHandler.GetNearbyShops)
		public.GET("/shops/:id", publicHandler.GetShop)
		public.GET("/products", publicHandler.GetProducts)
		public.GET("/products/:id", publicHandler.GetProduct)

		public.GET("/cart", cartHandler.GetCart)
		public.GET("/cart/count", cartHandler.GetCartCount)
		public.POST("/cart/items", cartHandler.AddToCart)
		public.PUT("/cart/items/:id", cartHandler.UpdateCartItem)
		public.DELETE("/cart/items/:id", cartHandler.RemoveFromCart)
		public.DELETE("/cart", cartHandler.ClearCart)
		public.POST("/cart/checkout", middleware.OptionalAuthMiddleware(cfg.JWTSecret), cartHandler.Checkout)
		public.GET("/orders", cartHandler.ListOrders)

		public.GET("/session/location", sessionHandler.GetLocation)
		public.POST("/session/location", sessionHandler.RequestLocation)
		public.GET("/session/main-shop", sessionHandler.GetMainShop)
		public.PUT("/session/main-shop", sessionHandler.SetMainShop)
		public.DELETE("/session/main-shop", sessionHandler.ClearMainShop)
		public.GET("/session/shops", sessionHandler.GetSelectedShops)
		public.POST("/session/shops", sessionHandler.SelectShop)
		public.DELETE("/session/shops/:id", sessionHandler.DeselectShop)
		public.GET("/session/theme", sessionHandler.GetTheme)
		public.PUT("/session/theme", sessionHandler.SetTheme)
		public.DELETE("/session/theme", sessionHandler.ClearTheme)
		public.POST("/session/system-theme", sessionHandler.ReportSystemTheme)
		public.GET("/session/language", sessionHandler.GetLanguage)
		public.PUT("/session/language", sessionHandler.SetLanguage)
		public.GET("/session/languages", sessionHandler.GetLanguages)
		public.GET("/session/translate/:key", sessionHandler.Translate)
	}

	// Authenticated routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/auth/profile", authHandler.Profile)
		protected.PUT("/auth/profile", authHandler.UpdateProfile)
	}

	// Business owner routes
	business := r.Group("/api/business")
	business.Use(middleware.BusinessMiddleware(cfg.JWTSecret))
	{
		business.GET("/shops", adminHandler.GetOwnerShops)
	}

	// Admin routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminMiddleware(cfg.JWTSecret))
	{
		admin.POST("/import/shops", adminHandler.ImportShops)
		admin.POST("/import/products", adminHandler.ImportProducts)
		admin.PUT("/shops/:id/verify", adminHandler.VerifyShop)
	}

	// Everything outside /api is a static asset served through the
	// versioned cache, including the offline fallbacks.
	r.NoRoute(gin.WrapH(assets))

	log.WithField("port", cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
