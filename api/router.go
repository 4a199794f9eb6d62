// Package api contains all endpoints available
package api

import (
	"time"

	"storekit/commerce-api/config"
	"storekit/commerce-api/db"
	"storekit/commerce-api/httpx"
	"storekit/commerce-api/middleware"
	"storekit/commerce-api/security"
	"storekit/commerce-api/service"
	"storekit/commerce-api/storage"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB      *gorm.DB
	Router  *gin.Engine
	Argon   *security.ArgonHash
	Tokens  *security.TokenIssuer
	Uploads service.Uploader
	Mail    service.Mailer
	Cfg     *config.Config
}

func NewRouter(cfg *config.Config) (*API, error) {
	a := &API{
		Cfg:   cfg,
		Argon: security.NewArgon(),
		Tokens: security.NewTokenIssuer(
			cfg.AccessSecret,
			cfg.RefreshSecret,
			cfg.AccessExpiry,
			cfg.RefreshExpiry,
		),
	}

	gdb, err := db.New(cfg)
	if err != nil {
		return nil, err
	}
	a.DB = gdb

	makeLogger()

	s3, err := storage.NewS3(cfg)
	if err != nil {
		return nil, err
	}

	a.Uploads = service.NewS3Uploader(s3, cfg.S3PublicURL)
	a.Mail = service.NewSMTPMailer(cfg.MailHost, cfg.MailPort, cfg.MailSender)

	service.CodeCleanup(time.Hour, gdb)

	a.mountRoutes()

	return a, nil
}

func (a *API) mountRoutes() {
	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{a.Cfg.CORSOrigin},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	auth := middleware.NewAuthMiddleware(a.DB, a.Tokens)
	admin := middleware.RequireAdmin()
	loginLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 2,
		Burst:             5,
	})
	jsonBody := middleware.BodySizeLimiter(1 << 20)
	uploadBody := middleware.BodySizeLimiter(a.Cfg.MaxUploadSize)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	users := main.Group("/users")
	{
		// POST /api/users/register	-> Creates an account or resends the verification code
		users.POST("/register", loginLimiter, uploadBody, httpx.Wrap(a.UserRegister))

		// POST /api/users/verify	-> Redeems an emailed verification code
		users.POST("/verify", loginLimiter, jsonBody, httpx.Wrap(a.UserVerify))

		// POST /api/users/login	-> Issues the token pair and sets cookies
		users.POST("/login", loginLimiter, jsonBody, httpx.Wrap(a.UserLogin))

		// POST /api/users/logout	-> Clears the active session
		users.POST("/logout", auth, httpx.Wrap(a.UserLogout))

		// POST /api/users/refresh-token -> Rotates the token pair
		users.POST("/refresh-token", jsonBody, httpx.Wrap(a.UserRefreshToken))

		// POST /api/users/change-password
		users.POST("/change-password", auth, jsonBody, httpx.Wrap(a.UserChangePassword))

		// PATCH /api/users/update-account
		users.PATCH("/update-account", auth, jsonBody, httpx.Wrap(a.UserUpdateAccount))

		// GET /api/users/current-user	-> Returns the caller's own profile
		users.GET("/current-user", auth, httpx.Wrap(a.UserCurrent))

		// GET /api/users/all-users	-> Admin only listing
		users.GET("/all-users", auth, admin, httpx.Wrap(a.UserFetchAll))

		// PATCH /api/users/avatar and /api/users/cover-image -> Replace profile images
		users.PATCH("/avatar", auth, uploadBody, httpx.Wrap(a.UserChangeAvatar))
		users.PATCH("/cover-image", auth, uploadBody, httpx.Wrap(a.UserChangeCoverImage))
	}

	category := main.Group("/category")
	{
		// POST /api/category/add	-> Creates a category with its image
		category.POST("/add", uploadBody, httpx.Wrap(a.CategoryAdd))

		// GET /api/category/allcat	-> Lists every category
		category.GET("/allcat", cacheFor(30), httpx.Wrap(a.CategoryFetchAll))

		// DELETE /api/category/delete/:id
		category.DELETE("/delete/:id", httpx.Wrap(a.CategoryDelete))

		// PATCH /api/category/update/:id
		category.PATCH("/update/:id", uploadBody, httpx.Wrap(a.CategoryUpdate))
	}

	{
		// POST /api/product		-> Creates a product with its images
		main.POST("/product", uploadBody, httpx.Wrap(a.ProductCreate))

		// GET /api/product		-> Lists every product with its category projection
		main.GET("/product", cacheFor(30), httpx.Wrap(a.ProductFetchAll))

		// GET /api/product/category/:id -> Products belonging to one category
		main.GET("/product/category/:id", httpx.Wrap(a.ProductByCategory))

		// GET /api/product/:id
		main.GET("/product/:id", httpx.Wrap(a.ProductByID))

		// PATCH /api/product/:id
		main.PATCH("/product/:id", uploadBody, httpx.Wrap(a.ProductUpdate))

		// DELETE /api/product/:id
		main.DELETE("/product/:id", httpx.Wrap(a.ProductDelete))
	}
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
