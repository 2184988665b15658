package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/internal/config"
	customerdomain "github.com/classon/server/internal/customer/domain"
	ebookdomain "github.com/classon/server/internal/ebook/domain"
	instructordomain "github.com/classon/server/internal/instructor/domain"
	"github.com/classon/server/internal/kakao"
	"github.com/classon/server/internal/observability"
	orderdomain "github.com/classon/server/internal/order/domain"
	productdomain "github.com/classon/server/internal/product/domain"
	"github.com/classon/server/internal/token"
	userdomain "github.com/classon/server/internal/user/domain"
	"github.com/classon/server/pkg/db/pagination"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *observability.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log))
	r.Use(observability.TracingMiddleware())
	r.Use(httpMetrics.Middleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", httpMetrics.Handler())

	return r
}

func registerGin(log *zap.Logger, httpMetrics *observability.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	tokens        *token.Issuer
	instructorSvc instructordomain.Service
	userSvc       userdomain.Service
	customerSvc   customerdomain.Service
	productSvc    productdomain.Service
	orderSvc      orderdomain.Service
	ebookSvc      ebookdomain.Service
	kakaoSvc      *kakao.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	Tokens        *token.Issuer
	InstructorSvc instructordomain.Service
	UserSvc       userdomain.Service
	CustomerSvc   customerdomain.Service
	ProductSvc    productdomain.Service
	OrderSvc      orderdomain.Service
	EbookSvc      ebookdomain.Service
	KakaoSvc      *kakao.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		genID:         p.GenID,
		tokens:        p.Tokens,
		instructorSvc: p.InstructorSvc,
		userSvc:       p.UserSvc,
		customerSvc:   p.CustomerSvc,
		productSvc:    p.ProductSvc,
		orderSvc:      p.OrderSvc,
		ebookSvc:      p.EbookSvc,
		kakaoSvc:      p.KakaoSvc,
	}

	svc.registerAuthRoutes()
	svc.registerStoreRoutes()
	svc.registerKakaoRoutes()
	svc.registerInstructorRoutes()
	svc.registerUserRoutes()
	svc.registerCustomerRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) api() *gin.RouterGroup {
	return s.engine.Group("/api/v1")
}

func (s *Server) registerAuthRoutes() {
	auth := s.api().Group("/auth")

	auth.POST("/signup/user", s.SignupUser)
	auth.POST("/signup/instructor", s.SignupInstructor)
	auth.POST("/login/user", s.LoginUser)
	auth.POST("/login/instructor", s.LoginInstructor)
	auth.POST("/forgot", s.ForgotPassword)
	auth.GET("/me/instructor", s.InstructorRequired(), s.MeInstructor)
	auth.PUT("/me/instructor", s.InstructorRequired(), s.UpdateMeInstructor)
}

func (s *Server) registerStoreRoutes() {
	store := s.api().Group("/public/store/:subdomain")

	store.POST("/signup", s.StoreSignup)
	store.POST("/login", s.StoreLogin)
	store.GET("/me", s.CustomerRequired(), s.StoreMe)
	store.GET("/info", s.StoreInfo)
	store.GET("/products", s.StoreProducts)
	store.GET("/products/:id", s.StoreProductDetail)
}

func (s *Server) registerKakaoRoutes() {
	kakaoGroup := s.api().Group("/kakao")

	kakaoGroup.GET("/login/:subdomain", s.KakaoLogin)
	kakaoGroup.GET("/callback", s.KakaoCallback)
}

func (s *Server) registerInstructorRoutes() {
	api := s.api()

	// -------- Products --------
	api.GET("/products", s.InstructorRequired(), s.ListProducts)
	api.POST("/products", s.InstructorRequired(), s.CreateProduct)
	api.GET("/products/stats/summary", s.InstructorRequired(), s.ProductStats)
	api.GET("/products/:id", s.InstructorRequired(), s.GetProduct)
	api.PUT("/products/:id", s.InstructorRequired(), s.UpdateProduct)
	api.DELETE("/products/:id", s.InstructorRequired(), s.DeleteProduct)

	// -------- Orders --------
	api.GET("/orders/instructor", s.InstructorRequired(), s.ListInstructorOrders)
	api.GET("/orders/instructor/:id", s.InstructorRequired(), s.GetInstructorOrder)
	api.GET("/orders/stats/summary", s.InstructorRequired(), s.OrderStats)
	api.PUT("/orders/:id", s.InstructorRequired(), s.UpdateOrderStatus)
	api.DELETE("/orders/:id", s.InstructorRequired(), s.DeleteOrder)

	// -------- Customers --------
	api.GET("/customers", s.InstructorRequired(), s.ListCustomers)
	api.POST("/customers", s.InstructorRequired(), s.CreateCustomer)
	api.GET("/customers/stats/summary", s.InstructorRequired(), s.CustomerStats)
	api.GET("/customers/:id", s.InstructorRequired(), s.GetCustomer)
	api.PUT("/customers/:id", s.InstructorRequired(), s.UpdateCustomer)
	api.DELETE("/customers/:id", s.InstructorRequired(), s.DeleteCustomer)

	// -------- Ebook authoring --------
	api.POST("/instructor/chapters", s.InstructorRequired(), s.CreateChapter)
	api.GET("/instructor/products/:id/chapters", s.InstructorRequired(), s.ListChapters)
	api.PUT("/instructor/chapters/:id", s.InstructorRequired(), s.UpdateChapter)
	api.DELETE("/instructor/chapters/:id", s.InstructorRequired(), s.DeleteChapter)
	api.POST("/instructor/sections", s.InstructorRequired(), s.CreateSection)
	api.PUT("/instructor/sections/:id", s.InstructorRequired(), s.UpdateSection)
	api.DELETE("/instructor/sections/:id", s.InstructorRequired(), s.DeleteSection)
}

func (s *Server) registerUserRoutes() {
	api := s.api()

	api.POST("/orders", s.UserRequired(), s.CreateOrder)
	api.GET("/orders/my", s.UserRequired(), s.ListMyOrders)
	api.GET("/orders/:id", s.UserRequired(), s.GetMyOrder)
}

func (s *Server) registerCustomerRoutes() {
	customer := s.api().Group("/customer", s.CustomerRequired())

	customer.POST("/orders", s.CreateCustomerOrder)
	customer.GET("/products/:id/structure", s.GetEbookStructure)
	customer.GET("/sections/:id", s.GetSectionContent)
	customer.POST("/progress", s.UpsertProgress)
	customer.GET("/products/:id/progress", s.ListProgress)
	customer.POST("/bookmarks", s.CreateBookmark)
	customer.GET("/products/:id/bookmarks", s.ListBookmarks)
	customer.DELETE("/bookmarks/:id", s.DeleteBookmark)
}

func parseIDParam(c *gin.Context, name string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param(name)))
	if err != nil {
		return 0, newValidationError(name, "invalid_"+name, "invalid identifier")
	}
	return id, nil
}

func pageFromQuery(c *gin.Context) pagination.Pagination {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return pagination.Pagination{Skip: skip, Limit: limit}.Normalize()
}
