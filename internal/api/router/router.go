package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gocatalog/internal/api/book"
	"gocatalog/internal/api/order"
	"gocatalog/internal/api/product"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/middleware"
	"gocatalog/internal/pkg/token"
)

// Options reúne tudo que o roteador precisa além dos Handlers.
type Options struct {
	Logger         logger.Logger
	Cache          cache.Client
	Tokens         middleware.TokenValidator // nil = rotas de escrita sem autenticação
	Registry       *prometheus.Registry
	AllowedOrigins []string
	RateLimit      int
	RatePeriod     time.Duration
	RequestTimeout time.Duration
}

// Handlers são os Handlers de cada domínio, já montados no main.
type Handlers struct {
	Orders   *order.Handler
	Products *product.Handler
	Books    *book.Handler
}

// NewRouter configura o roteador chi com os middlewares globais e as rotas.
func NewRouter(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	// --- 1. Middlewares globais ---
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.NewHTTPMetrics(opts.Registry).Handler)
	r.Use(middleware.Recoverer(opts.Logger))
	r.Use(chimw.Timeout(opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.CorrelationIDHeader},
		ExposedHeaders: []string{"Location", middleware.CorrelationIDHeader},
		MaxAge:         300,
	}))

	// --- 2. Operacional ---
	r.Get("/ping", PingHandler)
	r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	// writes aplica rate limit e, se configurado, JWT com role admin.
	writes := func(r chi.Router) {
		r.Use(middleware.RateLimiter(opts.Cache, opts.RateLimit, opts.RatePeriod, opts.Logger))
		if opts.Tokens != nil {
			r.Use(middleware.Authenticate(opts.Tokens, opts.Logger))
			r.Use(middleware.RequireRole(opts.Logger, token.RoleAdmin))
		}
	}

	// --- 3. Pedidos ---
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.Orders.ListOrdersHandler)
		r.Get("/{id}", h.Orders.GetOrderHandler)
		r.Group(func(r chi.Router) {
			writes(r)
			r.Post("/", h.Orders.CreateOrderHandler)
		})
	})

	// --- 4. Produtos ---
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.Products.ListProductsHandler)
		r.Get("/{id}", h.Products.GetProductHandler)
		r.Group(func(r chi.Router) {
			writes(r)
			r.Post("/", h.Products.CreateProductHandler)
		})
	})

	// --- 5. Livros ---
	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", h.Books.ListBooksHandler)
		r.Get("/paginated", h.Books.ListBooksPaginatedHandler)
		r.Get("/{id}", h.Books.GetBookHandler)
		r.Group(func(r chi.Router) {
			writes(r)
			r.Post("/", h.Books.CreateBookHandler)
			r.Put("/{id}", h.Books.UpdateBookHandler)
			r.Delete("/{id}", h.Books.DeleteBookHandler)
		})
	})

	return r
}

// PingHandler é o health check.
func PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
