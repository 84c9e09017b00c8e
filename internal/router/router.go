package router

import (
	"net/http"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/api/handler"
	"github.com/texan-rex/diner-service/internal/db"
	"github.com/texan-rex/diner-service/internal/middleware"
	"github.com/texan-rex/diner-service/internal/service"
	"github.com/texan-rex/diner-service/internal/websockets"
)

// Services bundles the application services the router dispatches to.
type Services struct {
	Auth         *service.AuthService
	Employees    *service.EmployeeService
	Sales        *service.SaleService
	Orders       *service.OrderService
	ClientOrders *service.ClientOrderService
}

// Router handles HTTP routing
type Router struct {
	mux      *http.ServeMux
	auth     *service.AuthService
	hub      *websockets.Hub
	database *db.Postgres

	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	saleHandler        *handler.SaleHandler
	orderHandler       *handler.OrderHandler
	clientOrderHandler *handler.ClientOrderHandler

	publicOrderRate string
}

// New creates a new router
func New(services Services, hub *websockets.Hub, database *db.Postgres, publicOrderRate string) *Router {
	r := &Router{
		mux:      http.NewServeMux(),
		auth:     services.Auth,
		hub:      hub,
		database: database,

		authHandler:        handler.NewAuthHandler(services.Auth),
		userHandler:        handler.NewUserHandler(services.Employees),
		saleHandler:        handler.NewSaleHandler(services.Sales),
		orderHandler:       handler.NewOrderHandler(services.Orders),
		clientOrderHandler: handler.NewClientOrderHandler(services.ClientOrders),

		publicOrderRate: publicOrderRate,
	}

	// Set up routes
	r.setupRoutes()

	return r
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// setupRoutes sets up the routes for the router
func (r *Router) setupRoutes() {
	// Public routes
	r.mux.Handle("/api/auth/register", http.HandlerFunc(r.authHandler.HandleRegister))
	r.mux.Handle("/api/auth/login", http.HandlerFunc(r.authHandler.HandleLogin))
	r.mux.Handle("/api/client-orders/menu", http.HandlerFunc(r.clientOrderHandler.HandleMenu))
	r.mux.Handle("/api/client-orders", middleware.RateLimit(r.publicOrderRate)(http.HandlerFunc(r.clientOrderHandler.HandleSubmit)))
	r.mux.Handle("/api/client-orders/status/", http.HandlerFunc(r.clientOrderHandler.HandleStatus))
	r.mux.Handle("/api/health", http.HandlerFunc(r.handleHealth))
	r.mux.Handle("/ws", http.HandlerFunc(r.handleWebSocket))

	// Protected routes
	apiHandler := http.NewServeMux()
	apiHandler.Handle("/auth/me", http.HandlerFunc(r.authHandler.HandleMe))
	apiHandler.Handle("/users", middleware.RequireAdmin(http.HandlerFunc(r.userHandler.HandleUsers)))
	apiHandler.Handle("/users/", middleware.RequireAdmin(http.HandlerFunc(r.userHandler.HandleUsers)))
	apiHandler.Handle("/sales", http.HandlerFunc(r.saleHandler.HandleSales))
	apiHandler.Handle("/sales/", http.HandlerFunc(r.saleHandler.HandleSales))
	apiHandler.Handle("/orders", http.HandlerFunc(r.orderHandler.HandleOrders))
	apiHandler.Handle("/orders/", http.HandlerFunc(r.orderHandler.HandleOrders))
	apiHandler.Handle("/client-orders/", http.HandlerFunc(r.clientOrderHandler.HandleStaff))

	// Apply middleware to protected routes
	apiChain := middleware.Auth(r.auth)(apiHandler)

	r.mux.Handle("/api/", http.StripPrefix("/api", apiChain))
}

// handleHealth reports server and database health
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		api.WriteError(w, api.Validation("method not allowed"))
		return
	}

	if err := r.database.HealthCheck(req.Context()); err != nil {
		api.WriteError(w, api.Internal("database unavailable", err))
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{"status": "ok"})
}

// handleWebSocket handles WebSocket connections from staff screens
func (r *Router) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	userID := req.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	clientType := websockets.ClientType(req.URL.Query().Get("client_type"))
	if !websockets.ValidClientType(clientType) {
		http.Error(w, "invalid client_type", http.StatusBadRequest)
		return
	}

	conn, err := websockets.Upgrader.Upgrade(w, req, nil)
	if err != nil {
		// If upgrading fails, the upgrader has already written the error to the response
		return
	}

	websockets.ServeWs(r.hub, conn, userID, clientType)
}
