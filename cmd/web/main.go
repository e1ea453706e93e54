// /cmd/web/main.go
package main

import (
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"github.com/vortizm/tienda-creativa/internal/database"
	"github.com/vortizm/tienda-creativa/internal/handler"
	"github.com/vortizm/tienda-creativa/internal/model"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error al cargar el archivo .env")
	}

	database.ConnectDB()
	database.SeedStaff()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET no encontrada en el entorno")
	}
	store := sessions.NewCookieStore([]byte(sessionSecret))

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("No se pudo crear el directorio de subidas: %v", err)
	}

	router := gin.Default()

	// Solo detrás de un proxy declarado se cree en los headers
	// X-Forwarded-*; en cualquier otro caso los manda el cliente.
	if proxies := os.Getenv("TRUSTED_PROXIES"); proxies != "" {
		if err := router.SetTrustedProxies(strings.Split(proxies, ",")); err != nil {
			log.Fatalf("TRUSTED_PROXIES inválida: %v", err)
		}
		handler.ConfiarEnProxy(true)
	} else {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Fatalf("No se pudo configurar el router: %v", err)
		}
	}

	router.LoadHTMLGlob("internal/view/templates/*")
	router.Static("/uploads", uploadDir)
	router.Static("/static", "static")

	authHandler := &handler.AuthHandler{Store: store}
	pedidoHandler := &handler.PedidoHandler{Store: store, UploadDir: uploadDir}
	adminHandler := &handler.AdminHandler{Store: store, UploadDir: uploadDir}

	// Sitio público
	router.GET("/", handler.ShowCatalogo)
	router.GET("/producto/:slug", handler.ShowProductoDetalle)
	router.GET("/solicitar", pedidoHandler.ShowSolicitudForm)
	router.POST("/solicitar", pedidoHandler.ProcessSolicitudForm)
	router.GET("/solicitar/:producto_id", pedidoHandler.ShowSolicitudForm)
	router.POST("/solicitar/:producto_id", pedidoHandler.ProcessSolicitudForm)
	router.GET("/seguimiento/:token", pedidoHandler.ShowSeguimiento)

	// Login del personal
	router.GET("/login", authHandler.ShowLoginPage)
	router.POST("/login", authHandler.ProcessLoginForm)
	router.GET("/logout", authHandler.Logout)

	// Panel del personal
	admin := router.Group("/admin", authHandler.AuthRequired(), authHandler.RoleRequired(model.RoleStaff))
	{
		admin.GET("", adminHandler.ShowDashboard)

		admin.GET("/categorias", adminHandler.ShowCategorias)
		admin.POST("/categorias/nueva", adminHandler.ProcessNewCategoria)
		admin.POST("/categorias/:id/eliminar", adminHandler.DeleteCategoria)

		admin.GET("/productos", adminHandler.ShowProductos)
		admin.GET("/productos/nuevo", adminHandler.ShowProductoForm)
		admin.POST("/productos/nuevo", adminHandler.ProcessNewProductoForm)
		admin.GET("/productos/:id/editar", adminHandler.ShowProductoForm)
		admin.POST("/productos/:id/editar", adminHandler.ProcessEditProductoForm)
		admin.POST("/productos/:id/eliminar", adminHandler.DeleteProducto)
		admin.POST("/productos/:id/imagenes/:imagen_id/eliminar", adminHandler.DeleteProductoImagen)

		admin.GET("/insumos", adminHandler.ShowInsumos)
		admin.POST("/insumos/nuevo", adminHandler.ProcessNewInsumoForm)
		admin.POST("/insumos/:id/editar", adminHandler.ProcessEditInsumoForm)
		admin.POST("/insumos/:id/eliminar", adminHandler.DeleteInsumo)
		admin.POST("/insumos/aumentar-stock", adminHandler.ProcessAumentarStock)

		admin.GET("/pedidos", adminHandler.ShowPedidos)
		admin.GET("/pedidos/:id/editar", adminHandler.ShowEditPedidoForm)
		admin.POST("/pedidos/:id/editar", adminHandler.ProcessEditPedidoForm)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Servidor corriendo en el puerto %s", port)
	router.Run(":" + port)
}
