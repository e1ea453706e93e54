package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vortizm/tienda-creativa/internal/catalogo"
	"github.com/vortizm/tienda-creativa/internal/database"
	"github.com/vortizm/tienda-creativa/internal/model"
)

// ShowCatalogo renderiza la página principal del catálogo, con los
// filtros opcionales ?categoria= y ?q=.
func ShowCatalogo(c *gin.Context) {
	categoriaSlug := c.Query("categoria")
	query := c.Query("q")

	var categorias []model.Categoria
	if err := database.DB.Find(&categorias).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error al cargar el catálogo.")
		return
	}

	productos, err := catalogo.Filtrar(database.DB, categoriaSlug, query)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error al cargar el catálogo.")
		return
	}

	destacados, err := catalogo.Destacados(database.DB)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error al cargar el catálogo.")
		return
	}

	c.HTML(http.StatusOK, "catalogo.html", gin.H{
		"Productos":       productos,
		"Categorias":      categorias,
		"Query":           query,
		"CategoriaActiva": categoriaSlug,
		"Destacados":      destacados,
	})
}

// ShowProductoDetalle renderiza el detalle de un producto por slug.
func ShowProductoDetalle(c *gin.Context) {
	producto, err := catalogo.PorSlug(database.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.HTML(http.StatusNotFound, "404.html", gin.H{
				"Mensaje": "El producto que buscas no existe.",
			})
			return
		}
		c.String(http.StatusInternalServerError, "Error al cargar el producto.")
		return
	}

	c.HTML(http.StatusOK, "producto_detalle.html", gin.H{
		"Producto": producto,
		"Imagenes": producto.Imagenes,
	})
}
