package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"

	"github.com/vortizm/tienda-creativa/internal/database"
	"github.com/vortizm/tienda-creativa/internal/model"
)

// AdminHandler agrupa las páginas del panel del personal: catálogo,
// insumos y pedidos.
type AdminHandler struct {
	Store     *sessions.CookieStore
	UploadDir string
}

// getSessionData busca los datos del usuario de la sesión.
func (h *AdminHandler) getSessionData(c *gin.Context) (model.Usuario, bool) {
	session, _ := h.Store.Get(c.Request, SessionName)
	userID, ok := session.Values["userID"].(uint)
	if !ok {
		return model.Usuario{}, false
	}

	var user model.Usuario
	if err := database.DB.First(&user, userID).Error; err != nil {
		return model.Usuario{}, false
	}
	return user, true
}

func (h *AdminHandler) flash(c *gin.Context, mensaje, tipo string) {
	session, _ := h.Store.Get(c.Request, SessionName)
	session.AddFlash(mensaje, tipo)
	session.Save(c.Request, c.Writer)
}

// ShowDashboard renderiza el panel principal con los contadores.
func (h *AdminHandler) ShowDashboard(c *gin.Context) {
	user, _ := h.getSessionData(c)

	var totalProductos, totalInsumos, pedidosAbiertos int64
	database.DB.Model(&model.Producto{}).Count(&totalProductos)
	database.DB.Model(&model.Insumo{}).Count(&totalInsumos)
	database.DB.Model(&model.Pedido{}).
		Where("estado NOT IN ?", []model.EstadoPedido{model.EstadoFinalizada, model.EstadoCancelada}).
		Count(&pedidosAbiertos)

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"User":            user,
		"TotalProductos":  totalProductos,
		"TotalInsumos":    totalInsumos,
		"PedidosAbiertos": pedidosAbiertos,
	})
}

// --- Categorías ---

func (h *AdminHandler) ShowCategorias(c *gin.Context) {
	user, _ := h.getSessionData(c)
	exito, errores := leerFlashes(h.Store, c)

	var categorias []model.Categoria
	if err := database.DB.Preload("Productos").Find(&categorias).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error al cargar las categorías.")
		return
	}

	c.HTML(http.StatusOK, "admin_categorias.html", gin.H{
		"User":           user,
		"Categorias":     categorias,
		"FlashesSuccess": exito,
		"FlashesError":   errores,
	})
}

func (h *AdminHandler) ProcessNewCategoria(c *gin.Context) {
	nombre := c.PostForm("nombre")
	if nombre == "" {
		h.flash(c, "El nombre de la categoría es obligatorio.", "error")
		c.Redirect(http.StatusFound, "/admin/categorias")
		return
	}

	categoria := model.Categoria{Nombre: nombre, Slug: c.PostForm("slug")}
	if err := database.DB.Create(&categoria).Error; err != nil {
		h.flash(c, "Error al crear la categoría. ¿Ya existe ese nombre?", "error")
		c.Redirect(http.StatusFound, "/admin/categorias")
		return
	}

	h.flash(c, "Categoría creada con éxito.", "success")
	c.Redirect(http.StatusFound, "/admin/categorias")
}

// DeleteCategoria elimina la categoría y, en cascada, sus productos y
// las imágenes de estos.
func (h *AdminHandler) DeleteCategoria(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "ID inválido.")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var productos []model.Producto
		if err := tx.Where("categoria_id = ?", id).Find(&productos).Error; err != nil {
			return err
		}
		for _, p := range productos {
			if err := h.eliminarProducto(tx, &p); err != nil {
				return err
			}
		}
		return tx.Delete(&model.Categoria{}, id).Error
	})
	if err != nil {
		h.flash(c, "Error al eliminar la categoría.", "error")
		c.Redirect(http.StatusFound, "/admin/categorias")
		return
	}

	h.flash(c, "Categoría eliminada.", "success")
	c.Redirect(http.StatusFound, "/admin/categorias")
}
