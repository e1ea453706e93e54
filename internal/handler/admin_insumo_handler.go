package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vortizm/tienda-creativa/internal/database"
	"github.com/vortizm/tienda-creativa/internal/model"
)

// IncrementoStock es lo que suma la acción masiva de stock por cada
// insumo seleccionado.
const IncrementoStock = 10

// ShowInsumos renderiza la página de gestión de insumos.
func (h *AdminHandler) ShowInsumos(c *gin.Context) {
	user, _ := h.getSessionData(c)
	exito, errores := leerFlashes(h.Store, c)

	var insumos []model.Insumo
	if err := database.DB.Find(&insumos).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error al cargar los insumos.")
		return
	}

	c.HTML(http.StatusOK, "admin_insumos.html", gin.H{
		"User":           user,
		"Insumos":        insumos,
		"FlashesSuccess": exito,
		"FlashesError":   errores,
	})
}

// ProcessNewInsumoForm procesa el alta de un insumo.
func (h *AdminHandler) ProcessNewInsumoForm(c *gin.Context) {
	nombre := c.PostForm("nombre")
	tipo := c.PostForm("tipo")
	if nombre == "" || tipo == "" {
		h.flash(c, "El nombre y el tipo del insumo son obligatorios.", "error")
		c.Redirect(http.StatusFound, "/admin/insumos")
		return
	}

	cantidad, _ := strconv.Atoi(c.PostForm("cantidad_disponible"))

	insumo := model.Insumo{
		Nombre:             nombre,
		Tipo:               tipo,
		CantidadDisponible: cantidad,
		Unidad:             c.PostForm("unidad"),
		Marca:              c.PostForm("marca"),
		Color:              c.PostForm("color"),
	}
	if err := database.DB.Create(&insumo).Error; err != nil {
		h.flash(c, "Error al guardar el insumo.", "error")
		c.Redirect(http.StatusFound, "/admin/insumos")
		return
	}

	h.flash(c, "Insumo creado con éxito.", "success")
	c.Redirect(http.StatusFound, "/admin/insumos")
}

// ProcessEditInsumoForm procesa la edición de un insumo.
func (h *AdminHandler) ProcessEditInsumoForm(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "ID inválido.")
		return
	}

	var insumo model.Insumo
	if err := database.DB.First(&insumo, id).Error; err != nil {
		c.String(http.StatusNotFound, "Insumo no encontrado.")
		return
	}

	insumo.Nombre = c.PostForm("nombre")
	insumo.Tipo = c.PostForm("tipo")
	insumo.CantidadDisponible, _ = strconv.Atoi(c.PostForm("cantidad_disponible"))
	insumo.Unidad = c.PostForm("unidad")
	insumo.Marca = c.PostForm("marca")
	insumo.Color = c.PostForm("color")

	if err := database.DB.Save(&insumo).Error; err != nil {
		h.flash(c, "Error al actualizar el insumo.", "error")
		c.Redirect(http.StatusFound, "/admin/insumos")
		return
	}

	h.flash(c, "Insumo actualizado con éxito.", "success")
	c.Redirect(http.StatusFound, "/admin/insumos")
}

// DeleteInsumo elimina un insumo.
func (h *AdminHandler) DeleteInsumo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "ID inválido.")
		return
	}

	if err := database.DB.Delete(&model.Insumo{}, id).Error; err != nil {
		h.flash(c, "Error al eliminar el insumo.", "error")
		c.Redirect(http.StatusFound, "/admin/insumos")
		return
	}

	h.flash(c, "Insumo eliminado.", "success")
	c.Redirect(http.StatusFound, "/admin/insumos")
}

// ProcessAumentarStock es la acción masiva: suma IncrementoStock de
// unidades a cada insumo seleccionado.
func (h *AdminHandler) ProcessAumentarStock(c *gin.Context) {
	ids := c.PostFormArray("ids")
	if len(ids) == 0 {
		h.flash(c, "No seleccionaste ningún insumo.", "error")
		c.Redirect(http.StatusFound, "/admin/insumos")
		return
	}

	result := database.DB.Model(&model.Insumo{}).
		Where("id IN ?", ids).
		UpdateColumn("cantidad_disponible", gorm.Expr("cantidad_disponible + ?", IncrementoStock))
	if result.Error != nil {
		h.flash(c, "Error al actualizar el stock.", "error")
		c.Redirect(http.StatusFound, "/admin/insumos")
		return
	}

	h.flash(c, fmt.Sprintf("Se aumentó el stock de %d insumos en %d unidades cada uno.", result.RowsAffected, IncrementoStock), "success")
	c.Redirect(http.StatusFound, "/admin/insumos")
}
