package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vortizm/tienda-creativa/internal/database"
	"github.com/vortizm/tienda-creativa/internal/model"
)

// ShowPedidos lista los pedidos, con filtros opcionales por estado,
// estado de pago y plataforma de origen.
func (h *AdminHandler) ShowPedidos(c *gin.Context) {
	user, _ := h.getSessionData(c)
	exito, errores := leerFlashes(h.Store, c)

	tx := database.DB.Preload("ProductoReferencia").Order("fecha_creacion desc")
	if estado := c.Query("estado"); estado != "" {
		tx = tx.Where("estado = ?", estado)
	}
	if pago := c.Query("estado_pago"); pago != "" {
		tx = tx.Where("estado_pago = ?", pago)
	}
	if origen := c.Query("plataforma_origen"); origen != "" {
		tx = tx.Where("plataforma_origen = ?", origen)
	}

	var pedidos []model.Pedido
	if err := tx.Find(&pedidos).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error al cargar los pedidos.")
		return
	}

	c.HTML(http.StatusOK, "admin_pedidos.html", gin.H{
		"User":           user,
		"Pedidos":        pedidos,
		"Estados":        model.EstadosPedido(),
		"EstadosPago":    model.EstadosPago(),
		"Plataformas":    model.PlataformasOrigen(),
		"FlashesSuccess": exito,
		"FlashesError":   errores,
	})
}

// ShowEditPedidoForm renderiza el formulario de edición de un pedido.
// El token, la fecha de creación y la URL de seguimiento son de solo
// lectura.
func (h *AdminHandler) ShowEditPedidoForm(c *gin.Context) {
	user, _ := h.getSessionData(c)
	exito, errores := leerFlashes(h.Store, c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "ID inválido.")
		return
	}

	var pedido model.Pedido
	if err := database.DB.
		Preload("ProductoReferencia").
		Preload("ImagenesReferencia").
		First(&pedido, id).Error; err != nil {
		c.String(http.StatusNotFound, "Pedido no encontrado.")
		return
	}

	var productos []model.Producto
	database.DB.Find(&productos)

	// El select del producto de referencia compara contra este valor;
	// cero significa sin referencia.
	var productoRefID uint
	if pedido.ProductoReferenciaID != nil {
		productoRefID = *pedido.ProductoReferenciaID
	}

	c.HTML(http.StatusOK, "admin_pedido_form.html", gin.H{
		"User":           user,
		"Pedido":         &pedido,
		"ProductoRefID":  productoRefID,
		"Productos":      productos,
		"Estados":        model.EstadosPedido(),
		"EstadosPago":    model.EstadosPago(),
		"Plataformas":    model.PlataformasOrigen(),
		"URLSeguimiento": urlSeguimiento(c, pedido.TokenSeguimiento),
		"FlashesSuccess": exito,
		"FlashesError":   errores,
	})
}

// ProcessEditPedidoForm aplica los cambios del personal sobre un
// pedido. La única regla dura: no se puede pasar a FINALIZADA si el
// pago no está en PAGADO; en ese caso se rechaza la edición completa
// y el pedido queda como estaba.
func (h *AdminHandler) ProcessEditPedidoForm(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "ID inválido.")
		return
	}

	var pedido model.Pedido
	if err := database.DB.First(&pedido, id).Error; err != nil {
		c.String(http.StatusNotFound, "Pedido no encontrado.")
		return
	}

	volver := "/admin/pedidos/" + c.Param("id") + "/editar"

	estado := model.EstadoPedido(c.PostForm("estado"))
	estadoPago := model.EstadoPago(c.PostForm("estado_pago"))
	origen := model.PlataformaOrigen(c.PostForm("plataforma_origen"))
	if !estado.Valido() || !estadoPago.Valido() || !origen.Valida() {
		h.flash(c, "Estado, estado de pago o plataforma inválidos.", "error")
		c.Redirect(http.StatusFound, volver)
		return
	}

	montoTotal, err := decimal.NewFromString(c.PostForm("monto_total"))
	if err != nil || montoTotal.IsNegative() {
		h.flash(c, "El monto total es inválido.", "error")
		c.Redirect(http.StatusFound, volver)
		return
	}
	montoAbonado, err := decimal.NewFromString(c.PostForm("monto_abonado"))
	if err != nil || montoAbonado.IsNegative() {
		h.flash(c, "El monto abonado es inválido.", "error")
		c.Redirect(http.StatusFound, volver)
		return
	}

	nombre := c.PostForm("nombre_cliente")
	descripcion := c.PostForm("descripcion_solicitada")
	if nombre == "" || descripcion == "" {
		h.flash(c, "El nombre del cliente y la descripción son campos obligatorios.", "error")
		c.Redirect(http.StatusFound, volver)
		return
	}

	// Regla de negocio: FINALIZADA exige pago completo. Se evalúa con
	// los valores nuevos y, si falla, no se persiste nada del envío.
	if estado == model.EstadoFinalizada && estadoPago != model.PagoPagado {
		h.flash(c, `ERROR: No se puede finalizar un pedido si el estado de pago no es "PAGADO".`, "error")
		c.Redirect(http.StatusFound, volver)
		return
	}

	var productoRefID *uint
	if idStr := c.PostForm("producto_referencia"); idStr != "" {
		if refID, perr := strconv.ParseUint(idStr, 10, 32); perr == nil {
			var p model.Producto
			if database.DB.First(&p, refID).Error == nil {
				productoRefID = &p.ID
			}
		}
	}

	var fechaNecesidad *time.Time
	if fechaStr := c.PostForm("fecha_necesidad"); fechaStr != "" {
		fecha, perr := time.Parse("2006-01-02", fechaStr)
		if perr != nil {
			h.flash(c, "La fecha de necesidad es inválida.", "error")
			c.Redirect(http.StatusFound, volver)
			return
		}
		fechaNecesidad = &fecha
	}

	pedido.NombreCliente = nombre
	pedido.EmailCliente = c.PostForm("email_cliente")
	pedido.TelefonoCliente = c.PostForm("telefono_cliente")
	pedido.RedSocialCliente = c.PostForm("red_social_cliente")
	pedido.ProductoReferenciaID = productoRefID
	pedido.DescripcionSolicitada = descripcion
	pedido.FechaNecesidad = fechaNecesidad
	pedido.Estado = estado
	pedido.EstadoPago = estadoPago
	pedido.PlataformaOrigen = origen
	pedido.MontoTotal = montoTotal
	pedido.MontoAbonado = montoAbonado

	if err := database.DB.Save(&pedido).Error; err != nil {
		h.flash(c, "Error al actualizar el pedido.", "error")
		c.Redirect(http.StatusFound, volver)
		return
	}

	h.flash(c, "Pedido actualizado con éxito.", "success")
	c.Redirect(http.StatusFound, "/admin/pedidos")
}
