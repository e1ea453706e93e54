package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vortizm/tienda-creativa/internal/model"
)

func TestNuevaCategoriaGeneraSlug(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupAdminRoutes(t)

	recorder := postForm(t, router, "/admin/categorias/nueva", map[string]string{
		"nombre": "Cuadros Decorativos",
	})
	assert.Equal(t, http.StatusFound, recorder.Code)

	var categoria model.Categoria
	require.NoError(t, db.First(&categoria, "nombre = ?", "Cuadros Decorativos").Error)
	assert.Equal(t, "cuadros-decorativos", categoria.Slug)
}

func TestNuevaCategoriaNombreDuplicado(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupAdminRoutes(t)

	crearCategoriaTest(t, db, "Mugs")
	postForm(t, router, "/admin/categorias/nueva", map[string]string{"nombre": "Mugs"})

	var cuenta int64
	require.NoError(t, db.Model(&model.Categoria{}).Count(&cuenta).Error)
	assert.Equal(t, int64(1), cuenta)
}

func TestEliminarCategoriaArrastraProductos(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupAdminRoutes(t)

	mugs := crearCategoriaTest(t, db, "Mugs")
	otra := crearCategoriaTest(t, db, "Ropa")
	producto := crearProductoTest(t, db, "Mug Floral", mugs.ID)
	crearProductoTest(t, db, "Remera", otra.ID)

	// Un pedido que referencia al producto debe quedar sin referencia,
	// nunca borrarse.
	pedido := crearPedidoTest(t, db, model.EstadoSolicitado, model.PagoPendiente)
	require.NoError(t, db.Model(&pedido).Update("producto_referencia_id", producto.ID).Error)

	recorder := postForm(t, router, fmt.Sprintf("/admin/categorias/%d/eliminar", mugs.ID), nil)
	assert.Equal(t, http.StatusFound, recorder.Code)

	var cuenta int64
	require.NoError(t, db.Model(&model.Categoria{}).Count(&cuenta).Error)
	assert.Equal(t, int64(1), cuenta)
	require.NoError(t, db.Model(&model.Producto{}).Count(&cuenta).Error)
	assert.Equal(t, int64(1), cuenta)

	var recargado model.Pedido
	require.NoError(t, db.First(&recargado, pedido.ID).Error)
	assert.Nil(t, recargado.ProductoReferenciaID)
}

func TestEliminarProductoDejaPedidoSinReferencia(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupAdminRoutes(t)

	categoria := crearCategoriaTest(t, db, "Mugs")
	producto := crearProductoTest(t, db, "Mug Floral", categoria.ID)

	pedido := crearPedidoTest(t, db, model.EstadoAprobado, model.PagoParcial)
	require.NoError(t, db.Model(&pedido).Update("producto_referencia_id", producto.ID).Error)

	recorder := postForm(t, router, fmt.Sprintf("/admin/productos/%d/eliminar", producto.ID), nil)
	assert.Equal(t, http.StatusFound, recorder.Code)

	var cuenta int64
	require.NoError(t, db.Model(&model.Producto{}).Count(&cuenta).Error)
	assert.Zero(t, cuenta)

	var recargado model.Pedido
	require.NoError(t, db.First(&recargado, pedido.ID).Error)
	assert.Nil(t, recargado.ProductoReferenciaID)
	assert.Equal(t, model.EstadoAprobado, recargado.Estado)
}
