package model

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupModelDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:model_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Categoria{}, &Producto{}, &ProductoImagen{}, &Pedido{}, &ImagenReferencia{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func crearCategoria(t *testing.T, db *gorm.DB, nombre string) Categoria {
	t.Helper()
	cat := Categoria{Nombre: nombre}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

func TestCategoriaSlugDerivado(t *testing.T) {
	db := setupModelDB(t)

	cat := crearCategoria(t, db, "Tazas Personalizadas")
	assert.Equal(t, "tazas-personalizadas", cat.Slug)

	// Un slug indicado a mano no se pisa.
	conSlug := Categoria{Nombre: "Remeras", Slug: "tees"}
	require.NoError(t, db.Create(&conSlug).Error)
	assert.Equal(t, "tees", conSlug.Slug)
}

func TestProductoSlugDerivadoYUnico(t *testing.T) {
	db := setupModelDB(t)
	cat := crearCategoria(t, db, "Tazas")

	p := Producto{Nombre: "Taza Azul", CategoriaID: cat.ID, PrecioBase: decimal.NewFromFloat(12.50)}
	require.NoError(t, db.Create(&p).Error)
	assert.Equal(t, "taza-azul", p.Slug)

	// El slug derivado no se regenera en ediciones posteriores.
	p.Nombre = "Taza Azul Grande"
	require.NoError(t, db.Save(&p).Error)

	var recargado Producto
	require.NoError(t, db.First(&recargado, p.ID).Error)
	assert.Equal(t, "taza-azul", recargado.Slug)

	// Mismo nombre, mismo slug: la base rechaza el duplicado.
	duplicado := Producto{Nombre: "Taza Azul", CategoriaID: cat.ID, PrecioBase: decimal.Zero}
	assert.Error(t, db.Create(&duplicado).Error)
}

func TestPedidoTokenGenerado(t *testing.T) {
	db := setupModelDB(t)

	p1 := Pedido{NombreCliente: "Ana", DescripcionSolicitada: "taza con foto"}
	require.NoError(t, db.Create(&p1).Error)
	assert.NotEqual(t, uuid.Nil, p1.TokenSeguimiento)

	p2 := Pedido{NombreCliente: "Luis", DescripcionSolicitada: "remera estampada"}
	require.NoError(t, db.Create(&p2).Error)
	assert.NotEqual(t, p1.TokenSeguimiento, p2.TokenSeguimiento)
}

func TestPedidoTokenInmutable(t *testing.T) {
	db := setupModelDB(t)

	pedido := Pedido{NombreCliente: "Ana", DescripcionSolicitada: "taza con foto"}
	require.NoError(t, db.Create(&pedido).Error)
	token := pedido.TokenSeguimiento

	pedido.Estado = EstadoAprobado
	require.NoError(t, db.Save(&pedido).Error)

	var recargado Pedido
	require.NoError(t, db.First(&recargado, pedido.ID).Error)
	assert.Equal(t, token, recargado.TokenSeguimiento)
}

func TestPuedeFinalizar(t *testing.T) {
	pedido := Pedido{EstadoPago: PagoPendiente}
	assert.False(t, pedido.PuedeFinalizar())

	pedido.EstadoPago = PagoParcial
	assert.False(t, pedido.PuedeFinalizar())

	pedido.EstadoPago = PagoPagado
	assert.True(t, pedido.PuedeFinalizar())
}

func TestIndicadorPago(t *testing.T) {
	casos := []struct {
		estado EstadoPago
		clase  string
	}{
		{PagoPagado, "pago-completo"},
		{PagoParcial, "pago-parcial"},
		{PagoPendiente, "pago-pendiente"},
	}
	for _, caso := range casos {
		pedido := Pedido{EstadoPago: caso.estado}
		assert.Equal(t, caso.clase, pedido.IndicadorPagoClase())
		assert.NotEmpty(t, pedido.IndicadorPago())
	}
}

func TestEnumsValidos(t *testing.T) {
	for _, e := range EstadosPedido() {
		assert.True(t, e.Valido())
	}
	assert.False(t, EstadoPedido("ENVIADO").Valido())

	for _, e := range EstadosPago() {
		assert.True(t, e.Valido())
	}
	assert.False(t, EstadoPago("GRATIS").Valido())

	for _, p := range PlataformasOrigen() {
		assert.True(t, p.Valida())
	}
	assert.False(t, PlataformaOrigen("TELEGRAM").Valida())
}
