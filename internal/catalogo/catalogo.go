// /internal/catalogo/catalogo.go
package catalogo

import (
	"strings"

	"github.com/vortizm/tienda-creativa/internal/model"
	"gorm.io/gorm"
)

// Filtrar devuelve los productos del catálogo aplicando los dos filtros
// opcionales de la página pública: slug de categoría y búsqueda libre.
// Cuando vienen los dos se aplican ambos. La búsqueda compara nombre y
// descripción sin distinguir mayúsculas y deduplica los resultados.
func Filtrar(db *gorm.DB, categoriaSlug, query string) ([]model.Producto, error) {
	tx := db.Model(&model.Producto{}).
		Preload("Categoria").
		Preload("Imagenes")

	if categoriaSlug != "" {
		tx = tx.Joins("JOIN categorias ON categorias.id = productos.categoria_id").
			Where("categorias.slug = ?", categoriaSlug)
	}

	if query != "" {
		patron := "%" + strings.ToLower(query) + "%"
		tx = tx.Where("LOWER(productos.nombre) LIKE ? OR LOWER(productos.descripcion) LIKE ?", patron, patron).
			Distinct("productos.*")
	}

	var productos []model.Producto
	if err := tx.Find(&productos).Error; err != nil {
		return nil, err
	}
	return productos, nil
}

// Destacados devuelve los productos marcados como destacados, sin
// aplicar ningún filtro.
func Destacados(db *gorm.DB) ([]model.Producto, error) {
	var productos []model.Producto
	err := db.Preload("Imagenes").
		Where("destacado = ?", true).
		Find(&productos).Error
	if err != nil {
		return nil, err
	}
	return productos, nil
}

// PorSlug busca un producto por su slug, con categoría e imágenes.
func PorSlug(db *gorm.DB, slug string) (*model.Producto, error) {
	var producto model.Producto
	err := db.Preload("Categoria").
		Preload("Imagenes").
		Where("slug = ?", slug).
		First(&producto).Error
	if err != nil {
		return nil, err
	}
	return &producto, nil
}
