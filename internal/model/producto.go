// /internal/model/producto.go
package model

import (
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Producto representa un artículo del catálogo público.
type Producto struct {
	ID          uint            `gorm:"primaryKey"`
	Nombre      string          `gorm:"size:200;not null"`
	Slug        string          `gorm:"size:200;uniqueIndex"`
	Descripcion string          `gorm:"type:text"`
	CategoriaID uint            `gorm:"not null;index"`
	Categoria   Categoria       `gorm:"foreignKey:CategoriaID"`
	PrecioBase  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Destacado   bool            `gorm:"default:false"`

	Imagenes []ProductoImagen `gorm:"constraint:OnDelete:CASCADE"`
}

func (p *Producto) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Nombre)
	}
	return nil
}

// ProductoImagen guarda la ruta de una imagen subida para un producto.
// El límite de 3 imágenes por producto se aplica en el formulario del
// panel, no en la base de datos.
type ProductoImagen struct {
	ID         uint   `gorm:"primaryKey"`
	ProductoID uint   `gorm:"not null;index"`
	Imagen     string `gorm:"not null"`
}
