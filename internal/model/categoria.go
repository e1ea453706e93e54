// /internal/model/categoria.go
package model

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Categoria agrupa los productos del catálogo.
type Categoria struct {
	ID     uint   `gorm:"primaryKey"`
	Nombre string `gorm:"size:100;not null;uniqueIndex"`
	Slug   string `gorm:"size:100;uniqueIndex"`

	Productos []Producto `gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeSave deriva el slug a partir del nombre cuando no fue indicado.
// Un slug ya asignado nunca se regenera.
func (cat *Categoria) BeforeSave(tx *gorm.DB) error {
	if cat.Slug == "" {
		cat.Slug = slug.Make(cat.Nombre)
	}
	return nil
}
