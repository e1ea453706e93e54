// /internal/model/insumo.go
package model

// Insumo es material de trabajo (stock interno), independiente del
// flujo de ventas. Solo lo gestiona el personal desde el panel.
type Insumo struct {
	ID                 uint   `gorm:"primaryKey"`
	Nombre             string `gorm:"size:100;not null"`
	Tipo               string `gorm:"size:100;not null"`
	CantidadDisponible int    `gorm:"default:0"`
	Unidad             string `gorm:"size:20"`
	Marca              string `gorm:"size:50"`
	Color              string `gorm:"size:50"`
}
