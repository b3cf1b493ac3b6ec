package entity

import "time"

// Tipos de ajuste manual de stock.
const (
	AdjustmentTypeCount      = "count"      // conteo físico
	AdjustmentTypeDamage     = "damage"     // daño
	AdjustmentTypeCorrection = "correction" // corrección de registro
	AdjustmentTypeWriteOff   = "write_off"  // baja definitiva
)

// ValidAdjustmentType indica si el tipo de ajuste es uno de los conocidos.
func ValidAdjustmentType(t string) bool {
	switch t {
	case AdjustmentTypeCount, AdjustmentTypeDamage, AdjustmentTypeCorrection, AdjustmentTypeWriteOff:
		return true
	}
	return false
}

// StockAdjustment corrección manual de stock con motivo obligatorio.
// QuantityChange es con signo. Cada ajuste produce exactamente un
// StockMovement emparejado. Append-only.
type StockAdjustment struct {
	ID             string
	ProductID      string
	LocationID     string
	AdjustmentType string
	QuantityChange int64
	Reason         string
	AdjustedBy     string
	CreatedAt      time.Time
}
