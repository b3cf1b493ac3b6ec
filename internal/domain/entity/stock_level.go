package entity

import "time"

// StockLevel stock materializado por par (producto, ubicación). Una fila por
// par, creada perezosamente en el primer movimiento que la toca y nunca
// eliminada. QuantityOnHand nunca puede quedar negativa; toda mutación pasa
// por el libro de inventario bajo bloqueo de fila.
// QuantityReserved se almacena y reporta pero ninguna operación del núcleo
// la modifica hoy (reserva pendiente de un colaborador externo).
type StockLevel struct {
	ID               string
	ProductID        string
	LocationID       string
	QuantityOnHand   int64
	QuantityReserved int64
	UpdatedAt        time.Time
}

// Available cantidad disponible: en mano menos reservada.
func (s *StockLevel) Available() int64 {
	return s.QuantityOnHand - s.QuantityReserved
}
