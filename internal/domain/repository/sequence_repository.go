package repository

// Tipos de documento numerados.
const (
	DocTypePurchaseOrder = "PO"
	DocTypeGoodsReceipt  = "GR"
)

// SequenceRepository define el puerto del contador atómico de numeración de
// documentos (DIP). Reemplaza al count(*)+1 original, que era una condición
// de carrera bajo creación concurrente: la implementación debe garantizar
// que dos llamadas concurrentes al mismo (docType, year) nunca devuelvan el
// mismo valor.
type SequenceRepository interface {
	// Next devuelve el siguiente valor de la secuencia (docType, year),
	// empezando en 1.
	Next(docType string, year int) (int64, error)
}
