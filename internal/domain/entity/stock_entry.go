package entity

import "time"

// StockEntry es la fila del libro de stock: cuántas unidades de un producto
// existen en una tienda. Hay a lo más una entrada por par (producto, tienda)
// y la cantidad nunca es negativa.
//
// La ausencia de entrada significa "nunca abastecido" y se distingue de
// "agotado": un producto sin entrada no es vendible en esa tienda aunque su
// contador global sea positivo.
type StockEntry struct {
	ID        string
	ProductID string
	StoreID   string
	Quantity  int64
	UpdatedAt time.Time
}
