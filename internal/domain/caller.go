package domain

// CallerContext identifica a quien invoca una operación del núcleo. Se pasa
// como parámetro explícito en lugar de leerse de estado ambiental: las
// operaciones son funciones de (estado persistido, caller, request).
//
// El núcleo asume que la autorización por rol ya ocurrió en la capa HTTP;
// estos datos se usan para trazabilidad (auditoría y logs).
type CallerContext struct {
	UserID        string
	Username      string
	Role          string
	SourceAddress string
}
