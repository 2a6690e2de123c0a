package ports

// Claves del almacenamiento local durable. Mismos nombres que usa el
// cliente web en localStorage, de modo que ambos clientes son intercambiables
// sobre el mismo estado exportado.
const (
	KeyCredential = "authToken"
	KeyCart       = "cart"
)

// KeyValueStore puerto de almacenamiento local durable del cliente
// (equivalente a localStorage). Acceso síncrono y sin buffering; el modelo de
// ejecución del núcleo es de un solo hilo por operación.
type KeyValueStore interface {
	// Get devuelve el valor y true si la clave existe. Ausencia no es error.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Delete es idempotente: borrar una clave ausente no es error.
	Delete(key string) error
}
