// Package localstore implementa el puerto KeyValueStore sobre el sistema de
// archivos: un archivo por clave bajo un directorio de estado. Es el
// equivalente durable del localStorage del cliente web; la copia en disco es
// la fuente de verdad entre reinicios del proceso.
package localstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store almacenamiento clave/valor basado en archivos.
type Store struct {
	dir string
}

// New crea (si hace falta) el directorio de estado y devuelve el store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("crear directorio de estado %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get lee el valor de la clave; (nil, false, nil) si no existe.
func (s *Store) Get(key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leer %s: %w", key, err)
	}
	return raw, true, nil
}

// Set escribe el valor con write-then-rename para que una caída a mitad de
// escritura nunca deje un archivo truncado.
func (s *Store) Set(key string, value []byte) error {
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("renombrar %s: %w", key, err)
	}
	return nil
}

// Delete borra la clave; borrar una clave ausente no es error.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("borrar %s: %w", key, err)
	}
	return nil
}
