package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/runnersutah/pipetrack-api/internal/domain"
)

// LocalStore guarda los adjuntos del ledger como blobs opacos en el sistema
// de archivos local. El ledger solo guarda la referencia (id), nunca los bytes.
type LocalStore struct {
	dir string
}

// NewLocalStore prepara el directorio de adjuntos.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create attachment dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save persiste el contenido y devuelve el id de referencia. La extensión del
// nombre original se conserva para que el archivo abra con su aplicación.
func (s *LocalStore) Save(filename string, r io.Reader) (string, error) {
	id := uuid.New().String() + filepath.Ext(filename)
	f, err := os.Create(filepath.Join(s.dir, id))
	if err != nil {
		return "", fmt.Errorf("create attachment: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write attachment: %w", err)
	}
	return id, nil
}

// Open abre un adjunto por id. El que llama debe cerrar el reader.
func (s *LocalStore) Open(id string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(id)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("open attachment: %w", err)
	}
	return f, nil
}

// Delete elimina un adjunto por id. Borrar un adjunto inexistente no es error.
func (s *LocalStore) Delete(id string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(id)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}
