package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrMixedQuantityType    = errors.New("la cantidad debe ser entera o decimal según el tipo de conteo, nunca ambas ni ninguna")
	ErrMissingRequiredField = errors.New("falta un campo requerido de la plantilla")
	ErrProductReferenced    = errors.New("el producto tiene registros de inventario asociados")
	ErrAttachmentNotFound   = errors.New("adjunto no encontrado")
)
