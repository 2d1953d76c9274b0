package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// UserError es una violación de regla de negocio que aborta la operación y
// se muestra tal cual al usuario final (equivalente a una validación de UI).
// No es reintentable: el usuario debe corregir la situación antes de repetir.
type UserError struct {
	Code    string
	Message string
}

func (e *UserError) Error() string { return e.Message }

// NewUserError construye un error de validación visible para el usuario.
func NewUserError(code, message string) *UserError {
	return &UserError{Code: code, Message: message}
}

// AsUserError extrae el UserError de la cadena de errores, si existe.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// Códigos de UserError usados por los casos de uso de compras.
const (
	CodeQtyBelowReceived   = "QTY_BELOW_RECEIVED"
	CodeCancelDoneReceipt  = "CANCEL_DONE_RECEIPT"
	CodeMissingVendorLoc   = "MISSING_VENDOR_LOCATION"
	CodeInvalidTransition  = "INVALID_STATE_TRANSITION"
	CodeNothingToReturn    = "NOTHING_TO_RETURN"
	CodePickingNotReady    = "PICKING_NOT_READY"
	CodeIncompatibleUoM    = "INCOMPATIBLE_UOM"
	CodeMissingPickingType = "MISSING_PICKING_TYPE"
	CodeReturnExceeds      = "RETURN_EXCEEDS_DONE"
)
