package usecase

import (
	"errors"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

// messages holds the user-facing texts of one resource.
type messages struct {
	List      string
	Get       string
	Create    string
	Update    string
	Delete    string
	NotFound  string
	Required  string
	MissingID string
}

var (
	contactMessages = messages{
		List:     "No se pudieron obtener los contactos",
		Get:      "No se pudo obtener el contacto",
		Create:   "No se pudo crear el contacto",
		Update:   "No se pudo actualizar el contacto",
		Delete:   "No se pudo eliminar el contacto",
		NotFound: "Contacto no encontrado",
		Required: "Nombre, apellido y email son obligatorios",
	}
	dealMessages = messages{
		List:      "No se pudieron obtener las oportunidades",
		Get:       "No se pudo obtener la oportunidad",
		Create:    "No se pudo crear la oportunidad",
		Update:    "No se pudo actualizar la oportunidad",
		Delete:    "No se pudo eliminar la oportunidad",
		NotFound:  "Oportunidad no encontrada",
		Required:  "El título y el contacto son obligatorios",
		MissingID: "No se pudo identificar la oportunidad",
	}
	taskMessages = messages{
		List:      "No se pudieron obtener las tareas",
		Get:       "No se pudo obtener la tarea",
		Create:    "No se pudo crear la tarea",
		Update:    "No se pudo actualizar la tarea",
		Delete:    "No se pudo eliminar la tarea",
		NotFound:  "Tarea no encontrada",
		Required:  "El título de la tarea es obligatorio",
		MissingID: "No se pudo identificar la tarea",
	}
	interactionMessages = messages{
		List:     "No se pudieron obtener las interacciones",
		Get:      "No se pudo obtener la interacción",
		Create:   "No se pudo registrar la interacción",
		Update:   "No se pudo actualizar la interacción",
		Delete:   "No se pudo eliminar la interacción",
		NotFound: "Interacción no encontrada",
		Required: "El canal y el resumen son obligatorios",
	}
)

const (
	msgEmailTaken       = "Ya existe un contacto con ese email"
	msgInvalidReference = "El registro relacionado no existe"
)

// fail turns a repository error into the error the handlers report.
func (m messages) fail(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case IsDomainError(err):
		return err
	case errors.Is(err, entity.ErrNotFound):
		return notFoundError(m.NotFound)
	case errors.Is(err, entity.ErrEmailAlreadyExists):
		return &DomainError{Code: CodeConflict, Message: msgEmailTaken}
	case errors.Is(err, entity.ErrInvalidReference):
		return validationError(msgInvalidReference, nil)
	default:
		return databaseError(operation, err)
	}
}

func (m messages) missingID() error {
	return validationError(m.MissingID, []ValidationError{{Field: "id", Message: "is required"}})
}
