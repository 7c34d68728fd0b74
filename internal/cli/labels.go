package cli

var labels = map[string]string{
	"LEAD":           "Lead",
	"ACTIVE":         "Activo",
	"CHURNED":        "Churned",
	"QUALIFICATION":  "Calificación",
	"NEEDS_ANALYSIS": "Detección de necesidades",
	"PROPOSAL":       "Propuesta",
	"NEGOTIATION":    "Negociación",
	"WON":            "Ganado",
	"LOST":           "Perdido",
	"OPEN":           "Pendiente",
	"IN_PROGRESS":    "En proceso",
	"COMPLETED":      "Completada",
	"LOW":            "Baja",
	"MEDIUM":         "Media",
	"HIGH":           "Alta",
}

// label translates an enum value, falling back to the raw value.
func label[T ~string](v T) string {
	if l, ok := labels[string(v)]; ok {
		return l
	}
	return string(v)
}

var resourceNames = map[string]string{
	"contacts":     "Contactos",
	"deals":        "Oportunidades",
	"tasks":        "Tareas",
	"interactions": "Interacciones",
}
