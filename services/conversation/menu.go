package conversation

import "turnobot/models"

// serviceMenu is the closed menu of bookable services. Keys are the literal
// replies the user may send at the service step; anything else is rejected.
// The map is immutable configuration, safe to share across conversations.
var serviceMenu = map[string]models.ServiceOption{
	"1": {Nombre: "Corte de cabello", Duracion: 30, Precio: 1500, EventTypeID: 1},
	"2": {Nombre: "Corte y barba", Duracion: 45, Precio: 2000, EventTypeID: 2},
	"3": {Nombre: "Barba", Duracion: 30, Precio: 1000, EventTypeID: 3},
}

// ServiceMenu exposes the menu for tests and listings.
func ServiceMenu() map[string]models.ServiceOption {
	out := make(map[string]models.ServiceOption, len(serviceMenu))
	for k, v := range serviceMenu {
		out[k] = v
	}
	return out
}
