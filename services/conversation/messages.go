package conversation

// User-facing texts, kept in one place. The wording follows the production
// bot this flow replaces.
const (
	msgWelcome = "¡Hola! 👋 Bienvenido al sistema de gestión de turnos."
	msgMenu    = "¿En qué puedo ayudarte hoy?\n" +
		"1. 📅 *Solicitar un turno*\n" +
		"2. ❌ *Cancelar un turno*\n" +
		"3. 📋 *Ver mis turnos*"

	msgFlowStart   = "¡Hola! Vamos a agendar tu turno. Primero necesito algunos datos:"
	msgPromptName  = "¿Cuál es tu nombre completo?"
	msgPromptEmail = "Por favor, ingresa tu correo electrónico para enviarte la confirmación y recordatorios:"

	msgInvalidEmail = "❌ Por favor, ingresa un correo electrónico válido."

	msgPromptService  = "¿Qué servicio necesitas?\n1. ✂️ Corte de cabello ($1,500)\n2. ✂️💈 Corte y barba ($2,000)\n3. 💈 Barba ($1,000)"
	msgInvalidService = "❌ Opción no válida. Por favor, selecciona una opción del 1 al 3."

	msgPromptDate        = "📅 Ingresa la fecha deseada (DD/MM/AAAA):"
	msgInvalidDateFormat = "❌ Formato de fecha inválido. Por favor usa el formato DD/MM/AAAA"
	msgPastDate          = "❌ No se pueden agendar citas en fechas pasadas. Por favor, elige otra fecha."
	msgNoAvailability    = "❌ No hay disponibilidad para la fecha seleccionada. Por favor, elige otra fecha."

	msgPromptTime        = "⏰ ¿A qué hora prefieres tu cita? (HH:MM en formato 24h, por ejemplo: 14:30)"
	msgInvalidTimeFormat = "❌ Formato de hora inválido. Por favor usa el formato HH:MM (ejemplo: 14:30)"
	msgSlotTaken         = "❌ El horario seleccionado no está disponible. Por favor, elige otro horario."

	msgStateCorrupted = "❌ Error al obtener la información de la cita. Por favor, comienza de nuevo."

	msgPromptSummary      = "📝 Por favor, confirma los datos de tu turno:"
	msgPromptConfirmation = "Por favor, responde SI o NO para confirmar tu turno:"
	msgConfirmRetry       = "❌ Respuesta no válida. Por favor, responde SI o NO para confirmar tu turno."

	msgGenericError = "❌ Ocurrió un error al procesar tu solicitud. Por favor, inténtalo de nuevo más tarde."
	msgFarewell     = "❌ Turno cancelado. Si cambias de opinión, ¡estaré encantado de ayudarte a agendar otro turno!"

	msgPromptCancelID = "Por favor, ingresa el número de turno que deseas cancelar:"

	msgNoTurnos = "No tienes turnos programados.\n\n¿Te gustaría agendar uno? Escribe *solicitar turno*"
)
