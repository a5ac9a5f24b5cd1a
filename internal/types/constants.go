package types

// ContextUserKey is the gin context key holding the authenticated principal.
const ContextUserKey = "user"

// Programmes is the fixed catalog of named regional programmes a convention
// can be attached to.
var Programmes = []string{
	"Programme de Développement Régional",
	"Programme de Réduction des Disparités Territoriales et Sociales",
	"Initiative Nationale pour le Développement Humain",
	"Programme de Mise à Niveau Urbaine",
	"Programme de Développement Rural Intégré",
	"Fonds de Développement Agricole",
	"Programme National d'Assainissement",
}
