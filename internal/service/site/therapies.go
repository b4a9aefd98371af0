package site

import "github.com/jwalitptl/therapy-portal/internal/model"

var therapies = []model.Therapy{
	{
		ID:          "logopedia",
		Title:       "Logopedia Infantil",
		Description: "Intervención individual para rehabilitar alteraciones del habla y el lenguaje.",
		Image:       "https://images.unsplash.com/photo-1509099836639-18ba3d9b7d80?auto=format&fit=crop&w=800&q=80",
		Icon:        "🗣️",
		Benefits:    []string{"Mejora en la expresión verbal", "Reducción de tartamudeo", "Confianza al comunicarse"},
	},
	{
		ID:          "ocupacional",
		Title:       "Terapia Ocupacional",
		Description: "Mejora de actividades cotidianas, integración sensorial y psicomotricidad.",
		Image:       "https://images.unsplash.com/photo-1503676260728-1c00da094a0b?auto=format&fit=crop&w=800&q=80",
		Icon:        "🧠",
		Benefits:    []string{"Motricidad fina", "Autonomía personal", "Integración sensorial"},
	},
	{
		ID:          "atencion-temprana",
		Title:       "Atención Temprana",
		Description: "Estimulación temprana para fortalecer áreas cognitivas y motoras.",
		Image:       "https://images.unsplash.com/photo-1469474968028-56623f02e42e?auto=format&fit=crop&w=800&q=80",
		Icon:        "👶",
		Benefits:    []string{"Cognición", "Comunicación", "Vínculo emocional"},
	},
	{
		ID:          "psicologia",
		Title:       "Psicología Infantil",
		Description: "Análisis de conducta y procesos mentales con enfoque terapéutico.",
		Image:       "https://images.unsplash.com/photo-1515378791036-0648a3ef77b2?auto=format&fit=crop&w=800&q=80",
		Icon:        "🧘",
		Benefits:    []string{"Regulación emocional", "Autoestima", "Resolución de conflictos"},
	},
	{
		ID:          "psicopedagogia",
		Title:       "Psicopedagogía",
		Description: "Técnicas de estudio y apoyo para dificultades del aprendizaje.",
		Image:       "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d?auto=format&fit=crop&w=800&q=80",
		Icon:        "📚",
		Benefits:    []string{"Estrategias de aprendizaje", "Organización académica", "Funciones ejecutivas"},
	},
	{
		ID:          "fisioterapia",
		Title:       "Fisioterapia Infantil",
		Description: "Trabajo en habilidades motoras, integración sensorial y coordinación.",
		Image:       "https://images.unsplash.com/photo-1526401485004-8a1c41b4c6c8?auto=format&fit=crop&w=800&q=80",
		Icon:        "🏃",
		Benefits:    []string{"Coordinación", "Fortaleza", "Equilibrio"},
	},
}
