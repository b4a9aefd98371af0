package model

// Therapy is an entry of the public therapy catalogue.
type Therapy struct {
	ID          string   `json:"id"`
	Title       string   `json:"titulo"`
	Description string   `json:"descripcion"`
	Image       string   `json:"imagen"`
	Icon        string   `json:"icono"`
	Benefits    []string `json:"beneficios"`
}

// ContactMessage is the public contact form.
type ContactMessage struct {
	Name    string `json:"nombre" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,simple_email"`
	Message string `json:"mensaje" validate:"required,max=2000"`
}
