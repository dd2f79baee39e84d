package domain

// AnswerVector es el vector de respuestas ya validado, una por pregunta.
type AnswerVector []int

// MetaprogramScore is a latent trait score on a 0-100 scale. It never
// leaves the service.
type MetaprogramScore struct {
	ID    string
	Name  string
	Score float64
}

// Metaprograms keeps scores in table order.
type Metaprograms []MetaprogramScore

// Score looks a metaprogram up by id.
func (m Metaprograms) Score(id string) (float64, bool) {
	for _, mp := range m {
		if mp.ID == id {
			return mp.Score, true
		}
	}
	return 0, false
}

type Role struct {
	ID         string `json:"role_id"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

type Competency struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}
