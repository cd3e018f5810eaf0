package model

import "math"

type StudentRole string

const (
	RoleStudent    StudentRole = "estudiante"
	RoleInstructor StudentRole = "profesor"
	RoleAdmin      StudentRole = "admin"
)

type QuirkType string

const (
	QuirkEmission       QuirkType = "emision"
	QuirkTransformation QuirkType = "transformacion"
	QuirkMutation       QuirkType = "mutacion"
)

// Quirk es el poder registrado de un estudiante.
// swagger:model Quirk
type Quirk struct {
	Name        string    `gorm:"size:50;not null" json:"nombre"`
	Description string    `gorm:"size:200;not null" json:"descripcion"`
	Type        QuirkType `gorm:"size:20;not null" json:"tipo"`
}

// Stats son los cinco atributos de habilidad, acotados a [1,10].
// swagger:model Stats
type Stats struct {
	Strength     float64 `gorm:"default:1" json:"fuerza"`
	Speed        float64 `gorm:"default:1" json:"velocidad"`
	Technique    float64 `gorm:"default:1" json:"tecnica"`
	Intelligence float64 `gorm:"default:1" json:"inteligencia"`
	Cooperation  float64 `gorm:"default:1" json:"cooperacion"`
}

// swagger:model Student
type Student struct {
	BaseModel
	Name     string      `gorm:"size:50;not null" json:"nombre"`
	HeroName string      `gorm:"size:30" json:"nombreHeroe"`
	Email    string      `gorm:"size:100;unique;not null" json:"email"`
	Password string      `gorm:"size:100;not null" json:"-"`
	Avatar   string      `gorm:"size:255" json:"avatar"`
	Quirk    Quirk       `gorm:"embedded;embeddedPrefix:quirk_" json:"quirk"`
	Class    string      `gorm:"size:5;not null" json:"clase"`
	Level    int         `gorm:"default:1" json:"nivel"`
	Score    int         `gorm:"default:0" json:"puntuacion"`
	Role     StudentRole `gorm:"size:15;default:'estudiante'" json:"rol"`
	Stats    Stats       `gorm:"embedded;embeddedPrefix:stat_" json:"estadisticas"`

	// Derivadas de Training: el instructor y la tabla de unión son la única
	// fuente de verdad, no se mantienen listas duplicadas.
	CreatedTrainings  []*Training `gorm:"foreignKey:InstructorID" json:"entrenamientosCreados,omitempty"`
	AttendedTrainings []*Training `gorm:"many2many:entrenamiento_participantes" json:"entrenamientosAsistidos,omitempty"`
}

func (Student) TableName() string {
	return "estudiantes"
}

// PowerLevel es el promedio redondeado de las cinco estadísticas.
func (s *Student) PowerLevel() int {
	sum := s.Stats.Strength + s.Stats.Speed + s.Stats.Technique + s.Stats.Intelligence + s.Stats.Cooperation
	return int(math.Round(sum / 5))
}

// DisplayName prefiere el nombre de héroe cuando existe.
func (s *Student) DisplayName() string {
	if s.HeroName != "" {
		return s.HeroName
	}
	return s.Name
}

// StudentSummary es la proyección pública usada al resolver referencias
// (instructor y participantes de un entrenamiento).
// swagger:model StudentSummary
type StudentSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"nombre"`
	HeroName string `json:"nombreHeroe"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Class    string `json:"clase"`
	Level    int    `json:"nivel"`
}

func (s *Student) Summary() StudentSummary {
	return StudentSummary{
		ID:       s.ID,
		Name:     s.Name,
		HeroName: s.HeroName,
		Email:    s.Email,
		Avatar:   s.Avatar,
		Class:    s.Class,
		Level:    s.Level,
	}
}

var Classes = []string{"1-A", "1-B", "2-A", "2-B", "3-A", "3-B"}
