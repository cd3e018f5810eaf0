package model

import "time"

type TrainingType string

const (
	TypeCombat           TrainingType = "combate"
	TypeRescue           TrainingType = "rescate"
	TypeQuirkDevelopment TrainingType = "quirk-development"
	TypeEndurance        TrainingType = "resistencia"
	TypeStrategy         TrainingType = "estrategia"
	TypeTeamwork         TrainingType = "trabajo-en-equipo"
	TypePracticalMission TrainingType = "mision-practica"
)

var TrainingTypes = []TrainingType{
	TypeCombat,
	TypeRescue,
	TypeQuirkDevelopment,
	TypeEndurance,
	TypeStrategy,
	TypeTeamwork,
	TypePracticalMission,
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "principiante"
	DifficultyIntermediate Difficulty = "intermedio"
	DifficultyAdvanced     Difficulty = "avanzado"
	DifficultyExpert       Difficulty = "experto"
)

type TrainingStatus string

const (
	StatusScheduled  TrainingStatus = "programado"
	StatusInProgress TrainingStatus = "en-curso"
	StatusCompleted  TrainingStatus = "completado"
	StatusCancelled  TrainingStatus = "cancelado"
)

var Locations = []string{
	"Gimnasio Alfa",
	"Gimnasio Beta",
	"Gimnasio Gamma",
	"Campo de Entrenamiento A",
	"Campo de Entrenamiento B",
	"Ciudad de Entrenamiento",
	"Zona de Desastres",
	"Laboratorio de Quirks",
	"Piscina de Rescate",
	"Sala de Combate",
}

// IsValidLocation valida contra la lista fija; las ubicaciones llevan
// espacios, así que no sirve una regla oneof del validador.
func IsValidLocation(location string) bool {
	for _, l := range Locations {
		if l == location {
			return true
		}
	}
	return false
}

// Rewards otorgadas a cada participante al completar el entrenamiento.
// swagger:model Rewards
type Rewards struct {
	Experience int `gorm:"default:10" json:"experiencia"`
	Points     int `gorm:"default:5" json:"puntos"`
}

// swagger:model Training
type Training struct {
	BaseModel
	Title        string         `gorm:"size:100;not null" json:"titulo"`
	Description  string         `gorm:"size:1000;not null" json:"descripcion"`
	StartsAt     time.Time      `gorm:"not null;index" json:"fechaHora"`
	Location     string         `gorm:"size:50;not null" json:"ubicacion"`
	Image        string         `gorm:"size:255" json:"imagen"`
	InstructorID uint           `gorm:"not null;index" json:"-"`
	Instructor   *Student       `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Participants []*Student     `gorm:"many2many:entrenamiento_participantes" json:"-"`
	MaxCapacity  int            `gorm:"not null" json:"capacidadMaxima"`
	MinLevel     int            `gorm:"default:1;index" json:"nivelRequerido"`
	Type         TrainingType   `gorm:"size:20;not null;index" json:"tipo"`
	Difficulty   Difficulty     `gorm:"size:15;default:'principiante';index" json:"dificultad"`
	Rewards      Rewards        `gorm:"embedded;embeddedPrefix:reward_" json:"recompensas"`
	Status       TrainingStatus `gorm:"size:15;default:'programado';index" json:"estado"`
	Duration     int            `gorm:"not null" json:"duracion"` // minutos
}

func (Training) TableName() string {
	return "entrenamientos"
}

func (t *Training) ParticipantCount() int {
	return len(t.Participants)
}

func (t *Training) IsFull() bool {
	return len(t.Participants) >= t.MaxCapacity
}

func (t *Training) AvailableSlots() int {
	return t.MaxCapacity - len(t.Participants)
}

func (t *Training) DurationHours() float64 {
	return float64(t.Duration) / 60
}

// HasParticipant consulta la lista precargada, no la base de datos.
func (t *Training) HasParticipant(studentID uint) bool {
	for _, p := range t.Participants {
		if p.ID == studentID {
			return true
		}
	}
	return false
}

// TrainingView es la proyección de salida: referencias resueltas a resúmenes
// y campos derivados calculados, nunca almacenados.
// swagger:model TrainingView
type TrainingView struct {
	Training
	Instructor       *StudentSummary  `json:"instructor,omitempty"`
	Participants     []StudentSummary `json:"participantes"`
	ParticipantCount int              `json:"numeroParticipantes"`
	IsFull           bool             `json:"estaLleno"`
	AvailableSlots   int              `json:"plazasDisponibles"`
	DurationHours    float64          `json:"duracionEnHoras"`
}

func (t *Training) View() *TrainingView {
	v := &TrainingView{
		Training:         *t,
		Participants:     make([]StudentSummary, 0, len(t.Participants)),
		ParticipantCount: t.ParticipantCount(),
		IsFull:           t.IsFull(),
		AvailableSlots:   t.AvailableSlots(),
		DurationHours:    t.DurationHours(),
	}
	if t.Instructor != nil {
		s := t.Instructor.Summary()
		v.Instructor = &s
	}
	for _, p := range t.Participants {
		v.Participants = append(v.Participants, p.Summary())
	}
	return v
}
