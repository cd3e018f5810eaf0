package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/repository"
	"hero_academy_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const rankingCacheTTL = 60 * time.Second

// StudentService gestiona perfiles y el ranking de héroes.
type StudentService struct {
	StudentRepo *repository.StudentRepository
	Redis       *redis.Client
}

func NewStudentService(studentRepo *repository.StudentRepository, rdb *redis.Client) *StudentService {
	return &StudentService{
		StudentRepo: studentRepo,
		Redis:       rdb,
	}
}

// Profile devuelve el estudiante con sus entrenamientos creados y asistidos.
func (s *StudentService) Profile(id uint) (*model.Student, error) {
	student, err := s.StudentRepo.FindByIDWithTrainings(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// UpdateProfile aplica un parche parcial sobre el perfil propio.
func (s *StudentService) UpdateProfile(id uint, fields map[string]interface{}) (*model.Student, error) {
	if _, err := s.StudentRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	if len(fields) > 0 {
		if err := s.StudentRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}

	return s.StudentRepo.FindByID(id)
}

// RankingEntry es la proyección pública del ranking.
type RankingEntry struct {
	ID         uint        `json:"id"`
	Name       string      `json:"nombre"`
	HeroName   string      `json:"nombreHeroe"`
	Class      string      `json:"clase"`
	Level      int         `json:"nivel"`
	Score      int         `json:"puntuacion"`
	Avatar     string      `json:"avatar"`
	Stats      model.Stats `json:"estadisticas"`
	PowerLevel int         `json:"nivelPoder"`
}

// Ranking ordena por puntuación y nivel descendentes. El resultado se
// cachea en Redis con un TTL corto; sin Redis se consulta directo.
func (s *StudentService) Ranking(ctx context.Context, limit int, class string) ([]RankingEntry, error) {
	if limit < 1 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("ranking:%s:%d", class, limit)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []RankingEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	students, err := s.StudentRepo.Ranking(limit, class)
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(students))
	for i := range students {
		st := &students[i]
		entries = append(entries, RankingEntry{
			ID:         st.ID,
			Name:       st.Name,
			HeroName:   st.HeroName,
			Class:      st.Class,
			Level:      st.Level,
			Score:      st.Score,
			Avatar:     st.Avatar,
			Stats:      st.Stats,
			PowerLevel: st.PowerLevel(),
		})
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			s.Redis.Set(ctx, cacheKey, payload, rankingCacheTTL)
		}
	}

	return entries, nil
}
