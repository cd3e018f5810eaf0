package service

import (
	"errors"
	"strings"

	"hero_academy_backend/internal/config"
	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/repository"
	"hero_academy_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	StudentRepo *repository.StudentRepository
	Cfg         *config.Config
}

func NewAuthService(studentRepo *repository.StudentRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		StudentRepo: studentRepo,
		Cfg:         cfg,
	}
}

// normalizeEmail: la unicidad del email es insensible a mayúsculas, así
// que se guarda y se busca siempre en minúsculas y sin espacios.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(student *model.Student) error {
	student.Email = normalizeEmail(student.Email)

	_, err := s.StudentRepo.FindByEmail(student.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(student.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	student.Password = string(hashedPassword)

	if student.Role == "" {
		student.Role = model.RoleStudent
	}
	if student.Level == 0 {
		student.Level = 1
	}
	student.Stats = model.Stats{Strength: 1, Speed: 1, Technique: 1, Intelligence: 1, Cooperation: 1}

	return s.StudentRepo.Create(student)
}

// Login devuelve el estudiante autenticado y su token JWT.
func (s *AuthService) Login(email, password string) (*model.Student, string, error) {
	student, err := s.StudentRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		return nil, "", util.ErrInvalidCreds
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCreds
	}

	token, err := util.GenerateJWT(student, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return student, token, nil
}

func (s *AuthService) GetCurrentStudent(c *gin.Context) *model.Student {
	claims := util.GetClaimsFromContext(c)
	if claims == nil {
		return nil
	}

	student, err := s.StudentRepo.FindByID(claims.StudentID)
	if err != nil {
		return nil
	}
	return student
}
